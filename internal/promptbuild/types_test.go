package promptbuild

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRecordJSONRoundTrip(t *testing.T) {
	rec := NewBuilder().Build(BuildRequest{
		Fields: Fields{
			Person:   "a knight </PERSON> with <TAGS>",
			Timeline: "line one\nline two",
		},
		Styles: NewStyles(StyleEpicFantasy),
		Camera: ParseCamera("orbit around"),
	})

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	if diff := cmp.Diff(rec, decoded); diff != "" {
		t.Fatalf("json round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordJSONNormalizesOrder(t *testing.T) {
	input := `[{"name":"CAMERA","value":"static"},{"name":"EXTRA","value":"x"},{"name":"STYLE","value":"s"},{"name":"STYLE","value":"dup"}]`

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(input), &rec))
	require.Len(t, rec, len(WireOrder))
	for i, tag := range WireOrder {
		require.Equal(t, tag, rec[i].Name)
	}
	require.Equal(t, "s", rec.Get(TagStyle))
	require.Equal(t, "static", rec.Get(TagCamera))
	require.Equal(t, "", rec.Get(TagPerson))
}

func TestRecordJSONRejectsObjects(t *testing.T) {
	var rec Record
	require.Error(t, json.Unmarshal([]byte(`{"STYLE":"x"}`), &rec))
}

package promptbuild

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestExtractMissingTagIsEmpty(t *testing.T) {
	if got := Extract(TagPerson, "<STYLE>x</STYLE>"); got != "" {
		t.Fatalf("expected empty value for missing tag, got %q", got)
	}
	if got := Extract(TagPerson, "<PERSON>unterminated"); got != "" {
		t.Fatalf("expected empty value for unterminated tag, got %q", got)
	}
}

func TestExtractSpansNewlinesAndTrims(t *testing.T) {
	text := "<TIMELINE>\n  0s: she turns.\n  2s: she smiles.\n</TIMELINE>"
	got := Extract(TagTimeline, text)
	want := "0s: she turns.\n  2s: she smiles."
	if got != want {
		t.Fatalf("Extract = %q, want %q", got, want)
	}
}

func TestExtractFirstMatchWins(t *testing.T) {
	text := "<ERA>first</ERA><ERA>second</ERA>"
	if got := Extract(TagEra, text); got != "first" {
		t.Fatalf("expected first match, got %q", got)
	}
}

func TestExtractTruncatesAtEmbeddedClosingTag(t *testing.T) {
	rec := NewRecord()
	rec.Set(TagPerson, "before</PERSON>after")
	got := ParseTagged(Serialize(rec)).Get(TagPerson)
	if got != "before" {
		t.Fatalf("expected truncation at embedded closing tag, got %q", got)
	}
}

func TestExtractIsCaseSensitive(t *testing.T) {
	if got := Extract(TagStyle, "<style>x</style>"); got != "" {
		t.Fatalf("expected lower-case tags to be ignored, got %q", got)
	}
}

func TestTaggedRoundTrip(t *testing.T) {
	req := BuildRequest{
		Fields: Fields{
			Person:      "An old fisherman",
			Background:  "a foggy harbor\nwith gulls",
			Era:         "1950s",
			Timeline:    "He casts the net. The fog lifts.",
			Constraints: "no music",
		},
		Styles: NewStyles(StyleDocumentary, StyleHandheldRealism),
		Time:   TimeMorning,
		Camera: ParseCamera("drone shot"),
	}

	built := NewBuilder().Build(req)
	parsed := ParseTagged(Serialize(built))
	if diff := cmp.Diff(built, parsed); diff != "" {
		t.Fatalf("round trip mismatch (-built +parsed):\n%s", diff)
	}
	if parsed.Get(TagBackground) != req.Background {
		t.Fatalf("expected background %q, got %q", req.Background, parsed.Get(TagBackground))
	}
}

func recordOf(value string) Record {
	rec := NewRecord()
	for _, tag := range WireOrder {
		rec.Set(tag, value)
	}
	return rec
}

// roundTrippable reports whether v survives the tagged format unchanged:
// no tag delimiters and no surrounding whitespace.
func roundTrippable(v string) bool {
	return utf8.ValidString(v) &&
		!strings.ContainsAny(v, "<>") &&
		strings.TrimSpace(v) == v
}

func TestTaggedRoundTripValues(t *testing.T) {
	values := []string{
		"",
		"x",
		"A woman in a red coat",
		"line one\nline two\n\nline four",
		"tabs\tinside\tonly",
		"quotes \"double\" and 'single'",
		"ampersand & slash / backslash \\",
		"unicode: 桜の木の下で, café, 🎬",
		"1950s, post-war Tokyo",
	}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			rec := recordOf(v)
			got := ParseTagged(Serialize(rec))
			if diff := cmp.Diff(rec, got); diff != "" {
				t.Fatalf("round trip mismatch for %q (-want +got):\n%s", v, diff)
			}
		})
	}
}

func FuzzTaggedRoundTrip(f *testing.F) {
	for _, seed := range []string{"A woman", "a foggy harbor\nwith gulls", "no music", "x y z"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, v string) {
		if !roundTrippable(v) {
			t.Skip()
		}
		rec := recordOf(v)
		got := ParseTagged(Serialize(rec))
		if diff := cmp.Diff(rec, got); diff != "" {
			t.Fatalf("round trip mismatch for %q (-want +got):\n%s", v, diff)
		}
	})
}

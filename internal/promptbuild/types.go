package promptbuild

import (
	"encoding/json"
	"fmt"
)

// Tag names one section of a serialized prompt. Tags are case-sensitive.
type Tag string

const (
	TagStyle       Tag = "STYLE"
	TagPerson      Tag = "PERSON"
	TagBackground  Tag = "BACKGROUND"
	TagEra         Tag = "ERA"
	TagTime        Tag = "TIME"
	TagCamera      Tag = "CAMERA"
	TagTimeline    Tag = "TIMELINE"
	TagConstraints Tag = "CONSTRAINTS"
)

// WireOrder is the fixed section order of a serialized prompt.
var WireOrder = []Tag{
	TagStyle,
	TagPerson,
	TagBackground,
	TagEra,
	TagTime,
	TagCamera,
	TagTimeline,
	TagConstraints,
}

// Fields holds the free-text inputs of a prompt.
type Fields struct {
	Person      string `json:"person,omitempty" yaml:"person,omitempty"`
	Background  string `json:"background,omitempty" yaml:"background,omitempty"`
	Era         string `json:"era,omitempty" yaml:"era,omitempty"`
	Timeline    string `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Constraints string `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// BuildRequest defines inputs for prompt assembly.
type BuildRequest struct {
	Fields `yaml:",inline"`

	Styles Styles       `json:"styles,omitempty" yaml:"styles,omitempty"`
	Time   TimePreset   `json:"time,omitempty" yaml:"time,omitempty"`
	Camera CameraPreset `json:"camera,omitempty" yaml:"camera,omitempty"`
}

// Field is one named section value.
type Field struct {
	Name  Tag    `json:"name"`
	Value string `json:"value"`
}

// Record is the structured form of a serialized prompt: every tag of
// WireOrder exactly once, in that order.
type Record []Field

// NewRecord returns a record with every section present and empty.
func NewRecord() Record {
	r := make(Record, len(WireOrder))
	for i, tag := range WireOrder {
		r[i] = Field{Name: tag}
	}
	return r
}

// Get returns the value of tag, or "" if absent.
func (r Record) Get(tag Tag) string {
	for _, f := range r {
		if f.Name == tag {
			return f.Value
		}
	}
	return ""
}

// Set replaces the value of tag. Unknown tags are ignored.
func (r Record) Set(tag Tag, value string) {
	for i := range r {
		if r[i].Name == tag {
			r[i].Value = value
			return
		}
	}
}

// UnmarshalJSON normalizes the decoded list into wire order. Unknown
// names are dropped and missing sections become empty.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw []Field
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode prompt record: %w", err)
	}
	rec := NewRecord()
	seen := make(map[Tag]bool, len(raw))
	for _, f := range raw {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		rec.Set(f.Name, f.Value)
	}
	*r = rec
	return nil
}

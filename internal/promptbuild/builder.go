package promptbuild

import (
	"strings"

	"github.com/kayz/veoprompt/internal/logger"
)

// Builder assembles a prompt record from free text and preset selections.
type Builder struct{}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build assembles the structured record. Values are copied verbatim;
// out-of-set presets pass through unchanged.
func (b *Builder) Build(req BuildRequest) Record {
	if !req.Time.Known() {
		logger.Debug("Time preset %q is not a listed preset, passing through", req.Time)
	}
	if !req.Camera.Recognized() {
		logger.Debug("Camera preset %q is not a listed preset, passing through", req.Camera.Raw)
	}

	rec := NewRecord()
	rec.Set(TagStyle, req.Styles.Summary())
	rec.Set(TagPerson, req.Person)
	rec.Set(TagBackground, req.Background)
	rec.Set(TagEra, req.Era)
	rec.Set(TagTime, req.Time.String())
	rec.Set(TagCamera, req.Camera.String())
	rec.Set(TagTimeline, req.Timeline)
	rec.Set(TagConstraints, req.Constraints)
	return rec
}

// BuildTagged assembles the record and serializes it to the tagged format.
func (b *Builder) BuildTagged(req BuildRequest) string {
	return Serialize(b.Build(req))
}

// Serialize renders rec as one <TAG>value</TAG> line per section in wire
// order. Values are not escaped. Leading and trailing whitespace of the
// whole result is trimmed.
func Serialize(rec Record) string {
	var out strings.Builder
	for _, tag := range WireOrder {
		out.WriteString("<")
		out.WriteString(string(tag))
		out.WriteString(">")
		out.WriteString(rec.Get(tag))
		out.WriteString("</")
		out.WriteString(string(tag))
		out.WriteString(">\n")
	}
	return strings.TrimSpace(out.String())
}

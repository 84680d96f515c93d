package promptbuild

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// StyleFlag is one selectable visual style. The numeric order is the
// declaration order used when rendering a style summary.
type StyleFlag int

const (
	StyleRealistic StyleFlag = iota
	StyleCinematic
	StyleDocumentary
	StyleEpicFantasy
	StyleHandheldRealism

	styleCount
)

var styleNames = [styleCount]string{
	"realistic",
	"cinematic",
	"documentary",
	"epic_fantasy",
	"handheld_realism",
}

var stylePhrases = [styleCount]string{
	"realistic style with natural motion and real-world physics",
	"cinematic style with dramatic lighting and shallow depth of field",
	"documentary style with observational camera work",
	"epic fantasy style with dramatic scale and stylized realism",
	"handheld realism with natural camera imperfections",
}

// AllStyles returns every style flag in declaration order.
func AllStyles() []StyleFlag {
	flags := make([]StyleFlag, 0, styleCount)
	for f := StyleFlag(0); f < styleCount; f++ {
		flags = append(flags, f)
	}
	return flags
}

func (f StyleFlag) valid() bool { return f >= 0 && f < styleCount }

func (f StyleFlag) String() string {
	if !f.valid() {
		return fmt.Sprintf("StyleFlag(%d)", int(f))
	}
	return styleNames[f]
}

// Phrase returns the fixed descriptive phrase for the flag.
func (f StyleFlag) Phrase() string {
	if !f.valid() {
		return ""
	}
	return stylePhrases[f]
}

// ParseStyleFlag accepts "epic_fantasy", "epic-fantasy" and the host input
// name "style_epic_fantasy".
func ParseStyleFlag(name string) (StyleFlag, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	n = strings.TrimPrefix(n, "style_")
	for i, s := range styleNames {
		if s == n {
			return StyleFlag(i), true
		}
	}
	return 0, false
}

// Styles is a set of style flags.
type Styles uint8

// NewStyles returns a set holding the given flags.
func NewStyles(flags ...StyleFlag) Styles {
	var s Styles
	for _, f := range flags {
		s = s.With(f)
	}
	return s
}

// ParseStyles builds a set from flag names. Unknown names are an error.
func ParseStyles(names []string) (Styles, error) {
	var s Styles
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, ok := ParseStyleFlag(name)
		if !ok {
			return 0, fmt.Errorf("unknown style %q", name)
		}
		s = s.With(f)
	}
	return s, nil
}

func (s Styles) With(f StyleFlag) Styles {
	if !f.valid() {
		return s
	}
	return s | 1<<uint(f)
}

func (s Styles) Has(f StyleFlag) bool {
	return f.valid() && s&(1<<uint(f)) != 0
}

// Flags lists the selected flags in declaration order.
func (s Styles) Flags() []StyleFlag {
	var flags []StyleFlag
	for _, f := range AllStyles() {
		if s.Has(f) {
			flags = append(flags, f)
		}
	}
	return flags
}

// Names lists the selected flag names in declaration order.
func (s Styles) Names() []string {
	flags := s.Flags()
	names := make([]string, 0, len(flags))
	for _, f := range flags {
		names = append(names, f.String())
	}
	return names
}

// Summary joins the phrases of the selected flags with ", ".
// An empty set yields "".
func (s Styles) Summary() string {
	flags := s.Flags()
	phrases := make([]string, 0, len(flags))
	for _, f := range flags {
		phrases = append(phrases, f.Phrase())
	}
	return strings.Join(phrases, ", ")
}

func (s Styles) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *Styles) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("styles must be a list of names: %w", err)
	}
	parsed, err := ParseStyles(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Styles) MarshalYAML() (interface{}, error) {
	return s.Names(), nil
}

func (s *Styles) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return fmt.Errorf("styles must be a list of names: %w", err)
	}
	parsed, err := ParseStyles(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TimePreset is a lighting/time-of-day choice. Its text is used verbatim.
// The zero value is "none".
type TimePreset string

const (
	TimeNone         TimePreset = "none"
	TimeMorning      TimePreset = "morning, soft natural daylight"
	TimeMidday       TimePreset = "midday, neutral daylight"
	TimeSunset       TimePreset = "sunset, warm golden hour light"
	TimeNight        TimePreset = "night, cinematic low light"
	TimeDarkIndoor   TimePreset = "dark indoor environment"
	TimeBrightIndoor TimePreset = "bright indoor lighting"
)

var timePresets = []TimePreset{
	TimeNone,
	TimeMorning,
	TimeMidday,
	TimeSunset,
	TimeNight,
	TimeDarkIndoor,
	TimeBrightIndoor,
}

// TimePresets returns the host choice list, "none" first.
func TimePresets() []string {
	out := make([]string, 0, len(timePresets))
	for _, t := range timePresets {
		out = append(out, string(t))
	}
	return out
}

// String returns the preset text, "none" for the zero value.
func (t TimePreset) String() string {
	if t == "" {
		return string(TimeNone)
	}
	return string(t)
}

// Known reports whether t is one of the listed presets or the zero value.
func (t TimePreset) Known() bool {
	if t == "" {
		return true
	}
	for _, p := range timePresets {
		if p == t {
			return true
		}
	}
	return false
}

// CameraMove identifies a camera preset. CameraUnrecognized carries values
// outside the closed set.
type CameraMove int

const (
	CameraNone CameraMove = iota
	CameraStatic
	CameraHandheld
	CameraZoomIn
	CameraZoomOut
	CameraFollows
	CameraPanLeft
	CameraPanRight
	CameraTiltUp
	CameraTiltDown
	CameraOrbit
	CameraDollyIn
	CameraDollyOut
	CameraDollyLeft
	CameraDollyRight
	CameraJibUp
	CameraJibDown
	CameraDrone
	CameraRoll360

	CameraUnrecognized
)

type cameraEntry struct {
	name     string
	sentence string
}

var cameraTable = [CameraUnrecognized]cameraEntry{
	CameraNone:       {"none", ""},
	CameraStatic:     {"static", "The camera remains static with stable framing."},
	CameraHandheld:   {"handheld", "The camera is handheld with subtle natural movement."},
	CameraZoomIn:     {"zoom in", "The camera slowly zooms in toward the subject."},
	CameraZoomOut:    {"zoom out", "The camera slowly zooms out to reveal more of the scene."},
	CameraFollows:    {"camera follows", "The camera smoothly follows the subject's movement."},
	CameraPanLeft:    {"pan left", "The camera pans left smoothly."},
	CameraPanRight:   {"pan right", "The camera pans right smoothly."},
	CameraTiltUp:     {"tilt up", "The camera tilts upward to reveal vertical space."},
	CameraTiltDown:   {"tilt down", "The camera tilts downward toward the subject."},
	CameraOrbit:      {"orbit around", "The camera slowly orbits around the subject."},
	CameraDollyIn:    {"dolly in", "The camera dollies in smoothly toward the subject."},
	CameraDollyOut:   {"dolly out", "The camera dollies out smoothly."},
	CameraDollyLeft:  {"dolly left", "The camera dollies left smoothly."},
	CameraDollyRight: {"dolly right", "The camera dollies right smoothly."},
	CameraJibUp:      {"jib up", "The camera rises upward using a jib movement."},
	CameraJibDown:    {"jib down", "The camera moves downward using a jib movement."},
	CameraDrone:      {"drone shot", "The scene is captured as a smooth aerial drone shot."},
	CameraRoll360:    {"360 roll", "The camera performs a slow 360-degree roll."},
}

// CameraPresets returns the host choice list, "none" first.
func CameraPresets() []string {
	out := make([]string, 0, len(cameraTable))
	for _, e := range cameraTable {
		out = append(out, e.name)
	}
	return out
}

// CameraPreset is a parsed camera choice. Raw keeps the caller's text so
// unrecognized values pass through unchanged. The zero value is "none".
type CameraPreset struct {
	Move CameraMove
	Raw  string
}

// ParseCamera matches raw exactly against the preset names.
func ParseCamera(raw string) CameraPreset {
	for i, e := range cameraTable {
		if e.name == raw {
			return CameraPreset{Move: CameraMove(i), Raw: raw}
		}
	}
	return CameraPreset{Move: CameraUnrecognized, Raw: raw}
}

func (c CameraPreset) String() string {
	if c.Raw == "" && c.Move == CameraNone {
		return cameraTable[CameraNone].name
	}
	return c.Raw
}

// Recognized reports whether the value belongs to the closed set.
func (c CameraPreset) Recognized() bool { return c.Move != CameraUnrecognized }

// Sentence returns the canned camera sentence. "none" and unrecognized
// values have none.
func (c CameraPreset) Sentence() string {
	if c.Move < 0 || c.Move >= CameraUnrecognized {
		return ""
	}
	return cameraTable[c.Move].sentence
}

func (c CameraPreset) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CameraPreset) UnmarshalText(text []byte) error {
	*c = ParseCamera(string(text))
	return nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/kayz/veoprompt/internal/promptbuild"
	"github.com/spf13/cobra"
)

// buildFlags are the builder inputs shared by build and run.
type buildFlags struct {
	requestPath string
	person      string
	background  string
	era         string
	timeline    string
	constraints string
	styles      []string
	timePreset  string
	camera      string
}

func addBuildFlags(cmd *cobra.Command, f *buildFlags) {
	fs := cmd.Flags()
	fs.StringVar(&f.requestPath, "request", "", "Path to a YAML or JSON build request; explicit flags override its values")
	fs.StringVar(&f.person, "person", "", "Who is on screen")
	fs.StringVar(&f.background, "background", "", "Where the scene happens")
	fs.StringVar(&f.era, "era", "", "Era or period of the setting")
	fs.StringVar(&f.timeline, "timeline", "", "Timeline of actions")
	fs.StringVar(&f.constraints, "constraints", "", "Constraints such as \"no text overlays\"")
	fs.StringSliceVar(&f.styles, "style", []string{"realistic", "cinematic"},
		"Styles to apply: "+strings.Join(styleNames(), ", "))
	fs.StringVar(&f.timePreset, "time", string(promptbuild.TimeNone), "Time preset: "+strings.Join(promptbuild.TimePresets(), " | "))
	fs.StringVar(&f.camera, "camera", "none", "Camera preset: "+strings.Join(promptbuild.CameraPresets(), ", "))
}

func styleNames() []string {
	var names []string
	for _, s := range promptbuild.AllStyles() {
		names = append(names, s.String())
	}
	return names
}

// request resolves the build request from --request and explicit flags.
func (f *buildFlags) request(cmd *cobra.Command) (promptbuild.BuildRequest, error) {
	var req promptbuild.BuildRequest
	fromFile := f.requestPath != ""
	if fromFile {
		loaded, err := promptbuild.LoadRequest(f.requestPath)
		if err != nil {
			return req, err
		}
		req = loaded
	}

	// Without a request file every flag applies, defaults included.
	use := func(name string) bool {
		return !fromFile || cmd.Flags().Changed(name)
	}

	if use("person") {
		req.Person = f.person
	}
	if use("background") {
		req.Background = f.background
	}
	if use("era") {
		req.Era = f.era
	}
	if use("timeline") {
		req.Timeline = f.timeline
	}
	if use("constraints") {
		req.Constraints = f.constraints
	}
	if use("style") {
		styles, err := promptbuild.ParseStyles(f.styles)
		if err != nil {
			return req, fmt.Errorf("--style: %w", err)
		}
		req.Styles = styles
	}
	if use("time") {
		req.Time = promptbuild.TimePreset(f.timePreset)
	}
	if use("camera") {
		req.Camera = promptbuild.ParseCamera(f.camera)
	}
	return req, nil
}

// composeFlags are the composer options shared by compose and run.
type composeFlags struct {
	cut        int
	save       bool
	clipboard  bool
	outputRoot string
	strict     bool
}

func addComposeFlags(cmd *cobra.Command, f *composeFlags) {
	fs := cmd.Flags()
	fs.IntVar(&f.cut, "cut", 1, "Cut number; names the cut_NNN save directory")
	fs.BoolVar(&f.save, "save", false, "Save the final prompt to <output-root>/cut_NNN/veo_prompt.txt")
	fs.BoolVar(&f.clipboard, "clipboard", true, "Copy the final prompt to the system clipboard when available")
	fs.StringVar(&f.outputRoot, "output-root", "", "Output root directory (default: output.root_dir from config)")
	fs.BoolVar(&f.strict, "strict", false, "Exit with an error when saving fails")
}

func (f *composeFlags) options() (promptbuild.Options, error) {
	if f.cut < 1 {
		return promptbuild.Options{}, fmt.Errorf("--cut must be at least 1, got %d", f.cut)
	}
	return promptbuild.Options{
		CutNumber:       f.cut,
		SaveToFile:      f.save,
		CopyToClipboard: f.clipboard,
	}, nil
}

package promptbuild

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kayz/veoprompt/internal/logger"
)

const closingSentence = "The video follows realistic timing, natural motion, and smooth transitions."

// ErrNoFileWriter is returned when a save is requested but the composer has
// no file writer.
var ErrNoFileWriter = errors.New("no file writer configured")

// FileWriter persists a composed prompt for a cut and returns the written path.
type FileWriter interface {
	WriteCut(ctx context.Context, cut int, text string) (string, error)
}

// ClipboardWriter places text on the system clipboard.
type ClipboardWriter interface {
	Available() bool
	WriteText(text string) error
}

// Options selects the side effects of a composition.
type Options struct {
	CutNumber       int  `json:"cut_number" yaml:"cut_number"`
	SaveToFile      bool `json:"save_to_txt" yaml:"save_to_txt"`
	CopyToClipboard bool `json:"copy_to_clipboard" yaml:"copy_to_clipboard"`
}

// Result is the outcome of a composition.
type Result struct {
	Text      string `json:"final_prompt"`
	SavedPath string `json:"saved_path,omitempty"`
	Copied    bool   `json:"copied"`
}

// Composer turns prompt records into the final paragraph.
type Composer struct {
	files     FileWriter
	clipboard ClipboardWriter
}

// NewComposer creates a Composer. Either port may be nil; a nil clipboard is
// treated as unavailable.
func NewComposer(files FileWriter, clipboard ClipboardWriter) *Composer {
	return &Composer{files: files, clipboard: clipboard}
}

// ComposeText renders the final paragraph for rec without side effects.
//
// Parts are joined by single spaces, so empty parts leave double spaces and
// an empty style leaves a leading ". " in the output.
func ComposeText(rec Record) string {
	camera := ParseCamera(rec.Get(TagCamera))
	if !camera.Recognized() {
		logger.Debug("Unrecognized camera preset %q, no camera sentence", camera.Raw)
	}

	parts := []string{
		rec.Get(TagStyle) + ".",
		rec.Get(TagPerson),
		"The environment is " + rec.Get(TagBackground) + ".",
		"The setting reflects " + rec.Get(TagEra) + ".",
		"The scene takes place in " + rec.Get(TagTime) + ".",
		camera.Sentence(),
		rec.Get(TagTimeline),
		rec.Get(TagConstraints),
		closingSentence,
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Compose renders rec and performs the side effects selected by opts.
//
// A failed save is returned as an error together with a Result whose Text
// is set; callers should report it and keep the text. Clipboard problems
// are never returned.
func (c *Composer) Compose(ctx context.Context, rec Record, opts Options) (Result, error) {
	res := Result{Text: ComposeText(rec)}

	var saveErr error
	if opts.SaveToFile {
		saveErr = c.save(ctx, opts.CutNumber, &res)
	}

	if opts.CopyToClipboard {
		c.copy(&res)
	}

	return res, saveErr
}

// ComposeTagged parses a serialized prompt and composes it.
func (c *Composer) ComposeTagged(ctx context.Context, text string, opts Options) (Result, error) {
	return c.Compose(ctx, ParseTagged(text), opts)
}

func (c *Composer) save(ctx context.Context, cut int, res *Result) error {
	if c.files == nil {
		return fmt.Errorf("save cut %d: %w", cut, ErrNoFileWriter)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("save cut %d: %w", cut, err)
	}
	path, err := c.files.WriteCut(ctx, cut, res.Text)
	if err != nil {
		return fmt.Errorf("save cut %d: %w", cut, err)
	}
	res.SavedPath = path
	logger.Info("Saved prompt for cut %d: %s", cut, path)
	return nil
}

func (c *Composer) copy(res *Result) {
	if c.clipboard == nil || !c.clipboard.Available() {
		logger.Debug("Clipboard not available, skipping copy")
		return
	}
	if err := c.clipboard.WriteText(res.Text); err != nil {
		logger.Warn("Copy to clipboard failed: %v", err)
		return
	}
	res.Copied = true
}

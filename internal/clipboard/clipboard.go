// Package clipboard adapts the system clipboard for composed prompts.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Package-level variables so tests can stand in for the desktop.
var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// System writes to the desktop clipboard via xclip/xsel/wl-copy, pbcopy or
// the Windows API, whichever the platform provides.
type System struct{}

// New returns the system clipboard writer.
func New() System { return System{} }

// Available reports whether a clipboard helper was found.
func (System) Available() bool { return !unsupported() }

// WriteText replaces the clipboard contents.
func (System) WriteText(text string) error {
	if err := writeAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Disabled is a clipboard that is never available, for headless runs.
type Disabled struct{}

func (Disabled) Available() bool { return false }

func (Disabled) WriteText(string) error { return nil }

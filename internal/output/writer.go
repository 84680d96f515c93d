// Package output writes composed prompts into per-cut directories under an
// output root:
//
//	<root>/cut_007/veo_prompt.txt
package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kayz/veoprompt/internal/security"
)

const (
	DefaultRoot     = "output"
	DefaultFileName = "veo_prompt.txt"
)

// ErrInvalidCut is returned for cut numbers below 1.
var ErrInvalidCut = errors.New("cut number must be at least 1")

// Writer saves prompt text for a cut.
type Writer struct {
	root     string
	fileName string
	checker  *security.PathChecker
}

// NewWriter creates a Writer. Empty root and fileName fall back to the
// defaults. A nil checker allows any root.
func NewWriter(root, fileName string, checker *security.PathChecker) *Writer {
	if root == "" {
		root = DefaultRoot
	}
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Writer{root: root, fileName: fileName, checker: checker}
}

// Root returns the configured output root.
func (w *Writer) Root() string { return w.root }

// Checker returns the path checker confining the root, possibly nil.
func (w *Writer) Checker() *security.PathChecker { return w.checker }

// CutDir returns the directory for cut n.
func (w *Writer) CutDir(n int) string {
	return filepath.Join(w.root, CutDirName(n))
}

// CutDirName returns the zero-padded directory name for cut n.
func CutDirName(n int) string {
	return fmt.Sprintf("cut_%03d", n)
}

// WriteCut writes text verbatim to <root>/cut_NNN/<fileName>, creating
// directories as needed. No trailing newline is added.
func (w *Writer) WriteCut(ctx context.Context, cut int, text string) (string, error) {
	if cut < 1 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidCut, cut)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := w.CutDir(cut)
	if w.checker != nil {
		resolved, err := w.checker.Resolve(dir)
		if err != nil {
			return "", err
		}
		dir = resolved
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create cut dir: %w", err)
	}

	path := filepath.Join(dir, w.fileName)
	if err := writeFile(path, []byte(text)); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open prompt file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close prompt file: %w", cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write prompt file: %w", err)
	}
	return nil
}

package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathChecker confines output paths to a set of allowed roots.
// An empty allowed list means no restrictions.
type PathChecker struct {
	allowedPaths []string // resolved absolute paths
}

// NewPathChecker creates a PathChecker from a list of allowed roots.
// Entries are expanded (~) and resolved to absolute paths; entries that
// cannot be resolved are dropped.
func NewPathChecker(allowedPaths []string) *PathChecker {
	resolved := make([]string, 0, len(allowedPaths))
	for _, p := range allowedPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(ExpandHome(p))
		if err != nil {
			continue
		}
		resolved = append(resolved, filepath.Clean(abs))
	}
	return &PathChecker{allowedPaths: resolved}
}

// Resolve expands and absolutizes path, then checks it against the
// allowed roots.
func (pc *PathChecker) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	abs = filepath.Clean(abs)
	if !pc.allows(abs) {
		return "", fmt.Errorf("path %q is outside the allowed output roots %v", path, pc.allowedPaths)
	}
	return abs, nil
}

// IsAllowed returns true if the path is under any allowed root, or if no
// restrictions are configured.
func (pc *PathChecker) IsAllowed(path string) bool {
	_, err := pc.Resolve(path)
	return err == nil
}

func (pc *PathChecker) allows(abs string) bool {
	if pc == nil || len(pc.allowedPaths) == 0 {
		return true
	}
	for _, allowed := range pc.allowedPaths {
		if abs == allowed || strings.HasPrefix(abs, allowed+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// HasRestrictions returns true if path restrictions are configured.
func (pc *PathChecker) HasRestrictions() bool {
	return pc != nil && len(pc.allowedPaths) > 0
}

// AllowedPaths returns the resolved allowed roots.
func (pc *PathChecker) AllowedPaths() []string {
	if pc == nil {
		return nil
	}
	return pc.allowedPaths
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

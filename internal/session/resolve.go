package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrSessionNotFound marks a session reference that matched no file.
// Callers can distinguish it from I/O failures with errors.Is.
var ErrSessionNotFound = errors.New("session not found")

// Resolve maps a user-supplied session reference to a log file path.
// The reference may be an absolute path, a path relative to the
// projects root, or a bare session id searched for by file stem under
// the root.
func Resolve(ref, projectsRoot string) (string, error) {
	if filepath.IsAbs(ref) {
		if _, err := os.Stat(ref); err == nil {
			return ref, nil
		}
		return "", fmt.Errorf("%w: %s", ErrSessionNotFound, ref)
	}

	// Bare session id: locate by file stem.
	if filepath.Ext(ref) == "" {
		if found := findByStem(projectsRoot, ref); found != "" {
			return found, nil
		}
	}

	candidate := filepath.Join(projectsRoot, ref)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", fmt.Errorf("%w: %s", ErrSessionNotFound, ref)
}

func findByStem(root, stem string) string {
	var found string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if found != "" {
			return filepath.SkipAll
		}
		if d.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if strings.TrimSuffix(base, filepath.Ext(base)) == stem {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// Package scan discovers candidate session logs: files under the
// projects root that contain at least one search term. It shells out
// to ripgrep when available and falls back to a pure-Go walk.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// ValidateTerms rejects malformed search input before any file
// scanning begins. Each term must be non-empty and a valid pattern
// fragment, since terms are joined into one alternation for ripgrep.
func ValidateTerms(terms []string) error {
	if len(terms) == 0 {
		return fmt.Errorf("no search terms given")
	}
	for _, t := range terms {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("empty search term")
		}
		if _, err := regexp.Compile(t); err != nil {
			return fmt.Errorf("invalid search term %q: %w", t, err)
		}
	}
	return nil
}

// Candidates returns the JSONL files under root containing any search
// term, case-insensitively. rgPath names the ripgrep binary ("" means
// "rg" from PATH); when ripgrep is unavailable the walk fallback scans
// file contents directly.
func Candidates(root string, terms []string, rgPath string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("projects directory %s: %w", root, err)
	}

	if rgPath == "" {
		rgPath = "rg"
	}
	if _, err := exec.LookPath(rgPath); err != nil {
		return walkCandidates(root, terms)
	}
	return ripgrepCandidates(root, terms, rgPath)
}

func ripgrepCandidates(root string, terms []string, rgPath string) ([]string, error) {
	pattern := strings.Join(terms, "|")
	cmd := exec.Command(rgPath, "-li", "--glob", "*.jsonl", pattern)
	cmd.Dir = root

	out, err := cmd.Output()
	if err != nil {
		// Exit status 1 means no matches, not a failure.
		if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("ripgrep in %s: %w", root, err)
	}

	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, ".jsonl") {
			files = append(files, filepath.Join(root, line))
		}
	}
	return files, nil
}

// walkCandidates is the ripgrep-free fallback: walk the root and keep
// any JSONL file whose contents mention a term.
func walkCandidates(root string, terms []string) ([]string, error) {
	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if d.IsDir() || filepath.Ext(path) != ".jsonl" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		content := strings.ToLower(string(data))
		for _, t := range lowered {
			if strings.Contains(content, t) {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

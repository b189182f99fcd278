// Package finder runs the whole query flow: candidate discovery,
// per-session analysis, and ranking. Both the CLI and the TUI call it.
package finder

import (
	"fmt"

	"github.com/amar/session-finder/internal/parse"
	"github.com/amar/session-finder/internal/scan"
	"github.com/amar/session-finder/internal/session"
	"github.com/amar/session-finder/internal/timeline"
)

// Finder holds the environment one query flow runs against.
type Finder struct {
	ProjectsRoot   string
	RgPath         string
	ProjectFilter  string
	RecentDays     int
	ExtraStopwords []string
}

// Result carries the ranked sessions plus any per-file failures.
// Failures are reported, never silently folded into an empty result:
// a caller can tell a zero-hit query from a degraded one.
type Result struct {
	Sessions []session.Summary
	Failures []error
}

// Find validates terms, discovers candidates, analyzes each in
// isolation, and returns the ranked top sessions. A file that fails to
// read is recorded as a failure and the rest of the query continues.
func (f *Finder) Find(terms []string, limit int) (*Result, error) {
	if err := scan.ValidateTerms(terms); err != nil {
		return nil, err
	}

	files, err := scan.Candidates(f.ProjectsRoot, terms, f.RgPath)
	if err != nil {
		return nil, err
	}

	opts := session.Options{
		ProjectFilter:  f.ProjectFilter,
		RecentDays:     f.RecentDays,
		ExtraStopwords: f.ExtraStopwords,
	}

	res := &Result{}
	var sessions []session.Summary
	for _, file := range files {
		summary, err := session.Analyze(file, terms, opts)
		if err != nil {
			res.Failures = append(res.Failures, err)
			continue
		}
		if summary == nil {
			continue // filtered out
		}
		sessions = append(sessions, *summary)
	}

	res.Sessions = session.Rank(sessions, limit)
	return res, nil
}

// Timeline resolves a session reference and builds its match timeline.
func (f *Finder) Timeline(ref string, terms []string, contextSize int) (string, []timeline.Entry, error) {
	path, msgs, err := f.load(ref)
	if err != nil {
		return "", nil, err
	}
	return path, timeline.Build(msgs, terms, contextSize), nil
}

// CodeDiff resolves a session reference and builds its code-change
// timeline.
func (f *Finder) CodeDiff(ref string, terms []string, contextSize int) (string, []timeline.CodeEntry, error) {
	path, msgs, err := f.load(ref)
	if err != nil {
		return "", nil, err
	}
	return path, timeline.BuildCodeDiff(msgs, terms, contextSize), nil
}

func (f *Finder) load(ref string) (string, []parse.Message, error) {
	path, err := session.Resolve(ref, f.ProjectsRoot)
	if err != nil {
		return "", nil, err
	}
	msgs, err := parse.ParseFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return path, msgs, nil
}

// Package session aggregates per-file analysis results, ranks them,
// and resolves user-supplied session references to log files.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amar/session-finder/internal/parse"
	"github.com/amar/session-finder/internal/topics"
)

// edgeMessageCount is how many first/last messages a summary keeps.
const edgeMessageCount = 8

// edgeMessageMaxLen is the truncation threshold for those messages.
const edgeMessageMaxLen = 200

// Summary is the per-file aggregate presented to the user.
type Summary struct {
	Path          string
	SessionID     string
	ProjectPath   string
	LastModified  time.Time
	LineCount     int
	Topics        []string // deduplicated, sorted
	FirstMessages []string
	LastMessages  []string
	CommonTerms   []string // top-ranked "word(count)" profile
	FileSizeBytes int64
}

// ResumeCommand returns the shell command that reopens this session.
func (s Summary) ResumeCommand() string {
	return "claude --resume " + s.SessionID
}

// Options filters and tunes session analysis.
type Options struct {
	ProjectFilter  string // substring of the decoded project path
	RecentDays     int    // 0 = no recency cutoff
	ExtraStopwords []string
}

// Analyze reads one candidate log and builds its Summary. It returns
// (nil, nil) when the session is filtered out by Options; I/O failures
// carry the path.
func Analyze(path string, searchTerms []string, opts Options) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat session %s: %w", path, err)
	}

	if opts.RecentDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -opts.RecentDays)
		if info.ModTime().Before(cutoff) {
			return nil, nil
		}
	}

	projectPath := DecodeProjectPath(path)
	if opts.ProjectFilter != "" && !strings.Contains(projectPath, opts.ProjectFilter) {
		return nil, nil
	}

	messages, err := parse.ParseFile(path)
	if err != nil {
		return nil, err
	}

	summary := Summary{
		Path:          path,
		SessionID:     SessionID(path),
		ProjectPath:   projectPath,
		LastModified:  info.ModTime(),
		FileSizeBytes: info.Size(),
	}
	summarizeContent(&summary, messages, searchTerms, opts.ExtraStopwords)

	// Line count includes the malformed lines the decoder dropped.
	summary.LineCount, err = countLines(path)
	if err != nil {
		return nil, fmt.Errorf("count lines %s: %w", path, err)
	}

	return &summary, nil
}

// summarizeContent fills topics, edge messages, and the frequency
// profile from one pass over the decoded messages.
func summarizeContent(s *Summary, messages []parse.Message, searchTerms []string, extraStopwords []string) {
	extractor := topics.NewExtractor(searchTerms)
	freq := topics.NewFreqCounter(extraStopwords)

	var found []string
	var rendered []string
	for _, msg := range messages {
		if msg.Role == "" || msg.Content == nil {
			continue
		}
		text := msg.Content.Flatten()
		if text == "" {
			continue
		}
		rendered = append(rendered, msg.Role+": "+truncate(text, edgeMessageMaxLen))
		found = append(found, extractor.FromText(text)...)
		freq.Add(text)
	}

	s.Topics = topics.Dedupe(found)
	s.CommonTerms = freq.Profile()

	first := edgeMessageCount
	if first > len(rendered) {
		first = len(rendered)
	}
	s.FirstMessages = rendered[:first]

	lastStart := len(rendered) - edgeMessageCount
	if lastStart < 0 {
		lastStart = 0
	}
	s.LastMessages = rendered[lastStart:]
}

// SessionID extracts the session identifier: the file name without its
// extension.
func SessionID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DecodeProjectPath decodes the project path from the candidate's
// parent directory naming: "-Users-amar-repos-proj" becomes
// "/Users/amar/repos/proj". Names without the leading dash pass
// through unchanged.
func DecodeProjectPath(path string) string {
	parent := filepath.Base(filepath.Dir(path))
	if strings.HasPrefix(parent, "-") {
		return "/" + strings.ReplaceAll(parent[1:], "-", "/")
	}
	return parent
}

func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}
	n := strings.Count(string(data), "\n")
	if data[len(data)-1] != '\n' {
		n++
	}
	return n, nil
}

func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

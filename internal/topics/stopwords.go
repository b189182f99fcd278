package topics

// stopwords is the fixed noise list excluded from frequency profiles:
// common English function words, programming boilerplate, log-schema
// field names, and frequent technical filler that carries no topical
// signal. Config can extend it, never shrink it.
var stopwords = buildStopwords(
	// common English words
	"the", "and", "for", "with", "that", "this", "but", "not", "are", "was", "were",
	"has", "had", "have", "can", "will", "would", "could", "should", "may", "might",
	"get", "put", "set", "run", "use", "add", "see", "now", "let", "all",
	"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten",
	"from", "into", "over", "then", "when", "what", "where", "which", "who", "why", "how",
	"you", "your", "i'm", "i'll", "i've", "it's", "we're", "they", "them", "their",
	"more", "most", "some", "any", "each", "both", "other", "same", "next", "last",
	"first", "out", "off", "way", "too", "own", "just", "only", "also", "back",

	// programming boilerplate
	"mut", "pub", "impl", "struct", "enum", "type", "trait", "fn",
	"async", "await", "self", "super", "crate", "mod", "extern", "const", "static",
	"str", "string", "bool", "true", "false", "none", "some", "ok", "err", "result",
	"vec", "option", "clone", "new", "default", "debug", "derive",
	"cargo", "toml", "src", "lib", "main", "test", "tests", "target", "build",

	// conversation-log schema boilerplate
	"user", "assistant", "message", "content", "role", "timestamp", "session",
	"request", "response", "interrupted", "tool",

	// registry noise that appears in nearly every session
	"100644", "registry", "https", "github", "com", "crates", "index",

	// frequent technical filler
	"code", "line", "file", "path", "name", "text", "data", "info", "log",
	"check", "fix", "update", "change", "version", "issue", "error", "warning",
	"output", "input", "return", "function", "method", "call", "create", "make",
	"work", "working", "works", "used", "using", "added", "removed", "fixed",
	"need", "needs", "want", "trying", "looks", "seems", "actually", "really",
	"good", "great", "perfect", "okay", "right", "correct", "wrong", "better",
	"think", "know", "understand", "mean", "say", "tell", "show", "find",
	"help", "try", "attempt", "continue", "start", "stop", "end", "done",
	"here", "there",
	"before", "after", "during", "while", "until", "since", "about", "around",
	"above", "below", "under", "through", "across", "between", "among",
	"without", "within", "outside", "inside", "instead", "besides", "except",
	"including", "excluding", "according", "regarding", "concerning", "despite",
	"however", "therefore", "otherwise", "moreover", "furthermore", "nevertheless",
	"although", "because", "unless", "whether", "either", "neither",
	"different", "similar", "various", "several", "multiple", "single", "individual",
	"general", "specific", "particular", "special", "common", "normal", "regular",
	"current", "previous", "recent", "latest", "original", "initial", "final",
	"example", "instance", "case", "situation", "condition", "state", "status",
	"problem", "solution", "answer", "question", "reason", "cause",
	"important", "necessary", "required", "optional", "available", "possible",
	"simple", "complex", "easy", "difficult", "hard", "soft", "quick", "slow",
	"big", "small", "large", "little", "long", "short", "high", "low",
	"full", "empty", "complete", "incomplete", "total", "partial", "whole",
	"sure", "certain", "unclear", "unknown", "obvious", "clear", "visible",
	"open", "close", "closed", "old", "fresh", "clean", "dirty",
	"ready", "busy", "free", "active", "inactive", "enabled", "disabled",
	"public", "private", "local", "remote", "external", "internal", "native",
)

func buildStopwords(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

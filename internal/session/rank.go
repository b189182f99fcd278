package session

import "sort"

// Rank orders sessions by relevance and truncates to limit. The total
// order is descending topic count, ties broken by descending
// modification time; low-relevance sessions past the limit are
// silently dropped.
func Rank(sessions []Summary, limit int) []Summary {
	sort.SliceStable(sessions, func(i, j int) bool {
		if len(sessions[i].Topics) != len(sessions[j].Topics) {
			return len(sessions[i].Topics) > len(sessions[j].Topics)
		}
		return sessions[i].LastModified.After(sessions[j].LastModified)
	})
	if limit >= 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions
}

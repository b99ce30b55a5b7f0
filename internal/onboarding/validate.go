package onboarding

import "strings"

// ValidEmail reports whether candidate may be stored as the participant's email:
// non-empty and containing "@".
//
// Rejections are silent. A caller that wants to explain the failure can do so here
// without touching the transition logic.
func ValidEmail(candidate string) bool {
	return candidate != "" && strings.Contains(candidate, "@")
}

// ValidName reports whether candidate is non-empty after trimming whitespace.
func ValidName(candidate string) bool {
	return strings.TrimSpace(candidate) != ""
}

package domain

import "slices"

// Station token scopes.
const (
	ScopeIssue  = "codes:issue"
	ScopeRedeem = "codes:redeem"
)

// KnownScopes lists every scope a station token may carry.
var KnownScopes = []string{ScopeIssue, ScopeRedeem}

// IsKnownScope reports whether s is one of KnownScopes.
func IsKnownScope(s string) bool {
	return slices.Contains(KnownScopes, s)
}

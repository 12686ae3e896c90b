package domain

import "time"

// ScanEvent is an append-only audit entry written for every validation
// attempt, including unknown codes.
type ScanEvent struct {
	ID      string
	Code    string // Raw code as presented (trimmed)
	Outcome Outcome
	Station string
	At      time.Time
}

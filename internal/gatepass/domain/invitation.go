package domain

import "time"

// State is the lifecycle state of an invitation. A record only ever moves
// from StateIssued to StateUsed.
type State string

const (
	StateIssued State = "issued"
	StateUsed   State = "used"
)

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	return s == StateIssued || s == StateUsed
}

type Invitation struct {
	ID         string
	Code       string
	HolderName string
	State      State
	IssuedAt   time.Time
	IssuedBy   string     // Empty when station auth is disabled
	UsedAt     *time.Time // Set once, on the granting validation
	UsedBy     string
}

// IsUsed reports whether the invitation has already been consumed.
func (i Invitation) IsUsed() bool {
	return i.State == StateUsed
}

// Outcome is the result of presenting a code at the door.
type Outcome string

const (
	OutcomeGranted     Outcome = "granted"
	OutcomeAlreadyUsed Outcome = "already_used"
	OutcomeUnknown     Outcome = "unknown"
)

// ValidationResult is what the registry reports for a validation attempt.
// HolderName and UsedAt are empty for OutcomeUnknown.
type ValidationResult struct {
	Outcome    Outcome
	Code       string
	HolderName string
	UsedAt     *time.Time
}

type Stats struct {
	IssuedCount int64
	UsedCount   int64
}

// Remaining is the number of issued codes that have not been used yet.
func (s Stats) Remaining() int64 {
	return s.IssuedCount - s.UsedCount
}

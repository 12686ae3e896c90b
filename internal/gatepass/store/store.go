package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this
// and expose sub-repositories so a transaction can hand out the same repos
// bound to the transaction instead of the pool.
type Store interface {
	Invitations() Invitations
	ScanEvents() ScanEvents

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Inside fn only
	// the repos of the supplied Tx may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Backup writes a consistent copy of the database to path.
	Backup(ctx context.Context, path string) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Invitations interface {
	// CreateInvitation inserts a new record in the issued state. Returns
	// ErrAlreadyExists when the code collides with an existing record.
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByCode returns the record for code or ErrNotFound.
	GetInvitationByCode(ctx context.Context, code string) (domain.Invitation, error)

	// MarkInvitationUsed flips an issued record to used. It reports false
	// without error when the code is unknown or already used, so callers can
	// use it as a compare-and-swap on the state column.
	MarkInvitationUsed(ctx context.Context, code string, usedBy string, usedAt time.Time) (bool, error)

	// ListInvitations returns records newest first. An empty state lists all.
	ListInvitations(ctx context.Context, state domain.State, limit int) ([]domain.Invitation, error)

	// CountInvitations returns issued-ever and used counts from one snapshot.
	CountInvitations(ctx context.Context) (domain.Stats, error)
}

type ScanEvents interface {
	// CreateScanEvent appends an audit entry for a validation attempt.
	CreateScanEvent(ctx context.Context, ev domain.ScanEvent) error

	// ListScanEventsByCode returns the attempts recorded for code, oldest first.
	ListScanEventsByCode(ctx context.Context, code string) ([]domain.ScanEvent, error)
}

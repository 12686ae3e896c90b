package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/store"
	"github.com/aussiebroadwan/gatepass/pkg/idx"
	"github.com/aussiebroadwan/gatepass/pkg/slogx"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrStorage      = errors.New("storage unavailable")
	ErrNotFound     = errors.New("invitation not found")
)

const (
	// DefaultCodePrefix matches the codes printed for the first event.
	DefaultCodePrefix = "ARD"

	// MaxHolderNameLength bounds the display label in runes.
	MaxHolderNameLength = 200

	// DefaultListLimit and MaxListLimit bound List.
	DefaultListLimit = 100
	MaxListLimit     = 1000

	// issueAttempts bounds regeneration after a code collision.
	issueAttempts = 3
)

// Registry owns every invitation record and adjudicates validation attempts.
// All state changes go through a store transaction, so concurrent callers
// observe a single total order per code.
type Registry struct {
	Store      store.Store
	CodePrefix string

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

// NewRegistry returns a registry over st minting codes with prefix.
func NewRegistry(st store.Store, prefix string) *Registry {
	if prefix == "" {
		prefix = DefaultCodePrefix
	}
	return &Registry{Store: st, CodePrefix: prefix, Now: time.Now}
}

func (r *Registry) now() time.Time {
	if r.Now == nil {
		return time.Now().UTC().Truncate(time.Microsecond)
	}
	return r.Now().UTC().Truncate(time.Microsecond)
}

// Issue creates a new invitation in the issued state for holderName.
// issuedBy is the authenticated station subject and may be empty.
func (r *Registry) Issue(ctx context.Context, holderName, issuedBy string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	name, err := normalizeHolderName(holderName)
	if err != nil {
		log.Warn("rejected invitation with invalid holder name")
		return domain.Invitation{}, err
	}

	var inv domain.Invitation
	err = r.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		inv, err = r.createIn(ctx, tx, name, issuedBy)
		return err
	})
	if err != nil {
		log.Error("failed to issue invitation", slog.Any("error", err))
		return domain.Invitation{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	log.Info("invitation issued",
		slog.String("invitation_id", inv.ID),
		slog.String("holder_name", inv.HolderName),
		slog.String("issued_by", issuedBy),
	)

	return inv, nil
}

// IssueBatch issues one invitation per name in a single transaction. Either
// every invitation is created or none is.
func (r *Registry) IssueBatch(ctx context.Context, holderNames []string, issuedBy string) ([]domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	if len(holderNames) == 0 {
		return nil, fmt.Errorf("%w: no holder names", ErrInvalidInput)
	}

	names := make([]string, 0, len(holderNames))
	for i, raw := range holderNames {
		name, err := normalizeHolderName(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d", err, i)
		}
		names = append(names, name)
	}

	out := make([]domain.Invitation, 0, len(names))
	err := r.Store.WithTx(ctx, func(tx store.Tx) error {
		out = out[:0]
		for _, name := range names {
			inv, err := r.createIn(ctx, tx, name, issuedBy)
			if err != nil {
				return err
			}
			out = append(out, inv)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to issue invitation batch", slog.Int("size", len(names)), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	log.Info("invitation batch issued", slog.Int("size", len(out)), slog.String("issued_by", issuedBy))
	return out, nil
}

// createIn inserts a fresh record inside tx, regenerating the code if it
// collides with an existing one.
func (r *Registry) createIn(ctx context.Context, tx store.Tx, name, issuedBy string) (domain.Invitation, error) {
	var lastErr error
	for range issueAttempts {
		now := r.now()
		inv := domain.Invitation{
			ID:         idx.NewAt(now).String(),
			Code:       idx.NewCodeAt(r.CodePrefix, now),
			HolderName: name,
			State:      domain.StateIssued,
			IssuedAt:   now,
			IssuedBy:   issuedBy,
		}

		err := tx.Invitations().CreateInvitation(ctx, inv)
		if err == nil {
			return inv, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return domain.Invitation{}, err
		}
		lastErr = err
	}
	return domain.Invitation{}, fmt.Errorf("could not generate a unique code: %w", lastErr)
}

// Validate presents code at the door. Exactly one call per issued code ever
// returns OutcomeGranted; later calls return OutcomeAlreadyUsed with the
// holder and time of the original grant. Codes the registry never issued
// return OutcomeUnknown. The only error is a wrapped ErrStorage, in which
// case nothing was changed and entry must be refused.
func (r *Registry) Validate(ctx context.Context, code, station string) (domain.ValidationResult, error) {
	log := slogx.FromContext(ctx)

	code = strings.TrimSpace(code)
	result := domain.ValidationResult{Outcome: domain.OutcomeUnknown, Code: code}

	err := r.Store.WithTx(ctx, func(tx store.Tx) error {
		now := r.now()

		if code != "" {
			granted, err := tx.Invitations().MarkInvitationUsed(ctx, code, station, now)
			if err != nil {
				return err
			}

			inv, err := tx.Invitations().GetInvitationByCode(ctx, code)
			switch {
			case errors.Is(err, store.ErrNotFound):
				result = domain.ValidationResult{Outcome: domain.OutcomeUnknown, Code: code}
			case err != nil:
				return err
			case granted:
				result = resultFor(domain.OutcomeGranted, inv)
			default:
				result = resultFor(domain.OutcomeAlreadyUsed, inv)
			}
		}

		return tx.ScanEvents().CreateScanEvent(ctx, domain.ScanEvent{
			ID:      idx.NewAt(now).String(),
			Code:    code,
			Outcome: result.Outcome,
			Station: station,
			At:      now,
		})
	})
	if err != nil {
		log.Error("validation failed, refusing entry",
			slog.String("station", station),
			slog.Any("error", err),
		)
		return domain.ValidationResult{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	switch result.Outcome {
	case domain.OutcomeGranted:
		log.Info("entry granted",
			slog.String("holder_name", result.HolderName),
			slog.String("station", station),
		)
	case domain.OutcomeAlreadyUsed:
		log.Warn("code already used",
			slog.String("holder_name", result.HolderName),
			slog.Time("used_at", *result.UsedAt),
			slog.String("station", station),
		)
	default:
		log.Warn("unknown code presented", slog.String("station", station))
	}

	return result, nil
}

func resultFor(outcome domain.Outcome, inv domain.Invitation) domain.ValidationResult {
	return domain.ValidationResult{
		Outcome:    outcome,
		Code:       inv.Code,
		HolderName: inv.HolderName,
		UsedAt:     inv.UsedAt,
	}
}

// Stats returns a consistent snapshot of issued-ever and used counts.
func (r *Registry) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := r.Store.Invitations().CountInvitations(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to count invitations", slog.Any("error", err))
		return domain.Stats{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return stats, nil
}

// Lookup returns the record for code without changing it.
func (r *Registry) Lookup(ctx context.Context, code string) (domain.Invitation, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Invitation{}, ErrNotFound
	}

	inv, err := r.Store.Invitations().GetInvitationByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrNotFound
		}
		return domain.Invitation{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return inv, nil
}

// List returns records newest first, optionally filtered by state.
func (r *Registry) List(ctx context.Context, state domain.State, limit int) ([]domain.Invitation, error) {
	if state != "" && !state.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidInput, state)
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	invs, err := r.Store.Invitations().ListInvitations(ctx, state, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return invs, nil
}

// ScanHistory returns every recorded validation attempt for code.
func (r *Registry) ScanHistory(ctx context.Context, code string) ([]domain.ScanEvent, error) {
	events, err := r.Store.ScanEvents().ListScanEventsByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return events, nil
}

func normalizeHolderName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: holder name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > MaxHolderNameLength {
		return "", fmt.Errorf("%w: holder name exceeds %d characters", ErrInvalidInput, MaxHolderNameLength)
	}
	return name, nil
}

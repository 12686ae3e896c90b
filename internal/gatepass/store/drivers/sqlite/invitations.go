package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
)

const invitationColumns = `id, code, holder_name, state, issued_at, issued_by, used_at, used_by`

type invitationsRepo struct {
	q dbtx
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invitations (id, code, holder_name, state, issued_at, issued_by)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Code,
		inv.HolderName,
		string(domain.StateIssued),
		formatTime(inv.IssuedAt),
		mapStringNull(inv.IssuedBy),
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByCode(ctx context.Context, code string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE code = ?`,
		code,
	)
	inv, err := scanInvitation(row)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return inv, nil
}

func (r *invitationsRepo) MarkInvitationUsed(
	ctx context.Context,
	code string,
	usedBy string,
	usedAt time.Time,
) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invitations
		 SET state = ?, used_at = ?, used_by = ?
		 WHERE code = ? AND state = ?`,
		string(domain.StateUsed),
		formatTime(usedAt),
		mapStringNull(usedBy),
		code,
		string(domain.StateIssued),
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *invitationsRepo) ListInvitations(
	ctx context.Context,
	state domain.State,
	limit int,
) ([]domain.Invitation, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if state == "" {
		rows, err = r.q.QueryContext(ctx,
			`SELECT `+invitationColumns+` FROM invitations ORDER BY issued_at DESC, id DESC LIMIT ?`,
			limit,
		)
	} else {
		rows, err = r.q.QueryContext(ctx,
			`SELECT `+invitationColumns+` FROM invitations WHERE state = ? ORDER BY issued_at DESC, id DESC LIMIT ?`,
			string(state),
			limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) CountInvitations(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN state = ? THEN 1 ELSE 0 END), 0) FROM invitations`,
		string(domain.StateUsed),
	).Scan(&stats.IssuedCount, &stats.UsedCount)
	if err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row rowScanner) (domain.Invitation, error) {
	var (
		inv      domain.Invitation
		state    string
		issuedAt string
		issuedBy sql.NullString
		usedAt   sql.NullString
		usedBy   sql.NullString
	)
	if err := row.Scan(&inv.ID, &inv.Code, &inv.HolderName, &state, &issuedAt, &issuedBy, &usedAt, &usedBy); err != nil {
		return domain.Invitation{}, err
	}

	inv.State = domain.State(state)
	if !inv.State.Valid() {
		return domain.Invitation{}, &corruptRowError{code: inv.Code, reason: "unknown state " + state}
	}

	t, err := parseTime(issuedAt)
	if err != nil {
		return domain.Invitation{}, err
	}
	inv.IssuedAt = t

	if inv.UsedAt, err = parseNullTimePtr(usedAt); err != nil {
		return domain.Invitation{}, err
	}
	inv.IssuedBy = mapNullString(issuedBy)
	inv.UsedBy = mapNullString(usedBy)

	return inv, nil
}

type corruptRowError struct {
	code   string
	reason string
}

func (e *corruptRowError) Error() string {
	return "sqlite: corrupt invitation " + e.code + ": " + e.reason
}

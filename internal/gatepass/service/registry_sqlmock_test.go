package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var errDisk = errors.New("disk I/O error")

func newMockRegistry(t *testing.T) (*Registry, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRegistry(sqlite.NewStoreFromDB(db), "ARD"), mock
}

func TestValidateFailsClosedWhenUpdateFails(t *testing.T) {
	reg, mock := newMockRegistry(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invitations").WillReturnError(errDisk)
	mock.ExpectRollback()

	res, err := reg.Validate(context.Background(), "ARD_X", "door-1")
	require.ErrorIs(t, err, ErrStorage)
	require.NotEqual(t, domain.OutcomeGranted, res.Outcome)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateFailsClosedWhenCommitFails(t *testing.T) {
	reg, mock := newMockRegistry(t)

	rows := sqlmock.NewRows([]string{"id", "code", "holder_name", "state", "issued_at", "issued_by", "used_at", "used_by"}).
		AddRow("01JAB0000000000000000000AA", "ARD_X", "Alice", "used", "2026-10-18T19:00:00.000000Z", nil, "2026-10-18T20:00:00.000000Z", "door-1")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invitations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM invitations WHERE code").WithArgs("ARD_X").WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO scan_events").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errDisk)

	res, err := reg.Validate(context.Background(), "ARD_X", "door-1")
	require.ErrorIs(t, err, ErrStorage)
	require.NotEqual(t, domain.OutcomeGranted, res.Outcome, "an uncommitted grant must not admit anyone")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateFailsClosedWhenAuditWriteFails(t *testing.T) {
	reg, mock := newMockRegistry(t)

	rows := sqlmock.NewRows([]string{"id", "code", "holder_name", "state", "issued_at", "issued_by", "used_at", "used_by"}).
		AddRow("01JAB0000000000000000000AA", "ARD_X", "Alice", "used", "2026-10-18T19:00:00.000000Z", nil, "2026-10-18T20:00:00.000000Z", nil)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE invitations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM invitations WHERE code").WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO scan_events").WillReturnError(errDisk)
	mock.ExpectRollback()

	_, err := reg.Validate(context.Background(), "ARD_X", "")
	require.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateFailsClosedWhenBeginFails(t *testing.T) {
	reg, mock := newMockRegistry(t)

	mock.ExpectBegin().WillReturnError(errDisk)

	_, err := reg.Validate(context.Background(), "ARD_X", "")
	require.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueRollsBackOnInsertFailure(t *testing.T) {
	reg, mock := newMockRegistry(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO invitations").WillReturnError(errDisk)
	mock.ExpectRollback()

	_, err := reg.Issue(context.Background(), "Alice", "")
	require.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsWrapsStorageErrors(t *testing.T) {
	reg, mock := newMockRegistry(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).WillReturnError(errDisk)

	_, err := reg.Stats(context.Background())
	require.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

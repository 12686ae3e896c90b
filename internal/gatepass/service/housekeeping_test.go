package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingRejectsInvalidSchedules(t *testing.T) {
	reg := newTestRegistry(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewHousekeepingService(reg.Store, reg, logger, "not a cron", t.TempDir(), 0, "")
	require.Error(t, err)

	_, err = NewHousekeepingService(reg.Store, reg, logger, "", "", 0, "every day")
	require.Error(t, err)

	_, err = NewHousekeepingService(reg.Store, reg, logger, "@hourly", "", 0, "")
	require.Error(t, err, "backups need a directory")

	hk, err := NewHousekeepingService(reg.Store, reg, logger, "@hourly", t.TempDir(), 3, "*/5 * * * *")
	require.NoError(t, err)
	hk.Start()
	hk.Stop()
}

func TestHousekeepingBackupSnapshotsAndPrunes(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	inv, err := reg.Issue(ctx, "Alice", "")
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "backups")
	hk, err := NewHousekeepingService(reg.Store, reg, logger, "", dir, 2, "")
	require.NoError(t, err)

	var last string
	for range 4 {
		last, err = hk.Backup(ctx)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, filepath.Base(last), entries[1].Name())

	snap, err := sqlite.NewStore(sqlite.DSN(last))
	require.NoError(t, err)
	t.Cleanup(func() { _ = snap.Close() })

	got, err := snap.Invitations().GetInvitationByCode(ctx, inv.Code)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.HolderName)
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/store"
	"github.com/robfig/cron/v3"
)

const backupFilePrefix = "gatepass-"

// HousekeepingService runs the scheduled jobs of a door deployment: periodic
// database snapshots so a dead laptop doesn't lose the guest list, and a
// periodic stats line for whoever is watching the logs.
type HousekeepingService struct {
	Store    store.Store
	Registry *Registry
	Logger   *slog.Logger

	BackupSchedule string // cron spec, empty disables backups
	BackupDir      string
	BackupKeep     int    // newest snapshots to retain, <= 0 keeps all
	StatsSchedule  string // cron spec, empty disables stats logging

	cron *cron.Cron
}

// NewHousekeepingService registers the configured jobs. Invalid cron specs
// are reported here rather than at Start.
func NewHousekeepingService(
	st store.Store,
	registry *Registry,
	logger *slog.Logger,
	backupSchedule, backupDir string,
	backupKeep int,
	statsSchedule string,
) (*HousekeepingService, error) {
	s := &HousekeepingService{
		Store:          st,
		Registry:       registry,
		Logger:         logger,
		BackupSchedule: backupSchedule,
		BackupDir:      backupDir,
		BackupKeep:     backupKeep,
		StatsSchedule:  statsSchedule,
		cron:           cron.New(cron.WithLocation(time.UTC)),
	}

	if backupSchedule != "" {
		if backupDir == "" {
			return nil, fmt.Errorf("housekeeping: backup schedule set without a backup directory")
		}
		if _, err := s.cron.AddFunc(backupSchedule, s.runBackup); err != nil {
			return nil, fmt.Errorf("housekeeping: invalid backup schedule %q: %w", backupSchedule, err)
		}
	}

	if statsSchedule != "" {
		if _, err := s.cron.AddFunc(statsSchedule, s.logStats); err != nil {
			return nil, fmt.Errorf("housekeeping: invalid stats schedule %q: %w", statsSchedule, err)
		}
	}

	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *HousekeepingService) Start() {
	s.cron.Start()
	s.Logger.Info("housekeeping service started",
		"backup_schedule", s.BackupSchedule,
		"stats_schedule", s.StatsSchedule,
		"jobs", len(s.cron.Entries()),
	)
}

// Stop waits for any running job to finish.
func (s *HousekeepingService) Stop() {
	<-s.cron.Stop().Done()
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) runBackup() {
	path, err := s.Backup(context.Background())
	if err != nil {
		s.Logger.Error("scheduled backup failed", "error", err)
		return
	}
	s.Logger.Info("scheduled backup written", "path", path)
}

// Backup writes a timestamped snapshot into BackupDir and prunes the oldest
// snapshots beyond BackupKeep.
func (s *HousekeepingService) Backup(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.BackupDir, 0o750); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := backupFilePrefix + time.Now().UTC().Format("20060102T150405.000000000Z") + ".db"
	path := filepath.Join(s.BackupDir, name)
	if err := s.Store.Backup(ctx, path); err != nil {
		return "", err
	}

	if err := s.prune(); err != nil {
		s.Logger.Warn("failed to prune old backups", "error", err)
	}
	return path, nil
}

func (s *HousekeepingService) prune() error {
	if s.BackupKeep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(s.BackupDir)
	if err != nil {
		return err
	}

	var snapshots []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), backupFilePrefix) && strings.HasSuffix(e.Name(), ".db") {
			snapshots = append(snapshots, e.Name())
		}
	}
	if len(snapshots) <= s.BackupKeep {
		return nil
	}

	// Names embed a fixed-width UTC timestamp, so lexical order is age order.
	slices.Sort(snapshots)
	for _, name := range snapshots[:len(snapshots)-s.BackupKeep] {
		if err := os.Remove(filepath.Join(s.BackupDir, name)); err != nil {
			return err
		}
		s.Logger.Debug("pruned backup", "name", name)
	}
	return nil
}

func (s *HousekeepingService) logStats() {
	stats, err := s.Registry.Stats(context.Background())
	if err != nil {
		s.Logger.Error("failed to collect stats", "error", err)
		return
	}
	s.Logger.Info("door stats",
		"issued", stats.IssuedCount,
		"used", stats.UsedCount,
		"remaining", stats.Remaining(),
	)
}

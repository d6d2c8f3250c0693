package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"timeTracker/internal/export"
	"timeTracker/internal/logger"
	"timeTracker/internal/service"

	"go.uber.org/zap"
)

// BackupWorker periodically writes every user's sheet to a JSON file,
// the same document the export endpoint produces. The sheets live in
// one last-write-wins store, so the backups are the only history.
type BackupWorker struct {
	repo     service.SheetRepository
	interval time.Duration
	dir      string
}

func NewBackupWorker(repo service.SheetRepository, interval *time.Duration, dir string) *BackupWorker {
	var intervalToSet time.Duration
	if interval == nil {
		intervalToSet = 15 * time.Minute
	} else {
		intervalToSet = *interval
	}

	if dir == "" {
		dir = "backups"
	}

	return &BackupWorker{
		repo:     repo,
		interval: intervalToSet,
		dir:      dir,
	}
}

func (w *BackupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: backup pass starting", zap.Time("started_at", time.Now()))
			w.Backup(ctx)
		case <-ctx.Done():
			logger.Info("Worker: backup worker stopping")
			return
		}
	}
}

// Backup writes one file per user; a failing user is logged and
// skipped so the rest of the pass still runs.
func (w *BackupWorker) Backup(ctx context.Context) {
	start := time.Now()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		logger.Warn("Worker: cannot create backup dir", zap.Error(err), zap.String("dir", w.dir))
		return
	}

	users, err := w.repo.ListUsers(ctx)
	if err != nil {
		logger.Warn("Worker: failed to list users", zap.Error(err))
		return
	}

	written := 0
	for _, u := range users {
		if err := w.backupUser(ctx, u.Name); err != nil {
			logger.Warn("Worker: failed to back up sheet",
				zap.Error(err),
				zap.String("user", u.Name))
			continue
		}
		written++
	}

	logger.Info("Worker: backup pass finished",
		zap.Duration("ms", time.Since(start)),
		zap.Int("users", len(users)),
		zap.Int("written", written),
	)
}

func (w *BackupWorker) backupUser(ctx context.Context, userName string) error {
	groups, err := w.repo.Load(ctx, userName)
	if err != nil {
		return fmt.Errorf("loading sheet: %w", err)
	}

	document, err := export.ToJSON(groups)
	if err != nil {
		return fmt.Errorf("serializing sheet: %w", err)
	}

	path := filepath.Join(w.dir, backupFileName(userName))
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return fmt.Errorf("writing backup file: %w", err)
	}
	return nil
}

// backupFileName flattens path separators out of the user name so a
// pathological name still maps to a file inside the backup dir.
func backupFileName(userName string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, userName)
	return fmt.Sprintf("sheet_%s.json", safe)
}

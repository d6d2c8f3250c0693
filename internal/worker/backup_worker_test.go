package worker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"timeTracker/internal/export"
	"timeTracker/internal/logger"
	"timeTracker/internal/models/sheet"
	"timeTracker/internal/models/user"
	"timeTracker/internal/repository/sheet/inmemory"
	"timeTracker/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init(true); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestBackup_WritesOneFilePerUser(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewSheetStorage()
	dir := t.TempDir()

	require.NoError(t, storage.AddUser(ctx, &user.User{Name: "Juan", Role: user.RoleOperario}))
	require.NoError(t, storage.AddUser(ctx, &user.User{Name: "Pablo", Role: user.RoleAdmin}))

	groups := []*sheet.TaskGroup{
		{
			ID:    "g1",
			Date:  "2024-03-10",
			Tasks: []*sheet.Task{{ID: "t1", Date: "2024-03-10", Hours: "4", Description: "Fix pump"}},
		},
	}
	require.NoError(t, storage.Save(ctx, "Juan", groups))

	w := worker.NewBackupWorker(storage, nil, dir)
	w.Backup(ctx)

	document, err := os.ReadFile(filepath.Join(dir, "sheet_Juan.json"))
	require.NoError(t, err)

	restored, err := export.FromJSON(document)
	require.NoError(t, err)
	assert.Equal(t, groups, restored)

	// a user without a sheet still gets an (empty) backup
	document, err = os.ReadFile(filepath.Join(dir, "sheet_Pablo.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(document))
}

func TestBackup_CreatesDir(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewSheetStorage()
	dir := filepath.Join(t.TempDir(), "nested", "backups")

	require.NoError(t, storage.AddUser(ctx, &user.User{Name: "Juan", Role: user.RoleOperario}))

	w := worker.NewBackupWorker(storage, nil, dir)
	w.Backup(ctx)

	_, err := os.Stat(filepath.Join(dir, "sheet_Juan.json"))
	assert.NoError(t, err)
}

// A user name carrying path separators must still land as a file
// inside the backup dir, never outside it.
func TestBackup_SanitizesFileName(t *testing.T) {
	ctx := context.Background()
	storage := inmemory.NewSheetStorage()
	dir := t.TempDir()

	require.NoError(t, storage.AddUser(ctx, &user.User{Name: "../evil", Role: user.RoleOperario}))

	w := worker.NewBackupWorker(storage, nil, dir)
	w.Backup(ctx)

	_, err := os.Stat(filepath.Join(dir, "sheet_.._evil.json"))
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBackup_NoUsers(t *testing.T) {
	storage := inmemory.NewSheetStorage()
	dir := t.TempDir()

	w := worker.NewBackupWorker(storage, nil, dir)
	w.Backup(context.Background())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	storage := inmemory.NewSheetStorage()
	interval := 10 * time.Millisecond
	w := worker.NewBackupWorker(storage, &interval, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

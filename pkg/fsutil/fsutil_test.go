package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxgen/pkg/fsutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("snapshots content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "Default.aspx", `<%@ Page %>`)
		content, snap, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, `<%@ Page %>`, string(content))
		assert.Equal(t, path, snap.Path)
		assert.Equal(t, int64(len(content)), snap.Size)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "gone.aspx"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := fsutil.ReadFile(ctx, "whatever.aspx")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSnapshot_Changed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.aspx", "one")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("same size and mtime but different content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.aspx", "one")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("two"), 0o600))
		require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("touched", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.aspx", "one")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		later := snap.ModTime.Add(time.Minute)
		require.NoError(t, os.Chtimes(path, later, later))

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.aspx", "one")
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		var snap *fsutil.Snapshot
		_, err := snap.Changed(ctx)
		require.ErrorIs(t, err, fsutil.ErrNilSnapshot)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "Site.master", "old")
	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o640))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	err := fsutil.WriteAtomic(context.Background(), filepath.Join(t.TempDir(), "no", "a.aspx"), nil, 0)
	require.Error(t, err)
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("sidecar keeps first content", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "Default.aspx", "first")

		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupModeSidecar)
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))
		created, err = fsutil.CreateBackup(ctx, path, fsutil.BackupModeSidecar)
		require.NoError(t, err)
		assert.False(t, created)

		data, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "first", string(data))
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "Default.aspx", "first")
		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupModeNone)
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoFileExists(t, path+fsutil.BackupSuffix)
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		created, err := fsutil.CreateBackup(ctx, filepath.Join(t.TempDir(), "gone.aspx"), fsutil.BackupModeSidecar)
		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.aspx.aspxgen.bak", fsutil.BackupPath("a.aspx", fsutil.BackupModeSidecar))
	assert.Equal(t, "a.aspx.aspxgen.bak", fsutil.BackupPath("a.aspx", "weird"))
	assert.Empty(t, fsutil.BackupPath("a.aspx", fsutil.BackupModeNone))
}

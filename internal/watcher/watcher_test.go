package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxgen/internal/watcher"
	"github.com/yaklabco/aspxgen/pkg/codegen"
)

const page = `<%@ Page Inherits="Site.Home" %>`

func start(t *testing.T, cfg watcher.Config) <-chan []string {
	t.Helper()

	w, err := watcher.New(cfg)
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	batches, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return batches
}

func expectBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()

	select {
	case batch := <-batches:
		return batch
	case <-time.After(2 * time.Second):
		t.Fatal("expected a batch but got timeout")
		return nil
	}
}

func expectQuiet(t *testing.T, batches <-chan []string) {
	t.Helper()

	select {
	case batch := <-batches:
		t.Fatalf("unexpected batch %v", batch)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Home.aspx")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	cfg := watcher.DefaultConfig(dir)
	cfg.Debounce = 50 * time.Millisecond
	batches := start(t, cfg)

	for i := range 10 {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("%s<!-- %d -->", page, i)), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	assert.Equal(t, []string{path}, expectBatch(t, batches))
	expectQuiet(t, batches)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "notes.txt")
	hidden := filepath.Join(dir, ".Home.aspx")
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o644))

	cfg := watcher.DefaultConfig(dir)
	cfg.Debounce = 30 * time.Millisecond
	batches := start(t, cfg)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o644))
	require.NoError(t, os.WriteFile(hidden, []byte(page), 0o644))

	expectQuiet(t, batches)
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()

	cfg := watcher.DefaultConfig(dir)
	cfg.Debounce = 30 * time.Millisecond
	batches := start(t, cfg)

	sub := filepath.Join(dir, "admin")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the watcher a moment to add the new directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "Users.ASCX")
	require.NoError(t, os.WriteFile(path, []byte(`<%@ Control %>`), 0o644))

	assert.Equal(t, []string{path}, expectBatch(t, batches))
}

func TestWatcher_SkipsUnchangedDocuments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Home.aspx")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	gen := codegen.NewGenerator(codegen.GeneratorOptions{})
	_, err := gen.Generate(context.Background(), "/Home.aspx", page)
	require.NoError(t, err)

	cfg := watcher.DefaultConfig(dir)
	cfg.Debounce = 30 * time.Millisecond
	cfg.Generator = gen
	cfg.VirtualPath = func(p string) string { return "/" + filepath.Base(p) }
	batches := start(t, cfg)

	// Same content: the generator already has it.
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))
	expectQuiet(t, batches)

	changed := page + "\n<asp:Label id=\"Title\" runat=\"server\" />"
	require.NoError(t, os.WriteFile(path, []byte(changed), 0o644))
	assert.Equal(t, []string{path}, expectBatch(t, batches))
}

func TestWatcher_RemovedDocumentsAreForgotten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Home.aspx")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	gen := codegen.NewGenerator(codegen.GeneratorOptions{})
	_, err := gen.Generate(context.Background(), "/Home.aspx", page)
	require.NoError(t, err)
	require.False(t, gen.HasDocumentChanged("/Home.aspx", page))

	cfg := watcher.DefaultConfig(dir)
	cfg.Debounce = 30 * time.Millisecond
	cfg.Generator = gen
	cfg.VirtualPath = func(p string) string { return "/" + filepath.Base(p) }
	batches := start(t, cfg)

	require.NoError(t, os.Remove(path))
	expectQuiet(t, batches)

	assert.True(t, gen.HasDocumentChanged("/Home.aspx", page))
}

func TestWatcher_StopClosesChannel(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(t.TempDir()))
	require.NoError(t, err)

	batches, err := w.Start()
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-batches:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Stop")
	}
}

func TestNew_MissingRoot(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}

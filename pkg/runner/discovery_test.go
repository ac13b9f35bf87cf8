package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/aspxgen/pkg/runner"
)

// writeTree creates files under dir. Values are file contents.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func relAll(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"Default.aspx":            "",
		"Site.master":             "",
		"controls/Menu.ascx":      "",
		"controls/Menu.ascx.cs":   "",
		"web.config":              "",
		"bin/Debug/Stale.aspx":    "",
		"obj/Temp.aspx":           "",
		".hidden/Secret.aspx":     "",
		"admin/.Draft.aspx":       "",
		"admin/Users.ASPX":        "",
		"generated/.gitignore":    "*.aspx\n",
		"generated/Out.aspx":      "",
		"generated/keep/Out.ascx": "",
		".gitignore":              "obj/\n",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			opts: runner.Options{},
			want: []string{
				"Default.aspx", "Site.master", "admin/Users.ASPX", "bin/Debug/Stale.aspx",
				"controls/Menu.ascx", "generated/Out.aspx", "generated/keep/Out.ascx", "obj/Temp.aspx",
			},
		},
		{
			name: "exclude globs",
			opts: runner.Options{ExcludeGlobs: []string{"bin/**", "*.master"}},
			want: []string{
				"Default.aspx", "admin/Users.ASPX", "controls/Menu.ascx",
				"generated/Out.aspx", "generated/keep/Out.ascx", "obj/Temp.aspx",
			},
		},
		{
			name: "respect gitignore",
			opts: runner.Options{RespectGitignore: true},
			want: []string{
				"Default.aspx", "Site.master", "admin/Users.ASPX", "bin/Debug/Stale.aspx",
				"controls/Menu.ascx", "generated/keep/Out.ascx",
			},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".ascx"}},
			want: []string{"controls/Menu.ascx", "generated/keep/Out.ascx"},
		},
		{
			name: "sub directory",
			opts: runner.Options{Paths: []string{"controls", "controls/Menu.ascx"}},
			want: []string{"controls/Menu.ascx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree)

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			got := relAll(t, dir, files)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"bin/Old.aspx": "", "notes.txt": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"bin/Old.aspx", "notes.txt"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(dir, "bin", "Old.aspx") {
		t.Errorf("Discover() = %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		Paths:        []string{"bin/Old.aspx"},
		ExcludeGlobs: []string{"bin/"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("excluded file discovered: %v", files)
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a/Default.aspx": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"Default.aspx": ""})
	writeTree(t, outside, map[string]string{"Shared.ascx": ""})

	if err := os.Symlink(outside, filepath.Join(dir, "shared")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("without FollowSymlinks got %v", files)
	}

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 2 {
		t.Errorf("with FollowSymlinks got %v", files)
	}
}

package vpath_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxgen/pkg/vpath"
)

func TestNewApp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/", vpath.NewApp("", "x").VirtualPath)
	assert.Equal(t, "/", vpath.NewApp("/", "x").VirtualPath)
	assert.Equal(t, "/shop/", vpath.NewApp("shop", "x").VirtualPath)
	assert.Equal(t, "/shop/", vpath.NewApp("/shop/", "x").VirtualPath)
}

func TestCombine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base, rel, want string
	}{
		{"/app/pages/default.aspx", "menu.ascx", "/app/pages/menu.ascx"},
		{"/app/pages/default.aspx", "../controls/menu.ascx", "/app/controls/menu.ascx"},
		{"/app/pages/default.aspx", "~/controls/menu.ascx", "~/controls/menu.ascx"},
		{"/app/pages/default.aspx", "/other/menu.ascx", "/other/menu.ascx"},
		{"~/pages/default.aspx", "menu.ascx", "~/pages/menu.ascx"},
		{"/app/pages/default.aspx", `..\controls\menu.ascx`, "/app/controls/menu.ascx"},
		{"", "menu.ascx", "/menu.ascx"},
	}

	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, vpath.Combine(tt.base, tt.rel))
		})
	}
}

func TestApp_ToAbsolute(t *testing.T) {
	t.Parallel()

	app := vpath.NewApp("/shop", "/srv/shop")

	assert.Equal(t, "/shop/", app.ToAbsolute("~"))
	assert.Equal(t, "/shop/controls/menu.ascx", app.ToAbsolute("~/controls/menu.ascx"))
	assert.Equal(t, "/shop/a.aspx", app.ToAbsolute("/shop/x/../a.aspx"))
	assert.Equal(t, "/shop/a.aspx", app.ToAbsolute("a.aspx"))
}

func TestApp_EnsureInApp(t *testing.T) {
	t.Parallel()

	app := vpath.NewApp("/shop", "/srv/shop")

	require.NoError(t, app.EnsureInApp("/shop/a.aspx"))
	require.NoError(t, app.EnsureInApp("/SHOP/a.aspx"))
	require.NoError(t, app.EnsureInApp("/shop"))

	err := app.EnsureInApp("/other/a.aspx")
	require.ErrorIs(t, err, vpath.ErrOutsideApp)

	err = app.EnsureInApp("/shopping/a.aspx")
	require.ErrorIs(t, err, vpath.ErrOutsideApp)
}

func TestApp_MapPath(t *testing.T) {
	t.Parallel()

	root := filepath.Join("srv", "shop")
	app := vpath.NewApp("/shop", root)

	got, err := app.MapPath("~/controls/menu.ascx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "controls", "menu.ascx"), got)

	_, err = app.MapPath("/etc/passwd")
	require.ErrorIs(t, err, vpath.ErrOutsideApp)
}

func TestApp_VirtualPathOf(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	app := vpath.NewApp("/", root)

	got, err := app.VirtualPathOf(filepath.Join(root, "pages", "a.aspx"))
	require.NoError(t, err)
	assert.Equal(t, "/pages/a.aspx", got)

	_, err = app.VirtualPathOf(filepath.Dir(root))
	require.ErrorIs(t, err, vpath.ErrOutsideApp)
}

func TestDirSource(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "controls"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "controls", "menu.ascx"),
		[]byte("\xEF\xBB\xBF<%@ Control Inherits=\"Site.Menu\" %>"),
		0o600,
	))

	src := vpath.NewDirSource(vpath.NewApp("/", root))
	ctx := context.Background()

	text, err := src.ReadDocument(ctx, "~/controls/menu.ascx")
	require.NoError(t, err)
	assert.Equal(t, `<%@ Control Inherits="Site.Menu" %>`, text)

	_, err = src.ReadDocument(ctx, "~/controls/missing.ascx")
	require.ErrorIs(t, err, vpath.ErrNotFound)

	_, err = src.ReadDocument(ctx, "/../outside.ascx")
	require.Error(t, err)
}

func TestMapSource(t *testing.T) {
	t.Parallel()

	src := &vpath.MapSource{
		App:  vpath.NewApp("/app", ""),
		Docs: map[string]string{"~/Menu.ascx": "menu"},
	}

	got, err := src.ReadDocument(context.Background(), "/APP/menu.ascx")
	require.NoError(t, err)
	assert.Equal(t, "menu", got)

	_, err = src.ReadDocument(context.Background(), "/elsewhere/menu.ascx")
	require.ErrorIs(t, err, vpath.ErrOutsideApp)

	_, err = src.ReadDocument(context.Background(), "/app/none.ascx")
	require.ErrorIs(t, err, vpath.ErrNotFound)
}

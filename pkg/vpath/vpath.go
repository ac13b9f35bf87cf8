// Package vpath maps application virtual paths ("~/controls/menu.ascx",
// "/app/default.aspx") onto files below a physical application root.
package vpath

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/yaklabco/aspxgen/pkg/fsutil"
)

var (
	// ErrOutsideApp is returned for virtual paths that leave the application.
	ErrOutsideApp = errors.New("virtual path is outside the application")

	// ErrNotFound is returned when a virtual path maps to no file.
	ErrNotFound = errors.New("virtual path not found")
)

// Source reads documents by virtual path.
type Source interface {
	// ReadDocument returns the text of the document at an absolute virtual path.
	ReadDocument(ctx context.Context, virtualPath string) (string, error)
}

// App describes a web application: its virtual root and physical directory.
type App struct {
	// VirtualPath is the application root, always ending in "/".
	VirtualPath string

	// Root is the physical directory of the application.
	Root string
}

// NewApp creates an App. An empty virtual path means "/".
func NewApp(virtualPath, root string) App {
	vp := "/" + strings.Trim(strings.TrimSpace(virtualPath), "/")
	if vp != "/" {
		vp += "/"
	}
	return App{VirtualPath: vp, Root: root}
}

// Combine resolves rel against the virtual path of the document base.
// Rooted ("/x") and app-relative ("~/x") paths are returned unchanged.
func Combine(base, rel string) string {
	rel = strings.TrimSpace(strings.ReplaceAll(rel, `\`, "/"))
	if rel == "" {
		return base
	}
	if strings.HasPrefix(rel, "/") || rel == "~" || strings.HasPrefix(rel, "~/") {
		return rel
	}

	dir := "/"
	if base != "" {
		dir = path.Dir(strings.ReplaceAll(base, `\`, "/"))
		if strings.HasPrefix(dir, "~") {
			return "~/" + strings.TrimPrefix(path.Join(dir[1:], rel), "/")
		}
	}
	return path.Join(dir, rel)
}

// ToAbsolute converts an app-relative path to an absolute virtual path.
// Relative paths are taken relative to the application root.
func (a App) ToAbsolute(virtualPath string) string {
	vp := strings.ReplaceAll(strings.TrimSpace(virtualPath), `\`, "/")
	switch {
	case vp == "~":
		return a.VirtualPath
	case strings.HasPrefix(vp, "~/"):
		return a.VirtualPath + strings.TrimPrefix(path.Clean(vp[1:]), "/")
	case strings.HasPrefix(vp, "/"):
		return path.Clean(vp)
	default:
		return a.VirtualPath + strings.TrimPrefix(path.Clean("/"+vp), "/")
	}
}

// EnsureInApp fails with ErrOutsideApp unless virtualPath lies under the
// application root. The comparison ignores case.
func (a App) EnsureInApp(virtualPath string) error {
	root := a.VirtualPath
	vp := virtualPath
	if len(vp) < len(root) && strings.EqualFold(vp+"/", root) {
		return nil
	}
	if len(vp) < len(root) || !strings.EqualFold(vp[:len(root)], root) {
		return fmt.Errorf("%w: %s", ErrOutsideApp, virtualPath)
	}
	return nil
}

// MapPath returns the physical path of a virtual path.
func (a App) MapPath(virtualPath string) (string, error) {
	vp := a.ToAbsolute(virtualPath)
	if err := a.EnsureInApp(vp); err != nil {
		return "", err
	}

	var rel string
	if len(vp) > len(a.VirtualPath) {
		rel = vp[len(a.VirtualPath):]
	}
	return filepath.Join(a.Root, filepath.FromSlash(rel)), nil
}

// VirtualPathOf returns the virtual path of a physical file under Root.
func (a App) VirtualPathOf(physical string) (string, error) {
	absRoot, err := filepath.Abs(a.Root)
	if err != nil {
		return "", fmt.Errorf("resolve app root: %w", err)
	}
	absPath, err := filepath.Abs(physical)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", physical, err)
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideApp, physical)
	}
	return a.VirtualPath + filepath.ToSlash(rel), nil
}

// DirSource reads documents from the application's physical directory.
type DirSource struct {
	App App
}

var _ Source = (*DirSource)(nil)

// NewDirSource creates a Source for app.
func NewDirSource(app App) *DirSource {
	return &DirSource{App: app}
}

// ReadDocument implements Source.
func (s *DirSource) ReadDocument(ctx context.Context, virtualPath string) (string, error) {
	physical, err := s.App.MapPath(virtualPath)
	if err != nil {
		return "", err
	}

	content, _, err := fsutil.ReadFile(ctx, physical)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			return "", fmt.Errorf("%w: %s: %w", ErrNotFound, virtualPath, err)
		}
		return "", fmt.Errorf("read %s: %w", virtualPath, err)
	}
	return fsutil.DecodeText(content).Text, nil
}

// MapSource serves documents from memory. Keys are absolute virtual paths,
// compared without regard to case.
type MapSource struct {
	App  App
	Docs map[string]string
}

var _ Source = (*MapSource)(nil)

// ReadDocument implements Source.
func (s *MapSource) ReadDocument(_ context.Context, virtualPath string) (string, error) {
	vp := s.App.ToAbsolute(virtualPath)
	if err := s.App.EnsureInApp(vp); err != nil {
		return "", err
	}
	for k, v := range s.Docs {
		if strings.EqualFold(s.App.ToAbsolute(k), vp) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, virtualPath)
}

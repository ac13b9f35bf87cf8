package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ConfigPaths holds the configuration files found for a working directory.
// Empty fields mean nothing was found.
type ConfigPaths struct {
	System   string // /etc/aspxgen/config.yaml or %ProgramData%\aspxgen
	User     string // $XDG_CONFIG_HOME/aspxgen/config.yaml
	Project  string // nearest .aspxgen.yml upward from the working directory
	Explicit string // --config

	// WebRoot is the nearest directory upward holding a Web.config file.
	WebRoot string
}

const appName = "aspxgen"

// webConfigName is matched without regard to case, as IIS does.
const webConfigName = "web.config"

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectConfigFiles = []string{".aspxgen.yml", ".aspxgen.yaml", "aspxgen.yml", "aspxgen.yaml"}
	dirConfigFiles     = []string{"config.yaml", "config.yml"}
	vcsRootMarkers     = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the system, user and project configuration of workDir
// and the web application root containing it.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{
		System: firstFile(systemConfigDir(), dirConfigFiles),
		User:   firstFile(userConfigDir(), dirConfigFiles),
	}

	var err error
	paths.Project, paths.WebRoot, err = searchUpward(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// FindProjectConfig returns the nearest project config file upward from
// startDir, or "" when there is none.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	project, _, err := searchUpward(ctx, startDir)
	return project, err
}

// searchUpward walks from startDir toward the filesystem root looking for a
// project config file and a Web.config. The walk ends at the first config
// file, a VCS root or the home directory.
func searchUpward(ctx context.Context, startDir string) (project, webRoot string, err error) {
	if startDir == "" {
		if startDir, err = os.Getwd(); err != nil {
			return "", "", fmt.Errorf("get working directory: %w", err)
		}
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", "", fmt.Errorf("context cancelled: %w", err)
		}

		if webRoot == "" && hasWebConfig(dir) {
			webRoot = dir
		}
		if project = firstFile(dir, projectConfigFiles); project != "" {
			return project, webRoot, nil
		}
		if isVCSRoot(dir) || (home != "" && dir == home) {
			return "", webRoot, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", webRoot, nil
		}
		dir = parent
	}
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, appName)
	}
	return filepath.Join("/etc", appName)
}

func userConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName)
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func hasWebConfig(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(entry.Name(), webConfigName) {
			return true
		}
	}
	return false
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

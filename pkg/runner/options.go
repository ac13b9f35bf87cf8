// Package runner checks many markup documents concurrently.
package runner

import "github.com/yaklabco/aspxgen/pkg/config"

// Options controls a multi-document run.
type Options struct {
	// Paths are files or directories to process. Empty means the working directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase extensions, with leading dot, treated as
	// markup documents. Defaults to config.DefaultExtensions().
	Extensions []string

	// ExcludeGlobs use .gitignore syntax, relative to WorkingDir.
	ExcludeGlobs []string

	// RespectGitignore skips files matched by .gitignore files found
	// while walking.
	RespectGitignore bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the worker limit. 0 or negative means runtime.NumCPU().
	Jobs int

	Config *config.Config
}

// OptionsFromConfig builds run options for paths from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg}
	if cfg == nil {
		return opts
	}
	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.RespectGitignore = cfg.GitignoreEnabled()
	opts.Jobs = cfg.Jobs
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

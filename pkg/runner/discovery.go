package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

const gitignoreFile = ".gitignore"

// Discover finds markup documents matching opts. Paths are absolute,
// deduplicated and sorted.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		opts:       opts,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		gitignores: make(map[string]*gitignore.GitIgnore),
		seen:       make(map[string]struct{}),
	}
	if len(opts.ExcludeGlobs) > 0 {
		d.excludes = gitignore.CompileIgnoreLines(opts.ExcludeGlobs...)
	}
	if opts.RespectGitignore {
		d.loadGitignore(workDir)
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		// Explicit files skip the hidden-name rule but not the ignore rules.
		if d.hasExtension(absPath) && !d.ignored(absPath, false) {
			d.add(absPath)
		}
	}

	sort.Strings(d.files)
	return d.files, nil
}

type discoverer struct {
	opts       Options
	workDir    string
	extensions []string
	excludes   *gitignore.GitIgnore

	// gitignores maps a directory to its compiled .gitignore.
	gitignores map[string]*gitignore.GitIgnore

	seen  map[string]struct{}
	files []string
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && d.ignored(path, true) {
				return filepath.SkipDir
			}
			if d.opts.RespectGitignore {
				d.loadGitignore(path)
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks || d.ignored(path, true) {
					return nil
				}
				realPath, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // unresolvable targets are skipped
				}
				// WalkDir does not follow a symlinked root, so walk the target.
				return d.walk(ctx, realPath)
			}
		}

		if d.hasExtension(path) && !d.ignored(path, false) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discoverer) loadGitignore(dir string) {
	if _, ok := d.gitignores[dir]; ok {
		return
	}
	path := filepath.Join(dir, gitignoreFile)
	if _, err := os.Stat(path); err != nil {
		d.gitignores[dir] = nil
		return
	}
	ignore, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		ignore = nil
	}
	d.gitignores[dir] = ignore
}

// ignored reports whether path is excluded by ExcludeGlobs or by a
// .gitignore in one of its ancestor directories.
func (d *discoverer) ignored(path string, isDir bool) bool {
	if d.excludes != nil {
		if rel, ok := relSlash(d.workDir, path); ok && matches(d.excludes, rel, isDir) {
			return true
		}
	}
	if !d.opts.RespectGitignore {
		return false
	}
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if ignore := d.gitignores[dir]; ignore != nil {
			if rel, ok := relSlash(dir, path); ok && matches(ignore, rel, isDir) {
				return true
			}
		}
		if parent := filepath.Dir(dir); parent == dir {
			return false
		}
	}
}

func matches(ignore *gitignore.GitIgnore, rel string, isDir bool) bool {
	if ignore.MatchesPath(rel) {
		return true
	}
	return isDir && ignore.MatchesPath(rel+"/")
}

func relSlash(base, path string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (d *discoverer) hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range d.extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

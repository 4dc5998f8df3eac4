package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}

	d := &discoverer{
		workDir:        workDir,
		extensions:     opts.effectiveExtensions(),
		exclude:        exclude,
		include:        include,
		followSymlinks: opts.FollowSymlinks,
		seen:           make(map[string]struct{}),
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

		if !info.IsDir() {
			// Explicitly named files only need the right extension.
			if d.matchesFile(absPath) {
				d.add(absPath)
			}
			continue
		}
		if err := d.walk(ctx, absPath); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
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

type discoverer struct {
	workDir        string
	extensions     []string
	exclude        globSet
	include        globSet
	followSymlinks bool

	seen  map[string]struct{}
	files []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relPath)
}

// walk adds matching files under root. Hidden directories are skipped, and so
// are hidden files unless their whole name is an extension (".exrc").
func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		name := entry.Name()

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || d.exclude.matchDir(d.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, ok := resolveSymlink(path)
			if !ok {
				return nil
			}
			if target.IsDir() {
				if !d.followSymlinks {
					return nil
				}
				// Walk the target so WalkDir does not see the link as its root.
				realPath, _ := filepath.EvalSymlinks(path)
				return d.walk(ctx, realPath)
			}
		}

		if strings.HasPrefix(name, ".") && !isExtensionName(name, d.extensions) {
			return nil
		}
		if d.matchesFile(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// resolveSymlink stats the target of a symlink. Broken links report false.
func resolveSymlink(path string) (fs.FileInfo, bool) {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, false
	}
	info, err := os.Stat(realPath)
	if err != nil {
		return nil, false
	}
	return info, true
}

func (d *discoverer) matchesFile(path string) bool {
	if !hasMatchingExtension(path, d.extensions) {
		return false
	}
	relPath := d.rel(path)
	if d.exclude.match(relPath) {
		return false
	}
	if len(d.include) > 0 && !d.include.match(relPath) {
		return false
	}
	return true
}

func hasMatchingExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func isExtensionName(name string, extensions []string) bool {
	for _, e := range extensions {
		if strings.EqualFold(e, name) {
			return true
		}
	}
	return false
}

// globSet is a list of compiled ignore or include patterns. '*' stops at '/',
// '**' crosses it. A pattern also matches the base name of a path, and a
// leading "**/" may match nothing.
type globSet []glob.Glob

func compileGlobs(patterns []string) (globSet, error) {
	var set globSet
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}
		for _, variant := range variants {
			compiled, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("compile %q: %w", pattern, err)
			}
			set = append(set, compiled)
		}
	}
	return set, nil
}

func (s globSet) match(relPath string) bool {
	base := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		base = relPath[i+1:]
	}
	for _, g := range s {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// matchDir also lets "dir/**" match dir itself.
func (s globSet) matchDir(relPath string) bool {
	if s.match(relPath) {
		return true
	}
	for _, g := range s {
		if g.Match(relPath + "/") {
			return true
		}
	}
	return false
}

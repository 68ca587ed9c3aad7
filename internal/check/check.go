// Package check parses script files in bulk and reports per-file results.
//
// It backs the `check` and `watch` commands: Discover expands paths into
// script files, Run parses them with bounded parallelism, and Watcher
// re-runs a callback when scripts change on disk.
package check

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/epochscript/pkg/core"
	"github.com/leapstack-labs/epochscript/pkg/parser"
	"github.com/leapstack-labs/epochscript/pkg/token"
)

// Result is the outcome of parsing one file.
type Result struct {
	Path       string         `json:"path" yaml:"path"`
	OK         bool           `json:"ok" yaml:"ok"`
	Statements int            `json:"statements" yaml:"statements"`
	Nodes      int            `json:"nodes" yaml:"nodes"`
	Err        error          `json:"-" yaml:"-"`
	Message    string         `json:"error,omitempty" yaml:"error,omitempty"`
	Pos        token.Position `json:"-" yaml:"-"`
	Line       int            `json:"line,omitempty" yaml:"line,omitempty"`
	Column     int            `json:"column,omitempty" yaml:"column,omitempty"`
	Source     string         `json:"-" yaml:"-"`
}

// Summary totals a batch of results.
type Summary struct {
	Files  int `json:"files" yaml:"files"`
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
}

// Summarize counts passed and failed results.
func Summarize(results []Result) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.OK {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Options configures Run.
type Options struct {
	Jobs   int
	Logger *slog.Logger
}

// HasExtension reports whether path ends in one of exts.
func HasExtension(path string, exts []string) bool {
	return slices.Contains(exts, filepath.Ext(path))
}

// Discover expands paths into a sorted, de-duplicated list of script files.
// Files named explicitly are kept whatever their extension; directories are
// walked for files matching exts, skipping hidden directories.
func Discover(paths []string, exts []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot check %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if HasExtension(path, exts) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

// Run parses every file, at most opts.Jobs at a time, and returns one result
// per file in input order. Parse failures are reported in the results; the
// returned error is non-nil only when ctx is cancelled.
func Run(ctx context.Context, files []string, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	results := make([]Result, len(files))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	for i, path := range files {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			results[i] = File(path)
			logger.Debug("checked script", "path", path, "ok", results[i].OK)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// File reads and parses a single script.
func File(path string) Result {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: err, Message: err.Error()}
	}
	return Source(path, string(src))
}

// Source parses src as if read from path.
func Source(path, src string) Result {
	r := Result{Path: path, Source: src}

	mod, err := parser.Parse(src)
	if err != nil {
		r.Err = err
		r.Message = err.Error()
		if pos, ok := parser.Position(err); ok {
			r.Pos = pos
			r.Line, r.Column = pos.Line, pos.Column
		}
		return r
	}

	r.OK = true
	r.Statements = len(mod.Statements)
	core.Walk(mod, func(core.Node) bool {
		r.Nodes++
		return true
	})
	return r
}

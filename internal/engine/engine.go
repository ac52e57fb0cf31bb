// Package engine drives the batch: discover scene files under a root,
// filter each one, and rewrite changed files in place. Files are processed
// strictly one at a time in traversal order; the first failure aborts the
// batch and is returned to the caller.
package engine

import (
	"path/filepath"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"

	"github.com/Xaia/clean-ass-from-specular/internal/cache"
	"github.com/Xaia/clean-ass-from-specular/internal/filter"
	"github.com/Xaia/clean-ass-from-specular/internal/ignore"
	"github.com/Xaia/clean-ass-from-specular/internal/rewrite"
	"github.com/Xaia/clean-ass-from-specular/internal/types"
)

// DefaultExtension is the scene-file suffix matched when Config.Extension
// is empty. Matching is case sensitive.
const DefaultExtension = ".ass"

// Config controls discovery and rewriting.
type Config struct {
	Root            string
	Extension       string // file suffix, default ".ass"
	IncludeGlobs    string // comma-separated, relative to Root
	ExcludeGlobs    string
	MaxBytes        int64
	DryRun          bool // analyze only, never write
	NoCache         bool
	DefaultExcludes bool

	// Progress, when set, is invoked once per file after that file's
	// processing completes, never mid-file.
	Progress func(rel string)
}

func (c Config) extension() string {
	if c.Extension == "" {
		return DefaultExtension
	}
	return c.Extension
}

// Result reports what a run found and changed.
type Result struct {
	Findings      []types.Finding
	FilesScanned  int
	FilesChanged  int
	LinesRemoved  int
	BlocksRemoved int
	Duration      time.Duration
}

// Run walks the tree and filters every matching file. With DryRun set it
// reports findings without writing. The error, if any, is the first file
// failure and the returned Result covers the files processed up to it.
func Run(cfg Config) (Result, error) {
	var res Result
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))

	var db cache.DB
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root)
	} else {
		db.Entries = map[string]string{}
	}
	updated := map[string]string{}

	started := time.Now()
	err := Walk(cfg, ign, func(rel, abs string, data []byte) error {
		res.FilesScanned++
		defer func() {
			if cfg.Progress != nil {
				cfg.Progress(rel)
			}
		}()

		h := fastHash(data)
		if !cfg.NoCache && db.Entries[rel] == h {
			return nil
		}

		findings, out, stats := filter.Scrub(rel, data)
		res.Findings = append(res.Findings, findings...)
		res.LinesRemoved += stats.LinesRemoved
		res.BlocksRemoved += stats.BlocksRemoved

		if !stats.Changed() {
			updated[rel] = h
			return nil
		}
		if cfg.DryRun {
			return nil
		}
		if err := rewrite.Replace(abs, out); err != nil {
			return err
		}
		res.FilesChanged++
		updated[rel] = fastHash(out)
		return nil
	})

	res.Duration = time.Since(started)
	if !cfg.NoCache && !cfg.DryRun && len(updated) > 0 {
		if db.Entries == nil {
			db.Entries = map[string]string{}
		}
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}
	return res, err
}

// Scan is Run with writes disabled, for report-only callers.
func Scan(cfg Config) (Result, error) {
	cfg.DryRun = true
	return Run(cfg)
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// allowedByGlobs returns true if the given path is allowed by the
// include/exclude glob configuration. Include globs, if provided, act as a
// positive filter; exclude globs are subtracted last. Matching uses
// forward-slash semantics.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}

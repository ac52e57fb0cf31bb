package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Xaia/clean-ass-from-specular/internal/ignore"
)

// ErrInvalidDirectory marks a root that does not exist or is not a
// directory. Callers can match it with errors.Is.
var ErrInvalidDirectory = errors.New("invalid directory")

func checkRoot(root string) error {
	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidDirectory, root)
	}
	return nil
}

// Walk traverses the tree under cfg.Root and invokes handle for each
// selected scene file, in traversal order. The handler receives the path
// relative to the root, the absolute path, and the file contents. A non-nil
// handler error stops the walk and is returned; so is a read failure on a
// selected file. Errors on directory entries themselves are skipped.
func Walk(cfg Config, ign ignore.Matcher, handle func(rel, abs string, data []byte) error) error {
	if err := checkRoot(cfg.Root); err != nil {
		return err
	}
	ext := cfg.extension()
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		// case-sensitive suffix match, per the renderer's convention
		if !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			if info, _ := d.Info(); info != nil && info.Size() > cfg.MaxBytes {
				return nil
			}
		}
		b, err := os.ReadFile(p)
		if err != nil {
			// a selected file we cannot read aborts the batch
			return err
		}
		return handle(rel, p, b)
	})
}

// CountTargets reports how many files a run with cfg would process, without
// reading contents. Used to size progress reporting.
func CountTargets(cfg Config) (int, error) {
	if err := checkRoot(cfg.Root); err != nil {
		return 0, err
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	ext := cfg.extension()
	count := 0
	_ = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			if info, _ := d.Info(); info != nil && info.Size() > cfg.MaxBytes {
				return nil
			}
		}
		count++
		return nil
	})
	return count, nil
}

// Package rewrite replaces file contents in place via a temp sibling and an
// atomic rename over the original. The original is never deleted first, so
// a crash mid-rewrite leaves it untouched (at worst a stray temp file).
package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
)

// Transform maps file contents to replacement contents. The second return
// reports whether anything changed; when false the file is left alone.
type Transform func(src []byte) (out []byte, changed bool)

// Replace writes data over the file at path. The temp file is created in
// the same directory so the final rename stays on one filesystem. The
// original's permission bits are preserved.
func Replace(path string, data []byte) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(st.Mode().Perm()); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Apply runs transform over the file at path and rewrites it when the
// transform reports a change. Returns whether the file was rewritten.
func Apply(path string, transform Transform) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, changed := transform(b)
	if !changed {
		return false, nil
	}
	if err := Replace(path, out); err != nil {
		return false, err
	}
	return true, nil
}

// WouldChange reports whether Apply would rewrite the file, without writing.
func WouldChange(path string, transform Transform) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	_, changed := transform(b)
	return changed, nil
}

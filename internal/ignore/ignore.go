// Package ignore loads .asscleanignore files and matches relative paths
// against their patterns.
package ignore

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the per-tree ignore file looked up at the scan root.
const FileName = ".asscleanignore"

// Matcher matches relative paths against loaded ignore patterns.
// A pattern ending in "/" matches any path under that directory; other
// patterns are globs tried against the full relative path and the basename.
type Matcher struct {
	dirs  []string
	globs []string
}

// Load reads patterns from the ignore file at path. A missing file yields
// an empty matcher and the open error; callers typically discard the error.
func Load(p string) (Matcher, error) {
	var m Matcher
	f, err := os.Open(p)
	if err != nil {
		return m, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, "/") {
			m.dirs = append(m.dirs, strings.TrimSuffix(line, "/"))
			continue
		}
		m.glob(line)
	}
	return m, sc.Err()
}

func (m *Matcher) glob(pattern string) {
	m.globs = append(m.globs, pattern)
}

// Match reports whether the relative path is ignored.
func (m Matcher) Match(rel string) bool {
	rp := filepath.ToSlash(rel)
	for _, d := range m.dirs {
		if rp == d || strings.HasPrefix(rp, d+"/") || strings.Contains(rp, "/"+d+"/") {
			return true
		}
	}
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, rp); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, path.Base(rp)); ok {
			return true
		}
	}
	return false
}

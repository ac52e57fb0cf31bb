package engine

import (
	"sort"
	"strings"
)

// Directories skipped when default excludes are enabled. Scene trees on
// render farms routinely carry VCS metadata, Python caches from DCC
// scripts, and archived takes that must not be rewritten.
var defaultExcludeDirs = map[string]bool{
	".git":        true,
	".svn":        true,
	"__pycache__": true,
	"archive":     true,
	"backup":      true,
	"tmp":         true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

// DefaultExcludedDirs lists the built-in excluded directory names, sorted.
func DefaultExcludedDirs() []string {
	out := make([]string, 0, len(defaultExcludeDirs))
	for d := range defaultExcludeDirs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

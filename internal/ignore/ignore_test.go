package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, FileName)
	content := "archive/\n*.bak\n# comment\n\nlegacy_lookdev.ass\nshots/**/wip\n"
	if err := os.WriteFile(ig, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(ig)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"archive/sq10/shot.ass":   true,
		"assets/hero.bak":         true,
		"legacy_lookdev.ass":      true,
		"shots/sq10/wip":          true,
		"shots/sq10/shot0010.ass": false,
		"lighting/beauty.ass":     false,
	}
	for p, want := range cases {
		if got := m.Match(p); got != want {
			t.Fatalf("Match(%q)=%v want %v", p, got, want)
		}
	}
}

func TestLoadMissingFileIsEmptyMatcher(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), FileName))
	if err == nil {
		t.Fatal("expected open error for missing ignore file")
	}
	if m.Match("anything.ass") {
		t.Fatal("empty matcher should match nothing")
	}
}

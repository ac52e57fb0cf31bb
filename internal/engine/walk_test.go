package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Xaia/clean-ass-from-specular/internal/ignore"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func walkRels(t *testing.T, cfg Config) []string {
	t.Helper()
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	var rels []string
	if err := Walk(cfg, ign, func(rel, abs string, data []byte) error {
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	return rels
}

func TestWalkSelectsOnlyMatchingSuffix(t *testing.T) {
	root := writeTree(t, map[string]string{
		"shot0010.ass":             "a\n",
		"sub/shot0020.ass":         "b\n",
		"sub/deep/shot0030.ass":    "c\n",
		"notes.txt":                "x\n",
		"upper.ASS":                "y\n", // case-sensitive: not selected
		"shot0010.ass.tmp-1234":    "t\n",
		"textures/hero_spec.tx":    "\x00",
		"sub/renderlog.ass.backup": "z\n",
	})
	got := walkRels(t, Config{Root: root})
	want := map[string]bool{"shot0010.ass": true, "sub/shot0020.ass": true, "sub/deep/shot0030.ass": true}
	if len(got) != len(want) {
		t.Fatalf("selected %v", got)
	}
	for _, r := range got {
		if !want[r] {
			t.Fatalf("unexpected selection %q in %v", r, got)
		}
	}
}

func TestWalkDefaultExcludesAndIgnoreFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"keep.ass":              "k\n",
		"archive/old.ass":       "o\n",
		"__pycache__/gen.ass":   "g\n",
		"wip/messy.ass":         "m\n",
		ignore.FileName:         "wip/\n",
		".git/objects/fake.ass": "f\n",
	})
	got := walkRels(t, Config{Root: root, DefaultExcludes: true})
	if len(got) != 1 || got[0] != "keep.ass" {
		t.Fatalf("selected %v", got)
	}
}

func TestWalkGlobsAndMaxBytes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"shots/sq10/a.ass": "aaaa\n",
		"shots/sq20/b.ass": "b\n",
		"assets/c.ass":     "c\n",
	})
	got := walkRels(t, Config{Root: root, IncludeGlobs: "shots/**"})
	if len(got) != 2 {
		t.Fatalf("include glob selected %v", got)
	}
	got = walkRels(t, Config{Root: root, ExcludeGlobs: "shots/sq10/**"})
	if len(got) != 2 {
		t.Fatalf("exclude glob selected %v", got)
	}
	got = walkRels(t, Config{Root: root, MaxBytes: 3})
	if len(got) != 2 {
		t.Fatalf("max-bytes selected %v", got)
	}
}

func TestWalkInvalidRoot(t *testing.T) {
	err := Walk(Config{Root: filepath.Join(t.TempDir(), "missing")}, ignore.Matcher{}, func(string, string, []byte) error { return nil })
	if !errors.Is(err, ErrInvalidDirectory) {
		t.Fatalf("expected ErrInvalidDirectory, got %v", err)
	}
	// a file is not a valid root either
	f := filepath.Join(t.TempDir(), "plain.ass")
	if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Walk(Config{Root: f}, ignore.Matcher{}, func(string, string, []byte) error { return nil }); !errors.Is(err, ErrInvalidDirectory) {
		t.Fatalf("expected ErrInvalidDirectory for file root, got %v", err)
	}
}

func TestWalkHandlerErrorHaltsBatch(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/1.ass": "1\n",
		"b/2.ass": "2\n",
		"c/3.ass": "3\n",
	})
	boom := errors.New("boom")
	seen := 0
	err := Walk(Config{Root: root}, ignore.Matcher{}, func(rel, abs string, data []byte) error {
		seen++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if seen != 1 {
		t.Fatalf("walk continued after failure: %d files seen", seen)
	}
}

func TestCountTargets(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.ass":     "a\n",
		"b/b.ass":   "b\n",
		"notes.txt": "n\n",
	})
	n, err := CountTargets(Config{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("CountTargets=%d want 2", n)
	}
}

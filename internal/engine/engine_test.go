package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Xaia/clean-ass-from-specular/internal/types"
)

const dirtyScene = "options\n{\n xres 960\n}\n" +
	" specular _hero_specular_file.r\n" +
	"image\n name _hero_specular_file\n filename /tex/hero_spec.tx\n}\n" +
	"image\n name _hero_diffuse_file\n}\n"

const cleanedScene = "options\n{\n xres 960\n}\n" +
	"image\n name _hero_diffuse_file\n}\n"

func TestRunRewritesDirtyFilesOnly(t *testing.T) {
	root := writeTree(t, map[string]string{
		"shots/dirty.ass": dirtyScene,
		"shots/clean.ass": cleanedScene,
	})

	var progressed []string
	res, err := Run(Config{Root: root, Progress: func(rel string) {
		progressed = append(progressed, filepath.ToSlash(rel))
	}})
	if err != nil {
		t.Fatal(err)
	}
	if res.FilesScanned != 2 || res.FilesChanged != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.LinesRemoved != 1 || res.BlocksRemoved != 1 {
		t.Fatalf("unexpected removal counts: %+v", res)
	}
	if len(progressed) != 2 {
		t.Fatalf("progress fired %d times", len(progressed))
	}

	b, _ := os.ReadFile(filepath.Join(root, "shots", "dirty.ass"))
	if string(b) != cleanedScene {
		t.Fatalf("rewrite mismatch:\n%q", b)
	}
	b, _ = os.ReadFile(filepath.Join(root, "shots", "clean.ass"))
	if string(b) != cleanedScene {
		t.Fatalf("clean file touched:\n%q", b)
	}
}

func TestRunDryRunWritesNothing(t *testing.T) {
	root := writeTree(t, map[string]string{"a.ass": dirtyScene})
	res, err := Run(Config{Root: root, DryRun: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.FilesChanged != 0 {
		t.Fatalf("dry run changed files: %+v", res)
	}
	if len(res.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", res.Findings)
	}
	b, _ := os.ReadFile(filepath.Join(root, "a.ass"))
	if string(b) != dirtyScene {
		t.Fatal("dry run modified the file")
	}
	if _, err := os.Stat(filepath.Join(root, ".asscleancache.json")); err == nil {
		t.Fatal("dry run wrote the cache")
	}
}

func TestRunCacheSkipsSecondPass(t *testing.T) {
	root := writeTree(t, map[string]string{"a.ass": dirtyScene})
	if _, err := Run(Config{Root: root}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, ".asscleancache.json")); err != nil {
		t.Fatalf("cache not written: %v", err)
	}

	res, err := Run(Config{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if res.FilesChanged != 0 || len(res.Findings) != 0 {
		t.Fatalf("second run not skipped: %+v", res)
	}
	if res.FilesScanned != 1 {
		t.Fatalf("second run scanned %d files", res.FilesScanned)
	}
}

func TestRunNoCache(t *testing.T) {
	root := writeTree(t, map[string]string{"a.ass": cleanedScene})
	if _, err := Run(Config{Root: root, NoCache: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, ".asscleancache.json")); err == nil {
		t.Fatal("cache written despite NoCache")
	}
}

func TestScanReportsTruncatedBlock(t *testing.T) {
	root := writeTree(t, map[string]string{"t.ass": "ok\nimage\n name _keep\n"})
	res, err := Scan(Config{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Findings) != 1 || res.Findings[0].Kind != types.KindTruncatedBlock {
		t.Fatalf("unexpected findings: %+v", res.Findings)
	}
}

func TestRunInvalidRoot(t *testing.T) {
	_, err := Run(Config{Root: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatal("expected error for invalid root")
	}
}

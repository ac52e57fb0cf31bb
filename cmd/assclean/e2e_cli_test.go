package assclean

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

const e2eScene = " specular _hero_specular_file.r\n" +
	"image\n name _hero_specular_file\n filename /tex/hero_spec.tx\n}\n" +
	"image\n name _hero_diffuse_file\n}\n"

func TestCLI_Scan_JSON_Shape(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "shot0010.ass"), []byte(e2eScene), 0644); err != nil {
		t.Fatal(err)
	}
	// run as subprocess to avoid os.Exit in-process
	cmd := exec.Command("go", "run", ".", "scan", "--json", "--no-update-check", "--no-cache", "-p", dir)
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	var arr []map[string]any
	if err := json.Unmarshal(out.Bytes(), &arr); err != nil {
		t.Fatalf("json unmarshal: %v\n%s", err, out.String())
	}
	if len(arr) != 2 {
		t.Fatalf("expected 2 findings, got %d:\n%s", len(arr), out.String())
	}
	kinds := map[string]bool{}
	for _, m := range arr {
		k, _ := m["kind"].(string)
		kinds[k] = true
		if p, _ := m["path"].(string); p == "" {
			t.Fatalf("finding missing path: %v", m)
		}
	}
	if !kinds["specular-line"] || !kinds["image-block"] {
		t.Fatalf("unexpected kinds: %v", kinds)
	}
}

func TestCLI_Clean_RewritesInPlace(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "shot0010.ass")
	if err := os.WriteFile(scenePath, []byte(e2eScene), 0644); err != nil {
		t.Fatal(err)
	}
	untouched := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(untouched, []byte("do not touch\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := exec.Command("go", "run", ".", "clean", "--no-update-check", "--no-cache", "--no-progress", "--no-audit", "-p", dir)
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	b, err := os.ReadFile(scenePath)
	if err != nil {
		t.Fatal(err)
	}
	want := "image\n name _hero_diffuse_file\n}\n"
	if string(b) != want {
		t.Fatalf("unexpected contents after clean: %q", b)
	}
	b, _ = os.ReadFile(untouched)
	if string(b) != "do not touch\n" {
		t.Fatalf("non-scene file modified: %q", b)
	}
}

func TestCLI_Scan_InvalidDirectory(t *testing.T) {
	cmd := exec.Command("go", "run", ".", "scan", "--no-update-check", "-p", filepath.Join(t.TempDir(), "missing"))
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	if err := cmd.Run(); err == nil {
		t.Fatal("expected non-zero exit for invalid directory")
	}
}

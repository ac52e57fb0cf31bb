package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Xaia/clean-ass-from-specular/internal/types"
)

func sample() []types.Finding {
	return []types.Finding{
		{Path: "b/shot.ass", Line: 12, Kind: types.KindImageBlock, Name: "_hero_specular_file", Lines: 4},
		{Path: "a/shot.ass", Line: 3, Kind: types.KindSpecularLine, Name: "_hero_specular_file.r"},
	}
}

func TestPrintTextSortedWithFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sample(), PrintOptions{NoColor: true, Duration: 2 * time.Second, FilesScanned: 5, FilesChanged: 1})
	out := buf.String()

	ia := strings.Index(out, "a/shot.ass:3")
	ib := strings.Index(out, "b/shot.ass:12")
	if ia < 0 || ib < 0 || ia > ib {
		t.Fatalf("findings missing or unsorted:\n%s", out)
	}
	for _, want := range []string{
		"Findings: 2 (blocks: 1, lines: 1, truncated: 0)",
		"Files scanned: 5",
		"Files rewritten: 1",
		"Duration: 2.00s",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("footer missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{NoColor: true})
	if !strings.Contains(buf.String(), "No specular references found") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestPrintTableIncludesNames(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sample(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "_hero_specular_file") || !strings.Contains(out, "image-block") {
		t.Fatalf("table missing content:\n%s", out)
	}
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}
}

func TestWriteJSONShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	var arr []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &arr); err != nil {
		t.Fatalf("json: %v\n%s", err, buf.String())
	}
	if len(arr) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(arr))
	}
	if arr[0]["path"] != "a/shot.ass" {
		t.Fatalf("not sorted: %+v", arr[0])
	}
	if arr[1]["kind"] != "image-block" || arr[1]["lines"] != float64(4) {
		t.Fatalf("unexpected shape: %+v", arr[1])
	}
}

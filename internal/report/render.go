package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/Xaia/clean-ass-from-specular/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	FilesChanged int
}

var (
	blockStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	lineStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // yellow
	truncatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")) // magenta
)

func kindLabel(k types.Kind, noColor bool) string {
	if noColor {
		return string(k)
	}
	switch k {
	case types.KindImageBlock:
		return blockStyle.Render(string(k))
	case types.KindSpecularLine:
		return lineStyle.Render(string(k))
	case types.KindTruncatedBlock:
		return truncatedStyle.Render(string(k))
	}
	return string(k)
}

func sortFindings(findings []types.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Path < findings[j].Path
	})
}

// PrintTable renders findings as a bordered table followed by the summary
// footer.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No specular references found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("KIND", "FILE", "LINE", "NAME", "SPAN")
		for _, f := range findings {
			span := ""
			if f.Lines > 0 {
				span = fmt.Sprintf("%d lines", f.Lines)
			}
			_ = table.Append([]string{
				kindLabel(f.Kind, opts.NoColor),
				f.Path,
				fmt.Sprintf("%d", f.Line),
				f.Name,
				span,
			})
		}
		_ = table.Render()
	}
	printFooter(w, findings, opts)
}

// PrintText renders findings one per line, in the plain columnar format.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No specular references found ✅")
	} else {
		maxKind := 0
		for _, f := range findings {
			if l := len(string(f.Kind)); l > maxKind {
				maxKind = l
			}
		}
		for _, f := range findings {
			pad := maxKind - len(string(f.Kind))
			fmt.Fprintf(w, "%s%*s %s:%d  %s\n", kindLabel(f.Kind, opts.NoColor), pad, "", f.Path, f.Line, f.Name)
		}
	}
	printFooter(w, findings, opts)
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned == 0 {
		return
	}
	blocks, lines, truncated := 0, 0, 0
	for _, f := range findings {
		switch f.Kind {
		case types.KindImageBlock:
			blocks++
		case types.KindSpecularLine:
			lines++
		case types.KindTruncatedBlock:
			truncated++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (blocks: %d, lines: %d, truncated: %d)\n", len(findings), blocks, lines, truncated)
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
	if opts.FilesChanged > 0 {
		fmt.Fprintf(w, "Files rewritten: %d\n", opts.FilesChanged)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", opts.Duration.Seconds())
	}
}

// WriteJSONAny emits any value as indented JSON, for reports that are not
// finding lists (audit history, config dumps).
func WriteJSONAny(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteJSON emits findings as indented JSON. Callers rely on `[]` rather
// than `null` for an empty set.
func WriteJSON(w io.Writer, findings []types.Finding) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	sortFindings(findings)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

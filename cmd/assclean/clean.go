package assclean

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Xaia/clean-ass-from-specular/internal/audit"
	"github.com/Xaia/clean-ass-from-specular/internal/engine"
	"github.com/Xaia/clean-ass-from-specular/internal/report"
	"github.com/Xaia/clean-ass-from-specular/internal/tui"
)

var (
	cleanPath       string
	cleanInclude    string
	cleanExclude    string
	cleanMaxBytes   int64
	cleanExt        string
	cleanDryRun     bool
	cleanNoProgress bool
	cleanNoAudit    bool
	cleanSummary    string
)

func init() {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Rewrite scene files in place, removing specular references",
		Long:  "clean processes files strictly one at a time in traversal order. Each rewrite goes through a temp sibling file and an atomic rename, so an interrupted run never leaves a half-written scene file. The first file failure halts the batch.",
		RunE:  runClean,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&cleanPath, "path", "p", ".", "root directory to clean")
	cmd.Flags().StringVar(&cleanInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&cleanExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&cleanMaxBytes, "max-bytes", 256<<20, "skip files larger than this")
	cmd.Flags().StringVar(&cleanExt, "ext", engine.DefaultExtension, "scene file suffix (case-sensitive)")
	cmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&cleanNoProgress, "no-progress", false, "disable the progress display")
	cmd.Flags().BoolVar(&cleanNoAudit, "no-audit", false, "do not append to the audit log")
	cmd.Flags().StringVar(&cleanSummary, "summary", "", "write a run summary JSON to this path")
}

func runClean(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(cleanPath)
	cfg := mergedEngineConfig(abs, cleanInclude, cleanExclude, cleanExt, cleanMaxBytes)
	cfg.DryRun = cleanDryRun

	total, err := engine.CountTargets(cfg)
	if err != nil {
		return err
	}
	if total == 0 {
		_, _ = fmt.Fprintln(os.Stderr, "no scene files found to process")
		return nil
	}
	if !flagJSON {
		mode := ""
		if cleanDryRun {
			mode = " (dry-run)"
		}
		_, _ = fmt.Fprintf(os.Stderr, "Processing %d scene files under %s%s...\n", total, abs, mode)
	}

	var res engine.Result
	switch {
	case !cleanNoProgress && !flagJSON && term.IsTerminal(int(os.Stderr.Fd())):
		res, err = tui.RunClean(cfg, total)
	default:
		progressed := 0
		if !flagJSON {
			cfg.Progress = func(string) {
				progressed++
				if progressed%10 == 0 || progressed == total {
					pct := float64(progressed) / float64(total) * 100
					_, _ = fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
				}
			}
		}
		res, err = engine.Run(cfg)
		if !flagJSON && progressed > 0 {
			_, _ = fmt.Fprintln(os.Stderr)
		}
	}
	// audit and summary cover however far the batch got, even on failure
	if !cleanNoAudit {
		rec := audit.CreateCleanRecord(abs, res.Findings, res.FilesScanned, res.FilesChanged, res.LinesRemoved, res.BlocksRemoved, res.Duration, cleanDryRun)
		if aerr := audit.NewLog(abs).LogClean(rec); aerr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "audit log: %v\n", aerr)
		}
	}
	if cleanSummary != "" {
		if serr := writeCleanSummary(cleanSummary, abs, res, cleanDryRun); serr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "summary: %v\n", serr)
		}
	}
	if err != nil {
		return fmt.Errorf("clean aborted: %w", err)
	}

	opts := report.PrintOptions{NoColor: flagNoColor, Duration: res.Duration, FilesScanned: res.FilesScanned, FilesChanged: res.FilesChanged}
	if flagJSON {
		return report.WriteJSON(os.Stdout, res.Findings)
	}
	if cleanDryRun {
		report.PrintTable(os.Stdout, res.Findings, opts)
		return nil
	}
	fmt.Printf("Cleanup complete! Processed %d scene files, rewrote %d (removed %d blocks, %d lines).\n",
		res.FilesScanned, res.FilesChanged, res.BlocksRemoved, res.LinesRemoved)
	return nil
}

func writeCleanSummary(path, root string, res engine.Result, dryRun bool) error {
	b, err := json.MarshalIndent(map[string]any{
		"action":         "clean",
		"root":           root,
		"dry_run":        dryRun,
		"files_scanned":  res.FilesScanned,
		"files_changed":  res.FilesChanged,
		"lines_removed":  res.LinesRemoved,
		"blocks_removed": res.BlocksRemoved,
		"duration":       res.Duration.String(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}

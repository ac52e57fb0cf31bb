package assclean

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Xaia/clean-ass-from-specular/internal/config"
	"github.com/Xaia/clean-ass-from-specular/internal/engine"
	"github.com/Xaia/clean-ass-from-specular/internal/report"
	"github.com/Xaia/clean-ass-from-specular/internal/update"
)

var (
	scanPath     string
	scanInclude  string
	scanExclude  string
	scanMaxBytes int64
	scanExt      string
	scanTable    bool
	scanText     bool
	scanCopy     bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Report specular references without rewriting anything",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&scanPath, "path", "p", ".", "root directory to scan")
	cmd.Flags().StringVar(&scanInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&scanExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&scanMaxBytes, "max-bytes", 256<<20, "skip files larger than this")
	cmd.Flags().StringVar(&scanExt, "ext", engine.DefaultExtension, "scene file suffix (case-sensitive)")
	cmd.Flags().BoolVar(&scanTable, "table", false, "output in table format with borders (default)")
	cmd.Flags().BoolVar(&scanText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&scanCopy, "copy", false, "copy the JSON report to the clipboard")
}

// mergedEngineConfig resolves CLI > local > global configuration into an
// engine config for the given selection flags.
func mergedEngineConfig(root, include, exclude, ext string, maxBytes int64) engine.Config {
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	}
	return engine.Config{
		Root:            root,
		Extension:       pickString(extOrEmpty(ext), lcfg.Extension, gcfg.Extension),
		IncludeGlobs:    pickString(include, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(exclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(maxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		NoCache:         flagNoCache,
		DefaultExcludes: flagDefaultExcludes,
	}
}

// extOrEmpty lets a config-file extension win over the flag default while a
// non-default flag value still takes precedence.
func extOrEmpty(ext string) string {
	if ext == engine.DefaultExtension {
		return ""
	}
	return ext
}

func runScan(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(scanPath)
	cfg := mergedEngineConfig(abs, scanInclude, scanExclude, scanExt, scanMaxBytes)

	if !flagJSON {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'assclean update' to upgrade\n", latest)
			}
		}
		_, _ = fmt.Fprintf(os.Stderr, "Scanning %s for %s files...\n", abs, displayExt(cfg))
	}

	res, err := engine.Scan(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	opts := report.PrintOptions{NoColor: flagNoColor, Duration: res.Duration, FilesScanned: res.FilesScanned}
	switch {
	case flagJSON:
		if err := report.WriteJSON(os.Stdout, res.Findings); err != nil {
			return err
		}
	case scanText:
		report.PrintText(os.Stdout, res.Findings, opts)
	default:
		report.PrintTable(os.Stdout, res.Findings, opts)
	}

	if scanCopy {
		var buf bytes.Buffer
		if err := report.WriteJSON(&buf, res.Findings); err != nil {
			return err
		}
		if err := clipboard.WriteAll(buf.String()); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "clipboard copy failed: %v\n", err)
		} else {
			_, _ = fmt.Fprintln(os.Stderr, "report copied to clipboard")
		}
	}
	return nil
}

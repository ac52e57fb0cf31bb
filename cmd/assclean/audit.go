package assclean

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Xaia/clean-ass-from-specular/internal/audit"
	"github.com/Xaia/clean-ass-from-specular/internal/report"
)

var auditLimit int

func init() {
	cmd := &cobra.Command{
		Use:   "audit [path]",
		Short: "Show recent clean runs for a tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			abs, _ := filepath.Abs(root)

			records, err := audit.NewLog(abs).LoadHistory()
			if err != nil {
				_, _ = fmt.Fprintln(os.Stderr, "no audit history for", abs)
				return nil
			}
			if auditLimit > 0 && len(records) > auditLimit {
				records = records[:auditLimit]
			}
			if flagJSON {
				return report.WriteJSONAny(os.Stdout, records)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("WHEN", "RUN", "SCANNED", "REWRITTEN", "BLOCKS", "LINES", "DURATION")
			for _, r := range records {
				mode := r.RunID
				if r.DryRun {
					mode += " (dry-run)"
				}
				_ = table.Append([]string{
					r.Timestamp.Format("2006-01-02 15:04:05"),
					mode,
					fmt.Sprintf("%d", r.FilesScanned),
					fmt.Sprintf("%d", r.FilesChanged),
					fmt.Sprintf("%d", r.BlocksRemoved),
					fmt.Sprintf("%d", r.LinesRemoved),
					r.Duration,
				})
			}
			return table.Render()
		},
	}
	cmd.Flags().IntVar(&auditLimit, "limit", 20, "maximum runs to show")
	rootCmd.AddCommand(cmd)
}

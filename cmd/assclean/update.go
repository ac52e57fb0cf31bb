package assclean

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Xaia/clean-ass-from-specular/internal/update"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update assclean to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			latest, newer, err := update.Check(version, true)
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}
			if !newer {
				fmt.Printf("assclean %s is up to date\n", version)
				return nil
			}
			_, _ = fmt.Fprintf(os.Stderr, "updating %s -> %s...\n", version, latest)
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			fmt.Println("updated to", latest)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

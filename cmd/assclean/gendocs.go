package assclean

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Xaia/clean-ass-from-specular/internal/engine"
)

// gendocs regenerates the default-excludes section in README.md between
// the markers <!-- BEGIN:DEFAULT_EXCLUDES --> and <!-- END:DEFAULT_EXCLUDES -->.
func init() {
	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Regenerate the README default-excludes section",
		RunE: func(_ *cobra.Command, _ []string) error {
			path := "README.md"
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			start := []byte("<!-- BEGIN:DEFAULT_EXCLUDES -->")
			end := []byte("<!-- END:DEFAULT_EXCLUDES -->")
			i := bytes.Index(b, start)
			j := bytes.Index(b, end)
			if i < 0 || j < 0 || j <= i {
				return fmt.Errorf("markers not found in README.md")
			}

			var out strings.Builder
			out.WriteString("\nDirectories skipped when `--default-excludes` is on (the default):\n\n")
			for _, d := range engine.DefaultExcludedDirs() {
				out.WriteString("- `" + d + "/`\n")
			}

			var nb bytes.Buffer
			nb.Write(b[:i])
			nb.Write(start)
			nb.WriteString("\n")
			nb.WriteString(out.String())
			nb.Write(end)
			nb.Write(b[j+len(end):])
			return os.WriteFile(path, nb.Bytes(), 0644)
		},
	}
	rootCmd.AddCommand(cmd)
}

package assclean

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Xaia/clean-ass-from-specular/internal/engine"
)

var (
	cfgOutput   string
	cfgShowPath string
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter .assclean.yml",
		RunE:  runConfigInit,
	}
	initCmd.Flags().StringVar(&cfgOutput, "output", ".assclean.yml", "output file path")
	cfgCmd.AddCommand(initCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration for a tree",
		RunE:  runConfigShow,
	}
	showCmd.Flags().StringVarP(&cfgShowPath, "path", "p", ".", "tree whose local config is consulted")
	cfgCmd.AddCommand(showCmd)
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfgOutput); err == nil {
		return fmt.Errorf("%s already exists; refusing to overwrite", cfgOutput)
	}
	starter := struct {
		Extension       string `yaml:"extension"`
		MaxBytes        int64  `yaml:"max_bytes"`
		DefaultExcludes bool   `yaml:"default_excludes"`
	}{
		Extension:       engine.DefaultExtension,
		MaxBytes:        256 << 20,
		DefaultExcludes: true,
	}
	b, err := yaml.Marshal(starter)
	if err != nil {
		return err
	}
	header := []byte("# assclean configuration. CLI flags override these values;\n# this file overrides the global config under XDG_CONFIG_HOME.\n")
	if err := os.WriteFile(cfgOutput, append(header, b...), 0644); err != nil {
		return err
	}
	fmt.Println("wrote", cfgOutput)
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(cfgShowPath)
	cfg := mergedEngineConfig(abs, "", "", engine.DefaultExtension, 0)
	out := struct {
		Root            string `yaml:"root"`
		Extension       string `yaml:"extension"`
		Include         string `yaml:"include"`
		Exclude         string `yaml:"exclude"`
		MaxBytes        int64  `yaml:"max_bytes"`
		DefaultExcludes bool   `yaml:"default_excludes"`
		NoCache         bool   `yaml:"no_cache"`
	}{
		Root:            cfg.Root,
		Extension:       displayExt(cfg),
		Include:         cfg.IncludeGlobs,
		Exclude:         cfg.ExcludeGlobs,
		MaxBytes:        cfg.MaxBytes,
		DefaultExcludes: cfg.DefaultExcludes,
		NoCache:         cfg.NoCache,
	}
	b, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(b)
	return err
}

func displayExt(cfg engine.Config) string {
	if cfg.Extension == "" {
		return engine.DefaultExtension
	}
	return cfg.Extension
}

// Package config loads assclean's layered YAML configuration. Precedence is
// CLI flag, then a config file at the scan root, then the global file under
// the XDG config directory. Merging happens in the command layer; this
// package only locates and decodes files.
package config

// Package assclean provides the command-line interface for the assclean
// tool. It configures subcommands (scan, clean, audit, etc.), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/Xaia/clean-ass-from-specular/cmd/assclean"
//	func main() { assclean.Execute() }
package assclean

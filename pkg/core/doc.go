// Package core provides a small, stable facade over assclean's internal
// engine for pipeline integrations. It deliberately re-exports a narrow API
// surface so submit hooks and farm tooling can depend on a stable import
// path without exposing internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: "/shows/proj/shots"}
//	findings, err := core.Scan(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, findings)
package core

package core

import (
	"github.com/Xaia/clean-ass-from-specular/internal/engine"
	"github.com/Xaia/clean-ass-from-specular/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers (farm submitters, pipeline
// hooks) can depend on a stable path without importing internals.
type Config = engine.Config
type Result = engine.Result
type Finding = types.Finding

// Scan analyzes the tree under cfg.Root without writing and returns the
// findings.
func Scan(cfg Config) ([]Finding, error) {
	res, err := engine.Scan(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// Clean rewrites matching scene files in place and reports what changed.
func Clean(cfg Config) (Result, error) {
	return engine.Run(cfg)
}

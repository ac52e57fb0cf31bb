// Package audit appends a JSONL record per clean run so farms can answer
// "what rewrote my scene files, and when".
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Xaia/clean-ass-from-specular/internal/types"
)

// CleanRecord is one clean run as persisted in the audit log.
type CleanRecord struct {
	Timestamp     time.Time       `json:"timestamp"`
	RunID         string          `json:"run_id"`
	Root          string          `json:"root"`
	DryRun        bool            `json:"dry_run,omitempty"`
	FilesScanned  int             `json:"files_scanned"`
	FilesChanged  int             `json:"files_changed"`
	LinesRemoved  int             `json:"lines_removed"`
	BlocksRemoved int             `json:"blocks_removed"`
	Duration      string          `json:"duration"`
	TopChanges    []ChangeSummary `json:"top_changes,omitempty"`
}

// ChangeSummary is a compact view of one removal, capped to the first few
// per run to keep records small.
type ChangeSummary struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Line int    `json:"line"`
	Name string `json:"name,omitempty"`
}

type Log struct {
	logPath string
}

func NewLog(root string) *Log {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".assclean_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "assclean_audit.jsonl")
	}
	return &Log{logPath: logPath}
}

// LoadHistory returns records newest first.
func (l *Log) LoadHistory() ([]CleanRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []CleanRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record CleanRecord
		if err := decoder.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (l *Log) LogClean(record CleanRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("clean_%d", time.Now().Unix())
	}

	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// CreateCleanRecord builds the record for a completed run.
func CreateCleanRecord(root string, findings []types.Finding, filesScanned, filesChanged, linesRemoved, blocksRemoved int, duration time.Duration, dryRun bool) CleanRecord {
	top := make([]ChangeSummary, 0, 10)
	for i, f := range findings {
		if i >= 10 {
			break
		}
		top = append(top, ChangeSummary{
			Path: f.Path,
			Kind: string(f.Kind),
			Line: f.Line,
			Name: f.Name,
		})
	}
	return CleanRecord{
		Timestamp:     time.Now(),
		Root:          root,
		DryRun:        dryRun,
		FilesScanned:  filesScanned,
		FilesChanged:  filesChanged,
		LinesRemoved:  linesRemoved,
		BlocksRemoved: blocksRemoved,
		Duration:      duration.String(),
		TopChanges:    top,
	}
}

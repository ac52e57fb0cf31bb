// Package cache persists which files are already known clean so repeat runs
// can skip them.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// DB maps path relative to the scan root to the content hash recorded after
// the file was last filtered (or found to need no filtering).
type DB struct {
	Entries map[string]string `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing the cache under .git to avoid accidental commits when
	// scene trees happen to be version controlled.
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "asscleancache.json")
	}
	return filepath.Join(root, ".asscleancache.json")
}

func Load(root string) (DB, error) {
	var db DB
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]string{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]string{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(p, b, 0644)
}

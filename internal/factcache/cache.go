// Package factcache persists the facts discovered per source file, so a
// later pass can replay unchanged files instead of reparsing them.
package factcache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sChintamani/reflectcfg/internal/collect"
)

// Fingerprint identifies one version of a source file. Size and
// modification time stand in for content hashing, which is good enough
// for a build tool re-run in place.
type Fingerprint struct {
	Path    string
	Size    int64
	ModTime int64
}

// record is the serialized per-file fact set.
type record struct {
	Packages []string `json:"packages,omitempty"`
	Beans    []string `json:"beans,omitempty"`
	Classes  []string `json:"classes,omitempty"`
	Arrays   []string `json:"arrays,omitempty"`
}

// Cache is a SQLite-backed store of per-file facts.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) a cache database at the given path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS facts (
		path TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		mtime INTEGER NOT NULL,
		record JSON NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached facts for a file if the fingerprint still
// matches. Any cache error is treated as a miss: the caller reparses.
func (c *Cache) Lookup(fp Fingerprint) (*collect.Accumulator, bool) {
	var size, mtime int64
	var raw []byte
	row := c.db.QueryRow(`SELECT size, mtime, record FROM facts WHERE path = ?`, fp.Path)
	if err := row.Scan(&size, &mtime, &raw); err != nil {
		return nil, false
	}
	if size != fp.Size || mtime != fp.ModTime {
		return nil, false
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false
	}

	acc := collect.New()
	for _, p := range rec.Packages {
		acc.AddPackage(p)
	}
	for _, n := range rec.Classes {
		acc.AddClass(n)
	}
	for _, n := range rec.Arrays {
		acc.AddArray(n)
	}
	for _, n := range rec.Beans {
		acc.AddBean(n)
	}
	return acc, true
}

// Store upserts the facts discovered for a file.
func (c *Cache) Store(fp Fingerprint, acc *collect.Accumulator) error {
	raw, err := json.Marshal(record{
		Packages: acc.Packages(),
		Beans:    acc.Beans(),
		Classes:  acc.Classes(),
		Arrays:   acc.Arrays(),
	})
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}
	_, err = c.db.Exec(`
		INSERT INTO facts (path, size, mtime, record) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET size = excluded.size, mtime = excluded.mtime, record = excluded.record
	`, fp.Path, fp.Size, fp.ModTime, raw)
	if err != nil {
		return fmt.Errorf("store cache record for %s: %w", fp.Path, err)
	}
	return nil
}

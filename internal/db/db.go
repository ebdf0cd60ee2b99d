package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	stdfs "io/fs"
	"regexp"
	"sort"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is the contacts book file used when no path is configured.
const DefaultPath = "contacts.sqlite"

// Open opens (or creates) the local SQLite contacts book and applies pending migrations.
// Migrations are versioned .sql files under internal/db/migrations:
//
//	0001_name.up.sql
//
// Migrations only move forward; there are no down scripts.
//
// The pool is capped at one connection: the book has a single writer and
// per-connection pragmas must hold for every statement.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultPath
	}
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d.SetMaxOpenConns(1)
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("connect %s: %w", path, err)
	}
	// journal_mode is rejected for in-memory databases. Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, err
	}
	if err := Migrate(d); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

//go:embed migrations/*.up.sql
var migrationsFS embed.FS

type migration struct {
	version int
	name    string
	file    string // path inside embedded FS
}

var migFileRe = regexp.MustCompile(`^migrations/([0-9]{4})_(.+)\.up\.sql$`)

// migrations returns the embedded scripts sorted by version.
func migrations() ([]migration, error) {
	paths, err := stdfs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return nil, err
	}
	out := make([]migration, 0, len(paths))
	seen := map[int]string{}
	for _, p := range paths {
		m := migFileRe.FindStringSubmatch(p)
		if m == nil {
			return nil, fmt.Errorf("bad migration file name %q", p)
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[v]; dup {
			return nil, fmt.Errorf("%s and %s share version %d", prev, p, v)
		}
		seen[v] = p
		out = append(out, migration{version: v, name: m[2], file: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
)`

// Version returns the highest applied migration version, or 0 for a fresh file.
func Version(d *sql.DB) (int, error) {
	if _, err := d.Exec(createVersionTable); err != nil {
		return 0, err
	}
	var v sql.NullInt64
	if err := d.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}

// apply runs one script and records its version in the same transaction.
func apply(d *sql.DB, m migration) error {
	text, err := migrationsFS.ReadFile(m.file)
	if err != nil {
		return err
	}
	tx, err := d.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(string(text)); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES(?)`, m.version); err != nil {
		return err
	}
	return tx.Commit()
}

// Migrate applies every embedded migration newer than the recorded version.
func Migrate(d *sql.DB) error {
	if d == nil {
		return errors.New("nil db")
	}
	migs, err := migrations()
	if err != nil {
		return err
	}
	current, err := Version(d)
	if err != nil {
		return err
	}
	for _, m := range migs {
		if m.version <= current {
			continue
		}
		if err := apply(d, m); err != nil {
			return fmt.Errorf("migration %04d_%s failed: %w", m.version, m.name, err)
		}
	}
	return nil
}

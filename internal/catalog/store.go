package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL / Dolt driver.
	_ "modernc.org/sqlite"              // Pure-Go SQLite driver.
)

// Supported SQL drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// sqliteSchema is executed on every open; IF NOT EXISTS keeps it idempotent.
// The ord columns preserve registration order, which Build depends on.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ragas (
    name       TEXT PRIMARY KEY,
    ord        INTEGER NOT NULL,
    kind       TEXT NOT NULL,
    number     INTEGER NOT NULL DEFAULT 0,
    notes      TEXT NOT NULL DEFAULT '',
    arohanam   TEXT NOT NULL DEFAULT '',
    avarohanam TEXT NOT NULL DEFAULT '',
    parent     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS raga_children (
    root  TEXT NOT NULL,
    ord   INTEGER NOT NULL,
    child TEXT NOT NULL,
    PRIMARY KEY (root, ord)
);

CREATE TABLE IF NOT EXISTS raga_variations (
    raga       TEXT NOT NULL,
    ord        INTEGER NOT NULL,
    name       TEXT NOT NULL,
    arohanam   TEXT NOT NULL,
    avarohanam TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (raga, ord)
);

CREATE TABLE IF NOT EXISTS raga_aliases (
    alias  TEXT PRIMARY KEY,
    target TEXT NOT NULL
);
`

// mysqlSchema is the same layout with bounded key columns.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS ragas (
    name       VARCHAR(191) PRIMARY KEY,
    ord        INT NOT NULL,
    kind       VARCHAR(16) NOT NULL,
    number     INT NOT NULL DEFAULT 0,
    notes      VARCHAR(255) NOT NULL DEFAULT '',
    arohanam   TEXT NOT NULL,
    avarohanam TEXT NOT NULL,
    parent     VARCHAR(191) NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS raga_children (
    root  VARCHAR(191) NOT NULL,
    ord   INT NOT NULL,
    child VARCHAR(191) NOT NULL,
    PRIMARY KEY (root, ord)
)`,
	`CREATE TABLE IF NOT EXISTS raga_variations (
    raga       VARCHAR(191) NOT NULL,
    ord        INT NOT NULL,
    name       VARCHAR(191) NOT NULL,
    arohanam   TEXT NOT NULL,
    avarohanam TEXT NOT NULL,
    PRIMARY KEY (raga, ord)
)`,
	`CREATE TABLE IF NOT EXISTS raga_aliases (
    alias  VARCHAR(191) PRIMARY KEY,
    target VARCHAR(191) NOT NULL
)`,
}

// Store persists catalog entries in a SQL database.
type Store struct {
	db     *sql.DB
	driver string
}

// OpenStore opens (or creates) a catalog database and ensures the schema
// exists. driver is DriverSQLite (dsn is a file path) or DriverMySQL (dsn is
// a go-sql-driver DSN).
func OpenStore(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("catalog: %w: %q", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: open database: %w", err)
	}

	if driver == DriverSQLite {
		// One connection: SQLite has a single writer and the PRAGMAs are
		// per connection.
		db.SetMaxOpenConns(1)
		for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("catalog: %s: %w", pragma, err)
			}
		}
		if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
			db.Close()
			return nil, fmt.Errorf("catalog: create schema: %w", err)
		}
	} else {
		for _, stmt := range mysqlSchema {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				db.Close()
				return nil, fmt.Errorf("catalog: create schema: %w", err)
			}
		}
	}

	return &Store{db: db, driver: driver}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored catalog with f in a single transaction.
func (s *Store) Save(ctx context.Context, f *File) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"ragas", "raga_children", "raga_variations", "raga_aliases"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("catalog: clear %s: %w", table, err)
		}
	}

	const insRaga = `INSERT INTO ragas (name, ord, kind, number, notes, arohanam, avarohanam, parent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	const insChild = `INSERT INTO raga_children (root, ord, child) VALUES (?, ?, ?)`
	const insVar = `INSERT INTO raga_variations (raga, ord, name, arohanam, avarohanam) VALUES (?, ?, ?, ?, ?)`
	const insAlias = `INSERT INTO raga_aliases (alias, target) VALUES (?, ?)`

	seen := make(map[string]bool, len(f.Ragas))
	for i, e := range f.Ragas {
		// The name is the primary key; later duplicates lose, as in Build.
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		if _, err := tx.ExecContext(ctx, insRaga, e.Name, i, string(e.Kind), e.Number, e.Notes, e.Ascending, e.Descending, e.Parent); err != nil {
			return fmt.Errorf("catalog: insert raga %q: %w", e.Name, err)
		}
		for j, child := range e.Children {
			if _, err := tx.ExecContext(ctx, insChild, e.Name, j, child); err != nil {
				return fmt.Errorf("catalog: insert child %q of %q: %w", child, e.Name, err)
			}
		}
		for j, v := range e.Variations {
			if _, err := tx.ExecContext(ctx, insVar, e.Name, j, v.Name, v.Ascending, v.Descending); err != nil {
				return fmt.Errorf("catalog: insert variation %d of %q: %w", j, e.Name, err)
			}
		}
	}
	for alias, target := range f.Aliases {
		if _, err := tx.ExecContext(ctx, insAlias, alias, target); err != nil {
			return fmt.Errorf("catalog: insert alias %q: %w", alias, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog: commit: %w", err)
	}
	return nil
}

// Load reads the stored catalog back in registration order.
func (s *Store) Load(ctx context.Context) (*File, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, kind, number, notes, arohanam, avarohanam, parent
		FROM ragas ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("catalog: load ragas: %w", err)
	}
	defer rows.Close()

	f := &File{}
	pos := make(map[string]int)
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.Name, &kind, &e.Number, &e.Notes, &e.Ascending, &e.Descending, &e.Parent); err != nil {
			return nil, fmt.Errorf("catalog: scan raga: %w", err)
		}
		if err := e.Kind.UnmarshalText([]byte(kind)); err != nil {
			return nil, fmt.Errorf("catalog: raga %q: %w", e.Name, err)
		}
		pos[e.Name] = len(f.Ragas)
		f.Ragas = append(f.Ragas, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate ragas: %w", err)
	}

	if err := s.loadChildren(ctx, f, pos); err != nil {
		return nil, err
	}
	if err := s.loadVariations(ctx, f, pos); err != nil {
		return nil, err
	}
	if err := s.loadAliases(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Store) loadChildren(ctx context.Context, f *File, pos map[string]int) error {
	rows, err := s.db.QueryContext(ctx, "SELECT root, child FROM raga_children ORDER BY root, ord")
	if err != nil {
		return fmt.Errorf("catalog: load children: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var root, child string
		if err := rows.Scan(&root, &child); err != nil {
			return fmt.Errorf("catalog: scan child: %w", err)
		}
		if i, ok := pos[root]; ok {
			f.Ragas[i].Children = append(f.Ragas[i].Children, child)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("catalog: iterate children: %w", err)
	}
	return nil
}

func (s *Store) loadVariations(ctx context.Context, f *File, pos map[string]int) error {
	rows, err := s.db.QueryContext(ctx, "SELECT raga, name, arohanam, avarohanam FROM raga_variations ORDER BY raga, ord")
	if err != nil {
		return fmt.Errorf("catalog: load variations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var raga string
		var v Variation
		if err := rows.Scan(&raga, &v.Name, &v.Ascending, &v.Descending); err != nil {
			return fmt.Errorf("catalog: scan variation: %w", err)
		}
		if i, ok := pos[raga]; ok {
			f.Ragas[i].Variations = append(f.Ragas[i].Variations, v)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("catalog: iterate variations: %w", err)
	}
	return nil
}

func (s *Store) loadAliases(ctx context.Context, f *File) error {
	rows, err := s.db.QueryContext(ctx, "SELECT alias, target FROM raga_aliases")
	if err != nil {
		return fmt.Errorf("catalog: load aliases: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var alias, target string
		if err := rows.Scan(&alias, &target); err != nil {
			return fmt.Errorf("catalog: scan alias: %w", err)
		}
		if f.Aliases == nil {
			f.Aliases = make(map[string]string)
		}
		f.Aliases[alias] = target
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("catalog: iterate aliases: %w", err)
	}
	return nil
}

// Driver returns the SQL driver name the store was opened with.
func (s *Store) Driver() string { return s.driver }

// String describes the store for status lines.
func (s *Store) String() string {
	return strings.ToUpper(s.driver[:1]) + s.driver[1:] + " catalog store"
}

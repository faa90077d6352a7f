package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/phanxgames/galleria"
	_ "modernc.org/sqlite"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS photos (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    source TEXT NOT NULL,
    alt_text TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_photos_position ON photos(position);
`

// Catalog is a SQLite-backed photo list. Photos keep the order in which
// they were added unless given explicit positions.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog creates or opens a catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging catalog: %w", err)
	}
	return newCatalog(db)
}

// OpenMemoryCatalog creates an empty in-memory catalog.
func OpenMemoryCatalog() (*Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory catalog: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return newCatalog(db)
}

func newCatalog(db *sql.DB) (*Catalog, error) {
	if _, err := db.Exec(catalogSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add appends p after the last photo and returns its generated ID.
func (c *Catalog) Add(ctx context.Context, p galleria.Photo) (string, error) {
	id := uuid.New().String()
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO photos (id, position, source, alt_text)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM photos), ?, ?)`,
		id, p.Source, p.AltText)
	if err != nil {
		return "", fmt.Errorf("inserting photo: %w", err)
	}
	return id, nil
}

// AddAt inserts p at an explicit position. Photos sharing a position are
// ordered by ID.
func (c *Catalog) AddAt(ctx context.Context, position int, p galleria.Photo) (string, error) {
	id := uuid.New().String()
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO photos (id, position, source, alt_text) VALUES (?, ?, ?, ?)`,
		id, position, p.Source, p.AltText)
	if err != nil {
		return "", fmt.Errorf("inserting photo: %w", err)
	}
	return id, nil
}

// Remove deletes the photo with the given ID. Removing an unknown ID is
// not an error.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting photo %s: %w", id, err)
	}
	return nil
}

// Photos returns every photo ordered by position, then ID. Blank alt text
// becomes galleria.DefaultAltText.
func (c *Catalog) Photos(ctx context.Context) ([]galleria.Photo, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT source, alt_text FROM photos ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("querying photos: %w", err)
	}
	defer rows.Close()

	var photos []galleria.Photo
	for rows.Next() {
		var src, alt string
		if err := rows.Scan(&src, &alt); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		photos = append(photos, photo(src, alt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating photos: %w", err)
	}
	return photos, nil
}

// Import appends photos in order inside one transaction.
func (c *Catalog) Import(ctx context.Context, photos []galleria.Photo) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM photos`).Scan(&next); err != nil {
		return fmt.Errorf("reading last position: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO photos (id, position, source, alt_text) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing import: %w", err)
	}
	defer stmt.Close()
	for i, p := range photos {
		if _, err := stmt.ExecContext(ctx, uuid.New().String(), next+i, p.Source, p.AltText); err != nil {
			return fmt.Errorf("importing %s: %w", p.Source, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is the real Store backed by the lab's SQLite database. The lab
// app owns inserts; sporelyd only reads and updates, so the schema is created
// idempotently in case the daemon starts against a fresh file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS prepared_spawn (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		spawn_type TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL DEFAULT 1,
		status TEXT NOT NULL DEFAULT 'prepared',
		sterilization_date DATETIME,
		sterilization_method TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_prepared_spawn_status ON prepared_spawn(status);

	CREATE TABLE IF NOT EXISTS inventory_items (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ListPreparedSpawn returns spawn batches, newest first.
func (s *SQLiteStore) ListPreparedSpawn(ctx context.Context) ([]PreparedSpawn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, spawn_type, quantity, status,
		       sterilization_date, sterilization_method, created_at
		FROM prepared_spawn
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query prepared_spawn: %w", err)
	}
	defer rows.Close()

	var out []PreparedSpawn
	for rows.Next() {
		var ps PreparedSpawn
		var sterilized sql.NullTime
		if err := rows.Scan(&ps.ID, &ps.Name, &ps.SpawnType, &ps.Quantity,
			&ps.Status, &sterilized, &ps.SterilizationMethod, &ps.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prepared_spawn: %w", err)
		}
		if sterilized.Valid {
			t := sterilized.Time
			ps.SterilizationDate = &t
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// ListInventory returns inventory items, newest first.
func (s *SQLiteStore) ListInventory(ctx context.Context) ([]InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, quantity, unit, created_at
		FROM inventory_items
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query inventory_items: %w", err)
	}
	defer rows.Close()

	var out []InventoryItem
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Quantity,
			&it.Unit, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory_items: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// UpdateSpawnStatus applies the post-sterilization update to one record.
func (s *SQLiteStore) UpdateSpawnStatus(ctx context.Context, id string, u SpawnUpdate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE prepared_spawn
		SET status = ?, sterilization_date = ?, sterilization_method = ?
		WHERE id = ?`,
		u.Status, u.SterilizationDate.UTC(), u.SterilizationMethod, id)
	if err != nil {
		return fmt.Errorf("update prepared_spawn %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update prepared_spawn %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/rolereport/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "rolereport.db"

// ErrItemNotFound is returned when an item id does not exist.
var ErrItemNotFound = errors.New("item not found")

// ItemDB stores line items in SQLite.
type ItemDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures ItemDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file when missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an ItemDB in dbDir.
func Open(dbDir string, opts Options) (*ItemDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run 'rolereport items import' first)", dbPath)
		}
		return nil, fmt.Errorf("failed to check database path: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	idb := &ItemDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := idb.createTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return idb, nil
}

// Path returns the database file path.
func (idb *ItemDB) Path() string {
	return idb.dbPath
}

// Close closes the database connection.
func (idb *ItemDB) Close() error {
	return idb.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (idb *ItemDB) createTables(ctx context.Context) error {
	schema := `
	-- seq preserves first-insertion order across upserts
	CREATE TABLE IF NOT EXISTS items (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		value REAL NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := idb.db.ExecContext(ctx, schema)
	return err
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const upsertQuery = `
	INSERT INTO items (id, name, value)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
	`

func upsert(ctx context.Context, e execer, item model.LineItem) error {
	if item.ID == "" {
		return errors.New("failed to upsert item: empty id")
	}
	if _, err := e.ExecContext(ctx, upsertQuery, item.ID, item.Name, item.Value); err != nil {
		return fmt.Errorf("failed to upsert item %q: %w", item.ID, err)
	}
	return nil
}

// UpsertItems inserts items, replacing stored items with the same id, in one
// transaction. Either every item is stored or none is. A replaced item keeps
// its original position.
func (idb *ItemDB) UpsertItems(ctx context.Context, items []model.LineItem) error {
	tx, err := idb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, item := range items {
		if err := upsert(ctx, tx, item); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit items: %w", err)
	}
	return nil
}

// DeleteItems removes the items with ids in one transaction. If any id is
// not stored, nothing is deleted and the error wraps ErrItemNotFound.
func (idb *ItemDB) DeleteItems(ctx context.Context, ids ...string) error {
	tx, err := idb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, id := range ids {
		if err := deleteItem(ctx, tx, id); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

func deleteItem(ctx context.Context, e execer, id string) error {
	result, err := e.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return nil
}

// GetItem returns the item with id.
func (idb *ItemDB) GetItem(ctx context.Context, id string) (model.LineItem, error) {
	var item model.LineItem
	err := idb.db.QueryRowContext(ctx, `SELECT id, name, value FROM items WHERE id = ?`, id).
		Scan(&item.ID, &item.Name, &item.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LineItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	if err != nil {
		return model.LineItem{}, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// Items returns all items in insertion order.
func (idb *ItemDB) Items(ctx context.Context) ([]model.LineItem, error) {
	rows, err := idb.db.QueryContext(ctx, `SELECT id, name, value FROM items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]model.LineItem, 0)
	for rows.Next() {
		var item model.LineItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Value); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Count returns the number of stored items.
func (idb *ItemDB) Count(ctx context.Context) (int, error) {
	var n int
	if err := idb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

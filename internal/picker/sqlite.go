package picker

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteHistory is a bounded FIFO of keys persisted in SQLite, so the
// recently shown set survives restarts.
type SQLiteHistory struct {
	db       *sql.DB
	capacity int
}

// NewSQLiteHistory opens (or creates) the history database at dbPath.
// ":memory:" gives a private in-memory database.
func NewSQLiteHistory(dbPath string, capacity int) (*SQLiteHistory, error) {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps ":memory:" databases consistent across calls
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS recently_shown (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			shown_at INTEGER NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteHistory{db: db, capacity: capacity}, nil
}

// Close closes the database connection.
func (h *SQLiteHistory) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Recent returns the stored keys, oldest first.
func (h *SQLiteHistory) Recent(ctx context.Context) ([]string, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT key FROM recently_shown ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return keys, nil
}

// Push appends key and trims the table to capacity, oldest rows first.
func (h *SQLiteHistory) Push(ctx context.Context, key string) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO recently_shown (key, shown_at) VALUES (?, ?)`,
		key, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to insert key: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM recently_shown
		WHERE seq NOT IN (
			SELECT seq FROM recently_shown ORDER BY seq DESC LIMIT ?
		)
	`, h.capacity); err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Reset removes every key.
func (h *SQLiteHistory) Reset(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM recently_shown`); err != nil {
		return fmt.Errorf("failed to reset history: %w", err)
	}
	return nil
}

// Count returns the number of stored keys.
func (h *SQLiteHistory) Count(ctx context.Context) (int, error) {
	var count int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recently_shown`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

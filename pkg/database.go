package pkg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"sky-scheduling/logger"
)

// ErrNotFound is returned when a lookup by key matches no row
var ErrNotFound = errors.New("not found")

const (
	JobsTableName         = "jobs"
	OrderDetailsTableName = "order_details"
	LoginsTableName       = "logins"
)

// Database wraps the shared SQLite handle. It is opened once at startup and
// handed to each manager.
type Database struct {
	DB   *sql.DB
	path string
}

// OpenDatabase opens (creating if needed) the SQLite file at path with
// foreign keys enforced, and makes sure the schema exists.
func OpenDatabase(ctx context.Context, path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error.Printf("Failed to create database directory: %v", err)
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=1", path))
	if err != nil {
		logger.Error.Printf("Failed to open database %s: %v", path, err)
		return nil, err
	}
	// one writer at a time; sqlite serializes anyway
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		logger.Error.Printf("Failed to connect to database %s: %v", path, err)
		return nil, err
	}

	db := &Database{DB: conn, path: path}
	if err := db.Setup(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info.Printf("Database opened at %s", path)
	return db, nil
}

// Setup creates any missing tables
func (d *Database) Setup(ctx context.Context) error {
	if _, err := d.DB.ExecContext(ctx, GetSetupSQL()); err != nil {
		logger.Error.Printf("Failed to create schema: %v", err)
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Path returns the file the database was opened from
func (d *Database) Path() string {
	return d.path
}

func (d *Database) Close() error {
	logger.Info.Printf("Closing database %s", d.path)
	return d.DB.Close()
}

// inTx runs fn inside a transaction, rolling back if fn fails
func (d *Database) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error.Printf("Rollback failed: %v", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func GetSetupSQL() string {
	return `
CREATE TABLE IF NOT EXISTS jobs
(
    ship_date        TEXT,
    job_id           TEXT PRIMARY KEY,
    customer_name    TEXT    NOT NULL DEFAULT '',
    customer_po      TEXT    NOT NULL DEFAULT '',
    proof_spec_date  datetime,
    job_completed    datetime,
    printing_company INTEGER NOT NULL DEFAULT 0,
    overruns         boolean NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS jobs_ship_date ON jobs (ship_date);

CREATE TABLE IF NOT EXISTS order_details
(
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id       TEXT    NOT NULL,
    product_id     TEXT    NOT NULL DEFAULT '',
    product_detail TEXT    NOT NULL DEFAULT '',
    print_type     INTEGER NOT NULL DEFAULT 0,
    num_colors     INTEGER NOT NULL DEFAULT 0,
    quantity       INTEGER NOT NULL DEFAULT 0,
    item_completed datetime,
    proof_num      INTEGER NOT NULL DEFAULT 0,
    proof_date     datetime,
    thumbnail      TEXT    NOT NULL DEFAULT '',
    FOREIGN KEY (order_id)
        REFERENCES jobs (job_id)
        ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS order_details_order_id ON order_details (order_id);

CREATE TABLE IF NOT EXISTS logins
(
    user_name    TEXT PRIMARY KEY,
    hashed_pass  TEXT    NOT NULL,
    access_level INTEGER NOT NULL DEFAULT 0
);
`
}

// nullableTime converts a completion or proof stamp into a bindable value
func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// timePtr turns a scanned nullable time into the model's pointer form
func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

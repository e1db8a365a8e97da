package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"fleet_datagen/internal/models"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB is the persistence collaborator for generated records
type DB struct {
	db     *sql.DB
	driver string
}

// New opens a database connection and ensures the schema exists.
// For sqlite3 the dsn is a file path; for postgres a connection string.
func New(driver, dsn string) (*DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if driver == DriverSQLite {
		// a single connection keeps pragmas applied and serializes writers
		db.SetMaxOpenConns(1)
		if err := optimizeSQLite(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to optimize database: %w", err)
		}
	}

	database := &DB{db: db, driver: driver}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// optimizeSQLite applies pragmas suited to large batched writes
func optimizeSQLite(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA cache_size=-64000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Driver returns the name of the driver the connection was opened with
func (d *DB) Driver() string {
	return d.driver
}

// initSchema creates the tables if they don't exist. Column types are kept to
// TEXT and INTEGER so the same DDL runs on SQLite and PostgreSQL.
func (d *DB) initSchema() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS bases (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			latitude TEXT NOT NULL,
			longitude TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS operations (
			id TEXT PRIMARY KEY,
			aircraft TEXT NOT NULL,
			description TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			alerts TEXT NOT NULL,
			status TEXT NOT NULL,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS aircraft (
			id TEXT PRIMARY KEY,
			registration_number TEXT NOT NULL,
			model TEXT NOT NULL,
			status TEXT NOT NULL,
			last_inspection_date TEXT NOT NULL,
			location TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS work_orders (
			id TEXT PRIMARY KEY,
			aircraft TEXT NOT NULL,
			description TEXT NOT NULL,
			priority TEXT NOT NULL,
			status TEXT NOT NULL,
			created_date TEXT NOT NULL,
			due_date TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS maintenance_records (
			id TEXT PRIMARY KEY,
			aircraft TEXT NOT NULL,
			maintenance_type TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			description TEXT NOT NULL,
			work_order TEXT NOT NULL,
			supplier_name TEXT NOT NULL,
			technician TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS generation_manifest (
			entity TEXT PRIMARY KEY,
			record_count INTEGER NOT NULL,
			seed TEXT NOT NULL,
			generated_at TEXT NOT NULL
		)`,
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_operations_aircraft_start ON operations(aircraft, start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_work_orders_aircraft ON work_orders(aircraft)`,
		`CREATE INDEX IF NOT EXISTS idx_maintenance_records_work_order ON maintenance_records(work_order)`,
	}

	for _, stmt := range tables {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL
func (d *DB) rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Count returns the number of stored records of an entity type
func (d *DB) Count(ctx context.Context, entity models.EntityType) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+entity.Table()).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", entity.Table(), err)
	}
	return n, nil
}

// Clear removes every record of an entity type together with its manifest
// entry and returns how many records were deleted
func (d *DB) Clear(ctx context.Context, entity models.EntityType) (int64, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM "+entity.Table())
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", entity.Table(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if _, err := tx.ExecContext(ctx, d.rebind("DELETE FROM generation_manifest WHERE entity = ?"), string(entity)); err != nil {
		return 0, fmt.Errorf("failed to clear manifest for %s: %w", entity, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return n, nil
}

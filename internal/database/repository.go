package database

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"fleet_datagen/internal/models"
)

// Repository stores the records of one entity type
type Repository[T any] interface {
	// Count returns the number of stored records
	Count(ctx context.Context) (int, error)
	// UpsertBatch writes records in a single transaction, replacing any with the same id
	UpsertBatch(ctx context.Context, records []T) error
	// FetchAll returns every record, sorted by the given columns when any are provided
	FetchAll(ctx context.Context, orderBy ...string) ([]T, error)
	// Clear removes every record and returns how many were deleted
	Clear(ctx context.Context) (int64, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// tableDef maps a record type onto its table. The first column is the primary key.
type tableDef[T any] struct {
	entity  models.EntityType
	columns []string
	values  func(T) ([]any, error)
	scan    func(rowScanner) (T, error)
}

type repository[T any] struct {
	db  *DB
	def tableDef[T]
}

func newRepository[T any](db *DB, def tableDef[T]) Repository[T] {
	return &repository[T]{db: db, def: def}
}

func (r *repository[T]) table() string {
	return r.def.entity.Table()
}

func (r *repository[T]) Count(ctx context.Context) (int, error) {
	return r.db.Count(ctx, r.def.entity)
}

func (r *repository[T]) Clear(ctx context.Context) (int64, error) {
	return r.db.Clear(ctx, r.def.entity)
}

func (r *repository[T]) upsertQuery() string {
	cols := r.def.columns
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	updates := make([]string, 0, len(cols)-1)
	for _, c := range cols[1:] {
		updates = append(updates, c+" = excluded."+c)
	}

	return r.db.rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		r.table(),
		strings.Join(cols, ", "),
		placeholders,
		cols[0],
		strings.Join(updates, ", "),
	))
}

// UpsertBatch inserts or replaces records in a single transaction
func (r *repository[T]) UpsertBatch(ctx context.Context, records []T) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, r.upsertQuery())
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		args, err := r.def.values(rec)
		if err != nil {
			return fmt.Errorf("failed to encode %s record: %w", r.def.entity, err)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to upsert into %s: %w", r.table(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// FetchAll reads back every record. Ordering columns must belong to the table.
func (r *repository[T]) FetchAll(ctx context.Context, orderBy ...string) ([]T, error) {
	for _, col := range orderBy {
		if !slices.Contains(r.def.columns, col) {
			return nil, fmt.Errorf("cannot order %s by unknown column %q", r.table(), col)
		}
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(r.def.columns, ", "), r.table())
	if len(orderBy) > 0 {
		query += " ORDER BY " + strings.Join(orderBy, ", ")
	}

	rows, err := r.db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table(), err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := r.def.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.table(), err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", r.table(), err)
	}

	return out, nil
}

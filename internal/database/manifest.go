package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fleet_datagen/internal/models"
)

// Manifest records that a generation stage ran to completion
type Manifest struct {
	Entity      models.EntityType
	RecordCount int
	Seed        uint64
	GeneratedAt time.Time
}

// GetManifest returns the manifest for entity, or nil if the stage has not completed
func (d *DB) GetManifest(ctx context.Context, entity models.EntityType) (*Manifest, error) {
	var (
		m           = Manifest{Entity: entity}
		seed        string
		generatedAt string
	)
	err := d.db.QueryRowContext(ctx,
		d.rebind("SELECT record_count, seed, generated_at FROM generation_manifest WHERE entity = ?"),
		string(entity),
	).Scan(&m.RecordCount, &seed, &generatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest for %s: %w", entity, err)
	}

	if m.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid manifest seed %q: %w", seed, err)
	}
	if m.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt); err != nil {
		return nil, fmt.Errorf("invalid manifest timestamp %q: %w", generatedAt, err)
	}
	return &m, nil
}

// PutManifest inserts or replaces the manifest for m.Entity
func (d *DB) PutManifest(ctx context.Context, m Manifest) error {
	_, err := d.db.ExecContext(ctx, d.rebind(`INSERT INTO generation_manifest (entity, record_count, seed, generated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (entity) DO UPDATE SET
			record_count = excluded.record_count,
			seed = excluded.seed,
			generated_at = excluded.generated_at`),
		string(m.Entity),
		m.RecordCount,
		strconv.FormatUint(m.Seed, 10),
		m.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write manifest for %s: %w", m.Entity, err)
	}
	return nil
}

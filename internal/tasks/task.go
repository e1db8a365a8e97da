// Package tasks implements one generation stage per entity type. Every stage
// starts with the same explicit precondition check: skip when the entity is
// already populated, refuse when a prerequisite is not. A stage that does run
// first clears its own leftovers and everything derived from it.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fleet_datagen/internal/catalog"
	"fleet_datagen/internal/database"
	"fleet_datagen/internal/models"
	"fleet_datagen/internal/random"
	"fleet_datagen/internal/scheduler"
)

// Task generates the records of one entity type and returns a report line
type Task interface {
	Entity() models.EntityType
	Run(ctx context.Context) (string, error)
}

// Settings holds the run parameters shared by the stages
type Settings struct {
	Aircraft  int
	Bases     int
	Horizon   models.Horizon
	BatchSize int

	MinDaily        int
	MaxDaily        int
	MinDurationDays int
	MaxDurationDays int
	ReleasePolicy   scheduler.ReleasePolicy

	// Expected record counts per entity type; missing or zero disables the check
	Expected map[models.EntityType]int
}

// Env is what every stage runs against. Rand is the single seeded stream,
// consumed by the stages in generation order.
type Env struct {
	DB       *database.DB
	Catalog  *catalog.Catalog
	Rand     *random.Source
	Settings Settings
	Now      func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Populated reports whether a stage for entity completed and its records are
// all still present: the stored count equals the count the stage recorded.
func (e *Env) Populated(ctx context.Context, entity models.EntityType) (bool, error) {
	m, err := e.DB.GetManifest(ctx, entity)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}
	n, err := e.DB.Count(ctx, entity)
	if err != nil {
		return false, err
	}
	return n == m.RecordCount, nil
}

// reset removes leftover records of entity and of every type derived from it,
// dependents first, so a regenerated stream never sits next to stale rows or
// next to records derived from the stream it replaces
func (e *Env) reset(ctx context.Context, entity models.EntityType) error {
	for _, target := range append(entity.Dependents(), entity) {
		n, err := e.DB.Clear(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to reset %s data: %w", target.DisplayName(), err)
		}
		if n > 0 {
			slog.Info("Removed stale records before regeneration",
				"entity", string(target),
				"regenerating", string(entity),
				"deleted", n,
			)
		}
	}
	return nil
}

// stage is the common shape of a generation task
type stage[T any] struct {
	entity   models.EntityType
	repo     database.Repository[T]
	generate func(ctx context.Context) ([]T, error)
}

func (s stage[T]) run(ctx context.Context, env *Env) (string, error) {
	done, err := env.Populated(ctx, s.entity)
	if err != nil {
		return "", fmt.Errorf("failed to check %s data: %w", s.entity.DisplayName(), err)
	}
	if done {
		slog.Info("Stage already populated, skipping", "entity", string(s.entity))
		return fmt.Sprintf("%s data already exists. Skipping data generation.", s.entity.DisplayName()), nil
	}

	for _, req := range models.Prerequisites[s.entity] {
		ok, err := env.Populated(ctx, req)
		if err != nil {
			return "", fmt.Errorf("failed to check %s data: %w", req.DisplayName(), err)
		}
		if !ok {
			slog.Warn("Stage prerequisite missing", "entity", string(s.entity), "requires", string(req))
			return fmt.Sprintf("%s data must be generated before %s data. Please generate %s data first.",
				req.DisplayName(), s.entity.DisplayName(), req.DisplayName()), nil
		}
	}

	if err := env.reset(ctx, s.entity); err != nil {
		return "", err
	}

	started := env.now()
	records, err := s.generate(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s data: %w", s.entity.DisplayName(), err)
	}

	if err := writeInBatches(ctx, s.repo, records, env.Settings.BatchSize); err != nil {
		return "", fmt.Errorf("failed to store %s data: %w", s.entity.DisplayName(), err)
	}

	stored, err := s.repo.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to count %s data: %w", s.entity.DisplayName(), err)
	}

	if err := env.DB.PutManifest(ctx, database.Manifest{
		Entity:      s.entity,
		RecordCount: len(records),
		Seed:        env.Rand.Seed(),
		GeneratedAt: env.now(),
	}); err != nil {
		return "", err
	}

	slog.Info("Stage complete",
		"entity", string(s.entity),
		"generated", len(records),
		"stored", stored,
		"duration", env.now().Sub(started),
	)

	return report(s.entity, env.Settings.Expected[s.entity], len(records), stored), nil
}

// report renders the outcome of a stage. The stored count is compared with the
// configured target when there is one, otherwise with what was generated.
func report(entity models.EntityType, target, generated, stored int) string {
	expected := generated
	if target > 0 {
		expected = target
	}
	if stored != expected {
		slog.Warn("Record count mismatch", "entity", string(entity), "expected", expected, "stored", stored)
		return fmt.Sprintf("Warning: Expected to generate %d %s, but generated %d.", expected, entity.Plural(), stored)
	}
	return fmt.Sprintf("Generated %d %s", stored, entity.Plural())
}

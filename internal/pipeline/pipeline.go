// Package pipeline wires configuration, storage, the catalog and the seeded
// random stream into the ordered generation stages.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fleet_datagen/internal/catalog"
	"fleet_datagen/internal/config"
	"fleet_datagen/internal/database"
	"fleet_datagen/internal/generator"
	"fleet_datagen/internal/models"
	"fleet_datagen/internal/random"
	"fleet_datagen/internal/scheduler"
	"fleet_datagen/internal/tasks"
)

// Pipeline runs the generation stages in dependency order against one store
type Pipeline struct {
	db    *database.DB
	env   *tasks.Env
	tasks []tasks.Task
}

// New opens the configured store, loads the catalog and builds the stages
func New(cfg *config.Config) (*Pipeline, error) {
	horizon, err := cfg.HorizonRange(time.Now())
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if cfg.Fleet.Bases > cat.MaxBases() {
		return nil, fmt.Errorf("fleet.bases is %d but the catalog describes at most %d bases: %w",
			cfg.Fleet.Bases, cat.MaxBases(), generator.ErrTooManyBases)
	}

	db, err := database.New(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return newPipeline(db, cat, random.New(cfg.Seed), settingsFrom(cfg, horizon)), nil
}

func newPipeline(db *database.DB, cat *catalog.Catalog, rng *random.Source, s tasks.Settings) *Pipeline {
	env := &tasks.Env{
		DB:       db,
		Catalog:  cat,
		Rand:     rng,
		Settings: s,
	}

	return &Pipeline{
		db:  db,
		env: env,
		tasks: []tasks.Task{
			tasks.NewBaseTask(env),
			tasks.NewOperationTask(env),
			tasks.NewAircraftTask(env),
			tasks.NewWorkOrderTask(env),
			tasks.NewMaintenanceRecordTask(env),
		},
	}
}

func settingsFrom(cfg *config.Config, horizon models.Horizon) tasks.Settings {
	return tasks.Settings{
		Aircraft:        cfg.Fleet.Aircraft,
		Bases:           cfg.Fleet.Bases,
		Horizon:         horizon,
		BatchSize:       cfg.BatchSize,
		MinDaily:        cfg.Scheduler.MinDaily,
		MaxDaily:        cfg.Scheduler.MaxDaily,
		MinDurationDays: cfg.Scheduler.MinDurationDays,
		MaxDurationDays: cfg.Scheduler.MaxDurationDays,
		ReleasePolicy:   scheduler.ReleasePolicy(cfg.Scheduler.ReleasePolicy),
		Expected: map[models.EntityType]int{
			models.EntityOperation:         cfg.Expected.Operations,
			models.EntityWorkOrder:         cfg.Expected.WorkOrders,
			models.EntityMaintenanceRecord: cfg.Expected.MaintenanceRecords,
		},
	}
}

// Close closes the underlying store
func (p *Pipeline) Close() error {
	return p.db.Close()
}

// GenerateAll runs every stage in order and returns one report line per stage.
// A stage error stops the run; the lines of the stages before it are still returned.
func (p *Pipeline) GenerateAll(ctx context.Context) (string, error) {
	slog.Info("Starting generation",
		"seed", p.env.Rand.Seed(),
		"horizon_start", models.FormatDate(p.env.Settings.Horizon.Start),
		"horizon_days", p.env.Settings.Horizon.Days(),
		"aircraft", p.env.Settings.Aircraft,
		"bases", p.env.Settings.Bases,
	)

	var lines []string
	for _, t := range p.tasks {
		if err := ctx.Err(); err != nil {
			return strings.Join(lines, "\n"), err
		}

		line, err := t.Run(ctx)
		if err != nil {
			return strings.Join(lines, "\n"), fmt.Errorf("%s stage failed: %w", t.Entity().DisplayName(), err)
		}
		lines = append(lines, line)
	}

	slog.Info("Generation finished")
	return strings.Join(lines, "\n"), nil
}

// ClearAll deletes every generated record, dependents first, and reports what
// was removed along with anything that remained afterwards
func (p *Pipeline) ClearAll(ctx context.Context) (string, error) {
	var lines []string
	for _, e := range models.ClearOrder {
		n, err := p.db.Clear(ctx, e)
		if err != nil {
			return strings.Join(lines, "\n"), fmt.Errorf("failed to clear %s data: %w", e.DisplayName(), err)
		}
		lines = append(lines, fmt.Sprintf("Cleared %d %s", n, e.Plural()))
		slog.Info("Cleared records", "entity", string(e), "deleted", n)

		remaining, err := p.db.Count(ctx, e)
		if err != nil {
			return strings.Join(lines, "\n"), fmt.Errorf("failed to count %s data: %w", e.DisplayName(), err)
		}
		if remaining > 0 {
			lines = append(lines, fmt.Sprintf("Warning: Not all %s data was cleared. There are still %d records remaining.",
				e.DisplayName(), remaining))
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Counts returns the stored record count of every entity type
func (p *Pipeline) Counts(ctx context.Context) (map[models.EntityType]int, error) {
	counts := make(map[models.EntityType]int, len(models.GenerationOrder))
	for _, e := range models.GenerationOrder {
		n, err := p.db.Count(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s data: %w", e.DisplayName(), err)
		}
		counts[e] = n
	}
	return counts, nil
}

// Report renders the stored counts in generation order
func (p *Pipeline) Report(ctx context.Context) (string, error) {
	counts, err := p.Counts(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, e := range models.GenerationOrder {
		fmt.Fprintf(&b, "%s: %d\n", e.Plural(), counts[e])
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

package tasks

import (
	"context"
	"fmt"

	"fleet_datagen/internal/generator"
	"fleet_datagen/internal/models"
)

// AircraftTask generates aircraft static attributes, locating each aircraft
// at the destination of its latest stored operation
type AircraftTask struct {
	env *Env
}

// NewAircraftTask returns the stage generating aircraft against env
func NewAircraftTask(env *Env) *AircraftTask {
	return &AircraftTask{env: env}
}

// Entity returns the entity type the stage produces
func (t *AircraftTask) Entity() models.EntityType {
	return models.EntityAircraft
}

// Run generates and stores aircraft unless they already exist, and returns a report line
func (t *AircraftTask) Run(ctx context.Context) (string, error) {
	return stage[models.Aircraft]{
		entity:   models.EntityAircraft,
		repo:     t.env.DB.Aircraft(),
		generate: t.generate,
	}.run(ctx, t.env)
}

func (t *AircraftTask) generate(ctx context.Context) ([]models.Aircraft, error) {
	ops, err := t.env.DB.Operations().FetchAll(ctx, "start_date", "id")
	if err != nil {
		return nil, fmt.Errorf("failed to read operations: %w", err)
	}

	s := t.env.Settings
	return generator.GenerateAircraft(t.env.Rand, t.env.Catalog, generator.AircraftParams{
		Aircraft: s.Aircraft,
		Bases:    s.Bases,
		Horizon:  s.Horizon,
	}, ops), nil
}

package tasks

import (
	"context"

	"fleet_datagen/internal/generator"
	"fleet_datagen/internal/models"
)

// BaseTask generates the bases
type BaseTask struct {
	env *Env
}

// NewBaseTask returns the stage generating bases against env
func NewBaseTask(env *Env) *BaseTask {
	return &BaseTask{env: env}
}

// Entity returns the entity type the stage produces
func (t *BaseTask) Entity() models.EntityType {
	return models.EntityBase
}

// Run generates and stores bases unless they already exist, and returns a report line
func (t *BaseTask) Run(ctx context.Context) (string, error) {
	return stage[models.Base]{
		entity: models.EntityBase,
		repo:   t.env.DB.Bases(),
		generate: func(context.Context) ([]models.Base, error) {
			return generator.GenerateBases(t.env.Catalog, t.env.Settings.Bases)
		},
	}.run(ctx, t.env)
}

package tasks

import (
	"context"
	"fmt"

	"fleet_datagen/internal/generator"
	"fleet_datagen/internal/models"
)

// WorkOrderTask derives work orders from the alerts of the stored operations
type WorkOrderTask struct {
	env *Env
}

// NewWorkOrderTask returns the stage generating work orders against env
func NewWorkOrderTask(env *Env) *WorkOrderTask {
	return &WorkOrderTask{env: env}
}

// Entity returns the entity type the stage produces
func (t *WorkOrderTask) Entity() models.EntityType {
	return models.EntityWorkOrder
}

// Run generates and stores work orders unless they already exist, and returns a report line
func (t *WorkOrderTask) Run(ctx context.Context) (string, error) {
	return stage[models.WorkOrder]{
		entity:   models.EntityWorkOrder,
		repo:     t.env.DB.WorkOrders(),
		generate: t.generate,
	}.run(ctx, t.env)
}

func (t *WorkOrderTask) generate(ctx context.Context) ([]models.WorkOrder, error) {
	ops, err := t.env.DB.Operations().FetchAll(ctx, "start_date", "id")
	if err != nil {
		return nil, fmt.Errorf("failed to read operations: %w", err)
	}
	return generator.DeriveWorkOrders(t.env.Rand, t.env.Catalog, ops, t.env.Settings.Horizon)
}

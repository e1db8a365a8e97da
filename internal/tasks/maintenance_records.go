package tasks

import (
	"context"
	"fmt"

	"fleet_datagen/internal/generator"
	"fleet_datagen/internal/models"
)

// MaintenanceRecordTask derives maintenance records from the stored work orders
type MaintenanceRecordTask struct {
	env *Env
}

// NewMaintenanceRecordTask returns the stage generating maintenance records against env
func NewMaintenanceRecordTask(env *Env) *MaintenanceRecordTask {
	return &MaintenanceRecordTask{env: env}
}

// Entity returns the entity type the stage produces
func (t *MaintenanceRecordTask) Entity() models.EntityType {
	return models.EntityMaintenanceRecord
}

// Run generates and stores maintenance records unless they already exist, and returns a report line
func (t *MaintenanceRecordTask) Run(ctx context.Context) (string, error) {
	return stage[models.MaintenanceRecord]{
		entity:   models.EntityMaintenanceRecord,
		repo:     t.env.DB.MaintenanceRecords(),
		generate: t.generate,
	}.run(ctx, t.env)
}

func (t *MaintenanceRecordTask) generate(ctx context.Context) ([]models.MaintenanceRecord, error) {
	orders, err := t.env.DB.WorkOrders().FetchAll(ctx, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to read work orders: %w", err)
	}
	return generator.DeriveMaintenanceRecords(t.env.Rand, t.env.Catalog, orders)
}

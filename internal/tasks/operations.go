package tasks

import (
	"context"

	"fleet_datagen/internal/models"
	"fleet_datagen/internal/scheduler"
)

// OperationTask runs the scheduler simulation over the horizon
type OperationTask struct {
	env *Env
}

// NewOperationTask returns the stage generating operations against env
func NewOperationTask(env *Env) *OperationTask {
	return &OperationTask{env: env}
}

// Entity returns the entity type the stage produces
func (t *OperationTask) Entity() models.EntityType {
	return models.EntityOperation
}

// Run generates and stores operations unless they already exist, and returns a report line
func (t *OperationTask) Run(ctx context.Context) (string, error) {
	return stage[models.Operation]{
		entity:   models.EntityOperation,
		repo:     t.env.DB.Operations(),
		generate: t.generate,
	}.run(ctx, t.env)
}

func (t *OperationTask) generate(context.Context) ([]models.Operation, error) {
	s := t.env.Settings
	cat := t.env.Catalog

	sched, err := scheduler.New(scheduler.Config{
		Aircraft:        s.Aircraft,
		Bases:           s.Bases,
		Horizon:         s.Horizon,
		MinDaily:        s.MinDaily,
		MaxDaily:        s.MaxDaily,
		MinDurationDays: s.MinDurationDays,
		MaxDurationDays: s.MaxDurationDays,
		Policy:          s.ReleasePolicy,
		Descriptions:    cat.Operations.Descriptions,
		Statuses:        cat.Operations.Statuses,
		Alerts:          cat.AlertNames(),
		MaxAlerts:       cat.Operations.MaxAlerts,
	})
	if err != nil {
		return nil, err
	}

	res, err := sched.Run(t.env.Rand)
	if err != nil {
		return nil, err
	}
	return res.Operations, nil
}

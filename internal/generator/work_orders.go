package generator

import (
	"fmt"

	"fleet_datagen/internal/catalog"
	"fleet_datagen/internal/models"
	"fleet_datagen/internal/random"
)

// Work order due dates fall this many days after the operation start
const (
	MinDueDays = 1
	MaxDueDays = 5
)

// DeriveWorkOrders emits one work order per alert of every operation, in
// operation then alert order. An alert missing from the catalog aborts the
// derivation with an error wrapping catalog.ErrUnmapped.
func DeriveWorkOrders(rng *random.Source, cat *catalog.Catalog, ops []models.Operation, horizon models.Horizon) ([]models.WorkOrder, error) {
	var orders []models.WorkOrder

	for _, op := range ops {
		for _, alert := range op.Alerts {
			description, priority, err := cat.WorkOrderFor(alert)
			if err != nil {
				return nil, fmt.Errorf("operation %s: %w", op.ID, err)
			}

			due := models.AddDays(op.StartDate, rng.IntRange(MinDueDays, MaxDueDays))

			status := models.WorkOrderOpen
			if due.Before(horizon.End) {
				status = models.WorkOrderClosed
			}

			orders = append(orders, models.WorkOrder{
				ID:          models.WorkOrderID(len(orders) + 1),
				Aircraft:    op.Aircraft,
				Description: description,
				Priority:    priority,
				Status:      status,
				CreatedDate: op.StartDate,
				DueDate:     due,
			})
		}
	}

	return orders, nil
}

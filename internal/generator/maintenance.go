package generator

import (
	"fmt"

	"fleet_datagen/internal/catalog"
	"fleet_datagen/internal/models"
	"fleet_datagen/internal/random"
)

// Each work order yields between MinRecordsPerOrder and MaxRecordsPerOrder records
const (
	MinRecordsPerOrder = 2
	MaxRecordsPerOrder = 4
)

// DeriveMaintenanceRecords emits 2-4 records per work order. Every record
// satisfies CreatedDate <= StartDate < EndDate <= DueDate of its work order.
// A work order description missing from the catalog aborts the derivation
// with an error wrapping catalog.ErrUnmapped.
func DeriveMaintenanceRecords(rng *random.Source, cat *catalog.Catalog, orders []models.WorkOrder) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord

	for _, wo := range orders {
		actions, err := cat.RemediationsFor(wo.Description)
		if err != nil {
			return nil, fmt.Errorf("work order %s: %w", wo.ID, err)
		}

		total := models.DaysBetween(wo.CreatedDate, wo.DueDate)
		if total < 1 {
			return nil, fmt.Errorf("work order %s: due date %s is not after created date %s",
				wo.ID, models.FormatDate(wo.DueDate), models.FormatDate(wo.CreatedDate))
		}

		n := rng.IntRange(MinRecordsPerOrder, MaxRecordsPerOrder)
		for i := 0; i < n; i++ {
			offset := rng.IntRange(0, total-1)
			duration := rng.IntRange(1, total-offset)
			start := models.AddDays(wo.CreatedDate, offset)

			records = append(records, models.MaintenanceRecord{
				ID:          models.MaintenanceRecordID(wo.ID, i+1),
				Aircraft:    wo.Aircraft,
				Type:        random.Choice(rng, cat.Maintenance.Types),
				StartDate:   start,
				EndDate:     models.AddDays(start, duration),
				Description: random.Choice(rng, actions),
				WorkOrder:   wo.ID,
				Supplier:    random.Choice(rng, cat.Maintenance.Suppliers),
				Technician:  random.Choice(rng, cat.Maintenance.Technicians),
			})
		}
	}

	return records, nil
}

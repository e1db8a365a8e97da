package database

import (
	"encoding/json"
	"fmt"
	"time"

	"fleet_datagen/internal/models"
)

// Bases returns the repository for bases
func (d *DB) Bases() Repository[models.Base] {
	return newRepository(d, tableDef[models.Base]{
		entity:  models.EntityBase,
		columns: []string{"id", "name", "latitude", "longitude"},
		values: func(b models.Base) ([]any, error) {
			return []any{b.ID, b.Name, b.Latitude.String(), b.Longitude.String()}, nil
		},
		scan: func(row rowScanner) (models.Base, error) {
			var b models.Base
			err := row.Scan(&b.ID, &b.Name, &b.Latitude, &b.Longitude)
			return b, err
		},
	})
}

// Operations returns the repository for operations
func (d *DB) Operations() Repository[models.Operation] {
	return newRepository(d, tableDef[models.Operation]{
		entity:  models.EntityOperation,
		columns: []string{"id", "aircraft", "description", "start_date", "end_date", "alerts", "status", "origin", "destination"},
		values: func(op models.Operation) ([]any, error) {
			alerts := op.Alerts
			if alerts == nil {
				alerts = []string{}
			}
			alertsJSON, err := json.Marshal(alerts)
			if err != nil {
				return nil, fmt.Errorf("failed to encode alerts: %w", err)
			}
			return []any{
				op.ID, op.Aircraft, op.Description,
				models.FormatDate(op.StartDate), models.FormatDate(op.EndDate),
				string(alertsJSON), op.Status, op.Origin, op.Destination,
			}, nil
		},
		scan: func(row rowScanner) (models.Operation, error) {
			var (
				op                 models.Operation
				start, end, alerts string
			)
			if err := row.Scan(&op.ID, &op.Aircraft, &op.Description, &start, &end, &alerts, &op.Status, &op.Origin, &op.Destination); err != nil {
				return op, err
			}
			if err := json.Unmarshal([]byte(alerts), &op.Alerts); err != nil {
				return op, fmt.Errorf("invalid alerts for %s: %w", op.ID, err)
			}
			if err := parseDate(&op.StartDate, start); err != nil {
				return op, err
			}
			return op, parseDate(&op.EndDate, end)
		},
	})
}

// Aircraft returns the repository for aircraft
func (d *DB) Aircraft() Repository[models.Aircraft] {
	return newRepository(d, tableDef[models.Aircraft]{
		entity:  models.EntityAircraft,
		columns: []string{"id", "registration_number", "model", "status", "last_inspection_date", "location"},
		values: func(ac models.Aircraft) ([]any, error) {
			return []any{
				ac.ID, ac.RegistrationNumber, ac.Model, ac.Status,
				models.FormatDate(ac.LastInspectionDate), ac.Location,
			}, nil
		},
		scan: func(row rowScanner) (models.Aircraft, error) {
			var (
				ac         models.Aircraft
				inspection string
			)
			if err := row.Scan(&ac.ID, &ac.RegistrationNumber, &ac.Model, &ac.Status, &inspection, &ac.Location); err != nil {
				return ac, err
			}
			return ac, parseDate(&ac.LastInspectionDate, inspection)
		},
	})
}

// WorkOrders returns the repository for work orders
func (d *DB) WorkOrders() Repository[models.WorkOrder] {
	return newRepository(d, tableDef[models.WorkOrder]{
		entity:  models.EntityWorkOrder,
		columns: []string{"id", "aircraft", "description", "priority", "status", "created_date", "due_date"},
		values: func(wo models.WorkOrder) ([]any, error) {
			return []any{
				wo.ID, wo.Aircraft, wo.Description, wo.Priority, wo.Status,
				models.FormatDate(wo.CreatedDate), models.FormatDate(wo.DueDate),
			}, nil
		},
		scan: func(row rowScanner) (models.WorkOrder, error) {
			var (
				wo           models.WorkOrder
				created, due string
			)
			if err := row.Scan(&wo.ID, &wo.Aircraft, &wo.Description, &wo.Priority, &wo.Status, &created, &due); err != nil {
				return wo, err
			}
			if err := parseDate(&wo.CreatedDate, created); err != nil {
				return wo, err
			}
			return wo, parseDate(&wo.DueDate, due)
		},
	})
}

// MaintenanceRecords returns the repository for maintenance records
func (d *DB) MaintenanceRecords() Repository[models.MaintenanceRecord] {
	return newRepository(d, tableDef[models.MaintenanceRecord]{
		entity: models.EntityMaintenanceRecord,
		columns: []string{"id", "aircraft", "maintenance_type", "start_date", "end_date",
			"description", "work_order", "supplier_name", "technician"},
		values: func(r models.MaintenanceRecord) ([]any, error) {
			return []any{
				r.ID, r.Aircraft, r.Type,
				models.FormatDate(r.StartDate), models.FormatDate(r.EndDate),
				r.Description, r.WorkOrder, r.Supplier, r.Technician,
			}, nil
		},
		scan: func(row rowScanner) (models.MaintenanceRecord, error) {
			var (
				r          models.MaintenanceRecord
				start, end string
			)
			if err := row.Scan(&r.ID, &r.Aircraft, &r.Type, &start, &end, &r.Description, &r.WorkOrder, &r.Supplier, &r.Technician); err != nil {
				return r, err
			}
			if err := parseDate(&r.StartDate, start); err != nil {
				return r, err
			}
			return r, parseDate(&r.EndDate, end)
		},
	})
}

func parseDate(dst *time.Time, s string) error {
	t, err := models.ParseDate(s)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

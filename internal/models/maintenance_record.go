package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// maintenanceRecordNamespace scopes the name-based record ids
var maintenanceRecordNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("fleet_datagen.maintenance_record"))

// MaintenanceRecord is a logged unit of work performed against a work order
type MaintenanceRecord struct {
	ID          string    // UUID derived from the work order id and record position
	Aircraft    string    // Aircraft id
	Type        string    // SCHEDULED, UNSCHEDULED or EMERGENCY
	StartDate   time.Time // Within the work order window
	EndDate     time.Time // After StartDate, no later than the work order due date
	Description string    // Remediation action
	WorkOrder   string    // Work order id
	Supplier    string
	Technician  string
}

// MaintenanceRecordID returns the id of the n-th record (1-based) of a work
// order. The same work order and position always yield the same id.
func MaintenanceRecordID(workOrder string, n int) string {
	return uuid.NewSHA1(maintenanceRecordNamespace, []byte(fmt.Sprintf("%s#%d", workOrder, n))).String()
}

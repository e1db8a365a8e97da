package models

import "time"

// Work order status values
const (
	WorkOrderOpen   = "OPEN"
	WorkOrderClosed = "CLOSED"
)

// WorkOrder is a maintenance task generated from one alert raised during an operation
type WorkOrder struct {
	ID          string    // WORK-ORDER-n
	Aircraft    string    // Copied from the originating operation
	Description string    // Mapped from the alert
	Priority    string    // HIGH, MEDIUM or LOW, mapped from the alert
	Status      string    // OPEN or CLOSED
	CreatedDate time.Time // Start date of the originating operation
	DueDate     time.Time // CreatedDate plus 1..5 days
}

// WorkOrderID returns the identifier of the n-th work order (1-based)
func WorkOrderID(n int) string {
	return formatID("WORK-ORDER", n)
}

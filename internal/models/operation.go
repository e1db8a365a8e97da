package models

import "time"

// Operation is a time-bounded mission assigned to exactly one aircraft
type Operation struct {
	ID          string    // OPERATION-n, sequential in emission order
	Aircraft    string    // Aircraft id
	Description string    // Mission, Training or Test
	StartDate   time.Time // Day the aircraft was assigned
	EndDate     time.Time // Day the aircraft is released, always after StartDate
	Alerts      []string  // Distinct alert categories raised during the operation
	Status      string    // Planned, In Progress or Completed
	Origin      string    // Base id
	Destination string    // Base id, may equal Origin
}

// OperationID returns the identifier of the n-th operation (1-based)
func OperationID(n int) string {
	return formatID("OPERATION", n)
}

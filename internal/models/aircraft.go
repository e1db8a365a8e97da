package models

import (
	"fmt"
	"time"
)

// Aircraft represents the static attributes of one aircraft in the fleet
type Aircraft struct {
	ID                 string    // Primary key - AIRCRAFT-n
	RegistrationNumber string    // Tail number, e.g. N123AB
	Model              string    // Airframe model, e.g. C130-J
	Status             string    // Ready, In Maintenance, Grounded or Deployed
	LastInspectionDate time.Time // Day of last inspection
	Location           string    // Base id of the last known location
}

// AircraftID returns the identifier of the n-th aircraft (1-based)
func AircraftID(n int) string {
	return formatID("AIRCRAFT", n)
}

func formatID(prefix string, n int) string {
	return fmt.Sprintf("%s-%d", prefix, n)
}

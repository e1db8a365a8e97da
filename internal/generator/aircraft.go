package generator

import (
	"strconv"
	"strings"

	"fleet_datagen/internal/catalog"
	"fleet_datagen/internal/models"
	"fleet_datagen/internal/random"
)

// AircraftParams sizes the aircraft stream
type AircraftParams struct {
	Aircraft int            // Fleet size, AIRCRAFT-1..n
	Bases    int            // Bases a never-assigned aircraft may be parked at
	Horizon  models.Horizon // Inspection dates fall within [Start, End]
}

// LastLocations maps each aircraft to the destination of its latest operation by start date
func LastLocations(ops []models.Operation) map[string]string {
	latest := make(map[string]models.Operation, len(ops))
	for _, op := range ops {
		prev, ok := latest[op.Aircraft]
		if !ok || op.StartDate.After(prev.StartDate) {
			latest[op.Aircraft] = op
		}
	}

	locs := make(map[string]string, len(latest))
	for aircraft, op := range latest {
		locs[aircraft] = op.Destination
	}
	return locs
}

// GenerateAircraft returns the static attributes of every aircraft. Location is
// the last known destination from ops; aircraft that never flew are placed at
// a random base.
func GenerateAircraft(rng *random.Source, cat *catalog.Catalog, p AircraftParams, ops []models.Operation) []models.Aircraft {
	locs := LastLocations(ops)
	statuses, weights := cat.AircraftStatusWeights()
	span := models.DaysBetween(p.Horizon.Start, p.Horizon.End)

	fleet := make([]models.Aircraft, 0, p.Aircraft)
	for i := 1; i <= p.Aircraft; i++ {
		id := models.AircraftID(i)
		ac := models.Aircraft{
			ID:                 id,
			RegistrationNumber: registrationNumber(rng),
			Model:              random.Choice(rng, cat.Aircraft.Models),
			Status:             statuses[random.Weighted(rng, weights)],
			LastInspectionDate: models.AddDays(p.Horizon.Start, rng.IntRange(0, span)),
		}

		if loc, ok := locs[id]; ok {
			ac.Location = loc
		} else {
			ac.Location = models.BaseID(rng.IntRange(1, p.Bases))
		}

		fleet = append(fleet, ac)
	}
	return fleet
}

// registrationNumber returns an N-number such as N042XK
func registrationNumber(rng *random.Source) string {
	var b strings.Builder
	b.WriteByte('N')
	for i := 0; i < 3; i++ {
		b.WriteString(strconv.Itoa(rng.IntRange(0, 9)))
	}
	for i := 0; i < 2; i++ {
		b.WriteByte(byte('A' + rng.IntN(26)))
	}
	return b.String()
}

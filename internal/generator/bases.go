// Package generator builds the non-scheduled record streams: bases, aircraft
// static attributes, and the work orders and maintenance records derived from
// the operation stream.
package generator

import (
	"errors"
	"fmt"

	"fleet_datagen/internal/catalog"
	"fleet_datagen/internal/models"
)

// ErrTooManyBases is returned when more bases are requested than the catalog has locations for
var ErrTooManyBases = errors.New("not enough hard-coded base locations")

// GenerateBases returns n bases placed at the first n catalog locations
func GenerateBases(cat *catalog.Catalog, n int) ([]models.Base, error) {
	if n > cat.MaxBases() {
		return nil, fmt.Errorf("%d bases requested, catalog has %d: %w", n, cat.MaxBases(), ErrTooManyBases)
	}

	bases := make([]models.Base, 0, n)
	for i := 0; i < n; i++ {
		loc := cat.Locations[i]
		bases = append(bases, models.Base{
			ID:        models.BaseID(i + 1),
			Name:      cat.Bases[i],
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		})
	}
	return bases, nil
}

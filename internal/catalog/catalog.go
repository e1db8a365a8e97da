// Package catalog holds the reference tables the generators draw from: base
// names and coordinates, operation categories, the alert to work order
// mapping and the remediation actions for each work order description.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// ErrUnmapped is returned when a category has no entry in its mapping table
var ErrUnmapped = errors.New("unmapped category")

// Location is a hard-coded coordinate pair a base can be placed at
type Location struct {
	City      string          `yaml:"city"`
	Latitude  decimal.Decimal `yaml:"latitude"`
	Longitude decimal.Decimal `yaml:"longitude"`
}

// Alert maps an operation alert to the work order it produces
type Alert struct {
	Name      string `yaml:"name"`
	WorkOrder string `yaml:"work_order"`
	Priority  string `yaml:"priority"`
}

// WeightedValue is a category chosen with probability proportional to Weight
type WeightedValue struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// Catalog is the full set of reference data
type Catalog struct {
	Bases     []string   `yaml:"bases"`
	Locations []Location `yaml:"locations"`

	Operations struct {
		Descriptions []string `yaml:"descriptions"`
		Statuses     []string `yaml:"statuses"`
		MaxAlerts    int      `yaml:"max_alerts"`
	} `yaml:"operations"`

	Alerts       []Alert             `yaml:"alerts"`
	Remediations map[string][]string `yaml:"remediations"`

	Aircraft struct {
		Models   []string        `yaml:"models"`
		Statuses []WeightedValue `yaml:"statuses"`
	} `yaml:"aircraft"`

	Maintenance struct {
		Types       []string `yaml:"types"`
		Suppliers   []string `yaml:"suppliers"`
		Technicians []string `yaml:"technicians"`
	} `yaml:"maintenance"`

	alertIndex map[string]Alert
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML catalog
func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	required := []struct {
		name string
		n    int
	}{
		{"bases", len(c.Bases)},
		{"locations", len(c.Locations)},
		{"operations.descriptions", len(c.Operations.Descriptions)},
		{"operations.statuses", len(c.Operations.Statuses)},
		{"aircraft.models", len(c.Aircraft.Models)},
		{"aircraft.statuses", len(c.Aircraft.Statuses)},
		{"maintenance.types", len(c.Maintenance.Types)},
		{"maintenance.suppliers", len(c.Maintenance.Suppliers)},
		{"maintenance.technicians", len(c.Maintenance.Technicians)},
	}
	for _, r := range required {
		if r.n == 0 {
			return fmt.Errorf("%s must not be empty", r.name)
		}
	}

	if c.Operations.MaxAlerts < 0 || c.Operations.MaxAlerts > len(c.Alerts) {
		return fmt.Errorf("operations.max_alerts must be between 0 and %d, got %d", len(c.Alerts), c.Operations.MaxAlerts)
	}

	var totalWeight float64
	for _, s := range c.Aircraft.Statuses {
		if s.Weight < 0 {
			return fmt.Errorf("aircraft status %q has negative weight", s.Name)
		}
		totalWeight += s.Weight
	}
	if totalWeight <= 0 {
		return fmt.Errorf("aircraft status weights must have a positive sum")
	}

	c.alertIndex = make(map[string]Alert, len(c.Alerts))
	for _, a := range c.Alerts {
		if _, dup := c.alertIndex[a.Name]; dup {
			return fmt.Errorf("duplicate alert %q", a.Name)
		}
		if strings.TrimSpace(a.WorkOrder) == "" || strings.TrimSpace(a.Priority) == "" {
			return fmt.Errorf("alert %q: %w: missing work order description or priority", a.Name, ErrUnmapped)
		}
		if len(c.Remediations[a.WorkOrder]) == 0 {
			return fmt.Errorf("work order description %q: %w: no remediation actions", a.WorkOrder, ErrUnmapped)
		}
		c.alertIndex[a.Name] = a
	}

	return nil
}

// AlertNames returns every alert category in catalog order
func (c *Catalog) AlertNames() []string {
	names := make([]string, len(c.Alerts))
	for i, a := range c.Alerts {
		names[i] = a.Name
	}
	return names
}

// WorkOrderFor returns the work order description and priority for an alert
func (c *Catalog) WorkOrderFor(alert string) (description, priority string, err error) {
	a, ok := c.alertIndex[alert]
	if !ok {
		return "", "", fmt.Errorf("alert %q: %w", alert, ErrUnmapped)
	}
	return a.WorkOrder, a.Priority, nil
}

// RemediationsFor returns the remediation actions for a work order description
func (c *Catalog) RemediationsFor(description string) ([]string, error) {
	actions := c.Remediations[description]
	if len(actions) == 0 {
		return nil, fmt.Errorf("work order description %q: %w", description, ErrUnmapped)
	}
	return actions, nil
}

// MaxBases returns how many distinct bases the catalog can describe
func (c *Catalog) MaxBases() int {
	return min(len(c.Bases), len(c.Locations))
}

// AircraftStatusWeights returns the status names and their weights in parallel slices
func (c *Catalog) AircraftStatusWeights() ([]string, []float64) {
	names := make([]string, len(c.Aircraft.Statuses))
	weights := make([]float64, len(c.Aircraft.Statuses))
	for i, s := range c.Aircraft.Statuses {
		names[i] = s.Name
		weights[i] = s.Weight
	}
	return names, weights
}

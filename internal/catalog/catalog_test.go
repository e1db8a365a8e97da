package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCatalog = `
bases: [Alpha Base]
locations:
  - { city: "Denver, CO", latitude: "39.7392", longitude: "-104.9903" }
operations:
  descriptions: [Mission]
  statuses: [Planned]
  max_alerts: 1
alerts:
  - { name: Fuel Low, work_order: Refuel aircraft, priority: HIGH }
remediations:
  Refuel aircraft: [Filled tanks]
aircraft:
  models: [C130-J]
  statuses: [{ name: Ready, weight: 1 }]
maintenance:
  types: [SCHEDULED]
  suppliers: [Acme]
  technicians: [Pat]
`

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Bases, 10)
	assert.Len(t, c.Locations, 15)
	assert.Equal(t, 10, c.MaxBases())
	assert.Equal(t, 5, c.Operations.MaxAlerts)
	assert.Len(t, c.AlertNames(), 10)
	assert.Equal(t, "37.7749", c.Locations[0].Latitude.String())

	// every alert resolves to a work order with remediation actions
	for _, alert := range c.AlertNames() {
		desc, priority, err := c.WorkOrderFor(alert)
		require.NoError(t, err, alert)
		assert.NotEmpty(t, priority)

		actions, err := c.RemediationsFor(desc)
		require.NoError(t, err, desc)
		assert.Len(t, actions, 5)
	}

	desc, priority, err := c.WorkOrderFor("Air Traffic Control Delay")
	require.NoError(t, err)
	assert.Equal(t, "Complete delayed maintenance procedures", desc)
	assert.Equal(t, "LOW", priority)

	names, weights := c.AircraftStatusWeights()
	assert.Equal(t, []string{"Ready", "In Maintenance", "Grounded", "Deployed"}, names)
	assert.InDeltaSlice(t, []float64{0.5, 0.15, 0.05, 0.3}, weights, 1e-9)
}

func TestLookups_Unmapped(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, _, err = c.WorkOrderFor("Bird Strike")
	assert.ErrorIs(t, err, ErrUnmapped)

	_, err = c.RemediationsFor("Polish the wings")
	assert.ErrorIs(t, err, ErrUnmapped)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr error
	}{
		{
			name:   "malformed yaml",
			mutate: func(string) string { return "bases: [" },
		},
		{
			name: "missing remediation pool",
			mutate: func(s string) string {
				return strings.Replace(s, "Refuel aircraft: [Filled tanks]", "Something else: [x]", 1)
			},
			wantErr: ErrUnmapped,
		},
		{
			name: "alert without priority",
			mutate: func(s string) string {
				return strings.Replace(s, ", priority: HIGH", "", 1)
			},
			wantErr: ErrUnmapped,
		},
		{
			name: "too many alerts per operation",
			mutate: func(s string) string {
				return strings.Replace(s, "max_alerts: 1", "max_alerts: 3", 1)
			},
		},
		{
			name: "empty technicians",
			mutate: func(s string) string {
				return strings.Replace(s, "technicians: [Pat]", "technicians: []", 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(minimalCatalog)))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalCatalog), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.MaxBases())
	assert.Equal(t, []string{"Fuel Low"}, c.AlertNames())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	c, err = Load("")
	require.NoError(t, err)
	assert.Len(t, c.Bases, 10)
}

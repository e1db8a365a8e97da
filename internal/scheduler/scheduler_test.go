package scheduler

import (
	"sort"
	"testing"
	"time"

	"fleet_datagen/internal/models"
	"fleet_datagen/internal/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(policy ReleasePolicy) Config {
	return Config{
		Aircraft:        25,
		Bases:           10,
		Horizon:         models.NewHorizon(day(0), 120),
		MinDaily:        1,
		MaxDaily:        30,
		MinDurationDays: 1,
		MaxDurationDays: 15,
		Policy:          policy,
		Descriptions:    []string{"Mission", "Training", "Test"},
		Statuses:        []string{"Planned", "In Progress", "Completed"},
		Alerts:          []string{"Engine Check", "Fuel Low", "Weather Alert", "Security Alert", "Landing Gear Issue", "Maintenance Required"},
		MaxAlerts:       5,
	}
}

func run(t *testing.T, cfg Config, seed uint64) *Result {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	res, err := s.Run(random.New(seed))
	require.NoError(t, err)
	return res
}

// assertNoOverlap checks that no aircraft is on two operations whose
// [StartDate, EndDate) intervals intersect
func assertNoOverlap(t *testing.T, ops []models.Operation) {
	t.Helper()
	byAircraft := map[string][]models.Operation{}
	for _, op := range ops {
		byAircraft[op.Aircraft] = append(byAircraft[op.Aircraft], op)
	}
	for aircraft, list := range byAircraft {
		sort.Slice(list, func(i, j int) bool { return list[i].StartDate.Before(list[j].StartDate) })
		for i := 1; i < len(list); i++ {
			assert.False(t, list[i].StartDate.Before(list[i-1].EndDate),
				"%s: %s starts %s before %s ends %s", aircraft,
				list[i].ID, models.FormatDate(list[i].StartDate),
				list[i-1].ID, models.FormatDate(list[i-1].EndDate))
		}
	}
}

func TestScheduler_Invariants(t *testing.T) {
	for _, policy := range []ReleasePolicy{ReleaseEarliest, ReleaseFIFO} {
		t.Run(string(policy), func(t *testing.T) {
			cfg := testConfig(policy)
			res := run(t, cfg, 42)
			require.NotEmpty(t, res.Operations)

			for i, op := range res.Operations {
				assert.Equal(t, models.OperationID(i+1), op.ID)
				assert.True(t, op.StartDate.Before(op.EndDate), op.ID)
				assert.True(t, cfg.Horizon.Contains(op.StartDate), op.ID)
				assert.False(t, op.EndDate.After(cfg.Horizon.End), op.ID)
				assert.LessOrEqual(t, models.DaysBetween(op.StartDate, op.EndDate), cfg.MaxDurationDays)

				assert.Contains(t, cfg.Descriptions, op.Description)
				assert.Contains(t, cfg.Statuses, op.Status)
				assert.LessOrEqual(t, len(op.Alerts), cfg.MaxAlerts)
				assert.NotNil(t, op.Alerts)
				seen := map[string]bool{}
				for _, a := range op.Alerts {
					assert.Contains(t, cfg.Alerts, a)
					assert.False(t, seen[a], "duplicate alert in %s", op.ID)
					seen[a] = true
				}

				assert.Regexp(t, `^BASE-([1-9]|10)$`, op.Origin)
				assert.Regexp(t, `^BASE-([1-9]|10)$`, op.Destination)
				assert.Regexp(t, `^AIRCRAFT-([1-9]|1[0-9]|2[0-5])$`, op.Aircraft)
			}

			assertNoOverlap(t, res.Operations)

			stats := res.Stats
			assert.Equal(t, 120, stats.Days)
			assert.Equal(t, len(res.Operations), stats.Assigned)
			assert.LessOrEqual(t, stats.PeakAssigned, cfg.Aircraft)
			assert.LessOrEqual(t, stats.StillAssigned, cfg.Aircraft)
			// every emitted operation is either released or still assigned
			assert.Equal(t, stats.Assigned, stats.Released+stats.StillAssigned)
		})
	}
}

// endingAtHorizon counts operations clamped to the horizon end. Their aircraft
// can never be released inside the horizon.
func endingAtHorizon(ops []models.Operation, end time.Time) int {
	n := 0
	for _, op := range ops {
		if op.EndDate.Equal(end) {
			n++
		}
	}
	return n
}

func TestScheduler_EarliestKeepsOnlyHorizonEndAssigned(t *testing.T) {
	cfg := testConfig(ReleaseEarliest)
	res := run(t, cfg, 7)

	assert.Equal(t, endingAtHorizon(res.Operations, cfg.Horizon.End), res.Stats.StillAssigned)
}

// Under FIFO an aircraft whose operation ends before the horizon end can sit
// behind a longer operation assigned earlier and still be assigned when the
// horizon closes. Earliest-first releases every such aircraft on its end date.
func TestScheduler_FIFOHoldsAircraftPastEndDate(t *testing.T) {
	held := 0
	for seed := uint64(1); seed <= 20; seed++ {
		fifo := testConfig(ReleaseFIFO)
		res := run(t, fifo, seed)
		assertNoOverlap(t, res.Operations)

		clamped := endingAtHorizon(res.Operations, fifo.Horizon.End)
		assert.GreaterOrEqual(t, res.Stats.StillAssigned, clamped, "seed %d", seed)
		if res.Stats.StillAssigned > clamped {
			held++
		}

		earliest := testConfig(ReleaseEarliest)
		res = run(t, earliest, seed)
		assert.Equal(t, endingAtHorizon(res.Operations, earliest.Horizon.End), res.Stats.StillAssigned, "seed %d", seed)
	}

	assert.Positive(t, held, "fifo never held an aircraft past its end date")
}

func TestScheduler_Deterministic(t *testing.T) {
	cfg := testConfig(ReleaseEarliest)
	a := run(t, cfg, 42)
	b := run(t, cfg, 42)
	assert.Equal(t, a.Operations, b.Operations)

	c := run(t, cfg, 43)
	assert.NotEqual(t, a.Operations, c.Operations)
}

func TestScheduler_ThreeDaysTwoAircraft(t *testing.T) {
	cfg := testConfig(ReleaseEarliest)
	cfg.Aircraft = 2
	cfg.Horizon = models.NewHorizon(day(0), 3)
	cfg.MinDaily, cfg.MaxDaily = 1, 1
	cfg.MinDurationDays, cfg.MaxDurationDays = 1, 1

	res := run(t, cfg, 42)

	require.Len(t, res.Operations, 3)
	for i, op := range res.Operations {
		assert.Equal(t, day(i), op.StartDate)
		assert.Contains(t, []string{"AIRCRAFT-1", "AIRCRAFT-2"}, op.Aircraft)
	}
	assertNoOverlap(t, res.Operations)
	assert.Equal(t, 0, res.Stats.ExhaustedDays)
}

func TestScheduler_PoolExhaustion(t *testing.T) {
	cfg := testConfig(ReleaseEarliest)
	cfg.Aircraft = 3
	cfg.Horizon = models.NewHorizon(day(0), 5)
	cfg.MinDaily, cfg.MaxDaily = 10, 10
	cfg.MinDurationDays, cfg.MaxDurationDays = 10, 10

	res := run(t, cfg, 1)

	// every aircraft is taken on day one and nothing returns inside the horizon
	require.Len(t, res.Operations, 3)
	for _, op := range res.Operations {
		assert.Equal(t, day(0), op.StartDate)
		assert.Equal(t, cfg.Horizon.End, op.EndDate)
	}
	assert.Equal(t, 5, res.Stats.ExhaustedDays)
	assert.Equal(t, 3, res.Stats.StillAssigned)
	assert.Equal(t, 0, res.Stats.Released)
}

func TestScheduler_NoAlerts(t *testing.T) {
	cfg := testConfig(ReleaseFIFO)
	cfg.MaxAlerts = 0

	res := run(t, cfg, 5)
	for _, op := range res.Operations {
		assert.Empty(t, op.Alerts)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no aircraft", func(c *Config) { c.Aircraft = 0 }},
		{"no bases", func(c *Config) { c.Bases = 0 }},
		{"empty horizon", func(c *Config) { c.Horizon = models.NewHorizon(day(0), 0) }},
		{"inverted daily range", func(c *Config) { c.MinDaily, c.MaxDaily = 5, 2 }},
		{"zero-length operations", func(c *Config) { c.MinDurationDays = 0 }},
		{"too many alerts", func(c *Config) { c.MaxAlerts = 7 }},
		{"no statuses", func(c *Config) { c.Statuses = nil }},
		{"unknown policy", func(c *Config) { c.Policy = "random" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(ReleaseEarliest)
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}

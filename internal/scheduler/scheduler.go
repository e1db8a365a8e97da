// Package scheduler simulates the daily assignment of a finite aircraft pool
// to randomly generated operations. Each simulated day first releases the
// aircraft whose operations have ended and then greedily assigns new
// operations to randomly chosen available aircraft, so no aircraft is ever
// booked on two overlapping operations.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"fleet_datagen/internal/models"
	"fleet_datagen/internal/random"
)

// Config holds the simulation parameters
type Config struct {
	Aircraft int            // Size of the aircraft universe, AIRCRAFT-1..n
	Bases    int            // Number of bases, BASE-1..n
	Horizon  models.Horizon // Operations start on days in [Start, End)

	MinDaily int // Minimum operations attempted per day
	MaxDaily int // Maximum operations attempted per day

	MinDurationDays int // Minimum days between an operation's start and end
	MaxDurationDays int // Maximum days between an operation's start and end

	Policy ReleasePolicy

	Descriptions []string // Operation description categories
	Statuses     []string // Operation status labels
	Alerts       []string // Alert categories
	MaxAlerts    int      // Alerts per operation are drawn from [0, MaxAlerts]
}

// Stats summarizes a simulation run
type Stats struct {
	Days          int // Simulated days
	Assigned      int // Operations emitted
	Released      int // Aircraft returned to the pool during the run
	ExhaustedDays int // Days on which the pool ran dry before the daily count was reached
	PeakAssigned  int // Largest number of simultaneously assigned aircraft
	StillAssigned int // Aircraft assigned when the horizon ended
}

// Result is the operation stream produced by a run
type Result struct {
	Operations []models.Operation
	Stats      Stats
}

// Scheduler produces operation streams
type Scheduler struct {
	cfg Config
}

// New validates cfg and returns a Scheduler
func New(cfg Config) (*Scheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid scheduler config: %w", err)
	}
	return &Scheduler{cfg: cfg}, nil
}

func (c Config) validate() error {
	if c.Aircraft <= 0 {
		return fmt.Errorf("aircraft must be greater than 0")
	}
	if c.Bases <= 0 {
		return fmt.Errorf("bases must be greater than 0")
	}
	if !c.Horizon.Start.Before(c.Horizon.End) {
		return fmt.Errorf("horizon start %s must be before end %s",
			models.FormatDate(c.Horizon.Start), models.FormatDate(c.Horizon.End))
	}
	if c.MinDaily < 0 || c.MaxDaily < c.MinDaily {
		return fmt.Errorf("daily operation range [%d, %d] is invalid", c.MinDaily, c.MaxDaily)
	}
	if c.MinDurationDays < 1 || c.MaxDurationDays < c.MinDurationDays {
		return fmt.Errorf("duration range [%d, %d] is invalid (minimum is 1 day)", c.MinDurationDays, c.MaxDurationDays)
	}
	if len(c.Descriptions) == 0 || len(c.Statuses) == 0 {
		return fmt.Errorf("descriptions and statuses must not be empty")
	}
	if c.MaxAlerts < 0 || c.MaxAlerts > len(c.Alerts) {
		return fmt.Errorf("max alerts %d exceeds the %d alert categories", c.MaxAlerts, len(c.Alerts))
	}
	if _, err := NewReleaseQueue(c.Policy); err != nil {
		return err
	}
	return nil
}

// Run simulates every day of the horizon and returns the emitted operations.
// Aircraft still assigned when the horizon ends stay assigned.
func (s *Scheduler) Run(rng *random.Source) (*Result, error) {
	queue, err := NewReleaseQueue(s.cfg.Policy)
	if err != nil {
		return nil, err
	}

	ids := make([]string, s.cfg.Aircraft)
	for i := range ids {
		ids[i] = models.AircraftID(i + 1)
	}
	available := NewAvailabilitySet(ids...)

	result := &Result{}
	stats := &result.Stats

	for day := s.cfg.Horizon.Start; day.Before(s.cfg.Horizon.End); day = models.AddDays(day, 1) {
		stats.Days++
		released := releaseDue(queue, available, day)
		stats.Released += released

		target := rng.IntRange(s.cfg.MinDaily, s.cfg.MaxDaily)
		assigned := 0
		for ; assigned < target; assigned++ {
			if available.Len() == 0 {
				stats.ExhaustedDays++
				break
			}
			op := s.assign(rng, available, queue, day, len(result.Operations)+1)
			result.Operations = append(result.Operations, op)
		}

		stats.PeakAssigned = max(stats.PeakAssigned, queue.Len())

		slog.Debug("Simulated day",
			"day", models.FormatDate(day),
			"released", released,
			"target", target,
			"assigned", assigned,
			"available", available.Len(),
			"in_use", queue.Len(),
		)
	}

	stats.Assigned = len(result.Operations)
	stats.StillAssigned = queue.Len()

	slog.Info("Operation schedule simulated",
		"days", stats.Days,
		"operations", stats.Assigned,
		"released", stats.Released,
		"exhausted_days", stats.ExhaustedDays,
		"peak_assigned", stats.PeakAssigned,
		"still_assigned", stats.StillAssigned,
		"policy", string(s.cfg.Policy),
	)

	return result, nil
}

// assign takes a random available aircraft for a new operation starting on day
func (s *Scheduler) assign(rng *random.Source, available *AvailabilitySet[string], queue ReleaseQueue, day time.Time, seq int) models.Operation {
	end := models.AddDays(day, rng.IntRange(s.cfg.MinDurationDays, s.cfg.MaxDurationDays))
	if end.After(s.cfg.Horizon.End) {
		end = s.cfg.Horizon.End
	}

	aircraft := available.RemoveAt(rng.IntN(available.Len()))
	queue.Push(Release{Aircraft: aircraft, Date: end})

	return models.Operation{
		ID:          models.OperationID(seq),
		Aircraft:    aircraft,
		Description: random.Choice(rng, s.cfg.Descriptions),
		StartDate:   day,
		EndDate:     end,
		Alerts:      s.drawAlerts(rng),
		Status:      random.Choice(rng, s.cfg.Statuses),
		Origin:      models.BaseID(rng.IntRange(1, s.cfg.Bases)),
		Destination: models.BaseID(rng.IntRange(1, s.cfg.Bases)),
	}
}

func (s *Scheduler) drawAlerts(rng *random.Source) []string {
	n := rng.IntRange(0, s.cfg.MaxAlerts)
	if n == 0 {
		return []string{}
	}
	return random.Sample(rng, s.cfg.Alerts, n)
}

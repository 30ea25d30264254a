// Package simulator advances the fleet on a fixed period: each tick
// perturbs every active vehicle's position, speed and fuel, raises
// low-fuel alerts, and broadcasts the updated fleet.
package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/blackdiamond/coaltrack/internal/alerts"
	"github.com/blackdiamond/coaltrack/internal/models"
	"github.com/blackdiamond/coaltrack/internal/realtime"
	"github.com/blackdiamond/coaltrack/internal/store"
)

// Low-fuel alert policies.
const (
	PolicyEdge          = "edge"
	PolicyProbabilistic = "probabilistic"
)

// Rand is the source of simulation randomness. Production uses
// math/rand; tests inject a fixed sequence.
type Rand interface {
	Float64() float64
}

// Config tunes the simulator.
type Config struct {
	Interval         time.Duration
	LowFuelThreshold float64 // percent; alert territory below this
	AlertProbability float64 // per-tick chance under the probabilistic policy
	Policy           string  // "edge" or "probabilistic"
}

// Simulator is the periodic telemetry process.
type Simulator struct {
	store   store.Store
	alerts  *alerts.Manager
	actions *realtime.Actions
	cfg     Config
	rng     Rand
	now     func() time.Time
}

// New creates a simulator with a time-seeded random source.
func New(s store.Store, am *alerts.Manager, actions *realtime.Actions, cfg Config) *Simulator {
	if cfg.Policy == "" {
		cfg.Policy = PolicyEdge
	}
	return &Simulator{
		store:   s,
		alerts:  am,
		actions: actions,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
}

// SetRand replaces the random source. Tests use this to fix the
// perturbation sequence.
func (s *Simulator) SetRand(r Rand) { s.rng = r }

// Run ticks until the context is cancelled. A failed tick is logged
// and skipped; the loop never exits on store errors.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()
	log.WithFields(log.Fields{
		"interval": s.cfg.Interval,
		"policy":   s.cfg.Policy,
	}).Info("Telemetry simulator started")
	for {
		select {
		case <-ctx.Done():
			log.Info("Telemetry simulator stopped")
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				log.WithError(err).Warn("Simulator tick skipped")
			}
		}
	}
}

// Tick advances every active vehicle once and broadcasts the result.
// On the first store failure the remainder of the tick is abandoned
// and nothing is broadcast, so observers never see a partial fleet.
func (s *Simulator) Tick(ctx context.Context) error {
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("list vehicles: %w", err)
	}

	fleet := make([]models.Vehicle, 0, len(vehicles))
	var created []*models.Alert
	for _, v := range vehicles {
		if v.Status != models.VehicleActive {
			fleet = append(fleet, v)
			continue
		}
		updated, err := s.store.UpdateVehicle(ctx, v.ID, func(v *models.Vehicle) {
			v.CurrentLocation.Lat += (s.rng.Float64() - 0.5) * 0.01
			v.CurrentLocation.Lng += (s.rng.Float64() - 0.5) * 0.01
			v.Speed += (s.rng.Float64() - 0.5) * 10
			v.Fuel -= s.rng.Float64() * 0.5
			v.LastUpdate = s.now()
		})
		if err != nil {
			return fmt.Errorf("update vehicle %s: %w", v.ID, err)
		}
		fleet = append(fleet, *updated)

		alert, err := s.maybeFuelAlert(ctx, updated)
		if err != nil {
			return fmt.Errorf("fuel alert for %s: %w", v.ID, err)
		}
		if alert != nil {
			created = append(created, alert)
		}
	}

	s.actions.PublishFleet(fleet)
	for _, a := range created {
		log.WithFields(log.Fields{
			"alert_id":   a.ID,
			"vehicle_id": a.VehicleID,
		}).Info("Low fuel alert created")
	}
	return nil
}

// maybeFuelAlert applies the configured low-fuel policy to a vehicle
// that was just updated. The edge-triggered policy raises one alert per
// threshold crossing and stays quiet while an unresolved fuel alert for
// the vehicle exists; the probabilistic policy mirrors the original
// system and fires independently each qualifying tick.
func (s *Simulator) maybeFuelAlert(ctx context.Context, v *models.Vehicle) (*models.Alert, error) {
	if v.Fuel >= s.cfg.LowFuelThreshold {
		return nil, nil
	}
	switch s.cfg.Policy {
	case PolicyProbabilistic:
		if s.rng.Float64() >= s.cfg.AlertProbability {
			return nil, nil
		}
	default:
		open, err := s.alerts.HasOpenFuelAlert(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		if open {
			return nil, nil
		}
	}
	message := fmt.Sprintf("%s has low fuel: %.1f%%", v.Name, v.Fuel)
	return s.actions.CreateAlert(ctx, models.AlertFuel, models.SeverityWarning, message, v.ID)
}

package rocket

import (
	"fmt"
	"math"

	"github.com/san-kum/launchsim/internal/vec"
)

// StageConfig describes a propulsive stage. Fields left at their zero
// value default to 0.0.
type StageConfig struct {
	// DryMass is the unfueled mass of the stage in kilograms.
	DryMass float64
	// FuelMass is the mass of fuel and oxidizer carried, in kilograms.
	FuelMass float64
	// MaxThrust is the maximum thrust in newtons.
	MaxThrust float64
	// MaxBurnRate is the maximum fuel consumption rate in kg/s.
	MaxBurnRate float64
	// Length is the length of the stage in meters.
	Length float64
}

func (c StageConfig) validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"dry_mass", c.DryMass},
		{"fuel_mass", c.FuelMass},
		{"max_thrust", c.MaxThrust},
		{"max_burn_rate", c.MaxBurnRate},
		{"length", c.Length},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: stage %s must be finite", ErrInvalidArgument, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: stage %s must be non-negative, got %v", ErrInvalidArgument, f.name, f.value)
		}
	}
	return nil
}

// Stage is a propulsive unit: dry structure plus a depleting fuel load,
// producing thrust proportional to its throttle setting.
type Stage struct {
	dryMass     float64
	fuelMass    float64
	maxThrust   float64
	maxBurnRate float64
	length      float64
	throttle    float64
	axis        vec.Vector3
}

// NewStage constructs a stage from cfg. Throttle starts at zero and the
// stage axis starts as the zero vector; callers that read the axis must
// set it first.
func NewStage(cfg StageConfig) (*Stage, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Stage{
		dryMass:     cfg.DryMass,
		fuelMass:    cfg.FuelMass,
		maxThrust:   cfg.MaxThrust,
		maxBurnRate: cfg.MaxBurnRate,
		length:      cfg.Length,
	}, nil
}

// DryMass returns the unfueled mass in kilograms.
func (s *Stage) DryMass() float64 { return s.dryMass }

// FuelMass returns the remaining fuel mass in kilograms. May be negative
// if the stage has been burned past empty (see UpdateMass).
func (s *Stage) FuelMass() float64 { return s.fuelMass }

// MaxThrust returns the maximum thrust in newtons.
func (s *Stage) MaxThrust() float64 { return s.maxThrust }

// MaxBurnRate returns the maximum fuel consumption rate in kg/s.
func (s *Stage) MaxBurnRate() float64 { return s.maxBurnRate }

// Length returns the stage length in meters.
func (s *Stage) Length() float64 { return s.length }

// Throttle returns the current throttle setting as a percentage.
func (s *Stage) Throttle() float64 { return s.throttle }

// SetThrottle commands the engines to a percentage of maximum thrust.
// Values outside [0, 100] are rejected.
func (s *Stage) SetThrottle(throttle float64) error {
	if math.IsNaN(throttle) || throttle < 0.0 || throttle > 100.0 {
		return fmt.Errorf("%w: throttle must be within [0, 100], got %v", ErrInvalidArgument, throttle)
	}
	s.throttle = throttle
	return nil
}

// CurrentThrust returns the instantaneous thrust magnitude in newtons at
// the current throttle setting.
func (s *Stage) CurrentThrust() float64 {
	return s.maxThrust * s.throttle / 100
}

// CurrentFuelConsumption returns the instantaneous fuel consumption rate
// in kg/s at the current throttle setting.
func (s *Stage) CurrentFuelConsumption() float64 {
	return s.maxBurnRate * s.throttle / 100
}

// UpdateMass depletes fuel for a timestep of dt seconds at the current
// throttle setting.
//
// Fuel is NOT clamped at zero: burning past empty drives FuelMass
// negative and the stage keeps producing thrust until the throttle is
// cut. Detecting burnout and staging is the driver's job.
func (s *Stage) UpdateMass(dt float64) {
	s.fuelMass -= s.maxBurnRate * s.throttle / 100 * dt
}

// Attitude returns the stage's orientation axis.
func (s *Stage) Attitude() vec.Vector3 { return s.axis }

// SetAttitude sets the stage's orientation axis. Non-finite components
// are rejected.
func (s *Stage) SetAttitude(axis vec.Vector3) error {
	if !axis.IsFinite() {
		return fmt.Errorf("%w: stage axis must be finite", ErrInvalidArgument)
	}
	s.axis = axis
	return nil
}

func (s *Stage) String() string {
	return fmt.Sprintf("Stage dry mass is %.2fkg, fuel mass is %.2fkg, max thrust is %.2fN, and max fuel consumption rate is %.2fkg/s.",
		s.dryMass, s.fuelMass, s.maxThrust, s.maxBurnRate)
}

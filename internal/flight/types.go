package flight

import (
	"fmt"
	"math"

	"github.com/san-kum/launchsim/internal/vec"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Config controls a simulation run.
type Config struct {
	// Dt is the integration timestep in seconds.
	Dt float64
	// Duration is the maximum simulated time in seconds.
	Duration float64
	// AutoStage separates the active stage when its fuel depletes and
	// carries the throttle setting over to the next stage.
	AutoStage bool
	// AutoJettison drops the booster group when its fuel depletes.
	AutoJettison bool
	// ValidateState aborts the run if the vehicle state goes NaN/Inf.
	ValidateState bool
}

// DefaultConfig returns the standard run configuration.
func DefaultConfig() Config {
	return Config{
		Dt:            0.1,
		Duration:      600.0,
		AutoStage:     true,
		AutoJettison:  true,
		ValidateState: true,
	}
}

// Frame is a telemetry snapshot of the vehicle at one instant.
type Frame struct {
	Time            float64
	Position        vec.Vector3
	Velocity        vec.Vector3
	Thrust          vec.Vector3
	Mass            float64
	FuelMass        float64
	Attitude        float64
	DynamicPressure float64
}

// Altitude is the vertical component of the frame position.
func (f Frame) Altitude() float64 { return f.Position.Y }

// Speed is the magnitude of the frame velocity.
func (f Frame) Speed() float64 { return f.Velocity.Norm() }

// IsValid reports whether every scalar in the frame is finite.
func (f Frame) IsValid() bool {
	return f.Position.IsFinite() && f.Velocity.IsFinite() &&
		f.Thrust.IsFinite() && isFinite(f.Mass) && isFinite(f.FuelMass) &&
		isFinite(f.Attitude)
}

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Observer receives every frame as the run progresses.
type Observer interface {
	OnStep(f Frame)
}

// EventRecord notes a discrete event that occurred during a run.
type EventRecord struct {
	Time   float64
	Detail string
}

// Result holds the telemetry of a completed run.
type Result struct {
	Frames     []Frame
	Events     []EventRecord
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Apogee returns the highest altitude reached during the run.
func (r *Result) Apogee() float64 {
	max := 0.0
	for _, f := range r.Frames {
		if f.Altitude() > max {
			max = f.Altitude()
		}
	}
	return max
}

// SimError marks a failure at a specific step of a run.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

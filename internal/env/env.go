// Package env provides the environmental force models applied to a
// vehicle in flight: gravity and atmospheric drag. The world frame is
// flat-planet with +Y up; altitude is the Y component of position.
package env

import (
	"math"

	"github.com/san-kum/launchsim/internal/rocket"
	"github.com/san-kum/launchsim/internal/vec"
)

// Earth constants.
const (
	EarthSurfaceGravity  = 9.80665 // m/s^2
	EarthRadius          = 6.371e6 // m
	EarthSeaLevelDensity = 1.225   // kg/m^3
	EarthScaleHeight     = 8500.0  // m
)

// Environment bundles a gravity field and an exponential atmosphere.
type Environment struct {
	// SurfaceGravity is the gravitational acceleration at zero altitude.
	SurfaceGravity float64
	// BodyRadius sets the inverse-square falloff of gravity with
	// altitude. Zero means uniform gravity.
	BodyRadius float64
	// SeaLevelDensity is the atmosphere density at zero altitude.
	SeaLevelDensity float64
	// ScaleHeight is the e-folding altitude of the atmosphere. Zero
	// means vacuum.
	ScaleHeight float64
}

// Earth returns the standard Earth environment.
func Earth() *Environment {
	return &Environment{
		SurfaceGravity:  EarthSurfaceGravity,
		BodyRadius:      EarthRadius,
		SeaLevelDensity: EarthSeaLevelDensity,
		ScaleHeight:     EarthScaleHeight,
	}
}

// Vacuum returns a uniform-gravity environment with no atmosphere.
func Vacuum() *Environment {
	return &Environment{SurfaceGravity: EarthSurfaceGravity}
}

// GravityAccel returns the gravitational acceleration magnitude at the
// given altitude.
func (e *Environment) GravityAccel(altitude float64) float64 {
	if e.BodyRadius == 0 {
		return e.SurfaceGravity
	}
	ratio := e.BodyRadius / (e.BodyRadius + altitude)
	return e.SurfaceGravity * ratio * ratio
}

// Gravity returns the gravitational force on a vehicle of the given mass
// at pos, pointing straight down.
func (e *Environment) Gravity(pos vec.Vector3, mass float64) vec.Vector3 {
	return vec.Up().Scale(-mass * e.GravityAccel(pos.Y))
}

// Density returns the atmospheric density at the given altitude.
func (e *Environment) Density(altitude float64) float64 {
	if e.ScaleHeight == 0 {
		return 0
	}
	if altitude < 0 {
		altitude = 0
	}
	return e.SeaLevelDensity * math.Exp(-altitude/e.ScaleHeight)
}

// Drag returns the aerodynamic drag force on the vehicle, opposing its
// velocity: -0.5 * rho * Cd * A * |v| * v.
func (e *Environment) Drag(r *rocket.Rocket) vec.Vector3 {
	v := r.Velocity()
	speed := v.Norm()
	if speed == 0 {
		return vec.Zero()
	}
	rho := e.Density(r.Position().Y)
	return v.Scale(-0.5 * rho * r.CoeffDrag() * r.CrossSecArea() * speed)
}

// DynamicPressure returns 0.5 * rho * v^2 for the vehicle's current
// state, the quantity flight telemetry reports as q.
func (e *Environment) DynamicPressure(r *rocket.Rocket) float64 {
	speed := r.Velocity().Norm()
	return 0.5 * e.Density(r.Position().Y) * speed * speed
}

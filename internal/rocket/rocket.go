package rocket

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/launchsim/internal/vec"
)

// Rocket aggregates stages, boosters, and payloads into a launch vehicle
// and owns its bulk kinematic state. The head of the stage sequence is
// the active stage; later stages are inert reserves. Boosters fire and
// jettison as a single group.
type Rocket struct {
	stages   []*Stage
	srbs     []*Stage
	payloads []*Payload

	coeffDrag    float64
	crossSecArea float64

	pos      vec.Vector3
	momentum vec.Vector3
	axis     vec.Vector3
	rollRate float64
}

// NewRocket constructs a vehicle at pos with the given drag coefficient
// and cross-sectional area in m^2. Both aerodynamic constants must be
// positive and finite. The vehicle starts at rest, pointing straight up.
func NewRocket(pos vec.Vector3, coeffDrag, crossSecArea float64) (*Rocket, error) {
	if math.IsNaN(coeffDrag) || math.IsInf(coeffDrag, 0) || coeffDrag <= 0 {
		return nil, fmt.Errorf("%w: drag coefficient must be positive, got %v", ErrInvalidArgument, coeffDrag)
	}
	if math.IsNaN(crossSecArea) || math.IsInf(crossSecArea, 0) || crossSecArea <= 0 {
		return nil, fmt.Errorf("%w: cross-sectional area must be positive, got %v", ErrInvalidArgument, crossSecArea)
	}
	if !pos.IsFinite() {
		return nil, fmt.Errorf("%w: position must be finite", ErrInvalidArgument)
	}
	return &Rocket{
		coeffDrag:    coeffDrag,
		crossSecArea: crossSecArea,
		pos:          pos,
		axis:         vec.Up(),
	}, nil
}

// AddStage appends a stage to the staging sequence. The first stage
// added is the first to fire; staging order is add order.
func (r *Rocket) AddStage(s *Stage) error {
	if s == nil {
		return fmt.Errorf("%w: nil stage", ErrInvalidArgument)
	}
	r.stages = append(r.stages, s)
	return nil
}

// AddSRB adds a booster to the strap-on group. All boosters ignite
// together and are jettisoned together.
func (r *Rocket) AddSRB(s *Stage) error {
	if s == nil {
		return fmt.Errorf("%w: nil booster", ErrInvalidArgument)
	}
	r.srbs = append(r.srbs, s)
	return nil
}

// AddPayload adds dead weight to the vehicle.
func (r *Rocket) AddPayload(p *Payload) error {
	if p == nil {
		return fmt.Errorf("%w: nil payload", ErrInvalidArgument)
	}
	r.payloads = append(r.payloads, p)
	return nil
}

// ActiveStage returns the stage currently burning, or nil if the staging
// sequence is exhausted.
func (r *Rocket) ActiveStage() *Stage {
	if len(r.stages) == 0 {
		return nil
	}
	return r.stages[0]
}

// NumStages returns the count of remaining stages, active included.
func (r *Rocket) NumStages() int { return len(r.stages) }

// NumSRBs returns the count of attached boosters.
func (r *Rocket) NumSRBs() int { return len(r.srbs) }

// CoeffDrag returns the vehicle drag coefficient.
func (r *Rocket) CoeffDrag() float64 { return r.coeffDrag }

// CrossSecArea returns the vehicle cross-sectional area in m^2.
func (r *Rocket) CrossSecArea() float64 { return r.crossSecArea }

// TotalMass sums the dry and fuel masses of every remaining stage and
// booster plus all payload masses. Recomputed from live components on
// every call.
func (r *Rocket) TotalMass() float64 {
	total := 0.0
	for _, srb := range r.srbs {
		total += srb.DryMass() + srb.FuelMass()
	}
	for _, stage := range r.stages {
		total += stage.DryMass() + stage.FuelMass()
	}
	for _, p := range r.payloads {
		total += p.Mass()
	}
	return total
}

// FuelMass returns the fuel remaining across stages and boosters.
func (r *Rocket) FuelMass() float64 {
	total := 0.0
	for _, srb := range r.srbs {
		total += srb.FuelMass()
	}
	for _, stage := range r.stages {
		total += stage.FuelMass()
	}
	return total
}

// SRBFuelMass returns the fuel remaining in the booster group.
func (r *Rocket) SRBFuelMass() float64 {
	total := 0.0
	for _, srb := range r.srbs {
		total += srb.FuelMass()
	}
	return total
}

// ActiveStageThrust returns the thrust of the active stage directed
// along the vehicle axis, or the zero vector if no stages remain.
func (r *Rocket) ActiveStageThrust() vec.Vector3 {
	if len(r.stages) == 0 {
		return vec.Zero()
	}
	return r.axis.Scale(r.stages[0].CurrentThrust())
}

// SRBThrust returns the summed booster thrust directed along the vehicle
// axis, or the zero vector if no boosters remain.
func (r *Rocket) SRBThrust() vec.Vector3 {
	if len(r.srbs) == 0 {
		return vec.Zero()
	}
	mag := 0.0
	for _, srb := range r.srbs {
		mag += srb.CurrentThrust()
	}
	return r.axis.Scale(mag)
}

// TotalThrust returns the combined active-stage and booster thrust.
func (r *Rocket) TotalThrust() vec.Vector3 {
	return r.ActiveStageThrust().Add(r.SRBThrust())
}

// UpdateTotalMass depletes fuel for a timestep of dt seconds: the active
// stage burns if present, as does every attached booster. Inert reserve
// stages do not burn. dt must be positive.
func (r *Rocket) UpdateTotalMass(dt float64) error {
	if math.IsNaN(dt) || dt <= 0 {
		return fmt.Errorf("%w: timestep must be positive, got %v", ErrInvalidArgument, dt)
	}
	if len(r.stages) > 0 {
		r.stages[0].UpdateMass(dt)
	}
	for _, srb := range r.srbs {
		srb.UpdateMass(dt)
	}
	return nil
}

// SeparateActiveStage jettisons the active stage and promotes the next
// stage in the sequence. The vehicle's bulk velocity is preserved: the
// discarded mass leaves at the vehicle's own velocity, so momentum
// scales down by the mass ratio.
func (r *Rocket) SeparateActiveStage() error {
	if len(r.stages) == 0 {
		return fmt.Errorf("%w: no stages to separate", ErrPrecondition)
	}
	mass := r.TotalMass()
	if mass == 0 {
		return fmt.Errorf("%w: cannot separate with zero total mass", ErrPrecondition)
	}
	velocity := r.momentum.Scale(1 / mass)
	r.stages = r.stages[1:]
	r.momentum = velocity.Scale(r.TotalMass())
	return nil
}

// SeparateSRBs jettisons the entire booster group at once, preserving
// bulk velocity the same way SeparateActiveStage does. Partial booster
// separation is not supported.
func (r *Rocket) SeparateSRBs() error {
	if len(r.srbs) == 0 {
		return fmt.Errorf("%w: no boosters to separate", ErrPrecondition)
	}
	mass := r.TotalMass()
	if mass == 0 {
		return fmt.Errorf("%w: cannot separate with zero total mass", ErrPrecondition)
	}
	velocity := r.momentum.Scale(1 / mass)
	r.srbs = nil
	r.momentum = velocity.Scale(r.TotalMass())
	return nil
}

// Attitude returns the angle in radians between the vehicle axis and the
// world vertical, in [0, pi].
func (r *Rocket) Attitude() float64 {
	return math.Acos(r.axis.Dot(vec.Up()))
}

// SetAttitude advances the vehicle's orientation by rollRate*dt and
// renormalizes the axis. The rotation is confined to the X-Y plane.
func (r *Rocket) SetAttitude(dt float64) {
	theta := r.Attitude()
	theta += r.rollRate * dt
	r.axis = vec.FromAngle(theta)
}

// SetRollRate sets the attitude rotation rate in rad/s. The value is
// unbounded but must be finite.
func (r *Rocket) SetRollRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: roll rate must be finite", ErrInvalidArgument)
	}
	r.rollRate = rate
	return nil
}

// AdjustThrottle forwards a throttle command to the active stage. A
// vehicle with no stages ignores the command.
func (r *Rocket) AdjustThrottle(throttle float64) error {
	if len(r.stages) == 0 {
		return nil
	}
	return r.stages[0].SetThrottle(throttle)
}

// IgniteSRBs commands every attached booster to full throttle. A vehicle
// with no boosters ignores the command.
func (r *Rocket) IgniteSRBs() {
	for _, srb := range r.srbs {
		srb.throttle = 100.0
	}
}

// Position returns the vehicle position.
func (r *Rocket) Position() vec.Vector3 { return r.pos }

// SetPosition overwrites the vehicle position; the external integrator
// writes back here after each step.
func (r *Rocket) SetPosition(pos vec.Vector3) { r.pos = pos }

// Momentum returns the vehicle's linear momentum.
func (r *Rocket) Momentum() vec.Vector3 { return r.momentum }

// SetMomentum overwrites the vehicle momentum; the external integrator
// writes back here after each step.
func (r *Rocket) SetMomentum(p vec.Vector3) { r.momentum = p }

// Velocity returns momentum divided by total mass, or the zero vector
// for a massless vehicle.
func (r *Rocket) Velocity() vec.Vector3 {
	mass := r.TotalMass()
	if mass == 0 {
		return vec.Zero()
	}
	return r.momentum.Scale(1 / mass)
}

// Axis returns the vehicle orientation axis, always a unit vector.
func (r *Rocket) Axis() vec.Vector3 { return r.axis }

// RollRate returns the attitude rotation rate in rad/s.
func (r *Rocket) RollRate() float64 { return r.rollRate }

// String renders a multi-line human-readable summary of the vehicle.
func (r *Rocket) String() string {
	var b strings.Builder
	b.WriteString("Rocket Stats: \n\n")
	fmt.Fprintf(&b, "Drag Coefficient: %.2f\n", r.coeffDrag)
	fmt.Fprintf(&b, "Cross Sectional Area: %.2f m^2\n", r.crossSecArea)
	for _, srb := range r.srbs {
		b.WriteString("SRB: " + srb.String() + "\n\n")
	}
	for _, stage := range r.stages {
		b.WriteString(stage.String() + "\n\n")
	}
	for _, p := range r.payloads {
		b.WriteString(p.String() + "\n\n")
	}
	fmt.Fprintf(&b, "Total mass: %.2f kg", r.TotalMass())
	return b.String()
}

package flight

import (
	"context"
	"fmt"

	"github.com/san-kum/launchsim/internal/env"
	"github.com/san-kum/launchsim/internal/rocket"
)

// Simulator drives a vehicle through a flight: it applies plan events,
// depletes fuel, integrates thrust, gravity, and drag into the vehicle's
// momentum and position, and evolves attitude, one timestep at a time.
type Simulator struct {
	vehicle   *rocket.Rocket
	environ   *env.Environment
	plan      *Plan
	metrics   []Metric
	observers []Observer
}

// New creates a simulator for the vehicle in the given environment. plan
// may be nil for a vehicle driven only by auto-staging.
func New(vehicle *rocket.Rocket, environment *env.Environment, plan *Plan) *Simulator {
	return &Simulator{
		vehicle: vehicle,
		environ: environment,
		plan:    plan,
	}
}

// Vehicle returns the vehicle under simulation.
func (s *Simulator) Vehicle() *rocket.Rocket { return s.vehicle }

// AddMetric registers a metric to accumulate over the run.
func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// AddObserver registers an observer notified on every frame.
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run simulates until the configured duration elapses, the vehicle
// touches down, or the state becomes invalid. The returned result holds
// whatever telemetry was produced even when an error cut the run short.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	sess, err := s.Start(cfg)
	if err != nil {
		return nil, err
	}

	for !sess.Done() {
		select {
		case <-ctx.Done():
			return sess.Result(), ctx.Err()
		default:
		}
		sess.Step()
	}

	return sess.Result(), nil
}

// Session is an in-progress run advanced one tick at a time; the live
// view drives one directly instead of going through Run.
type Session struct {
	sim   *Simulator
	cfg   Config
	steps int
	step  int
	done  bool

	result *Result
}

// Start validates the configuration and opens a session positioned at
// t=0 with the initial frame already recorded.
func (s *Simulator) Start(cfg Config) (*Session, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	s.plan.Reset()
	for _, m := range s.metrics {
		m.Reset()
	}

	steps := int(cfg.Duration / cfg.Dt)
	sess := &Session{
		sim:   s,
		cfg:   cfg,
		steps: steps,
		result: &Result{
			Frames:  make([]Frame, 0, steps+1),
			Metrics: make(map[string]float64),
		},
	}
	s.record(sess.result, s.snapshot(0))
	return sess, nil
}

// Done reports whether the session has finished.
func (sess *Session) Done() bool {
	return sess.done || sess.step >= sess.steps
}

// Result finalizes metric values and returns the telemetry so far. Safe
// to call repeatedly.
func (sess *Session) Result() *Result {
	for _, m := range sess.sim.metrics {
		sess.result.Metrics[m.Name()] = m.Value()
	}
	return sess.result
}

// Step advances the session by one tick and returns the frame produced.
// Calling Step on a finished session returns the last frame again.
func (sess *Session) Step() Frame {
	result := sess.result
	if sess.Done() {
		return result.Frames[len(result.Frames)-1]
	}

	s := sess.sim
	cfg := sess.cfg
	t := float64(sess.step) * cfg.Dt

	for _, ev := range s.plan.Due(t) {
		if err := s.apply(ev); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("plan event %q at t=%.2f: %w", ev.Action, ev.Time, err))
			continue
		}
		result.Events = append(result.Events, EventRecord{Time: t, Detail: string(ev.Action)})
	}

	s.autoStage(cfg, t, result)

	if err := s.vehicle.UpdateTotalMass(cfg.Dt); err != nil {
		result.Errors = append(result.Errors, err)
		sess.done = true
		return result.Frames[len(result.Frames)-1]
	}

	s.integrate(cfg.Dt)

	frame := s.snapshot(t + cfg.Dt)
	if cfg.ValidateState && !frame.IsValid() {
		result.Errors = append(result.Errors, SimError{Time: t, Step: sess.step, Message: "invalid state (NaN/Inf)"})
		sess.done = true
		return result.Frames[len(result.Frames)-1]
	}

	s.record(result, frame)
	result.StepsTaken++
	sess.step++

	if frame.Altitude() < 0 {
		result.Events = append(result.Events, EventRecord{Time: frame.Time, Detail: "touchdown"})
		sess.done = true
	}

	return frame
}

// integrate advances momentum and position by one semi-implicit Euler
// step: momentum absorbs this tick's forces first, then position moves
// at the updated velocity.
func (s *Simulator) integrate(dt float64) {
	force := s.vehicle.TotalThrust().
		Add(s.environ.Gravity(s.vehicle.Position(), s.vehicle.TotalMass())).
		Add(s.environ.Drag(s.vehicle))

	s.vehicle.SetMomentum(s.vehicle.Momentum().Add(force.Scale(dt)))
	s.vehicle.SetPosition(s.vehicle.Position().Add(s.vehicle.Velocity().Scale(dt)))
	s.vehicle.SetAttitude(dt)
}

// autoStage performs driver-side burnout handling. The vehicle core
// never detects burnout itself; depletion thresholds live here.
func (s *Simulator) autoStage(cfg Config, t float64, result *Result) {
	if cfg.AutoJettison && s.vehicle.NumSRBs() > 0 && s.vehicle.SRBFuelMass() <= 0 {
		if err := s.vehicle.SeparateSRBs(); err != nil {
			result.Errors = append(result.Errors, err)
		} else {
			result.Events = append(result.Events, EventRecord{Time: t, Detail: "srb burnout jettison"})
		}
	}

	active := s.vehicle.ActiveStage()
	if cfg.AutoStage && s.vehicle.NumStages() > 1 && active != nil && active.FuelMass() <= 0 {
		throttle := active.Throttle()
		if err := s.vehicle.SeparateActiveStage(); err != nil {
			result.Errors = append(result.Errors, err)
			return
		}
		result.Events = append(result.Events, EventRecord{Time: t, Detail: "stage burnout separation"})
		// The next stage lights at the throttle the spent one held.
		if err := s.vehicle.AdjustThrottle(throttle); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}
}

func (s *Simulator) apply(ev Event) error {
	switch ev.Action {
	case ActionIgniteSRBs:
		s.vehicle.IgniteSRBs()
		return nil
	case ActionSetThrottle:
		return s.vehicle.AdjustThrottle(ev.Value)
	case ActionSetRollRate:
		return s.vehicle.SetRollRate(ev.Value)
	case ActionSeparateStage:
		return s.vehicle.SeparateActiveStage()
	case ActionJettisonSRBs:
		return s.vehicle.SeparateSRBs()
	default:
		return fmt.Errorf("flight: unknown plan action %q", ev.Action)
	}
}

func (s *Simulator) snapshot(t float64) Frame {
	return Frame{
		Time:            t,
		Position:        s.vehicle.Position(),
		Velocity:        s.vehicle.Velocity(),
		Thrust:          s.vehicle.TotalThrust(),
		Mass:            s.vehicle.TotalMass(),
		FuelMass:        s.vehicle.FuelMass(),
		Attitude:        s.vehicle.Attitude(),
		DynamicPressure: s.environ.DynamicPressure(s.vehicle),
	}
}

func (s *Simulator) record(result *Result, frame Frame) {
	for _, m := range s.metrics {
		m.Observe(frame)
	}
	for _, o := range s.observers {
		o.OnStep(frame)
	}
	result.Frames = append(result.Frames, frame)
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("flight: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("flight: duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

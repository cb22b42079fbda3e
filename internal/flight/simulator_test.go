package flight

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/launchsim/internal/env"
	"github.com/san-kum/launchsim/internal/rocket"
	"github.com/san-kum/launchsim/internal/vec"
)

type frameCounter struct {
	frames int
}

func (c *frameCounter) Name() string    { return "frames" }
func (c *frameCounter) Observe(f Frame) { c.frames++ }
func (c *frameCounter) Value() float64  { return float64(c.frames) }
func (c *frameCounter) Reset()          { c.frames = 0 }

func buildVehicle(t *testing.T, stages []rocket.StageConfig, srbs []rocket.StageConfig) *rocket.Rocket {
	t.Helper()
	r, err := rocket.NewRocket(vec.Zero(), 0.5, 10.0)
	if err != nil {
		t.Fatal(err)
	}
	for _, cfg := range stages {
		s, err := rocket.NewStage(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if err := r.AddStage(s); err != nil {
			t.Fatal(err)
		}
	}
	for _, cfg := range srbs {
		s, err := rocket.NewStage(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if err := r.AddSRB(s); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func mustPlan(t *testing.T, events []Event) *Plan {
	t.Helper()
	p, err := NewPlan(events)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunVerticalAscent(t *testing.T) {
	vehicle := buildVehicle(t, []rocket.StageConfig{
		{DryMass: 1000, FuelMass: 4000, MaxThrust: 2e5, MaxBurnRate: 20},
	}, nil)
	plan := mustPlan(t, []Event{{Time: 0, Action: ActionSetThrottle, Value: 100}})

	sim := New(vehicle, env.Vacuum(), plan)
	counter := &frameCounter{}
	sim.AddMetric(counter)

	cfg := DefaultConfig()
	cfg.Dt = 0.5
	cfg.Duration = 10
	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.StepsTaken != 20 {
		t.Errorf("expected 20 steps, got %d", result.StepsTaken)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected run errors: %v", result.Errors)
	}

	last := result.Frames[len(result.Frames)-1]
	if last.Altitude() <= 0 {
		t.Errorf("vehicle should have climbed, altitude %f", last.Altitude())
	}
	if last.Velocity.Y <= 0 {
		t.Errorf("vehicle should be ascending, vertical speed %f", last.Velocity.Y)
	}

	// 20 kg/s for 10 s at full throttle.
	first := result.Frames[0]
	if got := first.Mass - last.Mass; math.Abs(got-200.0) > 1e-9 {
		t.Errorf("expected 200 kg burned, got %f", got)
	}

	if got := result.Metrics["frames"]; got != float64(len(result.Frames)) {
		t.Errorf("metric should see every frame: %f vs %d", got, len(result.Frames))
	}
}

func TestRunAutoJettisonsBoosters(t *testing.T) {
	vehicle := buildVehicle(t,
		[]rocket.StageConfig{{DryMass: 500, FuelMass: 2000, MaxThrust: 1e5, MaxBurnRate: 10}},
		[]rocket.StageConfig{
			{DryMass: 100, FuelMass: 5, MaxThrust: 5e4, MaxBurnRate: 5},
			{DryMass: 100, FuelMass: 5, MaxThrust: 5e4, MaxBurnRate: 5},
		})
	plan := mustPlan(t, []Event{
		{Time: 0, Action: ActionIgniteSRBs},
		{Time: 0, Action: ActionSetThrottle, Value: 100},
	})

	sim := New(vehicle, env.Vacuum(), plan)
	cfg := DefaultConfig()
	cfg.Dt = 0.5
	cfg.Duration = 5
	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vehicle.NumSRBs() != 0 {
		t.Errorf("boosters should have been jettisoned, %d remain", vehicle.NumSRBs())
	}
	if !hasEvent(result, "srb burnout jettison") {
		t.Errorf("expected jettison event, got %+v", result.Events)
	}
}

func TestRunAutoStagesOnBurnout(t *testing.T) {
	vehicle := buildVehicle(t, []rocket.StageConfig{
		{DryMass: 100, FuelMass: 5, MaxThrust: 1e6, MaxBurnRate: 5},
		{DryMass: 50, FuelMass: 50, MaxThrust: 1e5, MaxBurnRate: 5},
	}, nil)
	plan := mustPlan(t, []Event{{Time: 0, Action: ActionSetThrottle, Value: 100}})

	sim := New(vehicle, env.Vacuum(), plan)
	cfg := DefaultConfig()
	cfg.Dt = 0.5
	cfg.Duration = 3
	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if vehicle.NumStages() != 1 {
		t.Errorf("expected burnout separation, %d stages remain", vehicle.NumStages())
	}
	if !hasEvent(result, "stage burnout separation") {
		t.Errorf("expected separation event, got %+v", result.Events)
	}
	// The replacement stage inherits the throttle of the spent one.
	if got := vehicle.ActiveStage().Throttle(); got != 100.0 {
		t.Errorf("expected carried throttle 100, got %f", got)
	}
}

func TestRunStopsAtTouchdown(t *testing.T) {
	// No throttle: the vehicle sinks off the pad immediately.
	vehicle := buildVehicle(t, []rocket.StageConfig{
		{DryMass: 1000, FuelMass: 0, MaxThrust: 1e5, MaxBurnRate: 10},
	}, nil)

	sim := New(vehicle, env.Earth(), nil)
	cfg := DefaultConfig()
	cfg.Dt = 1.0
	cfg.Duration = 100
	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.StepsTaken >= 100 {
		t.Errorf("run should have stopped early, took %d steps", result.StepsTaken)
	}
	if !hasEvent(result, "touchdown") {
		t.Errorf("expected touchdown event, got %+v", result.Events)
	}
}

func TestRunValidatesState(t *testing.T) {
	vehicle := buildVehicle(t, []rocket.StageConfig{
		{DryMass: 1000, FuelMass: 100, MaxThrust: 1e5, MaxBurnRate: 10},
	}, nil)
	vehicle.SetMomentum(vec.New(0, math.NaN(), 0))

	sim := New(vehicle, env.Vacuum(), nil)
	cfg := DefaultConfig()
	cfg.Dt = 0.5
	cfg.Duration = 10
	result, err := sim.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Errors) == 0 {
		t.Fatal("expected a state validation error")
	}
	var simErr SimError
	if !errors.As(result.Errors[0], &simErr) {
		t.Errorf("expected SimError, got %T", result.Errors[0])
	}
	if result.StepsTaken != 0 {
		t.Errorf("run should have aborted on the first step, took %d", result.StepsTaken)
	}
}

func TestRunRejectsBadConfig(t *testing.T) {
	vehicle := buildVehicle(t, nil, nil)
	sim := New(vehicle, env.Vacuum(), nil)

	if _, err := sim.Run(context.Background(), Config{Dt: 0, Duration: 10}); err == nil {
		t.Error("zero dt should be rejected")
	}
	if _, err := sim.Run(context.Background(), Config{Dt: 0.1, Duration: 0}); err == nil {
		t.Error("zero duration should be rejected")
	}
}

func TestRunHonorsContext(t *testing.T) {
	vehicle := buildVehicle(t, []rocket.StageConfig{
		{DryMass: 1000, FuelMass: 4000, MaxThrust: 2e5, MaxBurnRate: 20},
	}, nil)
	sim := New(vehicle, env.Vacuum(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Run(ctx, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSessionStepwise(t *testing.T) {
	vehicle := buildVehicle(t, []rocket.StageConfig{
		{DryMass: 1000, FuelMass: 4000, MaxThrust: 2e5, MaxBurnRate: 20},
	}, nil)
	plan := mustPlan(t, []Event{{Time: 0, Action: ActionSetThrottle, Value: 100}})
	sim := New(vehicle, env.Vacuum(), plan)

	cfg := DefaultConfig()
	cfg.Dt = 0.5
	cfg.Duration = 2

	sess, err := sim.Start(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var last Frame
	steps := 0
	for !sess.Done() {
		last = sess.Step()
		steps++
	}

	if steps != 4 {
		t.Errorf("expected 4 steps, got %d", steps)
	}
	if last.Altitude() <= 0 {
		t.Errorf("vehicle should have climbed, altitude %f", last.Altitude())
	}

	// Stepping a finished session is a no-op returning the last frame.
	again := sess.Step()
	if again != last {
		t.Errorf("expected repeated last frame, got %+v", again)
	}

	result := sess.Result()
	if result.StepsTaken != 4 {
		t.Errorf("expected 4 recorded steps, got %d", result.StepsTaken)
	}
}

func hasEvent(result *Result, detail string) bool {
	for _, ev := range result.Events {
		if ev.Detail == detail {
			return true
		}
	}
	return false
}

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/launchsim/internal/rocket"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Sim.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Sim.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if !cfg.Sim.AutoStage || !cfg.Sim.AutoJettison {
		t.Error("auto staging should default on")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("two_stage")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Vehicle.Stages) != 2 {
		t.Errorf("expected 2 stages, got %d", len(cfg.Vehicle.Stages))
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Error("expected at least one preset")
	}
}

func TestBuildVehicle(t *testing.T) {
	cfg := GetPreset("heavy")

	r, err := cfg.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.NumStages() != 2 {
		t.Errorf("expected 2 stages, got %d", r.NumStages())
	}
	if r.NumSRBs() != 2 {
		t.Errorf("expected 2 boosters, got %d", r.NumSRBs())
	}

	want := 0.0
	for _, sc := range cfg.Vehicle.Stages {
		want += sc.DryMass + sc.FuelMass
	}
	for _, sc := range cfg.Vehicle.SRBs {
		want += sc.DryMass + sc.FuelMass
	}
	for _, pc := range cfg.Vehicle.Payloads {
		want += pc.Mass
	}
	if got := r.TotalMass(); got != want {
		t.Errorf("expected total mass %f, got %f", want, got)
	}
}

func TestBuildRejectsInvalidVehicle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vehicle.CoeffDrag = 0.5
	cfg.Vehicle.CrossSecArea = 10
	cfg.Vehicle.Stages = []StageConfig{{DryMass: -1}}

	if _, err := cfg.Build(); !errors.Is(err, rocket.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestBuildPlan(t *testing.T) {
	cfg := GetPreset("heavy")
	plan, err := cfg.BuildPlan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Len() != len(cfg.Plan) {
		t.Errorf("expected %d events, got %d", len(cfg.Plan), plan.Len())
	}

	cfg2 := DefaultConfig()
	cfg2.Plan = []EventConfig{{Time: 0, Action: "bad_action"}}
	if _, err := cfg2.BuildPlan(); err == nil {
		t.Error("unknown action should be rejected")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flight.yaml")
	cfg := GetPreset("sounding")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Vehicle.CoeffDrag != cfg.Vehicle.CoeffDrag {
		t.Errorf("drag coefficient mismatch: %f vs %f", loaded.Vehicle.CoeffDrag, cfg.Vehicle.CoeffDrag)
	}
	if len(loaded.Vehicle.Stages) != len(cfg.Vehicle.Stages) {
		t.Errorf("stage count mismatch")
	}
	if loaded.Sim.Dt != cfg.Sim.Dt {
		t.Errorf("dt mismatch: %f vs %f", loaded.Sim.Dt, cfg.Sim.Dt)
	}
	if len(loaded.Plan) != len(cfg.Plan) {
		t.Errorf("plan length mismatch")
	}
}

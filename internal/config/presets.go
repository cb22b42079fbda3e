package config

var Presets = map[string]*Config{
	"sounding": {
		Vehicle: VehicleConfig{
			CoeffDrag:    0.75,
			CrossSecArea: 0.07,
			Stages: []StageConfig{
				{DryMass: 35, FuelMass: 25, MaxThrust: 8000, MaxBurnRate: 4.5, Length: 3.5},
			},
			Payloads: []PayloadConfig{{Mass: 5}},
		},
		Sim:  SimConfig{Dt: 0.05, Duration: 300, AutoStage: true, AutoJettison: true},
		Plan: []EventConfig{{Time: 0, Action: "set_throttle", Value: 100}},
	},
	"two_stage": {
		Vehicle: VehicleConfig{
			CoeffDrag:    0.5,
			CrossSecArea: 10.0,
			Stages: []StageConfig{
				{DryMass: 22000, FuelMass: 410000, MaxThrust: 7.6e6, MaxBurnRate: 2450, Length: 42},
				{DryMass: 4000, FuelMass: 107000, MaxThrust: 9.3e5, MaxBurnRate: 287, Length: 13},
			},
			Payloads: []PayloadConfig{{Mass: 15000}},
		},
		Sim: SimConfig{Dt: 0.1, Duration: 900, AutoStage: true, AutoJettison: true},
		Plan: []EventConfig{
			{Time: 0, Action: "set_throttle", Value: 100},
			{Time: 20, Action: "set_roll_rate", Value: 0.004},
			{Time: 120, Action: "set_roll_rate", Value: 0},
		},
	},
	"heavy": {
		Vehicle: VehicleConfig{
			CoeffDrag:    0.6,
			CrossSecArea: 55.0,
			Stages: []StageConfig{
				{DryMass: 85000, FuelMass: 720000, MaxThrust: 5.2e6, MaxBurnRate: 1600, Length: 47},
				{DryMass: 12000, FuelMass: 120000, MaxThrust: 1.0e6, MaxBurnRate: 310, Length: 18},
			},
			SRBs: []StageConfig{
				{DryMass: 87000, FuelMass: 500000, MaxThrust: 1.25e7, MaxBurnRate: 4100, Length: 45},
				{DryMass: 87000, FuelMass: 500000, MaxThrust: 1.25e7, MaxBurnRate: 4100, Length: 45},
			},
			Payloads: []PayloadConfig{{Mass: 25000}},
		},
		Sim: SimConfig{Dt: 0.1, Duration: 1200, AutoStage: true, AutoJettison: true},
		Plan: []EventConfig{
			{Time: 0, Action: "ignite_srbs"},
			{Time: 0, Action: "set_throttle", Value: 100},
			{Time: 30, Action: "set_roll_rate", Value: 0.003},
			{Time: 150, Action: "set_roll_rate", Value: 0},
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

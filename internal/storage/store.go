package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/launchsim/internal/flight"
)

// Store persists completed runs under a base directory, one directory
// per run holding metadata.json and telemetry.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one saved run.
type RunMetadata struct {
	ID        string               `json:"id"`
	Vehicle   string               `json:"vehicle"`
	Timestamp time.Time            `json:"timestamp"`
	Dt        float64              `json:"dt"`
	Duration  float64              `json:"duration"`
	Steps     int                  `json:"steps"`
	Apogee    float64              `json:"apogee"`
	Events    []flight.EventRecord `json:"events"`
	Metrics   map[string]float64   `json:"metrics"`
}

var telemetryHeader = []string{
	"time", "pos_x", "pos_y", "pos_z", "vel_x", "vel_y", "vel_z",
	"mass", "fuel", "attitude", "q", "thrust",
}

// Save writes a run's metadata and telemetry and returns the run ID.
func (s *Store) Save(vehicle string, cfg flight.Config, result *flight.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", vehicle, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Vehicle:   vehicle,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		Steps:     result.StepsTaken,
		Apogee:    result.Apogee(),
		Events:    result.Events,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "telemetry.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(telemetryHeader); err != nil {
		return "", err
	}
	for _, f := range result.Frames {
		row := []string{
			formatFloat(f.Time),
			formatFloat(f.Position.X), formatFloat(f.Position.Y), formatFloat(f.Position.Z),
			formatFloat(f.Velocity.X), formatFloat(f.Velocity.Y), formatFloat(f.Velocity.Z),
			formatFloat(f.Mass), formatFloat(f.FuelMass),
			formatFloat(f.Attitude), formatFloat(f.DynamicPressure),
			formatFloat(f.Thrust.Norm()),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns the metadata of every saved run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

// Load returns the metadata of one run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTelemetry reads back the per-frame telemetry of a run as column
// series keyed by the telemetry header names.
func (s *Store) LoadTelemetry(runID string) (map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "telemetry.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return map[string][]float64{}, nil
	}

	header := records[0]
	columns := make(map[string][]float64, len(header))
	for _, name := range header {
		columns[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		for j, field := range record {
			if j >= len(header) {
				break
			}
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			columns[header[j]] = append(columns[header[j]], val)
		}
	}

	return columns, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// ExportData is the JSON export shape: run metadata plus the full
// telemetry column series.
type ExportData struct {
	RunMetadata
	Telemetry map[string][]float64 `json:"telemetry"`
}

// ExportJSON writes a saved run's metadata and telemetry to w as JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	columns, err := s.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Telemetry: columns})
}

// ExportCSV copies a saved run's telemetry CSV to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "telemetry.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}

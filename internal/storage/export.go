package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Times      []float64 `json:"times"`
	Trajectory []float64 `json:"trajectory"`
}

// ExportJSON writes the metadata and samples of runID as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	grid, x, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Times:       grid,
		Trajectory:  x,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/odestep/internal/ode"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var (
	ErrRunNotFound    = errors.New("storage: run not found")
	ErrLengthMismatch = errors.New("storage: grid and trajectory lengths differ")
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string    `json:"id"`
	Problem   string    `json:"problem"`
	Method    string    `json:"method"`
	Order     int       `json:"order"`
	Timestamp time.Time `json:"timestamp"`
	Start     float64   `json:"start"`
	Stop      float64   `json:"stop"`
	Points    int       `json:"points"`
	Step      float64   `json:"step"`
	X0        float64   `json:"x0"`
	Final     float64   `json:"final"`
	// Diverged marks a non-finite final value, which JSON cannot carry.
	Diverged bool `json:"diverged,omitempty"`
	// EndpointError is set only for problems with an exact solution.
	EndpointError *float64 `json:"endpoint_error,omitempty"`
}

// Save writes meta and the (t, x) samples under a new run directory and
// returns the run ID. ID, Timestamp, Points, Step and Final are filled in.
func (s *Store) Save(meta RunMetadata, grid []float64, x ode.Trajectory) (string, error) {
	if len(grid) != len(x) {
		return "", ErrLengthMismatch
	}

	now := s.now()
	meta.ID = fmt.Sprintf("%s_%s_%d", meta.Problem, meta.Method, now.UnixNano())
	meta.Timestamp = now
	meta.Points = len(grid)
	meta.Final = x.Final()
	if math.IsNaN(meta.Final) || math.IsInf(meta.Final, 0) {
		meta.Final = 0
		meta.Diverged = true
	}
	if h, err := ode.Step(grid); err == nil {
		meta.Step = h
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), grid, x); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrajectory(path string, grid []float64, x ode.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := WriteCSV(w, grid, x); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// WriteCSV writes a "t,x" header followed by one row per sample.
func WriteCSV(w *csv.Writer, grid []float64, x ode.Trajectory) error {
	if len(grid) != len(x) {
		return ErrLengthMismatch
	}
	if err := w.Write([]string{"t", "x"}); err != nil {
		return err
	}
	for i := range grid {
		row := []string{
			strconv.FormatFloat(grid[i], 'g', -1, 64),
			strconv.FormatFloat(x[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory reads back the grid and trajectory saved for runID.
func (s *Store) LoadTrajectory(runID string) ([]float64, ode.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []float64{}, ode.Trajectory{}, nil
	}

	grid := make([]float64, 0, len(records)-1)
	x := make(ode.Trajectory, 0, len(records)-1)
	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
		}
		grid = append(grid, t)
		x = append(x, v)
	}
	return grid, x, nil
}

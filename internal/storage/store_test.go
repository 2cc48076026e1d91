package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/odestep/internal/ode"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	st.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return st
}

func TestStoreSaveLoad(t *testing.T) {
	st := newTestStore(t)
	grid := ode.Linspace(0, 1, 5)
	x := ode.Trajectory{1, 0.8, 0.6, 0.45, 0.3}
	errVal := 0.0679

	runID, err := st.Save(RunMetadata{Problem: "decay", Method: "euler", Order: 1, X0: 1, EndpointError: &errVal}, grid, x)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Problem != "decay" || meta.Method != "euler" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Points != 5 || meta.Step != 0.25 || meta.Final != 0.3 {
		t.Errorf("derived fields wrong: %+v", meta)
	}
	if meta.EndpointError == nil || *meta.EndpointError != errVal {
		t.Errorf("endpoint error not persisted: %v", meta.EndpointError)
	}

	gotGrid, gotX, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	for i := range grid {
		if gotGrid[i] != grid[i] || gotX[i] != x[i] {
			t.Errorf("sample %d = (%v, %v), want (%v, %v)", i, gotGrid[i], gotX[i], grid[i], x[i])
		}
	}
}

func TestStoreSave_ExactRoundTrip(t *testing.T) {
	st := newTestStore(t)
	grid := ode.Linspace(0, 5, 10)
	x, err := ode.RK4(func(x, t float64) float64 { return -(x * x * x) + math.Sin(t) }, grid, 0)
	if err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save(RunMetadata{Problem: "cubic_forced", Method: "rk4"}, grid, x)
	if err != nil {
		t.Fatal(err)
	}
	_, gotX, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatal(err)
	}
	for i := range x {
		if gotX[i] != x[i] {
			t.Errorf("x[%d] = %v, want %v", i, gotX[i], x[i])
		}
	}
}

func TestStoreSave_Diverged(t *testing.T) {
	st := newTestStore(t)
	runID, err := st.Save(RunMetadata{Problem: "growth", Method: "euler"}, []float64{0, 1}, ode.Trajectory{1, math.Inf(1)})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if !meta.Diverged {
		t.Error("expected diverged flag")
	}
	_, x, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(x[1], 1) {
		t.Errorf("x[1] = %v, want +Inf", x[1])
	}
}

func TestStoreSave_LengthMismatch(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Save(RunMetadata{Problem: "decay"}, []float64{0, 1}, ode.Trajectory{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestStoreList(t *testing.T) {
	st := newTestStore(t)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	grid := []float64{0, 1}
	first, err := st.Save(RunMetadata{Problem: "zero", Method: "rk4"}, grid, ode.Trajectory{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(RunMetadata{Problem: "zero", Method: "rk2"}, grid, ode.Trajectory{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(st.Dir(), "stray"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("runs out of order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("List = %v, %v; want empty, nil", runs, err)
	}
}

func TestStoreLoad_NotFound(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("err = %v, want ErrRunNotFound", err)
	}
	if _, _, err := st.LoadTrajectory("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("err = %v, want ErrRunNotFound", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	st := newTestStore(t)
	runID, err := st.Save(RunMetadata{Problem: "zero", Method: "euler"}, []float64{0, 1}, ode.Trajectory{2, 2})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(st.Dir(), runID)
	for _, name := range []string{"metadata.json", "trajectory.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	data, err := os.ReadFile(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "t,x\n0,2\n1,2\n" {
		t.Errorf("unexpected csv:\n%s", data)
	}
}

func TestExportJSON(t *testing.T) {
	st := newTestStore(t)
	runID, err := st.Save(RunMetadata{Problem: "constant", Method: "rk2"}, []float64{0, 0.5, 1}, ode.Trajectory{0, 0.5, 1})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != runID || got.Method != "rk2" {
		t.Errorf("unexpected metadata: %+v", got.RunMetadata)
	}
	if len(got.Times) != 3 || len(got.Trajectory) != 3 || got.Trajectory[2] != 1 {
		t.Errorf("unexpected samples: %v %v", got.Times, got.Trajectory)
	}

	if err := st.ExportJSON(&buf, "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("err = %v, want ErrRunNotFound", err)
	}
}

func TestStoreSave_FailedWriteLeavesNoRun(t *testing.T) {
	st := newTestStore(t)
	bad := math.NaN()
	meta := RunMetadata{Problem: "decay", Method: "rk4", EndpointError: &bad}

	if _, err := st.Save(meta, []float64{0, 0.5, 1}, ode.Trajectory{1, 0.6, 0.37}); err == nil {
		t.Fatal("expected error encoding NaN endpoint error")
	}

	entries, err := os.ReadDir(st.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed save left %d entries behind", len(entries))
	}
}

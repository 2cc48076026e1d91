package viz

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/odestep/internal/ode"
)

func TestPlot(t *testing.T) {
	x := ode.Trajectory{0, 0.5, 1, 0.5, 0}
	graph, err := Plot(x, "bump")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(graph, "bump") {
		t.Error("caption missing from plot")
	}

	if _, err := Plot(ode.Trajectory{math.NaN()}, "nan"); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("err = %v, want ErrNothingToPlot", err)
	}
}

func TestPlotMany(t *testing.T) {
	series := map[string]ode.Trajectory{
		"rk4":   {0, 1, 2, 1},
		"euler": {0, 2, 3, 1},
		"bad":   {math.Inf(1)},
	}
	graph, names, err := PlotMany(series, "compare")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "euler" || names[1] != "rk4" {
		t.Errorf("names = %v", names)
	}
	if graph == "" {
		t.Error("empty graph")
	}

	if _, _, err := PlotMany(map[string]ode.Trajectory{}, ""); !errors.Is(err, ErrNothingToPlot) {
		t.Errorf("err = %v, want ErrNothingToPlot", err)
	}
}

func TestFinite(t *testing.T) {
	got := finite(ode.Trajectory{1, 2, math.NaN(), 4})
	if len(got) != 2 {
		t.Errorf("finite prefix = %v", got)
	}
}

func TestTable(t *testing.T) {
	out := Table([]string{"method", "final"}, [][]string{{"euler", "-0.545"}, {"rk4", "-0.643"}})
	for _, want := range []string{"method", "euler", "rk4", "-0.643"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestReplay_Ticks(t *testing.T) {
	grid := ode.Linspace(0, 1, 4)
	m := NewReplay("decay", grid, ode.Trajectory{1, 0.7, 0.5, 0.35})

	if m.Head() != 1 || !m.Running() {
		t.Fatalf("unexpected initial state: head=%d running=%v", m.Head(), m.Running())
	}
	if m.Init() == nil {
		t.Error("Init should schedule a tick")
	}

	var model tea.Model = m
	for i := 0; i < 5; i++ {
		model, _ = model.Update(TickMsg(time.Now()))
	}
	r := model.(Replay)
	if r.Head() != 4 {
		t.Errorf("head = %d, want 4", r.Head())
	}
	if r.Running() {
		t.Error("replay should stop at the end")
	}
	if !strings.Contains(r.View(), "done") {
		t.Error("view should report done")
	}
}

func TestReplay_Keys(t *testing.T) {
	m := NewReplay("decay", []float64{0, 1, 2}, ode.Trajectory{1, 2, 3})

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace})
	if model.(Replay).Running() {
		t.Error("space should pause")
	}

	model, _ = model.Update(TickMsg(time.Now()))
	if model.(Replay).Head() != 1 {
		t.Error("paused replay should not advance")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	if model.(Replay).Interval() != defaultInterval/2 {
		t.Errorf("interval = %v, want %v", model.(Replay).Interval(), defaultInterval/2)
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if !model.(Replay).Running() || model.(Replay).Head() != 1 {
		t.Error("r should restart")
	}

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestReplay_Empty(t *testing.T) {
	m := NewReplay("empty", nil, nil)
	if !strings.Contains(m.View(), "empty trajectory") {
		t.Error("expected empty notice")
	}
}

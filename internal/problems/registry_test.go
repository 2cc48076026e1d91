package problems

import (
	"math"
	"testing"

	"github.com/san-kum/odestep/internal/ode"
)

func TestRegistry_List(t *testing.T) {
	r := NewRegistry()
	names := r.List()
	if len(names) != 7 {
		t.Fatalf("expected 7 problems, got %d: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestRegistry_Unknown(t *testing.T) {
	if _, err := NewRegistry().Get("lorenz"); err == nil {
		t.Error("expected error for unknown problem")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("custom", func() *Problem {
		return &Problem{Name: "custom", F: func(x, t float64) float64 { return 2 }, Start: 0, Stop: 1, Points: 3}
	})
	p, err := r.Get("custom")
	if err != nil {
		t.Fatal(err)
	}
	if p.HasExact() {
		t.Error("custom problem should have no exact solution")
	}
	if _, err := p.ExactOn(p.Grid(), 0); err == nil {
		t.Error("expected error for missing exact solution")
	}
}

func TestProblems_DefaultsSolvable(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.List() {
		t.Run(name, func(t *testing.T) {
			p, err := r.Get(name)
			if err != nil {
				t.Fatal(err)
			}
			grid := p.Grid()
			if len(grid) != p.Points {
				t.Fatalf("grid has %d points, want %d", len(grid), p.Points)
			}
			x, err := ode.RK4(p.F, grid, p.X0)
			if err != nil {
				t.Fatal(err)
			}
			if p.HasExact() {
				exact, err := p.ExactOn(grid, p.X0)
				if err != nil {
					t.Fatal(err)
				}
				if exact[0] != p.X0 {
					t.Errorf("exact[0] = %v, want %v", exact[0], p.X0)
				}
				if e := math.Abs(x.Final() - exact.Final()); e > 1e-3 {
					t.Errorf("rk4 endpoint error %e too large", e)
				}
			}
		})
	}
}

func TestLogistic_ZeroIsFixedPoint(t *testing.T) {
	p, err := NewRegistry().Get("logistic")
	if err != nil {
		t.Fatal(err)
	}
	if v := p.Exact(5, 0, 0); v != 0 {
		t.Errorf("logistic exact from 0 = %v, want 0", v)
	}
}

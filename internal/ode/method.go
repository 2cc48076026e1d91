package ode

import (
	"fmt"
	"strings"
)

// Method describes a registered stepper.
type Method struct {
	Name   string
	Order  int
	Stages int
	Step   Stepper
}

// Solve runs the method across the grid t starting from xi.
func (m Method) Solve(f Func, t []float64, xi float64) (Trajectory, error) {
	return Integrate(m.Step, f, t, xi)
}

var methods = []Method{
	{Name: "euler", Order: 1, Stages: 1, Step: EulerStep},
	{Name: "rk2", Order: 2, Stages: 2, Step: RK2Step},
	{Name: "rk4", Order: 4, Stages: 4, Step: RK4Step},
}

// Lookup finds a method by name, ignoring case.
func Lookup(name string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range methods {
		if m.Name == key {
			return m, nil
		}
	}
	return Method{}, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Methods lists every registered method in increasing order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

// MethodNames lists the names accepted by Lookup.
func MethodNames() []string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name
	}
	return names
}

package ode

// Func is the right-hand side of dx/dt = f(x, t).
type Func func(x, t float64) float64

// Trajectory holds x[i] ≈ x(t[i]) for each point of a time grid.
type Trajectory []float64

func (tr Trajectory) Clone() Trajectory {
	c := make(Trajectory, len(tr))
	copy(c, tr)
	return c
}

// Final returns the last value, or 0 for an empty trajectory.
func (tr Trajectory) Final() float64 {
	if len(tr) == 0 {
		return 0
	}
	return tr[len(tr)-1]
}

// Stepper advances x from time t by one step of size h.
type Stepper func(f Func, x, t, h float64) float64

// Integrate applies step across the grid t starting from xi.
//
// h is taken from the first interval only. x[0] is exactly xi and the
// result never aliases t.
func Integrate(step Stepper, f Func, t []float64, xi float64) (Trajectory, error) {
	h, err := Step(t)
	if err != nil {
		return nil, err
	}

	x := make(Trajectory, len(t))
	x[0] = xi
	for i := 0; i < len(t)-1; i++ {
		x[i+1] = step(f, x[i], t[i], h)
	}
	return x, nil
}

// Euler solves with the explicit Euler method.
func Euler(f Func, t []float64, xi float64) (Trajectory, error) {
	return Integrate(EulerStep, f, t, xi)
}

// RK2 solves with the midpoint second-order Runge-Kutta method.
func RK2(f Func, t []float64, xi float64) (Trajectory, error) {
	return Integrate(RK2Step, f, t, xi)
}

// RK4 solves with the classical fourth-order Runge-Kutta method.
func RK4(f Func, t []float64, xi float64) (Trajectory, error) {
	return Integrate(RK4Step, f, t, xi)
}

func EulerStep(f Func, x, t, h float64) float64 {
	return x + h*f(x, t)
}

func RK2Step(f Func, x, t, h float64) float64 {
	k1 := h * f(x, t)
	k2 := h * f(x+k1/2, t+h/2)
	return x + k2
}

func RK4Step(f Func, x, t, h float64) float64 {
	k1 := h * f(x, t)
	k2 := h * f(x+k1/2, t+h/2)
	k3 := h * f(x+k2/2, t+h/2)
	k4 := h * f(x+k3, t+h)
	return x + (k1+2*k2+2*k3+k4)/6
}

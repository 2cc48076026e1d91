package ode

import "sync/atomic"

// Counter wraps a Func and counts how many times it is evaluated.
type Counter struct {
	f     Func
	calls atomic.Int64
}

func NewCounter(f Func) *Counter {
	return &Counter{f: f}
}

// Func returns the counting derivative to pass to a stepper.
func (c *Counter) Func() Func {
	return func(x, t float64) float64 {
		c.calls.Add(1)
		return c.f(x, t)
	}
}

func (c *Counter) Calls() int64 { return c.calls.Load() }

func (c *Counter) Reset() { c.calls.Store(0) }

package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odestep/internal/analysis"
	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/ode"
	"github.com/san-kum/odestep/internal/problems"
	"github.com/san-kum/odestep/internal/storage"
)

// DefaultBound is the magnitude past which a Monte Carlo trial counts as unstable.
const DefaultBound = 1e6

// Scenario defines a scripted sequence of solves.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single solve in a scenario. Unset grid fields fall back
// to the problem defaults.
type ScenarioStep struct {
	Problem string   `yaml:"problem"`
	Method  string   `yaml:"method"`
	Start   *float64 `yaml:"start"`
	Stop    *float64 `yaml:"stop"`
	Points  *int     `yaml:"points"`
	X0      *float64 `yaml:"x0"`
	Save    bool     `yaml:"save"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Config     config.Config
	Grid       []float64
	Trajectory ode.Trajectory
	// Error is the endpoint error, NaN when the problem has no exact solution.
	Error float64
	RunID string
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// Resolve builds the run config of the step on top of the problem defaults.
func (s ScenarioStep) Resolve(p *problems.Problem) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Problem = p.Name
	cfg.Start, cfg.Stop, cfg.Points, cfg.X0 = p.Start, p.Stop, p.Points, p.X0
	if s.Method != "" {
		cfg.Method = s.Method
	}
	if s.Start != nil {
		cfg.Start = *s.Start
	}
	if s.Stop != nil {
		cfg.Stop = *s.Stop
	}
	if s.Points != nil {
		cfg.Points = *s.Points
	}
	if s.X0 != nil {
		cfg.X0 = *s.X0
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario. Steps marked save are written
// to store, which may be nil when no step saves.
func RunScenario(ctx context.Context, scenario *Scenario, registry *problems.Registry, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		slog.Debug("scenario step", "step", i+1, "of", len(scenario.Steps), "problem", step.Problem)

		p, err := registry.Get(step.Problem)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		cfg, err := step.Resolve(p)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		m, err := ode.Lookup(cfg.Method)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		grid := cfg.Grid()
		x, err := m.Solve(p.F, grid, cfg.X0)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		res := StepResult{Config: *cfg, Grid: grid, Trajectory: x, Error: math.NaN()}
		if p.HasExact() {
			exact, err := p.ExactOn(grid, cfg.X0)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			if res.Error, err = analysis.EndpointError(x, exact); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}

		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			meta := storage.RunMetadata{
				Problem: p.Name,
				Method:  m.Name,
				Order:   m.Order,
				Start:   cfg.Start,
				Stop:    cfg.Stop,
				X0:      cfg.X0,
			}
			if !math.IsNaN(res.Error) && !math.IsInf(res.Error, 0) {
				e := res.Error
				meta.EndpointError = &e
			}
			if res.RunID, err = store.Save(meta, grid, x); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, res)
	}

	return results, nil
}

// ParameterSweep solves one problem across a range of initial conditions.
type ParameterSweep struct {
	Problem  string
	Method   string
	X0Min    float64
	X0Max    float64
	NumSteps int
	// Points overrides the problem's default grid size when positive.
	Points int
}

// SweepResult holds results from a parameter sweep.
type SweepResult struct {
	X0    float64
	Final float64
	Min   float64
	Max   float64
	Error float64
}

// RunSweep executes a parameter sweep, solving each initial condition in
// its own goroutine. Results keep the order of the x0 values.
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *problems.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	p, err := registry.Get(sweep.Problem)
	if err != nil {
		return nil, err
	}
	m, err := ode.Lookup(sweep.Method)
	if err != nil {
		return nil, err
	}

	n := p.Points
	if sweep.Points > 0 {
		n = sweep.Points
	}
	grid := ode.Linspace(p.Start, p.Stop, n)

	var paramStep float64
	if sweep.NumSteps > 1 {
		paramStep = (sweep.X0Max - sweep.X0Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, sweep.NumSteps)
	errs := make([]error, sweep.NumSteps)

	var wg sync.WaitGroup
	for i := 0; i < sweep.NumSteps; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if errs[idx] = ctx.Err(); errs[idx] != nil {
				return
			}
			xi := sweep.X0Min + float64(idx)*paramStep
			results[idx], errs[idx] = sweepOne(m, p, grid, xi)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	slog.Debug("sweep done", "problem", p.Name, "steps", sweep.NumSteps)
	return results, nil
}

func sweepOne(m ode.Method, p *problems.Problem, grid []float64, xi float64) (SweepResult, error) {
	x, err := m.Solve(p.F, grid, xi)
	if err != nil {
		return SweepResult{}, err
	}

	r := SweepResult{X0: xi, Final: x.Final(), Min: x[0], Max: x[0], Error: math.NaN()}
	for _, v := range x {
		r.Min = min(r.Min, v)
		r.Max = max(r.Max, v)
	}
	if p.HasExact() {
		exact, err := p.ExactOn(grid, xi)
		if err != nil {
			return SweepResult{}, err
		}
		if r.Error, err = analysis.EndpointError(x, exact); err != nil {
			return SweepResult{}, err
		}
	}
	return r, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters.
type MonteCarloConfig struct {
	Problem      string
	Method       string
	BaseX0       float64
	Perturbation float64
	NumTrials    int
	Points       int
	// Bound defaults to DefaultBound when zero.
	Bound float64
	Seed  int64
}

// MonteCarloResult holds one trial of a Monte Carlo run.
type MonteCarloResult struct {
	TrialID int
	X0      float64
	Final   float64
	Stable  bool
}

// RunMonteCarlo solves the problem from uniformly perturbed initial conditions
// in [BaseX0-Perturbation, BaseX0+Perturbation]. A trial is stable when every
// sample stays finite and within Bound.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *problems.Registry) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", cfg.NumTrials)
	}
	p, err := registry.Get(cfg.Problem)
	if err != nil {
		return nil, err
	}
	m, err := ode.Lookup(cfg.Method)
	if err != nil {
		return nil, err
	}

	n := p.Points
	if cfg.Points > 0 {
		n = cfg.Points
	}
	grid := ode.Linspace(p.Start, p.Stop, n)

	bound := cfg.Bound
	if bound == 0 {
		bound = DefaultBound
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		xi := cfg.BaseX0 + (rng.Float64()-0.5)*2*cfg.Perturbation

		x, err := m.Solve(p.F, grid, xi)
		if err != nil {
			return nil, err
		}

		stable := true
		for _, v := range x {
			if math.IsNaN(v) || math.Abs(v) > bound {
				stable = false
				break
			}
		}

		results = append(results, MonteCarloResult{
			TrialID: trial,
			X0:      xi,
			Final:   x.Final(),
			Stable:  stable,
		})

		if (trial+1)%10 == 0 {
			slog.Debug("monte carlo", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results.
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/odestep/internal/ode"
)

const (
	minInterval     = 10 * time.Millisecond
	maxInterval     = 2 * time.Second
	defaultInterval = 100 * time.Millisecond
)

type TickMsg time.Time

// Replay reveals a solved trajectory one grid point per tick.
type Replay struct {
	title    string
	grid     []float64
	x        ode.Trajectory
	head     int
	running  bool
	interval time.Duration
}

func NewReplay(title string, grid []float64, x ode.Trajectory) Replay {
	return Replay{
		title:    title,
		grid:     grid,
		x:        x,
		head:     1,
		running:  true,
		interval: defaultInterval,
	}
}

func (m Replay) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Replay) Init() tea.Cmd {
	return m.tick()
}

func (m Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.head = 1
			m.running = true
		case "+", "=":
			m.interval = max(m.interval/2, minInterval)
		case "-", "_":
			m.interval = min(m.interval*2, maxInterval)
		}
		return m, nil
	case TickMsg:
		if m.running && m.head < len(m.x) {
			m.head++
		}
		if m.head >= len(m.x) {
			m.running = false
		}
		return m, m.tick()
	}
	return m, nil
}

// Head is the number of samples currently shown.
func (m Replay) Head() int { return min(m.head, len(m.x)) }

func (m Replay) Running() bool { return m.running }

func (m Replay) Interval() time.Duration { return m.interval }

func (m Replay) View() string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(m.title))
	sb.WriteString("\n\n")

	head := m.Head()
	if head == 0 {
		sb.WriteString("empty trajectory\n")
		return sb.String()
	}

	if graph, err := Plot(m.x[:head], fmt.Sprintf("step %d/%d", head-1, len(m.x)-1)); err == nil {
		sb.WriteString(GraphStyle.Render(graph))
		sb.WriteString("\n")
	}

	i := head - 1
	sb.WriteString(Metric("t", fmt.Sprintf("%.6g", m.grid[i])))
	sb.WriteString("\n")
	sb.WriteString(Metric("x", fmt.Sprintf("%.8g", m.x[i])))
	sb.WriteString("\n")

	status := StatusRunning.Render("running")
	if !m.running {
		status = StatusPaused.Render("paused")
		if head == len(m.x) {
			status = StatusPaused.Render("done")
		}
	}
	sb.WriteString(Metric("status", status))
	sb.WriteString("\n\n")
	sb.WriteString(KeyHint.Render("space pause · r restart · +/- speed · q quit"))
	sb.WriteString("\n")
	return sb.String()
}

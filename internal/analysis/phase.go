package analysis

import (
	"strings"

	"github.com/san-kum/odestep/internal/ode"
)

// PhasePoint pairs a state with its rate of change.
type PhasePoint struct {
	X, DX float64
}

// PhasePortrait is the (x, dx/dt) curve traced by a trajectory.
type PhasePortrait struct {
	Points []PhasePoint
}

// GeneratePhasePortrait evaluates f along a solved trajectory.
func GeneratePhasePortrait(f ode.Func, t []float64, x ode.Trajectory) (*PhasePortrait, error) {
	if len(t) != len(x) {
		return nil, ErrLengthMismatch
	}
	portrait := &PhasePortrait{Points: make([]PhasePoint, len(x))}
	for i := range x {
		portrait.Points[i] = PhasePoint{X: x[i], DX: f(x[i], t[i])}
	}
	return portrait, nil
}

// PhasePortraitToASCII draws the portrait on a width x height canvas with
// the axes shown where they fall inside the bounds.
func PhasePortraitToASCII(portrait *PhasePortrait, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].DX, portrait.Points[0].DX
	for _, p := range portrait.Points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.DX)
		maxY = max(maxY, p.DX)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.DX-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossings returns the interpolated times at which x passes upward through
// threshold.
func Crossings(t []float64, x ode.Trajectory, threshold float64) []float64 {
	n := min(len(t), len(x))
	var out []float64
	for i := 1; i < n; i++ {
		prev, curr := x[i-1], x[i]
		if prev < threshold && curr >= threshold {
			frac := (threshold - prev) / (curr - prev)
			out = append(out, t[i-1]+frac*(t[i]-t[i-1]))
		}
	}
	return out
}

package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/odestep/internal/ode"
)

const DefaultStroke = "#00ccff"

// TrajectoryToSVG draws x against t as a single polyline. Non-finite
// samples break the line. It returns "" when fewer than two samples remain.
func TrajectoryToSVG(t []float64, x ode.Trajectory, width, height int, strokeColor string) string {
	n := min(len(t), len(x))
	if n < 2 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := t[0], t[n-1]
	minY, maxY := math.Inf(1), math.Inf(-1)
	valid := 0
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			continue
		}
		minX = min(minX, t[i])
		maxX = max(maxX, t[i])
		minY = min(minY, x[i])
		maxY = max(maxY, x[i])
		valid++
	}
	if valid < 2 {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, strokeColor)

	pen := "M"
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			pen = " M"
			continue
		}
		px := (t[i] - minX) / rangeX * float64(width)
		py := float64(height) - (x[i]-minY)/rangeY*float64(height)
		fmt.Fprintf(&sb, "%s%.1f,%.1f", pen, px, py)
		pen = " L"
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteSVG writes the trajectory SVG to w.
func WriteSVG(w io.Writer, t []float64, x ode.Trajectory, width, height int) error {
	svg := TrajectoryToSVG(t, x, width, height, DefaultStroke)
	if svg == "" {
		return fmt.Errorf("export: need at least two finite samples, got %d", min(len(t), len(x)))
	}
	_, err := io.WriteString(w, svg)
	return err
}

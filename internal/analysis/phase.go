package analysis

import (
	"strings"

	"github.com/ossian-f/springlab/internal/spring"
)

// PhasePoint is one (displacement, velocity) sample.
type PhasePoint struct {
	X, V float64
}

// PhasePortrait traces a spring trajectory through phase space. Underdamped
// springs spiral into the origin; critical and overdamped ones slide in
// without circling it.
type PhasePortrait struct {
	Points []PhasePoint
}

// NewPhasePortrait samples the closed-form trajectory for the given release
// at a fixed step.
func NewPhasePortrait(m spring.Model, x0, v0, dt, duration float64) *PhasePortrait {
	if dt <= 0 || duration <= 0 {
		return &PhasePortrait{}
	}

	steps := int(duration / dt)
	portrait := &PhasePortrait{
		Points: make([]PhasePoint, 0, steps+1),
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) * dt
		portrait.Points = append(portrait.Points, PhasePoint{
			X: m.Position(t, x0, v0),
			V: m.Velocity(t, x0, v0),
		})
	}
	return portrait
}

// ASCII renders the portrait onto a width x height character grid, with
// axes drawn where they cross the visible range.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minV, maxV := p.Points[0].V, p.Points[0].V

	for _, pt := range p.Points {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.V < minV {
			minV = pt.V
		}
		if pt.V > maxV {
			maxV = pt.V
		}
	}

	rangeX := maxX - minX
	rangeV := maxV - minV
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeV == 0 {
		rangeV = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeX = maxX - minX
	rangeV = maxV - minV

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.V-minV)/rangeV*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minV <= 0 && maxV >= 0 {
		row := height - 1 - int((0-minV)/rangeV*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
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

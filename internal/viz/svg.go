package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/ossian-f/springlab/internal/motion"
)

// CanvasToSVG renders a braille canvas as SVG, one circle per lit
// sub-pixel.
func CanvasToSVG(w io.Writer, canvas *Canvas, scale float64) error {
	if canvas == nil {
		return fmt.Errorf("svg: nil canvas")
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	_, err := io.WriteString(w, sb.String())
	return err
}

// TrajectoryToSVG renders the path an animation traced as an SVG polyline
// with markers on the start and end points. Frame values are screen
// coordinates; screen and SVG both put the origin top left, so the y axis
// is not flipped.
func TrajectoryToSVG(w io.Writer, frames []motion.Frame, width, height int, strokeColor string) error {
	if len(frames) < 2 {
		return fmt.Errorf("svg: need at least 2 frames, got %d", len(frames))
	}

	// Find bounds
	first := frames[0].Value
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	for _, f := range frames {
		if f.Value.X < minX {
			minX = f.Value.X
		}
		if f.Value.X > maxX {
			maxX = f.Value.X
		}
		if f.Value.Y < minY {
			minY = f.Value.Y
		}
		if f.Value.Y > maxY {
			maxY = f.Value.Y
		}
	}

	// Add padding
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

	project := func(v float64, minV, rangeV float64, size int) float64 {
		return (v - minV) / rangeV * float64(size)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, f := range frames {
		x := project(f.Value.X, minX, rangeX, width)
		y := project(f.Value.Y, minY, rangeY, height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	startX := project(first.X, minX, rangeX, width)
	startY := project(first.Y, minY, rangeY, height)
	last := frames[len(frames)-1].Value
	endX := project(last.X, minX, rangeX, width)
	endY := project(last.Y, minY, rangeY, height)
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="none" stroke="%s"/>
`, startX, startY, strokeColor))
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, endX, endY, strokeColor))

	sb.WriteString("</svg>")
	_, err := io.WriteString(w, sb.String())
	return err
}

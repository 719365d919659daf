package viz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ossian-f/springlab/internal/motion"
	"github.com/ossian-f/springlab/internal/spring"
)

func TestTrajectoryToSVG(t *testing.T) {
	m := spring.NewFromDesign(0.75, 0.25)
	cur := spring.Point{X: 640, Y: 80}
	target := spring.Point{X: 300, Y: 700}
	timing := m.FitPointAuto(spring.Vec2{X: 800, Y: -200}, &cur, target)
	frames := motion.New(timing, cur, target).Frames(60, 2, 0.1)

	var buf bytes.Buffer
	if err := TrajectoryToSVG(&buf, frames, 400, 300, "#00ff88"); err != nil {
		t.Fatalf("TrajectoryToSVG: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"<svg", "<path", `stroke="#00ff88"`, "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if got := strings.Count(out, " L"); got != len(frames)-1 {
		t.Errorf("path has %d line segments, want %d", got, len(frames)-1)
	}
	// Start and end markers.
	if got := strings.Count(out, "<circle"); got != 2 {
		t.Errorf("got %d markers, want 2", got)
	}
}

func TestTrajectoryToSVGTooFewFrames(t *testing.T) {
	var buf bytes.Buffer
	if err := TrajectoryToSVG(&buf, []motion.Frame{{}}, 100, 100, "#fff"); err == nil {
		t.Fatal("expected error for a single frame")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written on error")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(1, 2)

	var buf bytes.Buffer
	if err := CanvasToSVG(&buf, c, 2); err != nil {
		t.Fatalf("CanvasToSVG: %v", err)
	}
	out := buf.String()

	if got := strings.Count(out, "<circle"); got != 1 {
		t.Fatalf("got %d dots, want 1", got)
	}
	if !strings.Contains(out, `cx="3.0" cy="5.0"`) {
		t.Errorf("dot at wrong position:\n%s", out)
	}
}

func TestCanvasToSVGNil(t *testing.T) {
	var buf bytes.Buffer
	if err := CanvasToSVG(&buf, nil, 1); err == nil {
		t.Fatal("expected error for nil canvas")
	}
}

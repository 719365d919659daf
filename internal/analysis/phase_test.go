package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/ossian-f/springlab/internal/spring"
)

func TestPhasePortraitSpiralsInward(t *testing.T) {
	m := spring.NewFromDesign(0.3, 0.5)
	p := NewPhasePortrait(m, 1, 0, 0.005, 3)

	if len(p.Points) == 0 {
		t.Fatal("no points sampled")
	}

	// Compare phase-space radii with velocity scaled to displacement
	// units, so both axes weigh equally.
	omega := m.UndampedNaturalFrequency()
	radius := func(pt PhasePoint) float64 {
		return math.Hypot(pt.X, pt.V/omega)
	}

	first := radius(p.Points[0])
	last := radius(p.Points[len(p.Points)-1])
	if last >= first {
		t.Errorf("trajectory did not contract: first radius %f, last %f", first, last)
	}
	if last > 0.01 {
		t.Errorf("trajectory not near origin after 3s: radius %f", last)
	}
}

func TestPhasePortraitOverdampedDoesNotCircle(t *testing.T) {
	// From rest at positive displacement, an overdamped spring keeps
	// x > 0 all the way in: the portrait stays in two quadrants.
	m := spring.NewFromDesign(1.8, 0.5)
	p := NewPhasePortrait(m, 1, 0, 0.005, 4)

	for i, pt := range p.Points {
		if pt.X < -1e-9 {
			t.Fatalf("point %d crossed the origin: x = %f", i, pt.X)
		}
	}
}

func TestPhasePortraitASCII(t *testing.T) {
	m := spring.NewFromDesign(0.3, 0.5)
	p := NewPhasePortrait(m, 1, 0, 0.005, 2)

	art := p.ASCII(40, 16)
	if art == "" {
		t.Fatal("empty rendering")
	}
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if len(lines) != 16 {
		t.Errorf("got %d lines, want 16", len(lines))
	}
	if !strings.Contains(art, "•") {
		t.Error("rendering has no trajectory points")
	}
	if !strings.Contains(art, "│") || !strings.Contains(art, "─") {
		t.Error("rendering is missing axes through the origin")
	}
}

func TestPhasePortraitEmpty(t *testing.T) {
	p := NewPhasePortrait(spring.NewFromDesign(0.5, 0.5), 1, 0, 0, 0)
	if len(p.Points) != 0 {
		t.Errorf("expected no points for zero duration, got %d", len(p.Points))
	}
	if p.ASCII(10, 10) != "" {
		t.Error("expected empty rendering for empty portrait")
	}
}

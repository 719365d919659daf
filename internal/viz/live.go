package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/ossian-f/springlab/internal/config"
	"github.com/ossian-f/springlab/internal/motion"
	"github.com/ossian-f/springlab/internal/spring"
)

const (
	width           = 64
	height          = 20
	historyCapacity = 300

	// flingSpeed is the impulse one keypress adds, in sub-pixels per second.
	flingSpeed = 320.0

	// cornerInset keeps corner targets clear of the canvas border.
	cornerInset = 6

	// Overlay block half-extents in sub-pixels.
	blockHalfW = 4
	blockHalfH = 3

	// settleTol is the distance and speed below which the block counts as
	// parked on its corner.
	settleTol = 0.5

	// displayScale is sub-pixels per unit; at 1 the pixel fit uses a one
	// sub-pixel epsilon, so a nudge is never visible.
	displayScale = 1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Live is the interactive corner-snap demo: an overlay block on a braille
// canvas springs to whichever corner is selected. Retargets and flings
// refit the spring from the block's instantaneous position and velocity,
// so the motion never jumps.
type Live struct {
	model   spring.Model
	preset  string
	presets []string

	canvas  *Canvas
	corner  int
	corners [4]spring.Point

	anim  *motion.Animation
	animT float64
	pos   spring.Point
	vel   spring.Vec2
	rel   spring.Vec2

	running  bool
	showHelp bool

	trail     []spring.Point
	distHist  []float64
	speedHist []float64
}

// NewLive builds the demo around a spring model. The preset name is only a
// label until the user cycles presets, so a custom model can be passed with
// any tag.
func NewLive(model spring.Model, preset string) Live {
	l := Live{
		model:     model,
		preset:    preset,
		presets:   config.ListPresets(),
		canvas:    NewCanvas(width, height),
		corner:    3,
		running:   true,
		trail:     make([]spring.Point, 0, historyCapacity),
		distHist:  make([]float64, 0, historyCapacity),
		speedHist: make([]float64, 0, historyCapacity),
	}
	l.corners = cornerTargets(l.canvas)
	l.pos = canvasCenter(l.canvas)
	l.release(spring.Vec2{X: flingSpeed, Y: flingSpeed / 2})
	return l
}

func cornerTargets(c *Canvas) [4]spring.Point {
	left := float64(cornerInset)
	right := float64(c.PixelWidth() - 1 - cornerInset)
	top := float64(cornerInset)
	bottom := float64(c.PixelHeight() - 1 - cornerInset)
	return [4]spring.Point{
		{X: left, Y: top},
		{X: right, Y: top},
		{X: left, Y: bottom},
		{X: right, Y: bottom},
	}
}

func canvasCenter(c *Canvas) spring.Point {
	return spring.Point{
		X: float64(c.PixelWidth()) / 2,
		Y: float64(c.PixelHeight()) / 2,
	}
}

func (l Live) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and advances the animation clock.
func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.running = !l.running
		case "r":
			l.reset()
		case "1", "2", "3", "4":
			l.retarget(int(msg.String()[0] - '1'))
		case "left", "h":
			l.fling(-1, 0)
		case "right", "l":
			l.fling(1, 0)
		case "up", "k":
			l.fling(0, -1)
		case "down", "j":
			l.fling(0, 1)
		case "p":
			l.cyclePreset()
		case "?":
			l.showHelp = !l.showHelp
		}
	case TickMsg:
		if l.running {
			l.step()
		}
		return l, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return l, nil
}

// release refits the spring from the block's current position and velocity
// toward the selected corner. Releasing at rest on the corner goes through
// the nudge branch of the fit, so flinging a parked block still works.
func (l *Live) release(v spring.Vec2) {
	cur := l.pos
	timing := l.model.FitPointPixel(v, &cur, l.corners[l.corner], displayScale)
	l.anim = motion.New(timing, cur, l.corners[l.corner])
	l.pos = cur
	l.vel = v
	l.rel = timing.InitialVelocity
	l.animT = 0
}

// retarget switches the selected corner mid-flight, carrying the
// instantaneous velocity into the new fit.
func (l *Live) retarget(i int) {
	l.corner = i
	l.release(l.vel)
}

func (l *Live) fling(dx, dy float64) {
	l.release(spring.Vec2{X: l.vel.X + dx*flingSpeed, Y: l.vel.Y + dy*flingSpeed})
}

func (l *Live) cyclePreset() {
	if len(l.presets) == 0 {
		return
	}
	next := 0
	for i, name := range l.presets {
		if name == l.preset {
			next = (i + 1) % len(l.presets)
			break
		}
	}
	l.preset = l.presets[next]
	if p := config.GetPreset(l.preset); p != nil {
		if m, err := p.Spring.Model(); err == nil {
			l.model = m
		}
	}
	l.release(l.vel)
}

// step advances the clock one frame and samples the animation.
func (l *Live) step() {
	if l.anim != nil {
		l.animT += 1.0 / 60
		l.pos = l.anim.At(l.animT)
		l.vel = l.anim.VelocityAt(l.animT)
		if l.anim.Done(l.animT, settleTol) {
			l.pos = l.anim.Target()
			l.vel = spring.Vec2{}
			l.anim = nil
		}
	}

	l.trail = append(l.trail, l.pos)
	if len(l.trail) > historyCapacity {
		l.trail = l.trail[1:]
	}
	l.distHist = append(l.distHist, l.pos.Distance(l.corners[l.corner]))
	if len(l.distHist) > historyCapacity {
		l.distHist = l.distHist[1:]
	}
	l.speedHist = append(l.speedHist, l.vel.Norm())
	if len(l.speedHist) > historyCapacity {
		l.speedHist = l.speedHist[1:]
	}
}

// reset parks the block in the center with no animation pending.
func (l *Live) reset() {
	l.pos = canvasCenter(l.canvas)
	l.vel = spring.Vec2{}
	l.rel = spring.Vec2{}
	l.anim = nil
	l.animT = 0
	l.trail = l.trail[:0]
	l.distHist = l.distHist[:0]
	l.speedHist = l.speedHist[:0]
}

func (l *Live) draw() {
	l.canvas.Clear()
	pw, ph := l.canvas.PixelWidth(), l.canvas.PixelHeight()
	l.canvas.DrawRect(0, 0, pw-1, ph-1)

	for i, c := range l.corners {
		x, y := int(c.X), int(c.Y)
		if i == l.corner {
			l.canvas.DrawRect(x-2, y-2, x+2, y+2)
		}
		l.canvas.Set(x, y)
	}

	for _, p := range l.trail {
		l.canvas.Set(int(p.X), int(p.Y))
	}

	bx, by := int(l.pos.X), int(l.pos.Y)
	l.canvas.FillRect(bx-blockHalfW, by-blockHalfH, bx+blockHalfW, by+blockHalfH)
}

// View renders the TUI interface.
func (l Live) View() string {
	l.draw()
	canvasView := canvasStyle.Render(l.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("SPRING SNAP") + "\n")

	status := StatusRunning.Render("RUNNING")
	switch {
	case !l.running:
		status = StatusPaused.Render("PAUSED")
	case l.anim == nil:
		status = Subtle.Render("SETTLED")
	}
	s.WriteString(status + "\n\n")

	if len(l.distHist) > 1 {
		chart := asciigraph.Plot(l.distHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Distance to corner"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Preset") + valueStyle.Render(l.preset) + "\n")
	s.WriteString(labelStyle.Render("Damping") + valueStyle.Render(fmt.Sprintf("%.2f", l.model.DampingRatio())) + "\n")
	s.WriteString(labelStyle.Render("Response") + valueStyle.Render(fmt.Sprintf("%.2fs", l.model.FrequencyResponse())) + "\n")
	s.WriteString(labelStyle.Render("Corner") + NeonGlow.Render(fmt.Sprintf(" %d ", l.corner+1)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("(%.1f, %.1f)", l.pos.X, l.pos.Y)) + "\n")
	s.WriteString(labelStyle.Render("Rel vel") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", l.rel.X, l.rel.Y)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.1f px/s", l.vel.Norm())) + "\n")
	if len(l.speedHist) > 1 {
		s.WriteString(labelStyle.Render("") + SparklineChart(l.speedHist, 24) + "\n")
	}

	if l.anim != nil {
		total := l.anim.Start().Distance(l.anim.Target())
		if total > 0 {
			done := 1 - l.pos.Distance(l.anim.Target())/total
			if done < 0 {
				done = 0
			}
			if done > 1 {
				done = 1
			}
			s.WriteString(labelStyle.Render("Progress") + ProgressBar(done, 20) + "\n")
		}
	}

	s.WriteString("\n" + Separator(40) + "\n")
	s.WriteString(helpStyle.Render("1-4:Corner  hjkl/arrows:Fling  P:Preset\nSP:Pause  R:Reset  ?:Help  Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if l.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  1-4      - Snap to a corner         ║
║  Arrows   - Fling the block          ║
║  h/j/k/l  - Fling the block          ║
║  P        - Cycle spring preset      ║
║  Space    - Pause/Resume             ║
║  R        - Reset to center          ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

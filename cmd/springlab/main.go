package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ossian-f/springlab/internal/analysis"
	"github.com/ossian-f/springlab/internal/config"
	"github.com/ossian-f/springlab/internal/motion"
	"github.com/ossian-f/springlab/internal/ode"
	"github.com/ossian-f/springlab/internal/optim"
	"github.com/ossian-f/springlab/internal/scenario"
	"github.com/ossian-f/springlab/internal/spring"
	"github.com/ossian-f/springlab/internal/storage"
	"github.com/ossian-f/springlab/internal/viz"
)

var (
	dataDir string
	// Spring selection
	dampingRatio float64
	period       float64
	mass         float64
	stiffness    float64
	damping      float64
	preset       string
	configFile   string
	// Release
	vx, vy       float64
	fromX, fromY float64
	toX, toY     float64
	epsilonMode  string
	epsilonValue float64
	scale        float64
	// Animation sampling
	fps         int
	maxDuration float64
	tolerance   float64
	// Scalar fit
	velocity float64
	current  float64
	target   float64
	// Phase portrait initial conditions
	x0            float64
	v0            float64
	phaseDt       float64
	phaseDuration float64
	// Sweep grid
	ratioMin, ratioMax   float64
	ratioSteps           int
	periodMin, periodMax float64
	periodSteps          int
	workers              int
	overshootWeight      float64
	topN                 int
	// Export
	outFile   string
	svgWidth  int
	svgHeight int
	stroke    string
	// Scenario
	asJSON bool
)

// main is the entry point for the springlab CLI; it registers commands and
// flags and launches the live demo when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "springlab",
		Short: "spring timing lab for snap animations",
		RunE:  runLive,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	addSpringFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "fit a release, play it out and save the run",
		RunE:  runRelease,
	}
	addSpringFlags(runCmd)
	addReleaseFlags(runCmd)
	addAnimationFlags(runCmd)

	fitCmd := &cobra.Command{
		Use:   "fit",
		Short: "fit one scalar release to spring timing parameters",
		RunE:  fitRelease,
	}
	addSpringFlags(fitCmd)
	addEpsilonFlags(fitCmd)
	fitCmd.Flags().Float64Var(&velocity, "velocity", 5.0, "release velocity (units/s)")
	fitCmd.Flags().Float64Var(&current, "current", 10.05, "current value")
	fitCmd.Flags().Float64Var(&target, "target", 10.0, "target value")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run, or the configured release",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	addSpringFlags(plotCmd)
	addReleaseFlags(plotCmd)
	addAnimationFlags(plotCmd)
	plotCmd.Flags().StringVar(&outFile, "svg", "", "also write the distance curve as SVG")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the run trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVGRun,
	}
	exportSVGCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 400, "svg width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 300, "svg height")
	exportSVGCmd.Flags().StringVar(&stroke, "stroke", "#00ff88", "stroke color")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a stored run, or of the configured spring",
		Args:  cobra.MaximumNArgs(1),
		RunE:  phasePlot,
	}
	addSpringFlags(phaseCmd)
	phaseCmd.Flags().Float64Var(&x0, "x0", 100.0, "initial displacement")
	phaseCmd.Flags().Float64Var(&v0, "v0", 0.0, "initial velocity")
	phaseCmd.Flags().Float64Var(&phaseDt, "dt", 0.005, "sample step")
	phaseCmd.Flags().Float64Var(&phaseDuration, "time", 3.0, "duration")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare the closed form against numeric integrators",
		RunE:  compareMethods,
	}
	addSpringFlags(compareCmd)
	addReleaseFlags(compareCmd)
	addAnimationFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search the design space for the configured release",
		RunE:  sweepDesigns,
	}
	addSpringFlags(sweepCmd)
	addReleaseFlags(sweepCmd)
	addAnimationFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&ratioMin, "ratio-min", 0.3, "damping ratio lower bound")
	sweepCmd.Flags().Float64Var(&ratioMax, "ratio-max", 1.2, "damping ratio upper bound")
	sweepCmd.Flags().IntVar(&ratioSteps, "ratio-steps", 10, "damping ratio steps")
	sweepCmd.Flags().Float64Var(&periodMin, "period-min", 0.15, "period lower bound")
	sweepCmd.Flags().Float64Var(&periodMax, "period-max", 0.6, "period upper bound")
	sweepCmd.Flags().IntVar(&periodSteps, "period-steps", 10, "period steps")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel evaluations (0 = all cpus)")
	sweepCmd.Flags().Float64Var(&overshootWeight, "weight", 1.0, "overshoot penalty weight")
	sweepCmd.Flags().IntVar(&topN, "top", 10, "candidates to print")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted release sequence",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&asJSON, "json", false, "print results as json")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive corner-snap demo",
		RunE:  runLive,
	}
	addSpringFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list spring presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tZETA\tPERIOD\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2fs\t%s\n", name, p.Spring.DampingRatio, p.Spring.Period, p.Description)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, fitCmd, plotCmd, listCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, phaseCmd, compareCmd, sweepCmd, scenarioCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSpringFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dampingRatio, "zeta", config.DefaultDampingRatio, "damping ratio")
	cmd.Flags().Float64Var(&period, "period", config.DefaultPeriod, "frequency response (s)")
	cmd.Flags().Float64Var(&mass, "mass", 0, "spring mass (raw form)")
	cmd.Flags().Float64Var(&stiffness, "stiffness", 0, "spring stiffness (raw form)")
	cmd.Flags().Float64Var(&damping, "damping", 0, "spring damping (raw form)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset spring")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
}

func addEpsilonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&epsilonMode, "epsilon-mode", "", "epsilon policy: fixed, auto or pixel")
	cmd.Flags().Float64Var(&epsilonValue, "epsilon", 0, "fixed coincidence threshold")
	cmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "display scale for pixel epsilon")
}

func addReleaseFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&vx, "vx", 800, "release velocity x")
	cmd.Flags().Float64Var(&vy, "vy", -200, "release velocity y")
	cmd.Flags().Float64Var(&fromX, "from-x", 300, "start x")
	cmd.Flags().Float64Var(&fromY, "from-y", 700, "start y")
	cmd.Flags().Float64Var(&toX, "to-x", 300, "target x")
	cmd.Flags().Float64Var(&toY, "to-y", 700, "target y")
	addEpsilonFlags(cmd)
}

func addAnimationFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "sample rate")
	cmd.Flags().Float64Var(&maxDuration, "time", config.DefaultMaxDuration, "sampling window (s)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "settling tolerance")
}

// resolveConfig builds the effective configuration: defaults, then the
// config file, then the preset, then any changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg.Spring = p.Spring
	}

	f := cmd.Flags()
	if f.Changed("mass") || f.Changed("stiffness") || f.Changed("damping") {
		cfg.Spring = config.SpringConfig{Mass: mass, Stiffness: stiffness, Damping: damping}
	} else {
		if f.Changed("zeta") {
			cfg.Spring = config.SpringConfig{DampingRatio: dampingRatio, Period: cfg.Spring.Period}
			if cfg.Spring.Period == 0 {
				cfg.Spring.Period = period
			}
		}
		if f.Changed("period") {
			ratio := cfg.Spring.DampingRatio
			if cfg.Spring.Mass != 0 || cfg.Spring.Stiffness != 0 {
				ratio = config.DefaultDampingRatio
			}
			cfg.Spring = config.SpringConfig{DampingRatio: ratio, Period: period}
		}
	}
	if f.Changed("vx") {
		cfg.Release.Velocity.X = vx
	}
	if f.Changed("vy") {
		cfg.Release.Velocity.Y = vy
	}
	if f.Changed("from-x") {
		cfg.Release.From.X = fromX
	}
	if f.Changed("from-y") {
		cfg.Release.From.Y = fromY
	}
	if f.Changed("to-x") {
		cfg.Release.To.X = toX
	}
	if f.Changed("to-y") {
		cfg.Release.To.Y = toY
	}
	if f.Changed("epsilon-mode") {
		cfg.Epsilon.Mode = epsilonMode
	}
	if f.Changed("epsilon") {
		cfg.Epsilon.Mode = config.EpsilonFixed
		cfg.Epsilon.Value = epsilonValue
	}
	if f.Changed("scale") {
		cfg.Epsilon.Scale = scale
	}
	if f.Changed("fps") {
		cfg.Animation.FPS = fps
	}
	if f.Changed("time") {
		cfg.Animation.MaxDuration = maxDuration
	}
	if f.Changed("tolerance") {
		cfg.Animation.Tolerance = tolerance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// releaseRun holds one fitted and sampled release.
type releaseRun struct {
	model   spring.Model
	timing  spring.Timing
	start   spring.Point
	target  spring.Point
	frames  []motion.Frame
	summary motion.Summary
}

func sampleRelease(cfg *config.Config) (*releaseRun, error) {
	m, err := cfg.Spring.Model()
	if err != nil {
		return nil, err
	}

	v := cfg.Release.Velocity.Vec()
	cur := cfg.Release.From.Point()
	to := cfg.Release.To.Point()

	timing, err := cfg.Epsilon.Fit(m, v, &cur, to)
	if err != nil {
		return nil, err
	}

	anim := motion.New(timing, cur, to)
	frames := anim.Frames(cfg.Animation.FPS, cfg.Animation.MaxDuration, cfg.Animation.Tolerance)
	summary := motion.Summarize(frames, m, cur, to, cfg.Animation.Tolerance)

	return &releaseRun{
		model:   m,
		timing:  timing,
		start:   cur,
		target:  to,
		frames:  frames,
		summary: summary,
	}, nil
}

func runRelease(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	dir := dataDir
	if configFile != "" && !cmd.Flags().Changed("data") && cfg.DataDir != "" {
		dir = cfg.DataDir
	}
	st := storage.New(dir)
	if err := st.Init(); err != nil {
		return err
	}

	v := cfg.Release.Velocity.Vec()
	fmt.Printf("fitting release (%.1f, %.1f) from (%.1f, %.1f) to (%.1f, %.1f)...\n",
		v.X, v.Y, cfg.Release.From.X, cfg.Release.From.Y, cfg.Release.To.X, cfg.Release.To.Y)

	start := time.Now()
	run, err := sampleRelease(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if run.start != cfg.Release.From.Point() {
		fmt.Printf("start nudged to (%.4f, %.4f)\n", run.start.X, run.start.Y)
	}

	release := storage.Release{
		Velocity: storage.Vec{X: v.X, Y: v.Y},
		From:     storage.Vec{X: run.start.X, Y: run.start.Y},
		To:       storage.Vec{X: run.target.X, Y: run.target.Y},
	}
	runID, err := st.Save(run.model, release, run.timing, cfg.Animation.FPS, run.frames, run.summary)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(run.frames))
	fmt.Println("\nsummary:")
	fmt.Printf("  duration: %.3fs\n", run.summary.Duration)
	fmt.Printf("  settling time: %.3fs\n", run.summary.SettlingTime)
	fmt.Printf("  overshoot: %.3f\n", run.summary.Overshoot)
	fmt.Printf("  final distance: %.4f\n", run.summary.FinalDistance)
	fmt.Printf("  mean energy: %.4f\n", run.summary.MeanEnergy)

	return nil
}

func fitRelease(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := cfg.Spring.Model()
	if err != nil {
		return err
	}

	orig := current
	cur := current
	timing, err := cfg.Epsilon.FitScalar(m, velocity, &cur, target)
	if err != nil {
		return err
	}
	rel := timing.InitialVelocity.X

	fmt.Printf("spring: zeta=%.3f period=%.3fs (mass=%.4f stiffness=%.4f damping=%.4f)\n",
		m.DampingRatio(), m.FrequencyResponse(), m.Mass, m.Stiffness, m.Damping)
	fmt.Printf("relative velocity: %.6f\n", rel)
	if cur != orig {
		fmt.Printf("start nudged: %.6f -> %.6f\n", orig, cur)
	}
	if rel == 0 && velocity != 0 {
		fmt.Println("release absorbed: too slow to visibly leave the target")
	}
	fmt.Printf("max displacement from rest: %.6f\n", m.MaxDisplacement(velocity))

	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	var (
		frames []motion.Frame
		to     spring.Point
		title  string
	)

	if len(args) == 1 {
		st := storage.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		frames, err = st.LoadFrames(args[0])
		if err != nil {
			return err
		}
		to = spring.Point{X: meta.Release.To.X, Y: meta.Release.To.Y}
		title = meta.ID
	} else {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		run, err := sampleRelease(cfg)
		if err != nil {
			return err
		}
		frames = run.frames
		to = run.target
		title = "configured release"
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("plot: %s (%d frames)\n\n", title, len(frames))

	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	dist := make([]float64, len(frames))
	for i, f := range frames {
		xs[i] = f.Value.X
		ys[i] = f.Value.Y
		dist[i] = f.Value.Distance(to)
	}

	series := []struct {
		name string
		data []float64
	}{
		{"x position", xs},
		{"y position", ys},
		{"distance to target", dist},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if outFile != "" {
		c := viz.NewCanvas(64, 16)
		c.Plot(dist)
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := viz.CanvasToSVG(f, c, 4); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tZETA\tPERIOD\tFPS\tFRAMES\tSETTLE\tOVERSHOOT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.3fs\t%d\t%d\t%.2fs\t%.2f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Spring.DampingRatio,
			run.Spring.Period,
			run.FPS,
			run.Summary.Frames,
			run.Summary.SettlingTime,
			run.Summary.Overshoot,
		)
	}

	return w.Flush()
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.ExportCSV(os.Stdout, frames)
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, frames)
}

func exportSVGRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := viz.TrajectoryToSVG(out, frames, svgWidth, svgHeight, stroke); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Printf("wrote %s\n", outFile)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) < 4 {
		return fmt.Errorf("not enough frames to analyze")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("spring: zeta=%.3f period=%.3fs, %d fps\n\n", meta.Spring.DampingRatio, meta.Spring.Period, meta.FPS)

	data := make([]float64, len(frames))
	for i, f := range frames {
		data[i] = f.Value.X - meta.Release.To.X
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/2]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x displacement)"),
	)
	fmt.Println(graph)
	fmt.Println()

	dt := 1.0 / float64(meta.FPS)
	measured := analysis.DominantFrequency(data, dt)
	fmt.Printf("dominant frequency: %.3f hz\n", measured)
	if measured > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/measured)
	}

	m := spring.New(meta.Spring.Mass, meta.Spring.Stiffness, meta.Spring.Damping)
	if m.DampingRatio() < 1 {
		fmt.Printf("damped natural frequency: %.3f hz\n", m.DampedNaturalFrequency()/(2*math.Pi))
	} else {
		fmt.Println("overdamped: no oscillation expected")
	}

	integ, err := ode.New("rk4")
	if err != nil {
		return err
	}
	rate := analysis.DecayRate(m, integ, 1, 0, dt/4, 3, 1e-4)
	fmt.Printf("decay rate: %.3f /s (envelope %.3f /s)\n", rate, analysis.EnvelopeRate(m))

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	var portrait *analysis.PhasePortrait

	if len(args) == 1 {
		st := storage.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		frames, err := st.LoadFrames(args[0])
		if err != nil {
			return err
		}
		if len(frames) == 0 {
			return fmt.Errorf("no data to plot")
		}

		pts := make([]analysis.PhasePoint, len(frames))
		for i, f := range frames {
			pts[i] = analysis.PhasePoint{X: f.Value.X - meta.Release.To.X, V: f.Velocity.X}
		}
		portrait = &analysis.PhasePortrait{Points: pts}
		fmt.Printf("phase portrait: %s (x axis)\n\n", meta.ID)
	} else {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		m, err := cfg.Spring.Model()
		if err != nil {
			return err
		}
		portrait = analysis.NewPhasePortrait(m, x0, v0, phaseDt, phaseDuration)
		fmt.Printf("phase portrait: x0=%.2f v0=%.2f\n\n", x0, v0)
	}

	fmt.Println(portrait.ASCII(70, 20))
	fmt.Println("displacement on x, velocity on y")
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := cfg.Spring.Model()
	if err != nil {
		return err
	}

	v := cfg.Release.Velocity.Vec()
	cur := cfg.Release.From.Point()
	to := cfg.Release.To.Point()
	if _, err := cfg.Epsilon.Fit(m, v, &cur, to); err != nil {
		return err
	}

	// Everything below runs on the x axis in displacement space.
	dx0 := cur.X - to.X
	dv0 := v.X
	sampleFPS := cfg.Animation.FPS
	dt := 1.0 / float64(sampleFPS)
	steps := int(cfg.Animation.MaxDuration * float64(sampleFPS))

	closed := make([]float64, steps+1)
	for i := range closed {
		closed[i] = m.Position(float64(i)*dt, dx0, dv0)
	}

	fmt.Printf("comparing methods (fps=%d, duration=%.1fs, x0=%.2f, v0=%.2f)\n\n",
		sampleFPS, cfg.Animation.MaxDuration, dx0, dv0)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "method", "final_x", "max_err", "time_ms")
	fmt.Println(strings.Repeat("-", 54))
	fmt.Printf("%-12s  %12.6f  %12s  %12s\n", "closed", closed[steps], "-", "-")

	sys := ode.Oscillator{Model: m}
	for _, name := range ode.Names() {
		integ, err := ode.New(name)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		state := ode.State{dx0, dv0}
		maxErr := 0.0
		start := time.Now()
		for i := 1; i <= steps; i++ {
			state = integ.Step(sys, state, float64(i-1)*dt, dt)
			if e := math.Abs(state[0] - closed[i]); e > maxErr {
				maxErr = e
			}
		}
		elapsed := time.Since(start)

		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n", name, state[0], maxErr, float64(elapsed.Microseconds())/1000)
	}

	// harmonica's discrete spring advances in fixed fps-sized steps.
	sp := harmonica.NewSpring(harmonica.FPS(sampleFPS), m.UndampedNaturalFrequency(), m.DampingRatio())
	pos, vel := dx0, dv0
	maxErr := 0.0
	start := time.Now()
	for i := 1; i <= steps; i++ {
		pos, vel = sp.Update(pos, vel, 0)
		if e := math.Abs(pos - closed[i]); e > maxErr {
			maxErr = e
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n", "harmonica", pos, maxErr, float64(elapsed.Microseconds())/1000)

	return nil
}

func sweepDesigns(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	obj := optim.SnapObjective{
		Velocity:        cfg.Release.Velocity.Vec(),
		From:            cfg.Release.From.Point(),
		To:              cfg.Release.To.Point(),
		FPS:             cfg.Animation.FPS,
		MaxDuration:     cfg.Animation.MaxDuration,
		Tolerance:       cfg.Animation.Tolerance,
		OvershootWeight: overshootWeight,
	}
	s := optim.Sweep{
		RatioMin: ratioMin, RatioMax: ratioMax, RatioSteps: ratioSteps,
		PeriodMin: periodMin, PeriodMax: periodMax, PeriodSteps: periodSteps,
		Workers: workers,
	}

	fmt.Printf("sweeping %dx%d candidates...\n", ratioSteps, periodSteps)
	start := time.Now()
	candidates, err := s.Run(cmd.Context(), obj.Score)
	if err != nil {
		return err
	}
	fmt.Printf("evaluated %d candidates in %v\n\n", len(candidates), time.Since(start))

	n := topN
	if n > len(candidates) {
		n = len(candidates)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ZETA\tPERIOD\tSCORE")
	for _, c := range candidates[:n] {
		fmt.Fprintf(w, "%.3f\t%.3fs\t%.4f\n", c.DampingRatio, c.Period, c.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := optim.Best(candidates); ok {
		fmt.Printf("\nbest: zeta=%.3f period=%.3fs (score %.4f)\n", best.DampingRatio, best.Period, best.Score)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}

	results, err := scenario.Run(cmd.Context(), sc, os.Stdout)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tTARGET\tEND\tSETTLE\tOVERSHOOT")
	for _, r := range results {
		name := r.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t(%.0f, %.0f)\t(%.1f, %.1f)\t%.2fs\t%.2f\n",
			r.Step, name, r.Target.X, r.Target.Y, r.End.X, r.End.Y, r.Summary.SettlingTime, r.Summary.Overshoot)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := cfg.Spring.Model()
	if err != nil {
		return err
	}

	label := preset
	if label == "" {
		label = "custom"
	}

	p := tea.NewProgram(viz.NewLive(m, label))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

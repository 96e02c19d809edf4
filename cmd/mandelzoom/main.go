package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/cmplx"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mandelzoom/internal/automation"
	"github.com/san-kum/mandelzoom/internal/config"
	"github.com/san-kum/mandelzoom/internal/cplx"
	"github.com/san-kum/mandelzoom/internal/fractal"
	"github.com/san-kum/mandelzoom/internal/gui"
	"github.com/san-kum/mandelzoom/internal/metrics"
	"github.com/san-kum/mandelzoom/internal/render"
	"github.com/san-kum/mandelzoom/internal/sim"
	"github.com/san-kum/mandelzoom/internal/tui"
	"github.com/san-kum/mandelzoom/internal/view"
)

var (
	configFile string
	preset     string
	palette    string
	workers    int
	logLevel   string
	logFile    string

	theme       string
	supersample int

	benchFrames int

	traceDuration float64
	traceDt       float64
	traceNotches  float64
	traceInterval float64
)

var logCloser io.Closer

// main registers the commands and runs the root command, opening the window
// when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "mandelzoom",
		Short:             "interactive Mandelbrot zoomer",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
		RunE: runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start at a named view")
	pf.StringVar(&palette, "palette", "", "use a named palette")
	pf.IntVar(&workers, "workers", 0, "render workers (0 = one per CPU)")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to a file instead of stderr")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the zoomer window",
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "zoom in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "cyberpunk", fmt.Sprintf("status bar theme %v", tui.ThemeNames()))
	tuiCmd.Flags().IntVar(&supersample, "supersample", 2, "samples per cell pixel along each axis")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure render throughput",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 10, "frames per size")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "fly a scripted zoom and plot the camera",
		RunE:  runTrace,
	}
	traceCmd.Flags().Float64Var(&traceDuration, "time", 10, "flight duration in seconds")
	traceCmd.Flags().Float64Var(&traceDt, "dt", 1.0/60, "time step")
	traceCmd.Flags().Float64Var(&traceNotches, "notches", 1, "wheel notches per scroll")
	traceCmd.Flags().Float64Var(&traceInterval, "interval", 0.5, "seconds between scrolls")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "fly every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	probeCmd := &cobra.Command{
		Use:   "probe [re] [im] | probe [re+imi]",
		Short: "print the iteration count and color of a point",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runProbe,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named views",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCENTER\tZOOM\tITER\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\t%s\n", name,
					cplx.New(p.Camera.Real, p.Camera.Imag), p.Camera.Zoom, p.MaxIterations, p.Description)
			}
			return w.Flush()
		},
	}

	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "list named palettes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPalettes() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, tuiCmd, benchCmd, traceCmd, scenarioCmd, probeCmd, presetsCmd, palettesCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

// setupLogging installs the render package logger. The terminal viewer owns
// the screen, so it only logs when --log-file is given.
func setupLogging(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", logLevel, err)
	}

	var out io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		logCloser = f
		out = f
	case cmd.Name() == "tui":
		return nil
	}

	render.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads --config, then applies --preset, --palette and --workers
// on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
		render.Logger().Info("config loaded", "path", configFile)
	}

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			render.Logger().Warn("ignoring preset", "err", err)
		}
	}
	if palette != "" {
		if err := cfg.UsePalette(palette); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg, render.NewRenderer(cfg.Workers))
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return tui.Run(cfg, render.NewRenderer(cfg.Workers), theme, supersample)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if benchFrames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", benchFrames)
	}
	v, err := view.New(cfg)
	if err != nil {
		return err
	}
	scene := v.Scene()

	sizes := [][2]int{{160, 120}, {320, 240}, {640, 480}, {1280, 720}}
	renderers := []*render.Renderer{
		render.NewRenderer(1),
		render.NewRenderer(cfg.Workers),
	}

	fmt.Printf("benchmarking at %s zoom %.2f, %d iterations\n\n", scene.Camera.Center, scene.Camera.Zoom, scene.MaxIterations)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tWORKERS\tFRAMES\tTIME/FRAME\tMPIX/SEC")

	ctx := cmd.Context()
	for _, size := range sizes {
		frame := render.NewFrame(size[0], size[1], render.BGRA)
		for _, r := range renderers {
			start := time.Now()
			for i := 0; i < benchFrames; i++ {
				if err := r.Render(ctx, scene, frame); err != nil {
					return err
				}
			}
			elapsed := time.Since(start)

			perFrame := elapsed / time.Duration(benchFrames)
			mpix := float64(size[0]*size[1]*benchFrames) / elapsed.Seconds() / 1e6

			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.1f\n",
				size[0], size[1], r.Workers(), benchFrames, perFrame.Round(time.Microsecond), mpix)
		}
	}

	return w.Flush()
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	v, err := view.New(cfg)
	if err != nil {
		return err
	}

	// Scroll at a point off center for the first half, then fling right.
	x, y := cfg.Width*3/4, cfg.Height/3
	half := traceDuration / 2
	script := sim.Dive(x, y, traceNotches, traceInterval, half)
	script = append(script, sim.Drag(half, 0.2, cfg.Width/2, cfg.Height/2, cfg.Width/3, cfg.Height/2, 6)...)

	s := sim.New(v)
	for _, m := range flightMetrics() {
		s.AddMetric(m)
	}

	result, err := s.Run(cmd.Context(), script, sim.Config{
		Dt:       traceDt,
		Duration: traceDuration,
		Width:    cfg.Width,
		Height:   cfg.Height,
	})
	if err != nil {
		return err
	}

	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final: %s zoom %.3f\n\n", result.Final().Camera.Center, result.Final().Camera.Zoom)
	plotFlight(result)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range []string{"peak_speed", "depth", "travel", "settled"} {
		fmt.Fprintf(w, "%s\t%.4g\n", name, result.Metrics[name])
	}
	return w.Flush()
}

func flightMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewPeakSpeed(),
		metrics.NewDepth(),
		metrics.NewTravel(),
		metrics.NewSettled(1e-3),
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunScenario(cmd.Context(), sc, cfg, flightMetrics)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tITER\tSTEPS\tDEPTH\tTRAVEL\tPEAK SPEED\tSETTLED")
	for _, r := range results {
		m := r.Result.Metrics
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%.4g\t%.3f\t%.2f\n",
			r.Name, r.MaxIterations, r.Result.StepsTaken, m["depth"], m["travel"], m["peak_speed"], m["settled"])
	}
	return w.Flush()
}

// plotFlight prints zoom level and pan speed against time.
func plotFlight(r *sim.Result) {
	plots := []struct {
		data    []float64
		caption string
	}{
		{r.Zooms(), "zoom level"},
		{r.Speeds(), "pan speed (extents/s)"},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func runProbe(cmd *cobra.Command, args []string) error {
	point, err := parsePoint(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	g, err := cfg.BuildGradient()
	if err != nil {
		return err
	}

	n := fractal.Evaluate(point, cfg.MaxIterations)
	c := g.Color(n, cfg.MaxIterations)

	fmt.Printf("point: %s\n", point)
	fmt.Printf("modulus: %g\n", cmplx.Abs(point.Complex128()))
	fmt.Printf("iterations: %d/%d\n", n, cfg.MaxIterations)
	fmt.Printf("inside: %v\n", n >= cfg.MaxIterations)
	rgba := c.NRGBA()
	fmt.Printf("color: %s rgba(%d, %d, %d, %d)\n", c.Hex(), rgba.R, rgba.G, rgba.B, rgba.A)
	return nil
}

// parsePoint reads either separate real and imaginary parts or a single
// complex literal such as -0.75+0.1i.
func parsePoint(args []string) (cplx.Complex, error) {
	if len(args) == 1 {
		z, err := strconv.ParseComplex(args[0], 128)
		if err != nil {
			return cplx.Complex{}, fmt.Errorf("point: %w", err)
		}
		return cplx.FromComplex128(z), nil
	}
	re, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return cplx.Complex{}, fmt.Errorf("real part: %w", err)
	}
	im, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return cplx.Complex{}, fmt.Errorf("imaginary part: %w", err)
	}
	return cplx.New(re, im), nil
}

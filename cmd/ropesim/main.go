package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ropesim/internal/analysis"
	"github.com/san-kum/ropesim/internal/automation"
	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/experiment"
	"github.com/san-kum/ropesim/internal/export"
	"github.com/san-kum/ropesim/internal/gui"
	"github.com/san-kum/ropesim/internal/log"
	"github.com/san-kum/ropesim/internal/optim"
	"github.com/san-kum/ropesim/internal/server"
	"github.com/san-kum/ropesim/internal/storage"
	"github.com/san-kum/ropesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	logDir     string
	configFile string
	preset     string

	dt          float64
	duration    float64
	seed        int64
	jitter      float64
	sampleEvery int
	iterations  int
	spacing     float64
	mass        float64
	damping     float64
	gravity     float64
	drive       string
	frequency   float64

	// Analysis
	node   int
	ghosts int

	// Sweep and Monte Carlo
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	workers      int
	trials       int
	stretchLimit float64

	benchTime float64

	// Tune
	axes      []string
	metric    string
	tolerance float64

	gifPath string
	addr    string
	fps     int

	lg *log.Logger
)

// main registers the ropesim commands and runs the root command. With no
// subcommand it opens the raylib window on the preset menu.
func main() {
	rootCmd := &cobra.Command{
		Use:   "ropesim",
		Short: "verlet rope simulation lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			lg, err = log.New(logLevel, logDir)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			gui.Run(nil, "", lg)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ropesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "log directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a named preset")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run a simulation and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRopeFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a node trajectory and the rope length",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&node, "node", -1, "node to plot (default: middle)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [path]",
		Short: "export sampled states to CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.New(dataDir).ExportCSV(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("exported to %s\n", args[1])
			return nil
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [path]",
		Short: "export metadata and states to JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [path]",
		Short: "draw the final frame of a run as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&ghosts, "ghosts", 0, "earlier frames drawn faded behind the last")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "swing frequency and phase portrait of a node",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&node, "node", -1, "node to analyze (default: middle)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark update throughput against relaxation passes",
		RunE:  benchRope,
	}
	benchCmd.Flags().Float64Var(&benchTime, "time", 1.0, "simulated seconds per case")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter across independent runs",
		RunE:  runSweep,
	}
	addRopeFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "iterations", fmt.Sprintf("parameter to vary %v", config.Params()))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 600, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (default: GOMAXPROCS)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "repeat a run under different frame-time jitter seeds",
		RunE:  runMonteCarlo,
	}
	addRopeFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 16, "number of trials")
	monteCarloCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (default: GOMAXPROCS)")
	monteCarloCmd.Flags().Float64Var(&stretchLimit, "stretch-limit", 0, "worst link error that counts as unstable (0: divergence only)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search for the cheapest settings under a metric tolerance",
		RunE:  runTune,
	}
	addRopeFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&axes, "axis", []string{"iterations=10,25,50,100,200,400,600"}, "grid axis as name=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metric, "metric", "max_stretch", "metric to hold under tolerance")
	tuneCmd.Flags().Float64Var(&tolerance, "tolerance", 1.0, "largest acceptable metric value")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the rope in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg, name, gifPath)
		},
	}
	addRopeFlags(liveCmd)
	liveCmd.Flags().StringVar(&gifPath, "gif", "", "GIF output path for recordings")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the rope in a window, driven by the mouse",
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset == "" && configFile == "" && !ropeFlagsChanged(cmd) {
				gui.Run(nil, "", lg)
				return nil
			}
			cfg, name, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg, name, lg)
			return nil
		},
	}
	addRopeFlags(guiCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the rope to browsers over websocket",
		RunE:  serve,
	}
	addRopeFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&fps, "fps", server.DefaultFPS, "frames per second")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		analyzeCmd, benchCmd, sweepCmd, monteCarloCmd, tuneCmd, scenarioCmd, presetsCmd, liveCmd, guiCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var ropeFlagNames = []string{
	"dt", "time", "seed", "jitter", "sample-every", "iterations",
	"spacing", "mass", "damping", "gravity", "drive", "frequency",
}

func addRopeFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().Float64Var(&dt, "dt", def.Run.Dt, "frame time step")
	cmd.Flags().Float64Var(&duration, "time", def.Run.Duration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "jitter seed")
	cmd.Flags().Float64Var(&jitter, "jitter", def.Run.Jitter, "frame time jitter in [0,1)")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", def.Run.SampleEvery, "record one state every N frames")
	cmd.Flags().IntVar(&iterations, "iterations", def.Rope.Iterations, "relaxation passes per frame")
	cmd.Flags().Float64Var(&spacing, "spacing", def.Rope.Spacing, "rest length between nodes")
	cmd.Flags().Float64Var(&mass, "mass", def.Rope.Mass, "extra downward acceleration per node")
	cmd.Flags().Float64Var(&damping, "damping", def.Rope.Damping, "velocity retention in (0,1]")
	cmd.Flags().Float64Var(&gravity, "gravity", def.Rope.Gravity.Y, "downward gravity")
	cmd.Flags().StringVar(&drive, "drive", def.Drive.Mode, "anchor drive (hold|oscillate)")
	cmd.Flags().Float64Var(&frequency, "frequency", def.Drive.Frequency, "oscillate drive frequency (hz)")
}

func ropeFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range ropeFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "rope"

	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, "", err
		}
		cfg, name = p, preset
	}

	if configFile != "" {
		c, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	f := cmd.Flags()
	if f.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if f.Changed("time") {
		cfg.Run.Duration = duration
	}
	if f.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if f.Changed("jitter") {
		cfg.Run.Jitter = jitter
	}
	if f.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if f.Changed("iterations") {
		cfg.Rope.Iterations = iterations
	}
	if f.Changed("spacing") {
		cfg.Rope.Spacing = spacing
	}
	if f.Changed("mass") {
		cfg.Rope.Mass = mass
	}
	if f.Changed("damping") {
		cfg.Rope.Damping = damping
	}
	if f.Changed("gravity") {
		cfg.Rope.Gravity.Y = gravity
	}
	if f.Changed("drive") {
		cfg.Drive.Mode = drive
	}
	if f.Changed("frequency") {
		cfg.Drive.Frequency = frequency
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		name = args[0]
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(lg); err != nil {
		return err
	}

	fmt.Printf("running %s: %d nodes, %d passes per frame...\n", name, exp.Rope().Len(), cfg.Rope.Iterations)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d, samples: %d\n", result.StepsTaken, len(result.States))
	fmt.Println("\nmetrics:")
	for _, m := range []string{"stretch", "max_stretch", "sag", "kinetic"} {
		fmt.Printf("  %-12s %.6f\n", m, result.Metrics[m])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tNODES\tITER\tDURATION\tDT\tDRIVE\tMAX STRETCH")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2fs\t%.4fs\t%s\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nodes,
			run.Rope.Iterations,
			run.Duration,
			run.Dt,
			run.Drive,
			run.Metrics["max_stretch"],
		)
	}

	return w.Flush()
}

func pickNode(n int) int {
	if node >= 0 && node < n {
		return node
	}
	return n / 2
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	n := pickNode(meta.Nodes)
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(result.States))

	for axis, label := range []string{"x", "y"} {
		fmt.Println(asciigraph.Plot(result.Track(n, axis),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("node %d %s", n, label)),
		))
		fmt.Println()
	}

	lengths := make([]float64, len(result.States))
	for i, s := range result.States {
		for j := 0; j+3 < len(s); j += 2 {
			lengths[i] += math.Hypot(s[j+2]-s[j], s[j+3]-s[j+1])
		}
	}
	fmt.Println(asciigraph.Plot(lengths,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("rope length"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(args[1], meta, result); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[1])
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}

	f, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteSVG(f, export.Frames(result), export.SVGOptions{Ghosts: ghosts}); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", args[1])
	return f.Close()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := storage.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}

	n := pickNode(meta.Nodes)
	track := result.Track(n, 1)
	sampleDt := result.SampleDt()

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("node: %d, sample dt: %.4fs\n\n", n, sampleDt)

	freq, err := analysis.DominantFrequency(track, sampleDt)
	if err != nil {
		return err
	}

	ps := analysis.PowerSpectrum(track)
	fmt.Println(asciigraph.Plot(ps[:max(2, len(ps)/4)],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (node %d y)", n)),
	))
	fmt.Println()

	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	fmt.Printf("\nphase portrait (y against dy/dt):\n")
	fmt.Println(analysis.NewPhasePortrait(track, sampleDt).ToASCII(70, 20))
	return nil
}

func benchRope(cmd *cobra.Command, args []string) error {
	base, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	base.Run.Duration = benchTime

	fmt.Printf("benchmarking %.1fs of simulated time\n\n", benchTime)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPACING\tNODES\tITER\tFRAMES\tTIME\tFRAMES/SEC\tMAX STRETCH")

	for _, sp := range []float64{20, 10, 5} {
		for _, it := range []int{10, 50, 200, 600} {
			cfg := base.Clone()
			cfg.Rope.Spacing = sp
			cfg.Rope.Iterations = it

			exp := experiment.New(cfg)
			if err := exp.Setup(lg); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%.0f\t%d\t%d\t%d\t%v\t%.0f\t%.4f\n",
				sp, result.Nodes, it, result.StepsTaken, elapsed,
				float64(result.StepsTaken)/elapsed.Seconds(), result.Metrics["max_stretch"])
		}
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Workers:  workers,
	}

	fmt.Printf("sweeping %s from %g to %g (%d runs)\n\n", sweepParam, sweepMin, sweepMax, sweepSteps)
	results, err := automation.RunSweep(context.Background(), sweep, lg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTRETCH\tMAX STRETCH\tSAG\tKINETIC\tSTATUS\n", sweepParam)
	for _, r := range results {
		status := "ok"
		if r.Diverged {
			status = "diverged"
		}
		fmt.Fprintf(w, "%g\t%.4f\t%.4f\t%.2f\t%.2f\t%s\n",
			r.ParamValue, r.Stretch, r.MaxStretch, r.Sag, r.Kinetic, status)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Run.Jitter == 0 {
		fmt.Println("warning: jitter is 0, every trial will be identical")
	}

	mc := &automation.MonteCarloConfig{
		Base:         cfg,
		NumTrials:    trials,
		Seed:         cfg.Run.Seed,
		Workers:      workers,
		StretchLimit: stretchLimit,
	}

	results, err := automation.RunMonteCarlo(context.Background(), mc, lg)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	worst := make([]float64, len(results))
	for i, r := range results {
		worst[i] = r.MaxStretch
	}

	if len(worst) > 1 {
		fmt.Println(asciigraph.Plot(worst,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("max stretch per trial"),
		))
		fmt.Println()
	}
	fmt.Printf("trials: %d, stable: %d, unstable: %d\n", len(results), stable, unstable)
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	g := optim.NewGridSearch(cfg, metric, tolerance)
	for _, a := range axes {
		name, vals, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		g.Add(name, vals...)
	}

	best, all, err := g.Search(context.Background(), lg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "PARAMS\t%s\tWORK\tSTATUS\n", metric)
	for _, c := range all {
		status := "ok"
		switch {
		case c.Diverged:
			status = "diverged"
		case !c.Feasible:
			status = "over"
		}
		fmt.Fprintf(w, "%v\t%.4f\t%d\t%s\n", c.Params, c.Value, c.Work, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best.Feasible {
		fmt.Printf("\nbest: %v (%s %.4f)\n", best.Params, metric, best.Value)
	} else {
		fmt.Printf("\nnothing under %g; closest: %v (%s %.4f)\n", tolerance, best.Params, metric, best.Value)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s (%d steps)\n", sc.Name, len(sc.Steps))
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), sc, st, lg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tMAX STRETCH\tSAG\tRUN ID")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.2f\t%s\n",
			r.Name, r.Result.StepsTaken, r.Result.Metrics["max_stretch"], r.Result.Metrics["sag"], r.RunID)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPACING\tITER\tGRAVITY\tMASS\tDAMPING\tDRIVE\tJITTER")
	for _, name := range config.ListPresets() {
		p, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%g\t%d\t%g\t%g\t%g\t%s\t%g\n",
			name, p.Rope.Spacing, p.Rope.Iterations, p.Rope.Gravity.Y,
			p.Rope.Mass, p.Rope.Damping, p.Drive.Mode, p.Run.Jitter)
	}
	return w.Flush()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	scene, err := server.NewScene(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("serving on %s (ctrl-c to stop)\n", addr)
	return server.New(scene, fps, lg).ListenAndServe(ctx, addr)
}

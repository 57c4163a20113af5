package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mira/internal/analysis"
	"github.com/san-kum/mira/internal/automation"
	"github.com/san-kum/mira/internal/config"
	"github.com/san-kum/mira/internal/density"
	"github.com/san-kum/mira/internal/experiment"
	"github.com/san-kum/mira/internal/optim"
	"github.com/san-kum/mira/internal/physics"
	"github.com/san-kum/mira/internal/raster"
	"github.com/san-kum/mira/internal/sim"
	"github.com/san-kum/mira/internal/storage"
	"github.com/san-kum/mira/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool

	// Render parameters
	width     int
	p0x       float64
	p0y       float64
	pre       int
	rep       int
	alpha     float64
	sigma     float64
	mu        float64
	pow       float64
	margin    float64
	deposit   string
	workers   int
	streaming bool

	preset     string

	// Output
	outPath     string
	format      string
	saveRun     bool
	showPreview bool
	showHist    bool
	progress    bool
	metricNames []string

	// Lyapunov
	lyapSteps    int
	perturbation float64

	// Bench
	benchW       int
	benchWorkers int

	// Sweep
	sweepRanges []string
	objective   string
	sweepW      int
	sweepRep    int

	// Batch and Monte Carlo
	outDir      string
	trials      int
	startRadius float64
	seed        int64
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorText.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Registering flags resets every bound
// variable to its default.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mira",
		Short:        "Gumowski-Mira attractor density renderer",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				experiment.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mira", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages to stderr")

	renderCmd := &cobra.Command{
		Use:   "render [config]",
		Short: "render an attractor density image",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	addParamFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "output.png", "output image path")
	renderCmd.Flags().StringVar(&format, "format", "", "image format: png, bmp, tiff (default: from extension)")
	renderCmd.Flags().BoolVar(&saveRun, "save", false, "store the run under the data directory")
	renderCmd.Flags().BoolVar(&showPreview, "preview", false, "print a Braille preview of the image")
	renderCmd.Flags().BoolVar(&showHist, "hist", false, "plot the intensity histogram")
	renderCmd.Flags().BoolVar(&progress, "progress", false, "show a progress display while iterating")
	renderCmd.Flags().StringSliceVar(&metricNames, "metric", nil, "extra orbit metrics (see list-metrics)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file with default or preset values",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a stored run's metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	metricsCmd := &cobra.Command{
		Use:   "list-metrics",
		Short: "list orbit metrics",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListMetrics() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	lyapCmd := &cobra.Command{
		Use:   "lyapunov [config]",
		Short: "estimate the largest Lyapunov exponent of the map",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLyapunov,
	}
	addParamFlags(lyapCmd)
	lyapCmd.Flags().IntVar(&lyapSteps, "steps", 100000, "iterations to average over")
	lyapCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-9, "initial separation of the companion orbit")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark orbit generation and accumulation",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchW, "w", 500, "image side in pixels")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 4, "maximum accumulation workers")

	sweepCmd := &cobra.Command{
		Use:   "sweep [config]",
		Short: "grid search map coefficients for the most chaotic or widest-spread attractor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepRanges, "range", []string{"mu=-0.6:-0.3:7"}, "coefficient range name=lo:hi:n (alpha, sigma, mu)")
	sweepCmd.Flags().StringVar(&objective, "objective", "lyapunov", "score: lyapunov, coverage, entropy_bits")
	sweepCmd.Flags().IntVar(&sweepW, "sweep-w", 200, "image side for coverage scoring")
	sweepCmd.Flags().IntVar(&sweepRep, "sweep-rep", 100000, "iterations per trial")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario]",
		Short: "render every step of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for relative outputs")

	mcCmd := &cobra.Command{
		Use:   "montecarlo [config]",
		Short: "check that perturbed start points stay on a bounded attractor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addParamFlags(mcCmd)
	mcCmd.Flags().IntVar(&trials, "trials", 50, "number of perturbed starts")
	mcCmd.Flags().Float64Var(&startRadius, "radius", 1.0, "maximum start offset per axis")
	mcCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	rootCmd.AddCommand(renderCmd, presetsCmd, initCmd, listCmd, showCmd, metricsCmd, lyapCmd, benchCmd, sweepCmd, batchCmd, mcCmd)
	return rootCmd
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "w", config.DefaultW, "image side in pixels")
	cmd.Flags().Float64Var(&p0x, "p0x", config.DefaultP0X, "starting x")
	cmd.Flags().Float64Var(&p0y, "p0y", config.DefaultP0Y, "starting y")
	cmd.Flags().IntVar(&pre, "pre", config.DefaultPre, "warm-up iterations to discard")
	cmd.Flags().IntVar(&rep, "rep", config.DefaultRep, "retained iterations")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "map coefficient a")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "map coefficient s")
	cmd.Flags().Float64Var(&mu, "mu", config.DefaultMu, "map coefficient mu")
	cmd.Flags().Float64Var(&pow, "pow", config.DefaultPow, "tone exponent")
	cmd.Flags().Float64Var(&margin, "margin", 1.1, "viewport margin factor (>= 1)")
	cmd.Flags().StringVar(&deposit, "deposit", config.DefaultDeposit, "deposit policy: bilinear or nearest")
	cmd.Flags().IntVar(&workers, "workers", 1, "accumulation workers")
	cmd.Flags().BoolVar(&streaming, "streaming", false, "regenerate the orbit instead of storing it")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := config.Resolve(preset, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("w") {
		cfg.W = width
	}
	if flags.Changed("p0x") {
		cfg.P0X = p0x
	}
	if flags.Changed("p0y") {
		cfg.P0Y = p0y
	}
	if flags.Changed("pre") {
		cfg.Pre = pre
	}
	if flags.Changed("rep") {
		cfg.Rep = rep
	}
	if flags.Changed("alpha") {
		cfg.Alpha = alpha
	}
	if flags.Changed("sigma") {
		cfg.Sigma = sigma
	}
	if flags.Changed("mu") {
		cfg.Mu = mu
	}
	if flags.Changed("pow") {
		cfg.Pow = pow
	}
	if flags.Changed("margin") {
		cfg.Margin = margin
	}
	if flags.Changed("deposit") {
		cfg.Deposit = deposit
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("streaming") {
		cfg.Streaming = streaming
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func paramFields(cfg *config.Config) []viz.Field {
	return []viz.Field{
		{Label: "w", Value: fmt.Sprint(cfg.W)},
		{Label: "p0", Value: fmt.Sprintf("(%g, %g)", cfg.P0X, cfg.P0Y)},
		{Label: "pre", Value: fmt.Sprint(cfg.Pre)},
		{Label: "rep", Value: fmt.Sprint(cfg.Rep)},
		{Label: "alpha", Value: fmt.Sprint(cfg.Alpha)},
		{Label: "sigma", Value: fmt.Sprint(cfg.Sigma)},
		{Label: "mu", Value: fmt.Sprint(cfg.Mu)},
		{Label: "pow", Value: fmt.Sprint(cfg.Pow)},
		{Label: "deposit", Value: cfg.Deposit},
		{Label: "margin", Value: fmt.Sprint(cfg.Margin)},
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	var imgFormat raster.Format
	if format != "" {
		imgFormat, err = raster.ParseFormat(format)
	} else {
		imgFormat, err = raster.FormatFromPath(outPath)
	}
	if err != nil {
		return err
	}

	dopts, err := cfg.Density()
	if err != nil {
		return err
	}
	params := cfg.Params()

	fmt.Println(viz.Summary("parameters", paramFields(cfg)))

	registry := experiment.NewRegistry()
	metrics := registry.DefaultMetrics()
	extra, err := registry.GetMetrics(metricNames)
	if err != nil {
		return err
	}
	metrics = append(metrics, extra...)

	exp := experiment.New(params, experiment.Options{Density: dopts, Streaming: cfg.Streaming})
	if err := exp.Setup(physics.NewGumowskiMiraFromParams(params), metrics); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var result *experiment.Result
	if progress {
		tracker := viz.NewTracker(params.Rep * exp.Passes())
		exp.GetGenerator().AddObserver(tracker)
		err = viz.RunWithProgress(ctx, os.Stderr, "rendering", tracker, func(ctx context.Context) error {
			var runErr error
			result, runErr = exp.Run(ctx)
			return runErr
		})
	} else {
		fmt.Println(viz.Subtle.Render("rendering..."))
		result, err = exp.Run(ctx)
	}
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if err := raster.Save(outPath, result.Image, imgFormat); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fields := []viz.Field{
		{Label: "output", Value: outPath},
		{Label: "elapsed", Value: result.Elapsed.Round(time.Millisecond).String()},
		{Label: "max cell", Value: fmt.Sprint(result.Grid.Max())},
		{Label: "bounds", Value: fmt.Sprintf("x [%.4g, %.4g] y [%.4g, %.4g]",
			result.Bounds.XLo, result.Bounds.XHi, result.Bounds.YLo, result.Bounds.YHi)},
	}
	fields = append(fields, viz.MetricFields(result.Metrics)...)

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := storage.NewRunMetadata(params, dopts.Policy.String(), dopts.Margin)
		meta.MaxCell = result.Grid.Max()
		meta.Elapsed = result.Elapsed.Seconds()
		meta.Metrics = result.Metrics
		runID, err := st.Save(meta, result.Image, imgFormat)
		if err != nil {
			return err
		}
		fields = append(fields, viz.Field{Label: "run id", Value: runID})
	}

	fmt.Println(viz.Summary("result", fields))

	if showPreview {
		fmt.Print(viz.Thumbnail(result.Image, 80, 40, 1).String())
	}

	if showHist {
		series := analysis.HistogramSeries(result.Intensity.Histogram(), 64)
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("intensity histogram (non-zero pixels)"),
		))
	}

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tW\tREP\tPOW\tDEPOSIT\tMARGIN\tSTREAMING")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%s\t%g\t%v\n",
			name, p.W, p.Rep, p.Pow, p.Deposit, p.Margin, p.Streaming)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
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
	fmt.Fprintln(w, "ID\tTIME\tW\tREP\tDEPOSIT\tPOW\tELAPSED\tIMAGE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%g\t%.2fs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.W,
			run.Rep,
			run.Deposit,
			run.Pow,
			run.Elapsed,
			run.Image,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}
	fmt.Println(viz.Subtle.Render("image: " + st.ImagePath(meta)))
	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	p := cfg.Params()

	est, err := analysis.LyapunovExponent(physics.NewGumowskiMiraFromParams(p), p.P0, p.Pre, lyapSteps, perturbation)
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary("lyapunov", []viz.Field{
		{Label: "lambda", Value: fmt.Sprintf("%.6f", est.Value)},
		{Label: "steps", Value: fmt.Sprint(est.Steps)},
		{Label: "regime", Value: regime(est.Value)},
	}))

	if len(est.Series) > 1 {
		fmt.Println(asciigraph.Plot(est.Series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("running estimate"),
		))
	}
	return nil
}

func regime(lambda float64) string {
	switch {
	case lambda > 1e-3:
		return "chaotic"
	case lambda < -1e-3:
		return "periodic"
	default:
		return "marginal"
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	base := config.DefaultConfig()
	base.W = benchW
	if err := base.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	m := physics.NewGumowskiMiraFromParams(base.Params())

	fmt.Printf("benchmarking w=%d\n\n", benchW)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REP\tDEPOSIT\tWORKERS\tORBIT\tDENSITY\tPOINTS/SEC")

	for _, n := range []int{100000, 1000000} {
		p := base.Params()
		p.Rep = n

		start := time.Now()
		orbit, err := sim.New(m).Run(ctx, sim.ConfigFromParams(p))
		if err != nil {
			return err
		}
		orbitTime := time.Since(start)

		for _, policy := range []string{"nearest", "bilinear"} {
			for _, nw := range workerCounts(benchWorkers) {
				cfg := *base
				cfg.Deposit = policy
				cfg.Workers = nw
				opts, err := cfg.Density()
				if err != nil {
					return err
				}

				start := time.Now()
				if _, _, err := density.Accumulate(orbit.Orbit, p.W, opts); err != nil {
					return err
				}
				densityTime := time.Since(start)

				fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%v\t%.0f\n",
					n, policy, nw, orbitTime.Round(time.Microsecond), densityTime.Round(time.Microsecond),
					float64(n)/densityTime.Seconds())
			}
		}
	}

	return w.Flush()
}

func workerCounts(maxWorkers int) []int {
	counts := []int{1}
	for n := 2; n <= maxWorkers; n *= 2 {
		counts = append(counts, n)
	}
	return counts
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	dopts, err := cfg.Density()
	if err != nil {
		return err
	}

	if objective != "lyapunov" && objective != "coverage" && objective != "entropy_bits" {
		return fmt.Errorf("unknown objective: %s", objective)
	}

	names := make([]string, 0, len(sweepRanges))
	ranges := make([][]float64, 0, len(sweepRanges))
	for _, spec := range sweepRanges {
		name, values, err := optim.ParseRange(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	base := cfg.Params()
	base.W = sweepW
	base.Rep = sweepRep

	score := func(ctx context.Context, values map[string]float64) (float64, error) {
		m := physics.NewGumowskiMiraFromParams(base)
		for name, v := range values {
			if err := m.SetParam(name, v); err != nil {
				return 0, err
			}
		}
		p := base
		p.A, p.S, p.Mu = m.A, m.S, m.Mu

		if objective == "lyapunov" {
			est, err := analysis.LyapunovExponent(m, p.P0, p.Pre, p.Rep, perturbation)
			if err != nil {
				return 0, err
			}
			return est.Value, nil
		}

		exp := experiment.New(p, experiment.Options{Density: dopts})
		if err := exp.Setup(m, nil); err != nil {
			return 0, err
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return 0, err
		}
		v, ok := res.Metrics[objective]
		if !ok {
			return 0, fmt.Errorf("unknown objective: %s", objective)
		}
		return v, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %d points by %s\n\n", gs.Size(), objective)
	best, trials, err := gs.Search(ctx, score)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\tSCORE")
	for _, t := range trials {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", t.Params[name])
		}
		if t.Err != nil {
			fmt.Fprintf(w, "%s\n", viz.ErrorText.Render(t.Err.Error()))
			continue
		}
		fmt.Fprintf(w, "%.6g\n", t.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best == nil {
		return fmt.Errorf("every trial failed")
	}
	fields := make([]viz.Field, 0, len(names)+1)
	for _, name := range names {
		fields = append(fields, viz.Field{Label: name, Value: fmt.Sprint(best.Params[name])})
	}
	fields = append(fields, viz.Field{Label: objective, Value: fmt.Sprintf("%.6g", best.Score)})
	fmt.Println(viz.Summary("best", fields))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running scenario %s (%d steps)\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(ctx, scenario, outDir)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tOUTPUT\tELAPSED\tCOVERAGE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%v\t%.4f\n", r.Name, r.Output,
			r.Result.Elapsed.Round(time.Millisecond), r.Result.Metrics["coverage"])
	}
	if flushErr := w.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	return err
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Params:       cfg.Params(),
		Perturbation: startRadius,
		NumTrials:    trials,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	stable, unstable, envelope := automation.MonteCarloStats(results)
	fields := []viz.Field{
		{Label: "trials", Value: fmt.Sprint(len(results))},
		{Label: "stable", Value: fmt.Sprint(stable)},
		{Label: "unstable", Value: fmt.Sprint(unstable)},
	}
	if stable > 0 {
		fields = append(fields,
			viz.Field{Label: "envelope", Value: fmt.Sprintf("x [%.4g, %.4g] y [%.4g, %.4g]",
				envelope.XLo, envelope.XHi, envelope.YLo, envelope.YHi)},
			viz.Field{Label: "spread", Value: fmt.Sprintf("%.4g", automation.Spread(envelope))})
	}
	fmt.Println(viz.Summary("monte carlo", fields))
	return nil
}

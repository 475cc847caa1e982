package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/rainsdm/atmotraj/internal/aero"
	"github.com/rainsdm/atmotraj/internal/config"
	"github.com/rainsdm/atmotraj/internal/logging"
	"github.com/rainsdm/atmotraj/internal/metrics"
	"github.com/rainsdm/atmotraj/internal/physics"
	"github.com/rainsdm/atmotraj/internal/predict"
	"github.com/rainsdm/atmotraj/internal/snapshot"
	"github.com/rainsdm/atmotraj/internal/storage"
)

var (
	dataDir    string
	configFile string
	logLevel   string

	bodyName       string
	modelName      string
	integratorName string
	dt             float64
	duration       float64
	altitude       float64
	speed          float64
	fpa            float64
	aoa            float64
	noCache        bool
	eagerFill      bool

	frameRate int
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	impactStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "atmotraj",
		Short: "atmospheric trajectory prediction",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".atmotraj", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "predict an atmospheric trajectory",
		RunE:  runPredict,
	}
	addRunFlags(predictCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark cached vs uncached force evaluation",
		RunE:  runBench,
	}
	addRunFlags(benchCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a prediction evolve in the terminal",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list bundled body presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(config.BodyPresets))
			for name := range config.BodyPresets {
				names = append(names, name)
			}
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tRADIUS\tATMOSPHERE\tOCEAN")
			for _, name := range names {
				b := config.BodyPresets[name]
				atmo := "-"
				if b.HasAtmosphere {
					atmo = fmt.Sprintf("%.0f m", b.AtmosphereDepth)
				}
				ocean := "no"
				if b.HasOcean {
					ocean = "yes"
				}
				fmt.Fprintf(w, "%s\t%.0f m\t%s\t%s\n", name, b.Radius, atmo, ocean)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(predictCmd, listCmd, plotCmd, exportCmd, benchCmd, liveCmd, bodiesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&bodyName, "body", "", "body preset (see 'atmotraj bodies')")
	cmd.Flags().StringVar(&modelName, "model", "", "force model")
	cmd.Flags().StringVar(&integratorName, "integrator", "", "integrator (rk4, euler)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 0, "max prediction duration")
	cmd.Flags().Float64Var(&altitude, "altitude", 0, "initial altitude above mean radius")
	cmd.Flags().Float64Var(&speed, "speed", 0, "initial orbital speed")
	cmd.Flags().Float64Var(&fpa, "fpa", 0, "flight path angle below horizontal, radians")
	cmd.Flags().Float64Var(&aoa, "aoa", 0, "angle of attack to fly, radians")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the force cache")
	cmd.Flags().BoolVar(&eagerFill, "eager", false, "fill the whole force cache up front")
}

// runConfig assembles the effective configuration: defaults, then the
// config file, then the body preset, then explicit flags.
func runConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("body") {
		preset := config.GetBodyPreset(bodyName)
		if preset == nil {
			return nil, fmt.Errorf("unknown body: %s", bodyName)
		}
		cfg.Body = *preset
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = modelName
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integratorName
	}
	if cmd.Flags().Changed("dt") {
		cfg.Predictor.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Predictor.Duration = duration
	}
	if cmd.Flags().Changed("altitude") {
		cfg.InitState.Altitude = altitude
	}
	if cmd.Flags().Changed("speed") {
		cfg.InitState.Speed = speed
	}
	if cmd.Flags().Changed("fpa") {
		cfg.InitState.FlightPathAngle = fpa
	}
	if cmd.Flags().Changed("aoa") {
		cfg.Predictor.AngleOfAttack = aoa
	}
	if cmd.Flags().Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if cmd.Flags().Changed("eager") {
		cfg.Cache.Eager = eagerFill
	}
	return cfg, nil
}

func aeroConfig(cfg *config.Config) aero.Config {
	return aero.Config{
		CacheEnabled:       cfg.Cache.Enabled,
		EagerFill:          cfg.Cache.Eager,
		SpeedResolution:    cfg.Cache.SpeedResolution,
		AoAResolution:      cfg.Cache.AoAResolution,
		AltitudeResolution: cfg.Cache.AltitudeResolution,
		MaxSpeed:           cfg.Cache.MaxSpeed,
		MaxAoA:             cfg.Cache.MaxAoA,
		AutoRevalidate:     cfg.Cache.AutoRevalidate,
		DragRatioThreshold: cfg.Cache.DragRatioThreshold,
		Cooldown:           cfg.Cooldown(),
	}
}

// scene is everything a prediction run needs, built from one config.
type scene struct {
	cfg   *config.Config
	snap  *snapshot.Snapshot
	model *aero.Model
	dyn   predict.Dynamics
	integ predict.Integrator
	pred  *predict.Predictor
	x0    predict.State
}

func buildScene(cfg *config.Config) (*scene, error) {
	log := logging.NewStderr(logLevel)

	src := buildSource(cfg)
	snap := snapshot.New(src, log)
	if !snap.Refresh() {
		return nil, fmt.Errorf("no vehicle to predict for")
	}

	fm, err := physics.NewRegistry().Get(cfg.Model)
	if err != nil {
		return nil, err
	}
	model := aero.New(snap, fm, aeroConfig(cfg), log)

	var integ predict.Integrator
	switch cfg.Integrator {
	case "rk4":
		integ = predict.NewRK4()
	case "euler":
		integ = predict.NewSymplecticEuler()
	default:
		return nil, fmt.Errorf("unknown integrator: %s", cfg.Integrator)
	}

	dyn := predict.NewBallistic(model, predict.ConstantAoA{Value: cfg.Predictor.AngleOfAttack})
	pred := predict.New(dyn, integ, snap.Body, log)
	pred.AddMetric(metrics.NewMaxSpeed())
	pred.AddMetric(metrics.NewLowestAltitude(snap.Body.Radius))
	pred.AddMetric(metrics.NewPeakDeceleration())

	return &scene{
		cfg:   cfg,
		snap:  snap,
		model: model,
		dyn:   dyn,
		integ: integ,
		pred:  pred,
		x0:    predict.InitialState(snap.Position, snap.OrbitalVelocity),
	}, nil
}

func predictConfig(cfg *config.Config) predict.Config {
	return predict.Config{
		Dt:            cfg.Predictor.Dt,
		Duration:      cfg.Predictor.Duration,
		ValidateState: cfg.Predictor.ValidateState,
	}
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("predicting entry at %s", cfg.Body.Name)))
	start := time.Now()

	result, err := sc.pred.Run(context.Background(), sc.x0, predictConfig(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Model, cfg.Body.Name, cfg.Integrator,
		cfg.Predictor.Dt, cfg.Predictor.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if result.Impacted {
		last := result.Times[len(result.Times)-1]
		fmt.Println(impactStyle.Render(fmt.Sprintf("impact at t=%.1fs", last)))
	} else {
		fmt.Println("no impact within the prediction window")
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s %.3f\n", labelStyle.Render(name+":"), result.Metrics[name])
	}
	if len(result.Errors) > 0 {
		fmt.Printf("\n%d step errors, first: %v\n", len(result.Errors), result.Errors[0])
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tBODY\tTIME\tDT\tINTEG\tSTEPS\tIMPACT")
	for _, run := range runs {
		impact := "-"
		if run.Impacted {
			impact = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.3fs\t%s\t%d\t%s\n",
			run.ID,
			run.Model,
			run.Body,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dt,
			run.Integrator,
			run.Steps,
			impact,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	preset := config.GetBodyPreset(meta.Body)
	radius := 0.0
	if preset != nil {
		radius = preset.Radius
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s, body: %s\n", meta.Model, meta.Body)
	fmt.Printf("samples: %d over %.1fs\n\n", len(states), times[len(times)-1])

	altitudes := make([]float64, len(states))
	speeds := make([]float64, len(states))
	for i, s := range states {
		p := predict.Position(s)
		altitudes[i] = p.Mag() - radius
		speeds[i] = predict.Velocity(s).Mag()
	}

	fmt.Println(asciigraph.Plot(altitudes,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("altitude above mean radius (m)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(speeds,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("orbital speed (m/s)"),
	))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &predict.Result{
		Times:      times,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
		Impacted:   meta.Impacted,
	}
	result.States = make([]predict.State, len(states))
	for i, s := range states {
		result.States[i] = s
	}

	return storage.ExportJSON(os.Stdout, meta.Model, meta.Body, meta.Integrator,
		meta.Dt, meta.Duration, result)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s on %s\n\n", cfg.Model, cfg.Body.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CACHE\tFILL\tSTEPS\tTIME\tSTEPS/SEC")

	modes := []struct {
		name    string
		fill    string
		enabled bool
		eager   bool
	}{
		{"off", "-", false, false},
		{"on", "lazy", true, false},
		{"on", "eager", true, true},
	}

	for _, mode := range modes {
		cfg.Cache.Enabled = mode.enabled
		cfg.Cache.Eager = mode.eager

		sc, err := buildScene(cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := sc.pred.Run(context.Background(), sc.x0, predictConfig(cfg))
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%.0f\n",
			mode.name, mode.fill, result.StepsTaken, elapsed, stepsPerSec)
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := runConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newLiveModel(sc, frameRate))
	_, err = p.Run()
	return err
}

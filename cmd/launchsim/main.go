package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/launchsim/internal/config"
	"github.com/san-kum/launchsim/internal/env"
	"github.com/san-kum/launchsim/internal/flight"
	"github.com/san-kum/launchsim/internal/storage"
	"github.com/san-kum/launchsim/internal/telemetry"
	"github.com/san-kum/launchsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	noSave     bool
	frameRate  int
	speedup    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "launchsim",
		Short: "staged rocket flight simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".launchsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate a flight",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runFlight,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "vehicle/flight config file (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "simulate a flight with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  liveFlight,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "vehicle/flight config file (yaml)")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	liveCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&speedup, "speed", 10, "simulation steps per rendered frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's altitude profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a saved run's telemetry CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a saved run's metadata and telemetry as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	describeCmd := &cobra.Command{
		Use:   "describe [preset]",
		Short: "print the configured vehicle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  describeVehicle,
	}
	describeCmd.Flags().StringVar(&configFile, "config", "", "vehicle/flight config file (yaml)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in vehicle presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, describeCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the flight configuration from --config or a preset
// name, applying any flag overrides.
func loadConfig(args []string) (*config.Config, string, error) {
	var cfg *config.Config
	var name string

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", err
		}
		cfg = loaded
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		name = args[0]
	default:
		cfg = config.GetPreset("two_stage")
		name = "two_stage"
	}

	if dt > 0 {
		cfg.Sim.Dt = dt
	}
	if duration > 0 {
		cfg.Sim.Duration = duration
	}
	return cfg, name, nil
}

func buildSimulator(cfg *config.Config) (*flight.Simulator, error) {
	vehicle, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	plan, err := cfg.BuildPlan()
	if err != nil {
		return nil, err
	}
	sim := flight.New(vehicle, env.Earth(), plan)
	for _, m := range telemetry.Standard() {
		sim.AddMetric(m)
	}
	return sim, nil
}

func runFlight(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(args)
	if err != nil {
		return err
	}
	sim, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := sim.Run(ctx, cfg.FlightConfig())
	if err != nil {
		return err
	}

	printSummary(name, result)

	if !noSave {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(name, cfg.FlightConfig(), result)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run %s\n", runID)
	}
	return nil
}

func liveFlight(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(args)
	if err != nil {
		return err
	}
	sim, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	sess, err := sim.Start(cfg.FlightConfig())
	if err != nil {
		return err
	}
	return viz.Run(sess, name, frameRate, speedup)
}

func describeVehicle(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(args)
	if err != nil {
		return err
	}
	vehicle, err := cfg.Build()
	if err != nil {
		return err
	}
	fmt.Println(vehicle)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVEHICLE\tSTEPS\tAPOGEE\tWHEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0f m\t%s\n",
			run.ID, run.Vehicle, run.Steps, run.Apogee, run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	columns, err := storage.New(dataDir).LoadTelemetry(args[0])
	if err != nil {
		return err
	}
	altitudes := columns["pos_y"]
	if len(altitudes) < 2 {
		return fmt.Errorf("run %s has no telemetry to plot", args[0])
	}

	fmt.Println(asciigraph.Plot(altitudes,
		asciigraph.Height(20),
		asciigraph.Width(80),
		asciigraph.Caption("altitude (m)"),
	))
	return nil
}

func printSummary(name string, result *flight.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "vehicle\t%s\n", name)
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)

	metricNames := make([]string, 0, len(result.Metrics))
	for mname := range result.Metrics {
		metricNames = append(metricNames, mname)
	}
	sort.Strings(metricNames)
	for _, mname := range metricNames {
		fmt.Fprintf(w, "%s\t%.2f\n", mname, result.Metrics[mname])
	}
	w.Flush()

	if len(result.Events) > 0 {
		fmt.Println("\nevents:")
		for _, ev := range result.Events {
			fmt.Printf("  t=%7.1fs  %s\n", ev.Time, ev.Detail)
		}
	}
	for _, runErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", runErr)
	}

	if len(result.Frames) >= 2 {
		altitudes := make([]float64, len(result.Frames))
		for i, f := range result.Frames {
			altitudes[i] = f.Altitude()
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(altitudes,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("altitude (m)"),
		))
	}
}

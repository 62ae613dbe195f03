package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ropesim/internal/analysis"
	"github.com/san-kum/ropesim/internal/config"
	"github.com/san-kum/ropesim/internal/export"
	"github.com/san-kum/ropesim/internal/metrics"
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/runner"
	"github.com/san-kum/ropesim/internal/storage"
	"github.com/san-kum/ropesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	iterations int
	duration   float64
	model      string
	// Frame rate for live view
	frameRate int
	// Plot/analyze selection
	particle int
	axis     string
	// SVG export
	svgOut    string
	svgStride int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ropesim",
		Short: "2d rope and chain simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no command given
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ropesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and record it",
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	runCmd.Flags().IntVar(&iterations, "iterations", 0, "solver iterations override")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration override")
	runCmd.Flags().StringVar(&model, "model", "", "bending model override (none|spring|pbd|xpbd)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with live visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	liveCmd.Flags().IntVar(&iterations, "iterations", 0, "solver iterations override")
	liveCmd.Flags().StringVar(&model, "model", "", "bending model override")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a particle track from a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&particle, "particle", -1, "particle index (default last)")
	plotCmd.Flags().StringVar(&axis, "axis", "y", "axis to plot (x|y)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export rope shapes to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgStride, "stride", 10, "draw every nth frame")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a particle track",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&particle, "particle", -1, "particle index (default last)")
	analyzeCmd.Flags().StringVar(&axis, "axis", "x", "axis to analyze (x|y)")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare bending models on the same scenario",
		RunE:  compareModels,
	}
	compareCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	compareCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	compareCmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	compareCmd.Flags().Float64Var(&duration, "time", 0, "duration override")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark solver across dt and iteration counts",
		RunE:  benchScenario,
	}
	benchCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available preset scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, compareCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves the scenario: preset first, then config file, then
// flag overrides on top. It also returns the scenario name used for run IDs.
func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.Default()
	scenario := "default"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
		scenario = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		scenario = "custom"
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("model") {
		cfg.Tuning.BendingModel = model
	}

	return cfg, scenario, nil
}

func buildRunner(cfg *config.Config) (*runner.Runner, error) {
	def, err := cfg.BuildDef()
	if err != nil {
		return nil, err
	}
	r, err := rope.New(def)
	if err != nil {
		return nil, err
	}
	path, err := cfg.BuildPath()
	if err != nil {
		return nil, err
	}

	run := runner.New(r, path)
	run.AddMetric(metrics.NewStretchError())
	run.AddMetric(metrics.NewBendDeviation())
	run.AddMetric(metrics.NewKineticEnergy())
	return run, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	run, err := buildRunner(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %s scenario (%s bending)...\n", scenario, cfg.Tuning.BendingModel)
	start := time.Now()

	result, err := run.Run(context.Background(), cfg.RunnerConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(scenario, cfg.Tuning.BendingModel, cfg.RunnerConfig(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg, frameRate)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tPARTICLES\tMODEL\tDT\tDURATION")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%.4fs\t%.2fs\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.BendingModel,
			run.Dt,
			run.Duration,
		)
	}

	return w.Flush()
}

// track extracts one coordinate of one particle across all frames.
func track(frames []runner.Frame, particle int, axis string) ([]float64, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no data")
	}
	if particle < 0 {
		particle = len(frames[0]) - 1
	}
	if particle >= len(frames[0]) {
		return nil, fmt.Errorf("particle %d out of range [0, %d)", particle, len(frames[0]))
	}

	data := make([]float64, len(frames))
	for i, frame := range frames {
		switch axis {
		case "x":
			data[i] = frame[particle].X()
		case "y":
			data[i] = frame[particle].Y()
		default:
			return nil, fmt.Errorf("unknown axis %q (want x or y)", axis)
		}
	}
	return data, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	data, err := track(frames, particle, axis)
	if err != nil {
		return err
	}

	idx := particle
	if idx < 0 {
		idx = len(frames[0]) - 1
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s bending)\n", meta.Scenario, meta.BendingModel)
	fmt.Printf("samples: %d\n\n", len(data))

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("particle %d %s vs time", idx, axis)),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range frames[0] {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, frame := range frames {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, p := range frame {
			row = append(row,
				strconv.FormatFloat(p.X(), 'f', 6, 64),
				strconv.FormatFloat(p.Y(), 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, frames, times)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, _, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	svg := export.FramesToSVG(frames, 800, 600, svgStride)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	data, err := track(frames, particle, axis)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s (%s bending)\n\n", meta.Scenario, meta.BendingModel)

	ps := analysis.PowerSpectrum(analysis.Pad(data))
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", axis)),
	)
	fmt.Println(graph)
	fmt.Println()

	hz, power := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz (power %.3g)\n", hz, power)
	if hz > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/hz)
	}

	return nil
}

func compareModels(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	models := []string{"none", "spring", "pbd", "xpbd"}
	runners := make([]*runner.Runner, 0, len(models))
	for _, m := range models {
		variant := *cfg
		variant.Tuning.BendingModel = m
		run, err := buildRunner(&variant)
		if err != nil {
			return err
		}
		runners = append(runners, run)
	}

	fmt.Printf("comparing bending models on %s (dt=%.4f, duration=%.1fs)\n\n", scenario, cfg.Dt, cfg.Duration)

	start := time.Now()
	results, err := runner.NewEnsemble(runners...).Run(context.Background(), cfg.RunnerConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tSTRETCH_ERR\tBEND_DEV\tKINETIC")
	for i, result := range results {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\n",
			models[i],
			result.Metrics["stretch_error"],
			result.Metrics["bend_deviation"],
			result.Metrics["kinetic_energy"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	dts := []float64{1.0 / 240, 1.0 / 60, 1.0 / 30}
	iterCounts := []int{1, 4, 16}

	fmt.Printf("benchmarking %s\n\n", scenario)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tITERS\tSTEPS\tTIME\tSTEPS/SEC")

	for _, benchDt := range dts {
		for _, iters := range iterCounts {
			run, err := buildRunner(cfg)
			if err != nil {
				return err
			}

			runCfg := runner.Config{Dt: benchDt, Iterations: iters, Duration: cfg.Duration}

			steps := 0
			start := time.Now()
			err = run.RunWithCallback(context.Background(), runCfg, func(rp *rope.Rope, t float64) bool {
				steps++
				return true
			})
			elapsed := time.Since(start)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "%.4fs\t%d\t%d\t%v\t%.0f\n",
				benchDt, iters, steps, elapsed, float64(steps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

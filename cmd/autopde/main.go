package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/sebastiengilbert73/auto-pde/internal/config"
	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
	"github.com/sebastiengilbert73/auto-pde/internal/solver"
	"github.com/sebastiengilbert73/auto-pde/internal/store"
	"github.com/sebastiengilbert73/auto-pde/internal/surface"
	"github.com/sebastiengilbert73/auto-pde/internal/viz"
)

var (
	dataDir    string
	serverURL  string
	configFile string
	preset     string
	equation   string
	ic         string
	xMin, xMax float64
	yMin, yMax float64
	tMax       float64
	nx, ny     int
	dt         float64
	frameIdx   int
	openView   bool
	themeName  string
)

// main registers the autopde commands. Running with no subcommand opens the
// viewer on the most recent saved run, falling back to the built-in sample.
func main() {
	rootCmd := &cobra.Command{
		Use:   "autopde",
		Short: "animated 3d viewer for pde solver output",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("theme") {
				return nil
			}
			for _, name := range viz.ThemeNames() {
				if name == themeName {
					viz.SetTheme(themeName)
					return nil
				}
			}
			return fmt.Errorf("unknown theme: %s (available: %v)", themeName, viz.ThemeNames())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(dataDir)
			runID, err := st.Latest()
			if err != nil {
				return err
			}
			if runID == "" {
				return viz.RunViewer("sample", dataset.Sample())
			}
			ds, err := st.LoadDataset(runID)
			if err != nil {
				return err
			}
			return viz.RunViewer(runID, ds)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".autopde", "data directory")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", config.DefaultServer, "solver service url")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.CurrentTheme.Name, "color theme")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "submit a solve request and save the result",
		RunE:  runSolve,
	}
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	solveCmd.Flags().StringVar(&equation, "equation", config.DefaultEquation, "implicit pde, e.g. \"ut - uxx - uyy\"")
	solveCmd.Flags().StringVar(&ic, "ic", config.DefaultIC, "initial condition u(x,y,0)")
	solveCmd.Flags().Float64Var(&xMin, "x-min", 0, "domain x minimum")
	solveCmd.Flags().Float64Var(&xMax, "x-max", config.DefaultXMax, "domain x maximum")
	solveCmd.Flags().Float64Var(&yMin, "y-min", 0, "domain y minimum")
	solveCmd.Flags().Float64Var(&yMax, "y-max", config.DefaultYMax, "domain y maximum")
	solveCmd.Flags().Float64Var(&tMax, "t-max", config.DefaultTMax, "simulated duration")
	solveCmd.Flags().IntVar(&nx, "nx", config.DefaultNX, "grid points along x")
	solveCmd.Flags().IntVar(&ny, "ny", config.DefaultNY, "grid points along y")
	solveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "solver timestep")
	solveCmd.Flags().BoolVar(&openView, "view", false, "open the viewer on success")

	viewCmd := &cobra.Command{
		Use:   "view [run_id|file.json]",
		Short: "animate a saved run or dataset file",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	infoCmd := &cobra.Command{
		Use:   "info [run_id]",
		Short: "show dataset dimensions and axis bounds",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-frame field statistics over time",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export one frame to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().IntVar(&frameIdx, "frame", 0, "frame index to export")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run with its dataset to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list solve presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-12s %s\n", name, p.Equation)
			}
		},
	}

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "check the solver service",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := solver.NewClient(serverURL)
			if err := client.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("solver service is healthy")
			return nil
		},
	}

	formCmd := &cobra.Command{
		Use:   "form",
		Short: "interactive solve form",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			cfg.Server = serverURL
			return viz.RunForm(cfg)
		},
	}

	rootCmd.AddCommand(solveCmd, viewCmd, listCmd, infoCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, healthCmd, formCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// solveConfig resolves the effective config: preset, then config file, then
// CLI flags, the later overriding the earlier.
func solveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("equation") {
		cfg.Equation = equation
	}
	if cmd.Flags().Changed("ic") {
		cfg.IC = ic
	}
	if cmd.Flags().Changed("x-min") {
		cfg.Domain.XMin = xMin
	}
	if cmd.Flags().Changed("x-max") {
		cfg.Domain.XMax = xMax
	}
	if cmd.Flags().Changed("y-min") {
		cfg.Domain.YMin = yMin
	}
	if cmd.Flags().Changed("y-max") {
		cfg.Domain.YMax = yMax
	}
	if cmd.Flags().Changed("t-max") {
		cfg.Domain.TMax = tMax
	}
	if cmd.Flags().Changed("nx") {
		cfg.Domain.NX = nx
	}
	if cmd.Flags().Changed("ny") {
		cfg.Domain.NY = ny
	}
	if cmd.Flags().Changed("dt") {
		cfg.Domain.Dt = dt
	}
	if cmd.Flags().Changed("server") || cfg.Server == "" {
		cfg.Server = serverURL
	}
	return cfg, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := solveConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	client := solver.NewClient(cfg.Server)
	ctx := context.Background()

	if err := client.Health(ctx); err != nil {
		return err
	}

	fmt.Printf("solving %s ...\n", cfg.Equation)
	start := time.Now()

	ds, err := client.Solve(ctx, cfg.Request())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Request(), ds)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (%dx%d grid)\n", ds.NumFrames(), len(ds.X), len(ds.Y))

	b := surface.ComputeBounds(ds)
	fmt.Printf("value range: [%.4f, %.4f]\n", b.ZMin, b.ZMax)

	if openView {
		return viz.RunViewer(runID, ds)
	}
	return nil
}

// loadRunOrFile accepts either a saved run id or a path to a dataset file in
// the solver wire format.
func loadRunOrFile(name string) (*dataset.Dataset, error) {
	st := store.New(dataDir)
	if ds, err := st.LoadDataset(name); err == nil {
		return ds, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("no run or file named %q: %w", name, err)
	}
	defer f.Close()
	return dataset.Decode(f)
}

func runView(cmd *cobra.Command, args []string) error {
	ds, err := loadRunOrFile(args[0])
	if err != nil {
		return err
	}
	return viz.RunViewer(args[0], ds)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tEQUATION\tGRID\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Equation,
			run.NX, run.NY,
			run.Frames,
		)
	}
	return w.Flush()
}

func runInfo(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err == nil {
		fmt.Printf("run: %s\n", meta.ID)
		fmt.Printf("equation: %s\n", meta.Equation)
		fmt.Printf("ic: %s\n", meta.IC)
	}

	ds, err := loadRunOrFile(runID)
	if err != nil {
		return err
	}

	b := surface.ComputeBounds(ds)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "grid\t%dx%d\n", len(ds.X), len(ds.Y))
	fmt.Fprintf(w, "frames\t%d\n", ds.NumFrames())
	fmt.Fprintf(w, "time span\t[%.4f, %.4f]\n", ds.T[0], ds.T[len(ds.T)-1])
	fmt.Fprintf(w, "x span\t[%.4f, %.4f]\n", b.X.Min, b.X.Max)
	fmt.Fprintf(w, "y span\t[%.4f, %.4f]\n", b.Y.Min, b.Y.Max)
	fmt.Fprintf(w, "value range\t[%.4f, %.4f]\n", b.ZMin, b.ZMax)
	fmt.Fprintf(w, "padding\t%.4f\n", b.Padding)
	fmt.Fprintf(w, "display z\t[%.4f, %.4f]\n", b.Z.Min, b.Z.Max)
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	ds, err := loadRunOrFile(args[0])
	if err != nil {
		return err
	}

	mins := make([]float64, ds.NumFrames())
	maxs := make([]float64, ds.NumFrames())
	means := make([]float64, ds.NumFrames())
	for i := range means {
		mins[i], maxs[i], means[i] = ds.FrameStats(i)
	}

	series := []struct {
		name string
		data []float64
	}{
		{"max over time", maxs},
		{"mean over time", means},
		{"min over time", mins},
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
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	ds, err := loadRunOrFile(args[0])
	if err != nil {
		return err
	}
	if frameIdx < 0 || frameIdx >= ds.NumFrames() {
		return fmt.Errorf("frame %d out of range [0, %d]", frameIdx, ds.NumFrames()-1)
	}
	return store.ExportFrameCSV(os.Stdout, ds, frameIdx)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	ds, err := st.LoadDataset(runID)
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, meta, ds)
}

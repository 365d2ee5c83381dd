// Package main provides the CLI entrypoint for statsview.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/statsview/internal/chart"
	"github.com/verte-zerg/statsview/internal/config"
	"github.com/verte-zerg/statsview/internal/datafile"
	"github.com/verte-zerg/statsview/internal/generator"
	"github.com/verte-zerg/statsview/internal/model"
	"github.com/verte-zerg/statsview/internal/store"
	"github.com/verte-zerg/statsview/internal/tui"
)

const (
	defaultFull      = 1000.0
	defaultStyle     = "sequential"
	defaultRandom    = 4
	defaultTextSize  = 20.0
	defaultLineWidth = 5.0
	defaultDensity   = 1.0
)

var (
	chartFull      float64
	chartStyle     string
	chartRotation  bool
	chartDataset   string
	chartFile      string
	chartRandom    int
	chartTextSize  float64
	chartLineWidth float64
	chartDensity   float64
	chartColors    []string
	chartTextColor string
	chartSeed      int64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "statsview [values...]",
		Short:         "Animated donut chart for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runChartCmd,
	}
	addChartFlags(rootCmd)

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newDatasetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&chartFull, "full", defaultFull, "full-scale total the values are measured against")
	cmd.Flags().StringVar(&chartStyle, "style", defaultStyle, "animation style: sequential, simultaneous, split or 0-2")
	cmd.Flags().BoolVar(&chartRotation, "rotation", false, "rotate the chart while it animates")
	cmd.Flags().StringVar(&chartDataset, "dataset", "", "load values from a saved dataset")
	cmd.Flags().StringVar(&chartFile, "file", "", "load values from a data file")
	cmd.Flags().IntVar(&chartRandom, "random", defaultRandom, "number of random values when no data is given")
	cmd.Flags().Float64Var(&chartTextSize, "text-size", defaultTextSize, "label size in density units")
	cmd.Flags().Float64Var(&chartLineWidth, "line-width", defaultLineWidth, "ring width in density units")
	cmd.Flags().Float64Var(&chartDensity, "density", defaultDensity, "pixels per density unit")
	cmd.Flags().StringSliceVar(&chartColors, "colors", nil, "segment colors as hex, up to 4")
	cmd.Flags().StringVar(&chartTextColor, "text-color", "", "label color as hex")
	cmd.Flags().Int64Var(&chartSeed, "seed", 0, "seed for random colors and data (0: time based)")
}

func runChartCmd(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadChartConfig(cmd)
	if err != nil {
		return err
	}
	gen := newGenerator(cfg.Seed)
	values, full, err := resolveValues(cmd, args, gen)
	if err != nil {
		return err
	}
	useColor := term.IsTerminal(int(os.Stdout.Fd()))
	m, err := tui.NewModel(cfg, full, values, gen, tui.WithRandomCount(chartRandom), tui.WithColor(useColor))
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadChartConfig merges the config file into the chart flags and returns
// the resolved chart settings.
func loadChartConfig(cmd *cobra.Command) (model.ChartConfig, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.ChartConfig{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "text-size", &chartTextSize, fileCfg.Chart.TextSize)
	applyFloatConfig(cmd, "line-width", &chartLineWidth, fileCfg.Chart.LineWidth)
	applyFloatConfig(cmd, "density", &chartDensity, fileCfg.Chart.Density)
	applyBoolConfig(cmd, "rotation", &chartRotation, fileCfg.Chart.LoadRotation)
	applyStringConfig(cmd, "text-color", &chartTextColor, fileCfg.Chart.TextColor)
	applyInt64Config(cmd, "seed", &chartSeed, fileCfg.Chart.Seed)
	if !cmd.Flags().Changed("colors") && len(fileCfg.Chart.Colors) > 0 {
		chartColors = fileCfg.Chart.Colors
	}

	var style model.Style
	if !cmd.Flags().Changed("style") && fileCfg.Chart.AnimationStyle != nil {
		style = fileCfg.Chart.AnimationStyle.Style
	} else {
		style, err = model.ParseStyle(chartStyle)
		if err != nil {
			return model.ChartConfig{}, config.FileConfig{}, fmt.Errorf("invalid --style: %w", err)
		}
	}

	cfg := model.ChartConfig{
		TextSize:  chartTextSize,
		LineWidth: chartLineWidth,
		Density:   chartDensity,
		Colors:    chartColors,
		TextColor: chartTextColor,
		Style:     style,
		Rotation:  chartRotation,
		Seed:      chartSeed,
	}
	if err := validateChartConfig(cfg); err != nil {
		return model.ChartConfig{}, config.FileConfig{}, err
	}
	return cfg, fileCfg, nil
}

func validateChartConfig(cfg model.ChartConfig) error {
	if cfg.TextSize < 0 {
		return fmt.Errorf("--text-size must be >= 0")
	}
	if cfg.LineWidth < 0 {
		return fmt.Errorf("--line-width must be >= 0")
	}
	if cfg.Density <= 0 {
		return fmt.Errorf("--density must be > 0")
	}
	if len(cfg.Colors) > 4 {
		return fmt.Errorf("--colors accepts at most 4 colors")
	}
	if chartRandom <= 0 {
		return fmt.Errorf("--random must be > 0")
	}
	return nil
}

// resolveValues picks the data source: positional values, --file,
// --dataset, or random values.
func resolveValues(cmd *cobra.Command, args []string, gen *generator.Generator) ([]float64, float64, error) {
	sources := 0
	for _, set := range []bool{len(args) > 0, chartFile != "", chartDataset != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, 0, fmt.Errorf("use only one of positional values, --file or --dataset")
	}
	full := chartFull
	var values []float64
	var err error
	switch {
	case len(args) > 0:
		values, err = datafile.ParseFields(strings.Join(args, " "))
	case chartFile != "":
		values, err = datafile.Load(chartFile)
	case chartDataset != "":
		var ds model.Dataset
		ds, err = loadDataset(cmd.Context(), chartDataset)
		values = ds.Values
		if err == nil && !cmd.Flags().Changed("full") {
			full = ds.Full
		}
	default:
		values = gen.Generate(chartRandom, full, gen.Fill(0.5, 1))
	}
	if err != nil {
		return nil, 0, err
	}
	if full <= 0 {
		return nil, 0, fmt.Errorf("--full must be > 0")
	}
	if err := chart.ValidateValues(values); err != nil {
		return nil, 0, err
	}
	return values, full, nil
}

func loadDataset(ctx context.Context, name string) (model.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)
	ds, err := st.GetDataset(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return model.Dataset{}, fmt.Errorf("dataset %q not found (see: statsview dataset list)", name)
	}
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, nil
}

func newGenerator(seed int64) *generator.Generator {
	if seed == 0 {
		return generator.New()
	}
	return generator.NewSeeded(seed)
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# statsview configuration
# Uncomment a value to enable it. CLI flags override config values.

[chart]
# text-size = %.1f              # Label size in density units
# line-width = %.1f              # Ring width in density units
# density = %.1f                 # Pixels per density unit
# colors = ["#FF5722", "#3F51B5", "#4CAF50", "#FFC107"]
# text-color = "#000000"        # Label color
# animation-style = %q  # sequential, simultaneous, split or 0-2
# load-rotation = false         # Rotate the chart while it animates
# seed = 0                      # Seed for random colors (0: time based)

[render]
# width = %d                   # Image width in pixels
# height = %d                  # Image height in pixels
# format = %q                 # png, svg, text or table
# background = %q         # Image background, empty for transparent
`,
		defaultTextSize,
		defaultLineWidth,
		defaultDensity,
		defaultStyle,
		defaultWidth,
		defaultHeight,
		defaultFormat,
		defaultBackground,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

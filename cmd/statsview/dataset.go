package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/statsview/internal/chart"
	"github.com/verte-zerg/statsview/internal/config"
	"github.com/verte-zerg/statsview/internal/datafile"
	"github.com/verte-zerg/statsview/internal/model"
	"github.com/verte-zerg/statsview/internal/palette"
	"github.com/verte-zerg/statsview/internal/stats"
	"github.com/verte-zerg/statsview/internal/store"
)

var (
	datasetFull float64
	datasetFile string
)

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage saved datasets",
	}
	add := &cobra.Command{
		Use:   "add NAME [values...]",
		Short: "Save or replace a dataset",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDatasetAddCmd,
	}
	add.Flags().Float64Var(&datasetFull, "full", defaultFull, "full-scale total")
	add.Flags().StringVar(&datasetFile, "file", "", "read values from a data file")

	cmd.AddCommand(add)
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved datasets",
		Args:  cobra.NoArgs,
		RunE:  runDatasetListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Show a dataset's segments",
		Args:  cobra.ExactArgs(1),
		RunE:  runDatasetShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runDatasetRmCmd,
	})
	return cmd
}

func runDatasetAddCmd(cmd *cobra.Command, args []string) error {
	name := args[0]
	values, err := datasetValues(args[1:], datasetFile)
	if err != nil {
		return err
	}
	if datasetFull <= 0 {
		return fmt.Errorf("--full must be > 0")
	}
	if err := chart.ValidateValues(values); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	ds := model.Dataset{Name: name, Full: datasetFull, Values: values}
	if err := st.SaveDataset(cmd.Context(), ds); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}
	logErrf("Saved dataset %q (%d values)\n", name, len(values))
	return nil
}

func datasetValues(args []string, path string) ([]float64, error) {
	switch {
	case len(args) > 0 && path != "":
		return nil, fmt.Errorf("use either values or --file, not both")
	case path != "":
		return datafile.Load(path)
	case len(args) > 0:
		return datafile.ParseFields(strings.Join(args, " "))
	default:
		return nil, fmt.Errorf("no values given")
	}
}

func runDatasetListCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	datasets, err := st.ListDatasets(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list datasets: %w", err)
	}
	return stats.RenderDatasets(cmd.OutOrStdout(), datasets)
}

func runDatasetShowCmd(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	var seed int64
	if fileCfg.Chart.Seed != nil {
		seed = *fileCfg.Chart.Seed
	}
	pal, err := palette.New(fileCfg.Chart.Colors, seed)
	if err != nil {
		return fmt.Errorf("failed to build palette: %w", err)
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Dataset: %s\nUpdated: %s\n\n", ds.Name, ds.UpdatedAt.Local().Format("2006-01-02 15:04")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderTable(out, ds.Values, ds.Full, pal); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if line := stats.Sparkline(ds.Values); line != "" {
		if _, err := fmt.Fprintf(out, "Trend: [%s]\n", line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runDatasetRmCmd(cmd *cobra.Command, args []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	if err := st.DeleteDataset(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logErrln("Nothing to delete. List datasets with: statsview dataset list")
			return fmt.Errorf("dataset %q not found", args[0])
		}
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	logErrf("Deleted dataset %q\n", args[0])
	return nil
}

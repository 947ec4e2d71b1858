package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"datalab/adapters/chart"
	"datalab/adapters/datareadiness/coercer"
	"datalab/domain/dataset"
	"datalab/internal/config"
	"datalab/internal/container"
	"datalab/internal/errors"
	"datalab/internal/logging"
	"datalab/internal/menu"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// defaultChartDir is used by --png when no chart directory is configured
const defaultChartDir = "charts"

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cliOptions struct {
	dataDir string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "datalab-cli",
		Short:         "Summary statistics and histograms for the bundled datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding the dataset files (overrides DATALAB_DATA_DIR)")

	rootCmd.AddCommand(
		newDatasetsCmd(),
		newColumnsCmd(opts),
		newStatsCmd(opts),
		newHistogramCmd(opts),
	)
	return rootCmd
}

// setup loads configuration, installs the logger and wires dependencies.
// The returned function flushes the logger.
func setup(cmd *cobra.Command, opts *cliOptions) (*container.Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.dataDir != "" {
		cfg.Data.Dir = opts.dataDir
	}

	restore := logging.Install(logging.New(cfg.Log.Level))
	c, err := container.New(cfg, cmd.OutOrStdout())
	if err != nil {
		restore()
		return nil, nil, err
	}
	return c, restore, nil
}

// resolveColumn validates the dataset id and that column belongs to it
func resolveColumn(id, column string) (dataset.Descriptor, error) {
	ds, ok := dataset.Lookup(id)
	if !ok {
		return dataset.Descriptor{}, errors.InvalidInput(fmt.Sprintf("unknown dataset %q (want %s)", id, datasetIDs()))
	}
	if column != "" && !ds.HasColumn(column) {
		return dataset.Descriptor{}, errors.InvalidInput(fmt.Sprintf("column %q is not offered for %s (want one of: %s)",
			column, ds.Title, strings.Join(ds.Columns, ", ")))
	}
	return ds, nil
}

func datasetIDs() string {
	ids := make([]string, 0, 2)
	for _, ds := range dataset.Datasets() {
		ids = append(ids, string(ds.ID))
	}
	return strings.Join(ids, " or ")
}

func newDatasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the datasets and the columns offered for analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.NewWriter()
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Title", "File", "Columns"})
			for _, ds := range dataset.Datasets() {
				t.AppendRow(table.Row{ds.ID, ds.Title, ds.File, strings.Join(ds.Columns, ", ")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newColumnsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <dataset>",
		Short: "Profile every column of a dataset",
		Long: `Load a dataset and report, for each column, whether it would coerce
to numbers, how many cells are missing and how many distinct values it holds.

Example: datalab-cli columns housing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := resolveColumn(args[0], "")
			if err != nil {
				return err
			}
			c, done, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer done()

			tbl, err := c.LoadDataset(ds)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetStyle(table.StyleLight)
			t.SetTitle("%s (%d rows)", ds.Title, tbl.Len())
			t.AppendHeader(table.Row{"Column", "Kind", "Missing", "Numeric", "Invalid", "Distinct", "Present"})
			t.SetColumnConfigs(rightAligned(3, 4, 5, 6, 7))
			for _, p := range c.Profiler.ProfileTable(tbl) {
				t.AppendRow(table.Row{p.Column, p.Kind, p.Missing, p.Numeric, p.Invalid, p.Distinct,
					fmt.Sprintf("%.0f%%", p.QualityScore*100)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newStatsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <dataset> <column>",
		Short: "Print count, mean, standard deviation, min and max of a column",
		Long: `Print the summary statistics of one column.

Example: datalab-cli stats population "Pop Apr 1"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := resolveColumn(args[0], args[1])
			if err != nil {
				return err
			}
			c, done, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer done()

			tbl, err := c.LoadDataset(ds)
			if err != nil {
				return err
			}
			analysis, err := c.Analyzer(tbl).Analyze(args[1])
			if err != nil {
				return err
			}

			s := analysis.Summary
			t := table.NewWriter()
			t.SetStyle(table.StyleLight)
			t.SetTitle("%s: %s", ds.Title, args[1])
			t.AppendHeader(table.Row{"Statistic", "Value"})
			t.SetColumnConfigs(rightAligned(2))
			t.AppendRows([]table.Row{
				{"Count", s.Count},
				{"Mean", menu.FormatFloat(s.Mean)},
				{"Standard Deviation", menu.FormatFloat(s.StdDev)},
				{"Min", menu.FormatFloat(s.Min)},
				{"Max", menu.FormatFloat(s.Max)},
			})
			if missing := analysis.Report.Missing; missing > 0 {
				t.AppendFooter(table.Row{"Missing", missing})
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			printRejected(cmd.OutOrStdout(), analysis.Report)
			return nil
		},
	}
}

func newHistogramCmd(opts *cliOptions) *cobra.Command {
	var png bool

	cmd := &cobra.Command{
		Use:   "histogram <dataset> <column>",
		Short: "Draw a 10-bin histogram of a column",
		Long: `Draw the histogram of one column in the terminal. With --png the chart is
also written as an image into DATALAB_CHART_DIR (default "charts").

Example: datalab-cli histogram housing AGE --png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := resolveColumn(args[0], args[1])
			if err != nil {
				return err
			}
			c, done, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer done()

			tbl, err := c.LoadDataset(ds)
			if err != nil {
				return err
			}
			h, err := c.Analyzer(tbl).ComputeHistogram(args[1])
			if err != nil {
				return err
			}

			pngDir := ""
			if png {
				pngDir = c.Config.Chart.Dir
				if pngDir == "" {
					pngDir = defaultChartDir
				}
			}
			return chart.RenderLabeled(c.Renderer(pngDir), h, "Histogram of "+args[1], args[1])
		},
	}

	cmd.Flags().BoolVar(&png, "png", false, "Also write the histogram as a PNG image")
	return cmd
}

func printRejected(w io.Writer, report coercer.Report) {
	for _, r := range report.Rejected {
		fmt.Fprintf(w, "skipped row %d: %q is not a number\n", r.Row, r.Value)
	}
}

func rightAligned(columns ...int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, len(columns))
	for i, n := range columns {
		configs[i] = table.ColumnConfig{Number: n, Align: text.AlignRight}
	}
	return configs
}

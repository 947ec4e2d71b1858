package container

import (
	"io"
	"path/filepath"

	"datalab/adapters/chart"
	"datalab/adapters/datareadiness"
	"datalab/adapters/datareadiness/coercer"
	"datalab/adapters/excel"
	"datalab/adapters/stats/engine"
	"datalab/app"
	"datalab/domain/dataset"
	"datalab/internal/config"
	"datalab/internal/errors"
	"datalab/internal/menu"
	"datalab/ports"

	"github.com/muesli/termenv"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	Loader   ports.TableLoader
	Coercer  *coercer.ColumnCoercer
	Engine   *engine.StatsEngine
	Profiler *datareadiness.ProfilerAdapter

	out      io.Writer
	termOpts []termenv.OutputOption
}

// New creates a new dependency injection container. Terminal output goes to
// out; termOpts override color detection.
func New(cfg *config.Config, out io.Writer, termOpts ...termenv.OutputOption) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}

	coercionConfig := coercer.DefaultCoercionConfig()
	coercionConfig.Policy = cfg.Coercion.Policy
	c := coercer.NewColumnCoercer(coercionConfig)

	return &Container{
		Config:   cfg,
		Loader:   excel.NewLoader(excel.DefaultLoaderConfig()),
		Coercer:  c,
		Engine:   engine.NewStatsEngine(),
		Profiler: datareadiness.NewProfilerAdapter(c),
		out:      out,
		termOpts: termOpts,
	}, nil
}

// TerminalRenderer builds the terminal histogram renderer
func (c *Container) TerminalRenderer() *chart.TerminalRenderer {
	return chart.NewTerminalRenderer(c.out, c.Config.Chart.BarWidth, c.termOpts...)
}

// Renderer returns the terminal renderer, plus PNG output into pngDir when it
// is set.
func (c *Container) Renderer(pngDir string) ports.ChartRenderer {
	if pngDir == "" {
		return c.TerminalRenderer()
	}
	return chart.NewMultiRenderer(
		c.TerminalRenderer(),
		chart.NewPNGRenderer(chart.DefaultPNGConfig(pngDir), c.out),
	)
}

// LoadDataset reads the file of ds from the data directory
func (c *Container) LoadDataset(ds dataset.Descriptor) (*dataset.Table, error) {
	return c.Loader.Load(c.DatasetPath(ds))
}

// DatasetPath is where the file of ds is expected
func (c *Container) DatasetPath(ds dataset.Descriptor) string {
	return filepath.Join(c.Config.Data.Dir, ds.File)
}

// Analyzer builds an analyzer over table
func (c *Container) Analyzer(table *dataset.Table) *app.DataAnalyzer {
	return app.NewDataAnalyzer(table, c.Coercer, c.Engine)
}

// MenuDriver builds an interactive session reading from in. PNG charts are
// written only when a chart directory is configured.
func (c *Container) MenuDriver(in io.Reader) *menu.Driver {
	return menu.NewDriver(in, c.out,
		menu.Config{DataDir: c.Config.Data.Dir, Datasets: dataset.Datasets()},
		menu.Services{
			Loader:   c.Loader,
			Renderer: c.Renderer(c.Config.Chart.Dir),
			Coercer:  c.Coercer,
			Engine:   c.Engine,
		})
}

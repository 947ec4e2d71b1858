package chart

import (
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"datalab/domain/stats"
	"datalab/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PNGConfig controls image output
type PNGConfig struct {
	Dir    string    // Directory the images are written to
	Width  vg.Length // Image width
	Height vg.Length // Image height
	XLabel string    // Horizontal axis label
}

// DefaultPNGConfig returns a 6x4 inch image config writing into dir
func DefaultPNGConfig(dir string) PNGConfig {
	return PNGConfig{
		Dir:    dir,
		Width:  6 * vg.Inch,
		Height: 4 * vg.Inch,
		XLabel: "Value",
	}
}

// PNGRenderer writes each histogram as a PNG file
type PNGRenderer struct {
	config PNGConfig
	notify io.Writer
	logger *zap.Logger
}

// NewPNGRenderer creates a PNG renderer. When notify is non-nil the path of
// every written file is printed to it.
func NewPNGRenderer(config PNGConfig, notify io.Writer) *PNGRenderer {
	if config.Width <= 0 {
		config.Width = 6 * vg.Inch
	}
	if config.Height <= 0 {
		config.Height = 4 * vg.Inch
	}
	return &PNGRenderer{config: config, notify: notify, logger: zap.L().Named("chart")}
}

// Render writes h to <dir>/<slug>-<id>.png.
func (r *PNGRenderer) Render(h stats.Histogram, title string) error {
	return r.RenderLabeled(h, title, r.config.XLabel)
}

// RenderLabeled is Render with an explicit x axis label.
func (r *PNGRenderer) RenderLabeled(h stats.Histogram, title, xLabel string) error {
	if r.config.Dir == "" {
		return errors.InvalidInput("chart directory is not configured")
	}
	if err := os.MkdirAll(r.config.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create chart directory %s", r.config.Dir)
	}

	path := filepath.Join(r.config.Dir, FileName(title))
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	config := r.config
	if xLabel != "" {
		config.XLabel = xLabel
	}
	if err := WritePNG(f, h, title, config); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	r.logger.Debug("Histogram written", zap.String("path", path), zap.String("title", title))
	if r.notify != nil {
		_, err = io.WriteString(r.notify, "Histogram saved to "+path+"\n")
	}
	return err
}

// WritePNG draws h and encodes it as PNG into w.
func WritePNG(w io.Writer, h stats.Histogram, title string, config PNGConfig) error {
	p, err := newPlot(h, title, config.XLabel)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(config.Width, config.Height, "png")
	if err != nil {
		return errors.Wrap(err, "failed to render histogram")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write histogram")
	}
	return nil
}

func newPlot(h stats.Histogram, title, xLabel string) (*plot.Plot, error) {
	if len(h.Bins) == 0 {
		return nil, errors.EmptySeries("")
	}

	bins := make([]plotter.HistogramBin, len(h.Bins))
	for i, b := range h.Bins {
		bins[i] = plotter.HistogramBin{Min: b.Lower, Max: b.Upper, Weight: float64(b.Count)}
	}
	width := h.Width
	// A single zero-width bin would not be visible.
	if h.Degenerate() {
		bins[0].Min, bins[0].Max = h.Min-0.5, h.Max+0.5
		width = 1
	}

	hist := &plotter.Histogram{
		Bins:      bins,
		Width:     width,
		FillColor: color.Gray{Y: 160},
		LineStyle: plotter.DefaultLineStyle,
	}
	hist.LineStyle.Color = color.Black

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Frequency"
	p.Add(hist)
	return p, nil
}

// FileName builds a unique file name from a chart title.
func FileName(title string) string {
	return slug(title) + "-" + uuid.NewString()[:8] + ".png"
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "histogram"
	}
	return out
}

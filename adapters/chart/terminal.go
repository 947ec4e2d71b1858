package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"datalab/domain/stats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/termenv"
)

// DefaultBarWidth is the length in cells of the tallest bar.
const DefaultBarWidth = 40

const barRune = "█"

// TerminalRenderer draws a histogram as a table of bars
type TerminalRenderer struct {
	w        io.Writer
	out      *termenv.Output
	barWidth int
	xLabel   string
}

// NewTerminalRenderer creates a renderer writing to w. Colors follow the
// terminal profile of w unless opts override it.
func NewTerminalRenderer(w io.Writer, barWidth int, opts ...termenv.OutputOption) *TerminalRenderer {
	if barWidth < 1 {
		barWidth = DefaultBarWidth
	}
	return &TerminalRenderer{
		w:        w,
		out:      termenv.NewOutput(w, opts...),
		barWidth: barWidth,
		xLabel:   "Value",
	}
}

// WithXLabel sets the header of the range column.
func (r *TerminalRenderer) WithXLabel(label string) *TerminalRenderer {
	if label != "" {
		r.xLabel = label
	}
	return r
}

// Render writes the title and one row per bin.
func (r *TerminalRenderer) Render(h stats.Histogram, title string) error {
	return r.RenderLabeled(h, title, r.xLabel)
}

// RenderLabeled is Render with xLabel heading the range column.
func (r *TerminalRenderer) RenderLabeled(h stats.Histogram, title, xLabel string) error {
	if xLabel == "" {
		xLabel = r.xLabel
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle("%s", r.out.String(title).Bold().String())
	t.AppendHeader(table.Row{xLabel, "Frequency", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	maxCount := h.MaxCount()
	color := r.out.Color("4")
	for i, b := range h.Bins {
		bar := r.out.String(strings.Repeat(barRune, barLength(b.Count, maxCount, r.barWidth))).
			Foreground(color).String()
		t.AppendRow(table.Row{binRange(b, i == len(h.Bins)-1), b.Count, bar})
	}
	t.AppendFooter(table.Row{"Total", h.Total(), ""})

	if _, err := fmt.Fprintln(r.w, t.Render()); err != nil {
		return err
	}
	return nil
}

// barLength scales count so that maxCount fills width. Non-zero counts
// always get at least one cell.
func barLength(count, maxCount, width int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	n := count * width / maxCount
	if n < 1 {
		n = 1
	}
	return n
}

func binRange(b stats.Bin, last bool) string {
	if b.Lower == b.Upper {
		return formatEdge(b.Lower)
	}
	closing := ")"
	if last {
		closing = "]"
	}
	return "[" + formatEdge(b.Lower) + ", " + formatEdge(b.Upper) + closing
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

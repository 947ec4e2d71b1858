package chart

import (
	"datalab/domain/stats"
	"datalab/ports"
)

// MultiRenderer renders to several renderers in order
type MultiRenderer struct {
	renderers []ports.ChartRenderer
}

// NewMultiRenderer creates a renderer fanning out to renderers. Nil entries
// are skipped.
func NewMultiRenderer(renderers ...ports.ChartRenderer) *MultiRenderer {
	m := &MultiRenderer{}
	for _, r := range renderers {
		if r != nil {
			m.renderers = append(m.renderers, r)
		}
	}
	return m
}

// Render stops at the first failing renderer.
func (m *MultiRenderer) Render(h stats.Histogram, title string) error {
	return m.RenderLabeled(h, title, "")
}

// RenderLabeled passes xLabel to every renderer that draws axis labels.
func (m *MultiRenderer) RenderLabeled(h stats.Histogram, title, xLabel string) error {
	for _, r := range m.renderers {
		if err := RenderLabeled(r, h, title, xLabel); err != nil {
			return err
		}
	}
	return nil
}

// RenderLabeled renders with xLabel when r supports labels, plainly otherwise.
func RenderLabeled(r ports.ChartRenderer, h stats.Histogram, title, xLabel string) error {
	if labeled, ok := r.(ports.LabeledChartRenderer); ok && xLabel != "" {
		return labeled.RenderLabeled(h, title, xLabel)
	}
	return r.Render(h, title)
}

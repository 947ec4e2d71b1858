package ports

import (
	"datalab/domain/stats"
)

// ChartRenderer displays a histogram under the given title
type ChartRenderer interface {
	Render(h stats.Histogram, title string) error
}

// LabeledChartRenderer is a renderer that can also label the value axis
type LabeledChartRenderer interface {
	ChartRenderer
	RenderLabeled(h stats.Histogram, title, xLabel string) error
}

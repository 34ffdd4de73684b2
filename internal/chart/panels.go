// internal/chart/panels.go
package chart

import (
	"fmt"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PanelFigure lays out one panel per metric side by side. Within a panel
// every series gets one bar per bucket, grouped around the bucket's tick.
type PanelFigure struct {
	Title       string
	XLabel      string
	Buckets     []string
	Panels      []Panel
	BarWidth    float64
	Opacity     float64
	LegendTitle string
	Palette     Palette
	Width       vg.Length
	Height      vg.Length
	DPI         int
}

// Multi-panel defaults.
const (
	DefaultPanelBarWidth = 0.15
	DefaultPanelOpacity  = 0.8
	DefaultPanelWidth    = 20 * vg.Inch
	DefaultPanelHeight   = 6 * vg.Inch

	// Fractions of the figure kept free for the suptitle and the legend.
	panelTopReserve   = 0.15
	panelRightReserve = 0.12
	legendTopAnchor   = 0.95
)

type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

// Validate checks every panel against the bucket count and that all panels
// plot the same series in the same order.
func (f PanelFigure) Validate() error {
	if len(f.Panels) == 0 {
		return &RenderError{Reason: "no panels to plot"}
	}
	var names []string
	for i, p := range f.Panels {
		if err := ValidatePanel(p, len(f.Buckets)); err != nil {
			return err
		}
		got := seriesNames(p.Series)
		if i == 0 {
			names = got
			continue
		}
		if !slices.Equal(names, got) {
			return &RenderError{
				Metric: p.Chart.Metric,
				Reason: fmt.Sprintf("series %v differ from first panel %v", got, names),
			}
		}
	}
	return nil
}

func seriesNames(series []SeriesSpec) []string {
	out := make([]string, len(series))
	for i, s := range series {
		out[i] = s.Name
	}
	return out
}

// Plots builds one gonum plot per panel and the legend entries taken from
// the first panel.
func (f PanelFigure) Plots() ([]*plot.Plot, []legendEntry, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}
	width := f.BarWidth
	if width <= 0 {
		width = DefaultPanelBarWidth
	}
	opacity := f.Opacity
	if opacity <= 0 {
		opacity = DefaultPanelOpacity
	}

	plots := make([]*plot.Plot, len(f.Panels))
	var legend []legendEntry
	for pi, panel := range f.Panels {
		p := plot.New()
		p.Title.Text = panel.Chart.Title
		p.X.Label.Text = f.XLabel
		p.Y.Label.Text = panel.Chart.YLabel
		addGrid(p)

		var all []float64
		for _, s := range panel.Series {
			all = append(all, s.Values...)
		}
		lo, _ := valueAxis(p, all, panel.Chart.LogScale)
		base := 0.0
		if panel.Chart.LogScale {
			base = lo
		}

		n := len(panel.Series)
		for i, s := range panel.Series {
			b := &bars{
				positions: BarPositions(i, n, len(f.Buckets), width),
				values:    s.Values,
				width:     width,
				base:      base,
				color:     withOpacity(f.Palette.Color(i, s.Name), opacity),
			}
			p.Add(b)
			if pi == 0 {
				legend = append(legend, legendEntry{label: s.legendLabel(), thumb: b})
			}
		}

		categoryAxis(p, f.Buckets)
		plots[pi] = p
	}
	return plots, legend, nil
}

// Render draws all panels, the suptitle and the shared legend.
func (f PanelFigure) Render() (*Figure, error) {
	plots, legend, err := f.Plots()
	if err != nil {
		return nil, err
	}

	w, h := f.Width, f.Height
	if w <= 0 {
		w = DefaultPanelWidth
	}
	if h <= 0 {
		h = DefaultPanelHeight
	}
	img, dc := newCanvas(w, h, f.DPI)

	body := drawSuptitle(dc, f.Title, panelTopReserve)
	right := vg.Length(panelRightReserve) * w
	area := draw.Crop(body, 0, -right, 0, 0)

	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Points(24),
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, area)
	for i, p := range plots {
		if err := drawPlot(p, canvases[0][i]); err != nil {
			return nil, err
		}
	}

	strip := draw.Crop(dc, w-right+vg.Points(8), -vg.Points(4), 0, -vg.Length(1-legendTopAnchor)*h)
	drawLegend(strip, f.LegendTitle, legend)
	return &Figure{canvas: img}, nil
}

// drawLegend draws a titled legend at the top left of c.
func drawLegend(c draw.Canvas, title string, entries []legendEntry) {
	lg := plot.NewLegend()
	lg.Top = true
	lg.Left = true
	for _, e := range entries {
		lg.Add(e.label, e.thumb)
	}

	if title != "" {
		sty := lg.TextStyle
		sty.XAlign = text.XLeft
		sty.YAlign = text.YTop
		c.FillText(sty, vg.Point{X: c.Min.X, Y: c.Max.Y}, title)
		c = draw.Crop(c, 0, 0, 0, -(sty.Height(title) + vg.Points(4)))
	}
	lg.Draw(c)
}

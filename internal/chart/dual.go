// internal/chart/dual.go
package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// AxisSeries is one metric plotted against its own Y axis.
type AxisSeries struct {
	Chart  ChartSpec
	Values []float64
	Color  color.Color
}

// DualAxisFigure compares two metrics across categories, the first on the
// left Y axis and the second on a right Y axis sharing the same X ticks.
type DualAxisFigure struct {
	Title      string
	XLabel     string
	Categories []string
	Primary    AxisSeries
	Secondary  AxisSeries
	BarWidth   float64
	Width      vg.Length
	Height     vg.Length
	DPI        int
}

// Dual-axis defaults.
const (
	DefaultDualBarWidth = 0.4
	DefaultDualWidth    = 12 * vg.Inch
	DefaultDualHeight   = 7 * vg.Inch

	dualTopReserve   = 0.07
	dualRightReserve = 0.1
)

// NewDualAxisFigure builds a dual-axis figure from two metric columns, using
// the first two palette colors.
func NewDualAxisFigure(title string, categories []string, primary, secondary ChartSpec, pv, sv []float64) DualAxisFigure {
	return DualAxisFigure{
		Title:      title,
		XLabel:     "Model Name",
		Categories: categories,
		Primary:    AxisSeries{Chart: primary, Values: pv, Color: Tab10(0)},
		Secondary:  AxisSeries{Chart: secondary, Values: sv, Color: Tab10(1)},
	}
}

func (f DualAxisFigure) validate() error {
	n := len(f.Categories)
	if n == 0 {
		return &RenderError{Reason: "no categories to plot"}
	}
	for _, s := range []AxisSeries{f.Primary, f.Secondary} {
		// Both metrics share one transform, so a log axis cannot hold the other.
		if s.Chart.LogScale {
			return &RenderError{Metric: s.Chart.Metric, Reason: "log scale is not supported on a dual-axis figure"}
		}
		p := Panel{Chart: s.Chart, Series: []SeriesSpec{{Name: s.Chart.Metric, Values: s.Values}}}
		if err := ValidatePanel(p, n); err != nil {
			return err
		}
	}
	return nil
}

// Plot builds the gonum plot for the figure without rasterizing it.
func (f DualAxisFigure) Plot() (*plot.Plot, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	width := f.BarWidth
	if width <= 0 {
		width = DefaultDualBarWidth
	}
	n := len(f.Categories)

	p := plot.New()
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.Primary.Chart.YLabel
	p.Y.Label.TextStyle.Color = f.Primary.Color
	p.Y.Tick.Label.Color = f.Primary.Color
	p.Y.LineStyle.Color = f.Primary.Color
	p.Legend.Top = true
	p.Legend.Left = true

	lo, hi := yRange(f.Primary.Values, false)
	secLo, secHi := yRange(f.Secondary.Values, false)
	toPrimary := linearMap{fromLo: secLo, fromHi: secHi, toLo: lo, toHi: hi}

	primary := &bars{
		positions: BarPositions(0, 2, n, width),
		values:    f.Primary.Values,
		width:     width,
		color:     f.Primary.Color,
	}
	secondary := &bars{
		positions: BarPositions(1, 2, n, width),
		values:    toPrimary.applyAll(f.Secondary.Values),
		width:     width,
		base:      toPrimary.apply(0),
		color:     f.Secondary.Color,
	}
	p.Add(primary, secondary)
	p.Add(newSecondaryAxis(f.Secondary.Chart.YLabel, secLo, secHi, toPrimary, f.Secondary.Color, &p.Y))
	p.Legend.Add(f.Primary.Chart.Title, primary)
	p.Legend.Add(f.Secondary.Chart.Title, secondary)

	categoryAxis(p, f.Categories)
	p.Y.Min, p.Y.Max = lo, hi
	return p, nil
}

// Render draws the figure onto a raster canvas.
func (f DualAxisFigure) Render() (*Figure, error) {
	p, err := f.Plot()
	if err != nil {
		return nil, err
	}

	w, h := f.Width, f.Height
	if w <= 0 {
		w = DefaultDualWidth
	}
	if h <= 0 {
		h = DefaultDualHeight
	}
	img, dc := newCanvas(w, h, f.DPI)
	body := drawSuptitle(dc, f.Title, dualTopReserve)
	area := draw.Crop(body, 0, -vg.Length(dualRightReserve)*w, 0, 0)
	if err := drawPlot(p, area); err != nil {
		return nil, err
	}
	return &Figure{canvas: img}, nil
}

// drawPlot turns gonum's panics on degenerate ranges into errors.
func drawPlot(p *plot.Plot, c draw.Canvas) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RenderError{Reason: fmt.Sprintf("drawing failed: %v", r)}
		}
	}()
	p.Draw(c)
	return nil
}

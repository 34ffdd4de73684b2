// internal/chart/plotters.go
package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// bars draws one series of bars whose centers and width are in data units,
// unlike plotter.BarChart which offsets bars in canvas units.
type bars struct {
	positions []float64
	values    []float64
	width     float64
	base      float64
	color     color.Color
	line      draw.LineStyle
}

var (
	_ plot.Plotter     = (*bars)(nil)
	_ plot.DataRanger  = (*bars)(nil)
	_ plot.Thumbnailer = (*bars)(nil)
)

// rect returns bar i's corners in data units.
func (b *bars) rect(i int) (x0, x1, y0, y1 float64) {
	x := b.positions[i]
	return x - b.width/2, x + b.width/2, b.base, b.values[i]
}

func (b *bars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i := range b.positions {
		x0, x1, y0, y1 := b.rect(i)
		pts := []vg.Point{
			{X: trX(x0), Y: trY(y0)},
			{X: trX(x0), Y: trY(y1)},
			{X: trX(x1), Y: trY(y1)},
			{X: trX(x1), Y: trY(y0)},
		}
		c.FillPolygon(b.color, c.ClipPolygonXY(pts))
		if b.line.Width > 0 {
			outline := append(pts, pts[0])
			c.StrokeLines(b.line, c.ClipLinesXY(outline)...)
		}
	}
}

func (b *bars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = math.Inf(1), math.Inf(-1)
	ymin, ymax = b.base, b.base
	for i := range b.positions {
		x0, x1, _, y1 := b.rect(i)
		xmin = math.Min(xmin, x0)
		xmax = math.Max(xmax, x1)
		ymin = math.Min(ymin, y1)
		ymax = math.Max(ymax, y1)
	}
	return xmin, xmax, ymin, ymax
}

func (b *bars) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.color, pts)
}

// secondaryAxis draws a Y axis on the right edge of the data area. Its tick
// values are in secondary units and placed through toPrimary.
type secondaryAxis struct {
	label     string
	lo, hi    float64
	toPrimary linearMap
	line      draw.LineStyle
	tickLabel text.Style
	title     text.Style
	tickLen   vg.Length
}

var _ plot.Plotter = (*secondaryAxis)(nil)

func newSecondaryAxis(label string, lo, hi float64, toPrimary linearMap, clr color.Color, ref *plot.Axis) *secondaryAxis {
	a := &secondaryAxis{
		label:     label,
		lo:        lo,
		hi:        hi,
		toPrimary: toPrimary,
		line:      ref.LineStyle,
		tickLabel: ref.Tick.Label,
		title:     ref.Label.TextStyle,
		tickLen:   ref.Tick.Length,
	}
	a.line.Color = clr
	a.tickLabel.Color = clr
	a.tickLabel.XAlign = text.XLeft
	a.tickLabel.YAlign = text.YCenter
	a.tickLabel.Rotation = 0
	a.title.Color = clr
	a.title.Rotation = math.Pi / 2
	a.title.XAlign = text.XCenter
	a.title.YAlign = text.YTop
	return a
}

// ticks returns the labelled ticks in secondary units.
func (a *secondaryAxis) ticks() []plot.Tick {
	var out []plot.Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(a.lo, a.hi) {
		if t.Value < a.lo || t.Value > a.hi {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (a *secondaryAxis) Plot(c draw.Canvas, plt *plot.Plot) {
	_, trY := plt.Transforms(&c)
	x := c.Max.X
	c.StrokeLine2(a.line, x, c.Min.Y, x, c.Max.Y)

	pad := vg.Points(2)
	var widest vg.Length
	for _, t := range a.ticks() {
		y := trY(a.toPrimary.apply(t.Value))
		if t.IsMinor() {
			c.StrokeLine2(a.line, x, y, x+a.tickLen/2, y)
			continue
		}
		c.StrokeLine2(a.line, x, y, x+a.tickLen, y)
		c.FillText(a.tickLabel, vg.Point{X: x + a.tickLen + pad, Y: y}, t.Label)
		if w := a.tickLabel.Width(t.Label); w > widest {
			widest = w
		}
	}
	if a.label != "" {
		mid := (c.Min.Y + c.Max.Y) / 2
		c.FillText(a.title, vg.Point{X: x + a.tickLen + 2*pad + widest, Y: mid}, a.label)
	}
}

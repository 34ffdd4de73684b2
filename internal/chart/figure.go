// internal/chart/figure.go
package chart

import (
	"image/color"
	"io"
	"math"
	"unicode/utf8"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// DefaultDPI is the raster resolution when none is configured.
	DefaultDPI = 100
	// rotateLabelsOver is the label length, in runes, past which category
	// tick labels are drawn at 45 degrees.
	rotateLabelsOver = 8
	suptitleSize     = 16
)

var gridColor = color.NRGBA{A: 0x33}

// Figure is a fully drawn raster image.
type Figure struct {
	canvas *vgimg.Canvas
}

// WriteTo encodes the figure as PNG.
func (f *Figure) WriteTo(w io.Writer) (int64, error) {
	png := vgimg.PngCanvas{Canvas: f.canvas}
	return png.WriteTo(w)
}

// Size returns the figure's width and height.
func (f *Figure) Size() (vg.Length, vg.Length) {
	return f.canvas.Size()
}

// newCanvas allocates a white raster canvas.
func newCanvas(width, height vg.Length, dpi int) (*vgimg.Canvas, draw.Canvas) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	return img, draw.New(img)
}

// drawSuptitle writes a figure-level title centered at the top of dc and
// returns the canvas below it. reserve is the fraction of the height kept
// for the title band.
func drawSuptitle(dc draw.Canvas, title string, reserve float64) draw.Canvas {
	height := dc.Max.Y - dc.Min.Y
	band := vg.Length(reserve) * height
	if title == "" {
		return draw.Crop(dc, 0, 0, 0, -band)
	}
	sty := plot.New().Title.TextStyle
	sty.Font.Size = vg.Points(suptitleSize)
	sty.XAlign = text.XCenter
	sty.YAlign = text.YCenter
	center := vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - band/2}
	dc.FillText(sty, center, title)
	return draw.Crop(dc, 0, 0, 0, -band)
}

// categoryAxis puts one labelled tick on every integer position and rotates
// the labels when any is long enough to collide with its neighbours.
func categoryAxis(p *plot.Plot, labels []string) {
	ticks := make([]plot.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = math.Min(p.X.Min, -0.5)
	p.X.Max = math.Max(p.X.Max, float64(len(labels))-0.5)
	if needsRotation(labels) {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = text.XRight
		p.X.Tick.Label.YAlign = text.YTop
	}
}

func needsRotation(labels []string) bool {
	for _, l := range labels {
		if utf8.RuneCountInString(l) > rotateLabelsOver {
			return true
		}
	}
	return false
}

// valueAxis applies limits and scale to p's Y axis.
func valueAxis(p *plot.Plot, values []float64, logScale bool) (lo, hi float64) {
	lo, hi = yRange(values, logScale)
	p.Y.Min, p.Y.Max = lo, hi
	if logScale {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	return lo, hi
}

func addGrid(p *plot.Plot) {
	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)
}

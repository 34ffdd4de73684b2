// internal/chart/palette.go
package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/palette/brewer"
)

// tab10 is the default categorical palette.
var tab10 = []color.Color{
	color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, // blue
	color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, // orange
	color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}, // green
	color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}, // red
	color.NRGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}, // purple
	color.NRGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff}, // brown
	color.NRGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff}, // pink
	color.NRGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}, // gray
	color.NRGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff}, // olive
	color.NRGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff}, // cyan
}

// Tab10 returns color i of the default palette, wrapping around.
func Tab10(i int) color.Color {
	return tab10[((i%len(tab10))+len(tab10))%len(tab10)]
}

// Palette assigns each series a color that stays the same in every panel of
// a figure.
type Palette struct {
	colors    []color.Color
	overrides map[string]color.Color
}

// NewPalette spreads n colors evenly over tab10, so few series get well
// separated hues. Beyond ten series it switches to the brewer Paired
// palette, and past that it cycles. overrides maps series names to
// "#rrggbb" colors.
func NewPalette(n int, overrides map[string]string) (Palette, error) {
	p := Palette{overrides: make(map[string]color.Color, len(overrides))}
	for name, hex := range overrides {
		c, err := ParseHexColor(hex)
		if err != nil {
			return Palette{}, fmt.Errorf("palette entry %q: %w", name, err)
		}
		p.overrides[strings.ToLower(name)] = c
	}

	switch {
	case n <= 0:
	case n <= len(tab10):
		p.colors = spreadTab10(n)
	default:
		if pal, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", n); err == nil {
			p.colors = pal.Colors()
		} else {
			p.colors = make([]color.Color, n)
			for i := range p.colors {
				p.colors[i] = Tab10(i)
			}
		}
	}
	return p, nil
}

// spreadTab10 samples n colors at evenly spaced positions across tab10.
func spreadTab10(n int) []color.Color {
	out := make([]color.Color, n)
	if n == 1 {
		out[0] = tab10[0]
		return out
	}
	for i := range out {
		pos := float64(i) / float64(n-1)
		idx := int(pos * float64(len(tab10)))
		if idx >= len(tab10) {
			idx = len(tab10) - 1
		}
		out[i] = tab10[idx]
	}
	return out
}

// Color returns the color for series i named name.
func (p Palette) Color(i int, name string) color.Color {
	if c, ok := p.overrides[strings.ToLower(name)]; ok {
		return c
	}
	if len(p.colors) == 0 {
		return Tab10(i)
	}
	return p.colors[i%len(p.colors)]
}

// ParseHexColor parses "#rgb" or "#rrggbb".
func ParseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// withOpacity returns c with alpha set to opacity in [0, 1].
func withOpacity(c color.Color, opacity float64) color.Color {
	if opacity <= 0 || opacity >= 1 {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(opacity*255 + 0.5)
	return n
}

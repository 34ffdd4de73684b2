// internal/chart/offsets.go
package chart

import "math"

// BarOffset returns the center offset of bar i out of n in a group of bars
// of the given width. The offsets of one group are symmetric around zero
// for any n.
func BarOffset(i, n int, width float64) float64 {
	return (float64(i)-float64(n)/2)*width + width/2
}

// BarPositions returns the centers of series i's bars, one per bucket,
// where bucket g is centered on the integer tick g.
func BarPositions(i, n, buckets int, width float64) []float64 {
	offset := BarOffset(i, n, width)
	out := make([]float64, buckets)
	for g := range out {
		out[g] = float64(g) + offset
	}
	return out
}

// yRange picks axis limits for values. Linear axes include zero and leave
// headroom above the tallest bar; log axes snap to enclosing powers of ten.
func yRange(values []float64, logScale bool) (lo, hi float64) {
	if logScale {
		minV, maxV := math.Inf(1), math.Inf(-1)
		for _, v := range values {
			if v <= 0 {
				continue
			}
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
		if math.IsInf(minV, 1) {
			return 1, 10
		}
		lo = math.Pow(10, math.Floor(math.Log10(minV)))
		// Bars start at lo, so a minimum on a decade would have no height.
		if lo >= minV {
			lo /= 10
		}
		hi = math.Pow(10, math.Ceil(math.Log10(maxV)))
		if hi <= lo {
			hi = lo * 10
		}
		return lo, hi
	}

	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == 0 && hi == 0 {
		return 0, 1
	}
	const headroom = 0.05
	span := hi - lo
	if hi > 0 {
		hi += span * headroom
	}
	if lo < 0 {
		lo -= span * headroom
	}
	return lo, hi
}

// linearMap maps values from one interval onto another. The secondary axis
// of a dual-axis figure uses it to draw its bars in primary axis units.
type linearMap struct {
	fromLo, fromHi float64
	toLo, toHi     float64
}

func (m linearMap) apply(v float64) float64 {
	if m.fromHi == m.fromLo {
		return m.toLo
	}
	return m.toLo + (v-m.fromLo)*(m.toHi-m.toLo)/(m.fromHi-m.fromLo)
}

func (m linearMap) applyAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = m.apply(v)
	}
	return out
}

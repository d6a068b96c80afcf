package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// niceStep picks 1, 2, 2.5 or 5 times a power of ten so that span splits into at most
// maxTicks intervals.
func niceStep(span float64, maxTicks int) float64 {
	if span <= 0 || maxTicks < 1 {
		return 1
	}
	raw := span / float64(maxTicks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*mag >= raw {
			return m * mag
		}
	}
	return 10 * mag
}

// linearTicks returns the multiples of a nice step inside [lo, hi].
func linearTicks(lo, hi float64, maxTicks int, format func(float64) string) []Tick {
	step := niceStep(hi-lo, maxTicks)
	first := math.Ceil(lo/step - 1e-9)
	var ticks []Tick
	for k := first; k*step <= hi+step*1e-9; k++ {
		v := k * step
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, Tick{Value: v, Label: format(v)})
	}
	return ticks
}

// logTicks returns one tick per decade inside [lo, hi] (both positive).
func logTicks(lo, hi float64) []Tick {
	var ticks []Tick
	for e := math.Floor(math.Log10(lo)); e <= math.Ceil(math.Log10(hi)); e++ {
		v := math.Pow(10, e)
		if v < lo*(1-1e-9) || v > hi*(1+1e-9) {
			continue
		}
		ticks = append(ticks, Tick{Value: v, Label: formatCompact(v)})
	}
	return ticks
}

// logMinorTicks returns 2..9 × 10^k inside [lo, hi].
func logMinorTicks(lo, hi float64) []float64 {
	var out []float64
	for e := math.Floor(math.Log10(lo)); e <= math.Ceil(math.Log10(hi)); e++ {
		base := math.Pow(10, e)
		for m := 2.0; m <= 9; m++ {
			if v := m * base; v >= lo && v <= hi {
				out = append(out, v)
			}
		}
	}
	return out
}

// formatCompact renders large magnitudes with K/M/B suffixes: 250000 → "250K",
// 1250000 → "1.25M".
func formatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return trimDecimals(v/1e9) + "B"
	case abs >= 1e6:
		return trimDecimals(v/1e6) + "M"
	case abs >= 1e4:
		return trimDecimals(v/1e3) + "K"
	default:
		return formatPlain(v)
	}
}

func formatPlain(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return trimDecimals(v)
}

func trimDecimals(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

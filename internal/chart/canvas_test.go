package chart

import (
	"image/color"
	"math"
	"testing"

	"housing-charts/internal/dataset"

	"github.com/stretchr/testify/require"
)

func TestDraw_SingleBarFillsPlotArea(t *testing.T) {
	r := newRenderer(t)
	fig, err := r.Render(dataset.NewTable([]string{"LandUse", "Count"}, []any{"Residential", 10}), 0)
	require.NoError(t, err)

	img := fig.Image()
	w, h := fig.Bounds()

	// one bar 0.8 units wide on a 0.88 unit axis covers the middle of the figure
	got := color.RGBAModel.Convert(img.At(w/2, h/2)).(color.RGBA)
	require.Equal(t, palette[0], color.Color(got))

	// corners stay background
	got = color.RGBAModel.Convert(img.At(1, 1)).(color.RGBA)
	require.Equal(t, color.RGBA{255, 255, 255, 255}, got)
}

func TestComputeRanges_BarsAnchoredAtZero(t *testing.T) {
	p := &Plot{
		Width: 12, Height: 6, BarWidth: 0.8,
		Series: []Series{{Kind: KindBar, X: []float64{0, 1}, Y: []float64{10, 20}}},
	}
	c := &canvas{plot: p}
	c.computeRanges()

	require.Equal(t, 0.0, c.ymin)
	require.InDelta(t, 21.0, c.ymax, 1e-9)
	require.InDelta(t, -0.4-0.09, c.xmin, 1e-9)
	require.InDelta(t, 1.4+0.09, c.xmax, 1e-9)
}

func TestComputeRanges_LogAxisDecades(t *testing.T) {
	p := &Plot{
		Width: 12, Height: 6, LogY: true,
		Series: []Series{{Kind: KindLine, X: []float64{1, 2, 3}, Y: []float64{50, 0, 2e6}}},
	}
	c := &canvas{plot: p}
	c.computeRanges()

	require.Equal(t, 10.0, c.ymin)
	require.Equal(t, 1e7, c.ymax)
	require.Len(t, c.yTicks, 7)
}

// legendInterior samples the fill just inside the bottom right corner of the legend box,
// clear of the border, swatches and labels.
func legendInterior(c *canvas) color.RGBA {
	x := int(math.Floor(c.legendX + c.legendW - 3))
	y := int(math.Floor(c.legendY + c.legendH - 3))
	return color.RGBAModel.Convert(c.dc.Image().At(x, y)).(color.RGBA)
}

func TestDrawLegend_FillIsLight(t *testing.T) {
	r := newRenderer(t)
	for _, index := range []int{7, 8, 9} {
		p, err := Build(Recipes[index], sampleTables()[index])
		require.NoError(t, err)

		c := draw(p, r.fonts, r.dpi)
		require.Greater(t, c.legendW, 0.0, "chart %d", index+1)

		got := legendInterior(c)
		require.GreaterOrEqual(t, got.R, uint8(200), "chart %d legend fill %v", index+1, got)
		require.GreaterOrEqual(t, got.G, uint8(200), "chart %d legend fill %v", index+1, got)
		require.GreaterOrEqual(t, got.B, uint8(200), "chart %d legend fill %v", index+1, got)
	}
}

func TestDrawLegend_BestAvoidsTallBars(t *testing.T) {
	r := newRenderer(t)
	stacked := func(left, right int) *canvas {
		tbl := dataset.NewTable([]string{"YearBuilt", "PriceRange", "SalesCount"},
			[]any{2009, "0-50k", left}, []any{2010, "0-50k", right})
		p, err := Build(Recipes[9], tbl)
		require.NoError(t, err)
		return draw(p, r.fonts, r.dpi)
	}

	// tall bar on the right pushes the legend to the upper left
	c := stacked(1, 20)
	require.Less(t, c.legendX, (c.x0+c.x1)/2)
	require.Less(t, c.legendY, (c.y0+c.y1)/2)
	require.Zero(t, c.legendOverlap(c.legendX, c.legendY))

	// tall bar on the left keeps the default upper right corner
	c = stacked(20, 1)
	require.Greater(t, c.legendX, (c.x0+c.x1)/2)
	require.Less(t, c.legendY, (c.y0+c.y1)/2)
}

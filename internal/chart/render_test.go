package chart

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"

	"housing-charts/internal/dataset"

	"github.com/stretchr/testify/require"
)

// sampleTables returns a result with the exact columns each recipe reads.
func sampleTables() []*dataset.Table {
	return []*dataset.Table{
		dataset.NewTable([]string{"LandUse", "Count"},
			[]any{"Single Family", 34268}, []any{"Residential Condo", 14080}, []any{"Vacant Residential Land", 3547}),
		dataset.NewTable([]string{"LandUse", "AvgSalePrice"},
			[]any{"Office Building", 2361000.0}, []any{"Single Family", 273000.5}, []any{"Duplex", 180000}),
		dataset.NewTable([]string{"LandUse", "Bedrooms", "AvgSalePrice"},
			[]any{"Single Family", 6, 900000.0}, []any{"Single Family", 3, 250000.0}, []any{"Single Family", 1, 120000.0}),
		dataset.NewTable([]string{"LandUse", "Bedrooms", "Count"},
			[]any{"Single Family", 0, 4}, []any{"Single Family", 1, 80}, []any{"Single Family", 2, 3000}, []any{"Single Family", 3, 12000}),
		dataset.NewTable([]string{"FullBath", "HalfBath", "Bathrooms", "AverageSalePrice"},
			[]any{1, 0, 1.0, 150000.0}, []any{1, 1, 1.5, 190000.0}, []any{2, 0, 2.0, 240000.0}, []any{2, 1, 2.5, 320000.0}),
		dataset.NewTable([]string{"YearBuilt", "LandUse", "PropertySplitAddress", "PropertySplitCity", "OwnerName", "TotalValue"},
			[]any{2008, "Single Family", "1 Main St", "Nashville", "A", 12000000.0},
			[]any{2009, "Single Family", "2 Oak Ave", "Nashville", "B", 9000000.0},
			[]any{2010, "Duplex", "3 Elm Rd", "Brentwood", "C", 8000000.0},
			[]any{2011, "Single Family", "4 Pine Ct", "Nashville", "D", 7000000.0},
			[]any{2012, "Single Family", "5 Ash Ln", "Nashville", "E", 6000000.0},
			[]any{2013, "Single Family", "6 Fir Way", "Nashville", "F", 5000000.0}),
		dataset.NewTable([]string{"YearBuilt", "Count", "LandUse"},
			[]any{2005, 900, "Single Family"}, []any{2006, 850, "Single Family"}, []any{1950, 800, "Single Family"},
			[]any{2004, 780, "Single Family"}, []any{2007, 760, "Single Family"}, []any{1960, 700, "Duplex"}),
		dataset.NewTable([]string{"YearBuilt", "TotalSales", "AvgSalePrice", "MinSalePrice", "MaxSalePrice"},
			[]any{1900, 10, 200000.0, 50.0, 1500000.0}, []any{1950, 400, 150000.0, 100.0, 2000000.0}, []any{2000, 900, 300000.0, 1000.0, 9000000.0}),
		dataset.NewTable([]string{"LandUse", "Bedrooms", "AvgSalePrice"},
			[]any{"Duplex", 2, 150000.0}, []any{"Duplex", 4, 210000.0}, []any{"Single Family", 3, 250000.0}, []any{"Single Family", nil, 180000.0}),
		dataset.NewTable([]string{"YearBuilt", "PriceRange", "SalesCount"},
			[]any{2009, "100k-200k", 12}, []any{2009, "0-50k", 3}, []any{2010, "500k+", 5}, []any{2010, "100k-200k", 7}),
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(100, "")
	require.NoError(t, err)
	return r
}

func TestRender_EveryRecipe(t *testing.T) {
	r := newRenderer(t)
	tables := sampleTables()
	require.Len(t, tables, len(Recipes))

	for i, tbl := range tables {
		fig, err := r.Render(tbl, i)
		require.NoError(t, err, "recipe %d", i)
		require.Equal(t, i, fig.Index)

		w, h := fig.Bounds()
		require.Equal(t, int(math.Round(Recipes[i].Width*100)), w, "recipe %d", i)
		require.Equal(t, int(math.Round(Recipes[i].Height*100)), h, "recipe %d", i)

		var buf bytes.Buffer
		require.NoError(t, fig.EncodePNG(&buf))
		img, err := png.Decode(&buf)
		require.NoError(t, err)
		require.Equal(t, w, img.Bounds().Dx())
	}
}

func TestRender_SchemaMismatch(t *testing.T) {
	r := newRenderer(t)
	tbl := dataset.NewTable([]string{"LandUse"}, []any{"Residential"})

	_, err := r.Render(tbl, 0)
	var sm *dataset.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	require.Equal(t, "Count", sm.Column)
}

func TestRender_UnknownRecipe(t *testing.T) {
	r := newRenderer(t)
	_, err := r.Render(dataset.NewTable([]string{"A"}), len(Recipes))
	require.ErrorIs(t, err, ErrUnknownRecipe)
}

func TestRender_EmptyResult(t *testing.T) {
	r := newRenderer(t)
	fig, err := r.Render(dataset.NewTable([]string{"LandUse", "Count"}), 0)
	require.NoError(t, err)
	require.Len(t, fig.Plot.Series, 1)
	require.Empty(t, fig.Plot.Series[0].X)
}

func TestBuild_SingleCategoryBar(t *testing.T) {
	tbl := dataset.NewTable([]string{"LandUse", "Count"}, []any{"Residential", 10})

	p, err := Build(Recipes[0], tbl)
	require.NoError(t, err)
	require.Equal(t, []Tick{{Value: 0, Label: "Residential"}}, p.XTicks)
	require.Len(t, p.Series, 1)
	require.Equal(t, KindBar, p.Series[0].Kind)
	require.Equal(t, []float64{0}, p.Series[0].X)
	require.Equal(t, []float64{10}, p.Series[0].Y)
	require.Equal(t, 45.0, p.TickRotation)
	require.True(t, p.TickAlignRight)
}

func TestBuild_PositionalTicks(t *testing.T) {
	p, err := Build(Recipes[3], sampleTables()[3])
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2, 3}, p.Series[0].X)
	require.Equal(t, []Tick{{0, "0"}, {1, "1"}, {2, "2"}, {3, "3"}}, p.XTicks)
}

func TestBuild_BathroomValueTicks(t *testing.T) {
	p, err := Build(Recipes[4], sampleTables()[4])
	require.NoError(t, err)
	require.Equal(t, KindLine, p.Series[0].Kind)
	require.True(t, p.Series[0].Markers)
	require.Equal(t, []Tick{{1, "1"}, {1.5, "1.5"}, {2, "2"}, {2.5, "2.5"}}, p.XTicks)
}

func TestBuild_TopFiveLimit(t *testing.T) {
	p, err := Build(Recipes[5], sampleTables()[5])
	require.NoError(t, err)
	require.Len(t, p.XTicks, 5)
	require.Equal(t, "1 Main St", p.XTicks[0].Label)

	p, err = Build(Recipes[6], sampleTables()[6])
	require.NoError(t, err)
	require.Equal(t, []float64{2005, 2006, 1950, 2004, 2007}, p.Series[0].X)
	require.Equal(t, []Tick{{1950, "1950"}, {2004, "2004"}, {2005, "2005"}, {2006, "2006"}, {2007, "2007"}}, p.XTicks)
}

func TestBuild_PriceStatisticsLines(t *testing.T) {
	p, err := Build(Recipes[7], sampleTables()[7])
	require.NoError(t, err)
	require.True(t, p.LogY)
	require.True(t, p.Grid)
	require.Equal(t, LegendUpperLeft, p.Legend)
	require.Len(t, p.Series, 3)
	require.Equal(t, "Avg Sale Price", p.Series[0].Name)
	require.Equal(t, color.RGBA{0, 0, 255, 255}, p.Series[0].Color)
	require.Equal(t, "Max Sale Price", p.Series[2].Name)
}

func TestBuild_ScatterGroups(t *testing.T) {
	p, err := Build(Recipes[8], sampleTables()[8])
	require.NoError(t, err)
	require.Len(t, p.Series, 2)
	require.Equal(t, "Duplex", p.Series[0].Name)
	require.Equal(t, []float64{2, 4}, p.Series[0].X)
	require.Equal(t, "Single Family", p.Series[1].Name)
	require.Equal(t, palette[1], p.Series[1].Color)
	require.Equal(t, LegendBelow, p.Legend)
	require.Equal(t, 3, p.LegendColumns)
}

func TestBuild_StackedPivot(t *testing.T) {
	p, err := Build(Recipes[9], sampleTables()[9])
	require.NoError(t, err)
	require.Equal(t, []Tick{{0, "2009"}, {1, "2010"}}, p.XTicks)
	require.Equal(t, "Price Range", p.LegendTitle)

	require.Len(t, p.Series, 3)
	// segments sorted by label
	require.Equal(t, "0-50k", p.Series[0].Name)
	require.Equal(t, []float64{3, 0}, p.Series[0].Y)
	require.Equal(t, []float64{0, 0}, p.Series[0].Base)

	require.Equal(t, "100k-200k", p.Series[1].Name)
	require.Equal(t, []float64{12, 7}, p.Series[1].Y)
	require.Equal(t, []float64{3, 0}, p.Series[1].Base)

	require.Equal(t, "500k+", p.Series[2].Name)
	require.Equal(t, []float64{0, 5}, p.Series[2].Y)
	require.Equal(t, []float64{15, 7}, p.Series[2].Base)
}

func TestBuild_StackedSumsDuplicates(t *testing.T) {
	tbl := dataset.NewTable([]string{"YearBuilt", "PriceRange", "SalesCount"},
		[]any{2011, "0-50k", 2}, []any{2011, "0-50k", 3})

	p, err := Build(Recipes[9], tbl)
	require.NoError(t, err)
	require.Equal(t, []float64{5}, p.Series[0].Y)
}

func TestNewRenderer_BadFont(t *testing.T) {
	_, err := NewRenderer(100, "/nonexistent/font.ttf")
	require.Error(t, err)

	_, err = NewRenderer(0, "")
	require.Error(t, err)
}

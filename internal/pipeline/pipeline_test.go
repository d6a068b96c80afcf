package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"housing-charts/internal/catalog"
	"housing-charts/internal/chart"
	"housing-charts/internal/config"
	"housing-charts/internal/dataset"

	"github.com/stretchr/testify/require"
)

var housingQueries = catalog.SQL(catalog.Samples())

func newDriver(t *testing.T) *Driver {
	t.Helper()
	renderer, err := chart.NewRenderer(100, "")
	require.NoError(t, err)
	fetcher := dataset.NewFetcher(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:", ConnectTimeout: 5})
	return New(fetcher, renderer)
}

func expectedNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("plot_query_%d.png", i+1)
	}
	return names
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRun_SingleQuery(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Visualisation")

	paths, err := newDriver(t).Run(context.Background(), []string{"SELECT 'Residential' AS LandUse, 10 AS Count"}, dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "plot_query_1.png")}, paths)
	require.Equal(t, []string{"plot_query_1.png"}, listDir(t, dir))

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 1200, img.Bounds().Dx())
	require.Equal(t, 600, img.Bounds().Dy())
}

func TestRun_AllRecipes(t *testing.T) {
	dir := t.TempDir()

	paths, err := newDriver(t).Run(context.Background(), housingQueries, dir)
	require.NoError(t, err)
	require.Len(t, paths, 10)

	for i, p := range paths {
		require.Equal(t, filepath.Join(dir, fmt.Sprintf("plot_query_%d.png", i+1)), p)
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
	require.ElementsMatch(t, expectedNames(10), listDir(t, dir))
}

func TestRun_FailingQueryWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	queries := append([]string(nil), housingQueries...)
	queries[4] = "SELECT Bathrooms FROM NashvilleHousing"

	paths, err := newDriver(t).Run(context.Background(), queries, dir)
	require.Empty(t, paths)

	var qe *dataset.QueryError
	require.True(t, errors.As(err, &qe))
	require.Equal(t, 4, qe.Index)
	require.NoDirExists(t, dir)
}

func TestRun_NoQueriesStillCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Visualisation")

	paths, err := newDriver(t).Run(context.Background(), nil, dir)
	require.NoError(t, err)
	require.Empty(t, paths)
	require.DirExists(t, dir)
	require.Empty(t, listDir(t, dir))
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	d := newDriver(t)

	first, err := d.Run(context.Background(), housingQueries, dir)
	require.NoError(t, err)
	second, err := d.Run(context.Background(), housingQueries, dir)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.ElementsMatch(t, expectedNames(10), listDir(t, dir))
}

func TestRun_TooManyQueries(t *testing.T) {
	queries := make([]string, len(chart.Recipes)+1)
	_, err := newDriver(t).Run(context.Background(), queries, t.TempDir())
	require.ErrorContains(t, err, "only 10 chart recipes")
}

type stubFetcher struct {
	tables []*dataset.Table
}

func (s stubFetcher) FetchAll(context.Context, []string) ([]*dataset.Table, error) {
	return s.tables, nil
}

func TestRun_SchemaMismatchStopsAtFaultyChart(t *testing.T) {
	renderer, err := chart.NewRenderer(50, "")
	require.NoError(t, err)
	tables := []*dataset.Table{
		dataset.NewTable([]string{"LandUse", "Count"}, []any{"Residential", 10}),
		dataset.NewTable([]string{"LandUse", "Count"}, []any{"Residential", 10}),
	}
	dir := t.TempDir()

	paths, err := New(stubFetcher{tables: tables}, renderer).Run(context.Background(), []string{"q1", "q2"}, dir)

	var sm *dataset.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	require.Equal(t, "AvgSalePrice", sm.Column)
	require.Equal(t, []string{filepath.Join(dir, "plot_query_1.png")}, paths)
}

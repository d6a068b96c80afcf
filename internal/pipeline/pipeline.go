// Package pipeline runs the batch: fetch every query, then render and save each result
// in query order.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"housing-charts/internal/chart"
	"housing-charts/internal/dataset"
	"housing-charts/internal/infra/fs"
	"housing-charts/internal/infra/log"

	"go.uber.org/zap"
)

// Fetcher materializes query results. *dataset.Fetcher is the production implementation.
type Fetcher interface {
	FetchAll(ctx context.Context, queries []string) ([]*dataset.Table, error)
}

// Renderer turns one result into a figure. *chart.Renderer is the production implementation.
type Renderer interface {
	Render(table *dataset.Table, index int) (*chart.Figure, error)
}

type Driver struct {
	fetcher  Fetcher
	renderer Renderer
}

func New(fetcher Fetcher, renderer Renderer) *Driver {
	return &Driver{fetcher: fetcher, renderer: renderer}
}

// Run fetches all results before rendering anything, so a failing query leaves the
// output directory untouched. Once the fetch succeeds the directory exists, even when
// there is nothing to draw. It returns the written paths in query order.
func (d *Driver) Run(ctx context.Context, queries []string, dir string) ([]string, error) {
	if len(queries) > len(chart.Recipes) {
		return nil, fmt.Errorf("%d queries configured but only %d chart recipes exist", len(queries), len(chart.Recipes))
	}

	runID := log.GenerateRunID()
	startTime := time.Now()
	log.LogInfo("Pipeline started",
		zap.String("run_id", runID),
		zap.Int("queries", len(queries)),
		zap.String("output_dir", dir))

	tables, err := d.fetcher.FetchAll(ctx, queries)
	if err != nil {
		log.LogError("Fetching query results failed", zap.String("run_id", runID), zap.Error(err))
		return nil, fmt.Errorf("fetch: %w", err)
	}
	log.LogSuccess(fmt.Sprintf("Fetched %d query results", len(tables)),
		zap.String("run_id", runID),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))

	if err := fs.EnsureDir(dir); err != nil {
		log.LogError("Creating output directory failed", zap.String("run_id", runID), zap.Error(err))
		return nil, fmt.Errorf("save: %w", err)
	}

	paths := make([]string, 0, len(tables))
	for i, table := range tables {
		if err := ctx.Err(); err != nil {
			return paths, err
		}

		fig, err := d.renderer.Render(table, i)
		if err != nil {
			log.LogError(fmt.Sprintf("Rendering chart %d failed", i+1), zap.String("run_id", runID), zap.Error(err))
			return paths, fmt.Errorf("render: %w", err)
		}

		path, err := fs.WritePNG(dir, i, fig)
		if err != nil {
			log.LogError(fmt.Sprintf("Saving chart %d failed", i+1), zap.String("run_id", runID), zap.Error(err))
			return paths, fmt.Errorf("save: %w", err)
		}
		log.LogInfo("Chart saved",
			zap.String("run_id", runID),
			zap.Int("query", i+1),
			zap.String("kind", fig.Spec.Kind.String()),
			zap.String("path", path),
			zap.Int("rows", table.Len()))
		paths = append(paths, path)
	}

	log.LogSuccess(fmt.Sprintf("Saved %d charts to %s", len(paths), dir),
		zap.String("run_id", runID),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return paths, nil
}

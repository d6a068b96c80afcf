package main

import (
	"context"
	"fmt"
	"os"

	"housing-charts/internal/catalog"
	"housing-charts/internal/chart"
	"housing-charts/internal/config"
	"housing-charts/internal/dataset"
	"housing-charts/internal/pipeline"
)

// go run etc/tools/sample_charts.go
// in etc/charts/plot_query_<n>.png, rendered from literal sample rows on in-memory sqlite
func main() {
	fmt.Println("Generating sample charts...")

	renderer, err := chart.NewRenderer(100, "")
	if err != nil {
		fmt.Printf("Error loading font: %v\n", err)
		os.Exit(1)
	}
	fetcher := dataset.NewFetcher(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:", ConnectTimeout: 5})

	paths, err := pipeline.New(fetcher, renderer).Run(context.Background(), catalog.SQL(catalog.Samples()), "etc/charts")
	if err != nil {
		fmt.Printf("Error generating charts: %v\n", err)
		os.Exit(1)
	}

	for _, p := range paths {
		fmt.Printf("Chart generated successfully: %s\n", p)
	}
	fmt.Println("Open the files to see the result!")
}

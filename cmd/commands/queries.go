package commands

// Prints the built-in query catalog with the chart each result feeds

import (
	"fmt"

	"housing-charts/internal/catalog"
	"housing-charts/internal/chart"
	"housing-charts/internal/infra/fs"

	"github.com/spf13/cobra"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the built-in query catalog",
	Args:  cobra.NoArgs,
	RunE:  runQueries,
}

func runQueries(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for i, q := range catalog.Default() {
		spec := chart.Recipes[i]
		fmt.Fprintf(out, "%d. %s\n", i+1, q.Name)
		fmt.Fprintf(out, "   chart: %s (%s) -> %s.png\n", spec.Title, spec.Kind, fs.PlotName(i))
		fmt.Fprintf(out, "   %s\n\n", q.SQL)
	}
	return nil
}

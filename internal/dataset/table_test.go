package dataset

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTable_FloatsAndLabels(t *testing.T) {
	tbl := NewTable([]string{"YearBuilt", "AvgSalePrice", "LandUse"},
		[]any{1999.0, "125000.50", "Single Family"},
		[]any{2005, nil, []byte("Duplex")},
		[]any{int32(2010), float32(2.5), "Vacant"},
	)

	years, err := tbl.Labels("YearBuilt")
	require.NoError(t, err)
	require.Equal(t, []string{"1999", "2005", "2010"}, years)

	prices, err := tbl.Floats("AvgSalePrice")
	require.NoError(t, err)
	require.Equal(t, 125000.50, prices[0])
	require.True(t, math.IsNaN(prices[1]))
	require.Equal(t, 2.5, prices[2])

	uses, err := tbl.Labels("LandUse")
	require.NoError(t, err)
	require.Equal(t, []string{"Single Family", "Duplex", "Vacant"}, uses)
}

func TestTable_MissingColumn(t *testing.T) {
	tbl := NewTable([]string{"LandUse"}, []any{"Residential"})

	_, err := tbl.Floats("Count")
	var sm *SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	require.Equal(t, "Count", sm.Column)
	require.Equal(t, []string{"LandUse"}, sm.Available)
	require.EqualError(t, err, `column "Count" not found in result (columns: LandUse)`)

	require.NoError(t, tbl.Require("LandUse"))
	require.Error(t, tbl.Require("LandUse", "Bedrooms"))
}

func TestTable_NonNumeric(t *testing.T) {
	tbl := NewTable([]string{"Count"}, []any{"ten"})

	_, err := tbl.Floats("Count")
	var sm *SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	require.Contains(t, err.Error(), "non-numeric")
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "", FormatValue(nil))
	require.Equal(t, "3", FormatValue(int64(3)))
	require.Equal(t, "1.5", FormatValue(1.5))
	require.Equal(t, "true", FormatValue(true))
	require.Equal(t, "2013-04-09", FormatValue(time.Date(2013, 4, 9, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "2013-04-09 10:15:00", FormatValue(time.Date(2013, 4, 9, 10, 15, 0, 0, time.UTC)))
}

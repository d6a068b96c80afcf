package chart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNiceStep(t *testing.T) {
	require.Equal(t, 1.0, niceStep(10, 10))
	require.Equal(t, 2.0, niceStep(15, 8))
	require.Equal(t, 50000.0, niceStep(320000, 8))
	require.Equal(t, 1.0, niceStep(0, 8))
}

func TestLinearTicks(t *testing.T) {
	ticks := linearTicks(0, 10, 5, formatPlain)
	require.Equal(t, []Tick{
		{0, "0"}, {2, "2"}, {4, "4"}, {6, "6"}, {8, "8"}, {10, "10"},
	}, ticks)

	ticks = linearTicks(-0.5, 0.5, 4, formatPlain)
	require.Equal(t, "-0.5", ticks[0].Label)
	require.Equal(t, "0", ticks[2].Label)
}

func TestLogTicks(t *testing.T) {
	ticks := logTicks(500, 2e6)
	require.Equal(t, []Tick{{1e3, "1000"}, {1e4, "10K"}, {1e5, "100K"}, {1e6, "1M"}}, ticks)

	minor := logMinorTicks(100, 1000)
	require.Equal(t, []float64{200, 300, 400, 500, 600, 700, 800, 900}, minor)
}

func TestFormatCompact(t *testing.T) {
	require.Equal(t, "0", formatCompact(0))
	require.Equal(t, "2500", formatCompact(2500))
	require.Equal(t, "250K", formatCompact(250000))
	require.Equal(t, "1.25M", formatCompact(1250000))
	require.Equal(t, "3B", formatCompact(3e9))
	require.Equal(t, "0.5", formatCompact(0.5))
}

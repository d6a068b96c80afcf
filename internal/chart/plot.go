package chart

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"

	"housing-charts/internal/dataset"
)

// Series is one drawable data set in data coordinates.
type Series struct {
	Name    string
	Kind    Kind // KindBar, KindLine or KindScatter
	X       []float64
	Y       []float64
	Base    []float64 // bar bottoms for stacked segments, nil means zero
	Color   color.Color
	Markers bool
}

type Tick struct {
	Value float64
	Label string
}

// Plot is a fully resolved chart: series in data coordinates plus everything the canvas
// needs to lay out axes, ticks and legend.
type Plot struct {
	Title  string
	XLabel string
	YLabel string

	Width  float64 // inches
	Height float64

	Series   []Series
	BarWidth float64 // in x data units

	XTicks         []Tick // nil for an automatic numeric axis
	TickRotation   float64
	TickAlignRight bool

	LogY bool
	Grid bool

	Legend        LegendPlacement
	LegendTitle   string
	LegendColumns int
}

// Build resolves spec against table. Every column the spec names must be present.
func Build(spec Spec, table *dataset.Table) (*Plot, error) {
	if err := table.Require(spec.Columns()...); err != nil {
		return nil, err
	}
	if len(spec.Y) == 0 {
		return nil, fmt.Errorf("spec %q has no y field", spec.Title)
	}
	if spec.Limit > 0 && table.Len() > spec.Limit {
		table = &dataset.Table{Columns: table.Columns, Rows: table.Rows[:spec.Limit]}
	}

	p := &Plot{
		Title:          spec.Title,
		XLabel:         spec.XLabel,
		YLabel:         spec.YLabel,
		Width:          spec.Width,
		Height:         spec.Height,
		BarWidth:       0.8,
		TickRotation:   spec.TickRotation,
		TickAlignRight: spec.TickAlignRight,
		LogY:           spec.LogY,
		Grid:           spec.Grid,
		Legend:         spec.Legend,
		LegendTitle:    spec.LegendTitle,
		LegendColumns:  spec.LegendColumns,
	}

	var err error
	switch spec.Kind {
	case KindBar, KindLine:
		err = buildXY(p, spec, table)
	case KindScatter:
		err = buildScatter(p, spec, table)
	case KindStackedBar:
		err = buildStacked(p, spec, table)
	default:
		err = fmt.Errorf("unsupported chart kind %v", spec.Kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// xAxis reads the X column and produces positions plus ticks for the spec's tick mode.
func xAxis(spec Spec, table *dataset.Table) ([]float64, []Tick, error) {
	n := table.Len()
	switch spec.Ticks {
	case TicksCategories:
		labels, err := table.Labels(spec.X)
		if err != nil {
			return nil, nil, err
		}
		xs := make([]float64, n)
		ticks := make([]Tick, n)
		for i, l := range labels {
			xs[i] = float64(i)
			ticks[i] = Tick{Value: float64(i), Label: l}
		}
		return xs, ticks, nil
	}

	xs, err := table.Floats(spec.X)
	if err != nil {
		return nil, nil, err
	}
	switch spec.Ticks {
	case TicksPositional:
		ticks := make([]Tick, n)
		for i := range ticks {
			ticks[i] = Tick{Value: float64(i), Label: strconv.Itoa(i)}
		}
		return xs, ticks, nil
	case TicksValues:
		return xs, valueTicks(xs), nil
	default:
		return xs, nil, nil
	}
}

func valueTicks(xs []float64) []Tick {
	seen := make(map[float64]bool, len(xs))
	var ticks []Tick
	for _, x := range xs {
		if math.IsNaN(x) || seen[x] {
			continue
		}
		seen[x] = true
		ticks = append(ticks, Tick{Value: x, Label: dataset.FormatValue(x)})
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Value < ticks[j].Value })
	return ticks
}

func buildXY(p *Plot, spec Spec, table *dataset.Table) error {
	xs, ticks, err := xAxis(spec, table)
	if err != nil {
		return err
	}
	p.XTicks = ticks

	kind := KindBar
	if spec.Kind == KindLine {
		kind = KindLine
	}
	for i, f := range spec.Y {
		ys, err := table.Floats(f.Column)
		if err != nil {
			return err
		}
		c := f.Color
		if c == nil {
			c = paletteColor(i)
		}
		name := f.Label
		if name == "" {
			name = f.Column
		}
		p.Series = append(p.Series, Series{
			Name:    name,
			Kind:    kind,
			X:       xs,
			Y:       ys,
			Color:   c,
			Markers: spec.Markers,
		})
	}
	return nil
}

func buildScatter(p *Plot, spec Spec, table *dataset.Table) error {
	xs, ticks, err := xAxis(spec, table)
	if err != nil {
		return err
	}
	p.XTicks = ticks

	ys, err := table.Floats(spec.Y[0].Column)
	if err != nil {
		return err
	}
	groups, err := table.Labels(spec.GroupBy)
	if err != nil {
		return err
	}

	index := map[string]int{}
	for i, g := range groups {
		si, ok := index[g]
		if !ok {
			si = len(p.Series)
			index[g] = si
			p.Series = append(p.Series, Series{Name: g, Kind: KindScatter, Color: paletteColor(si)})
		}
		p.Series[si].X = append(p.Series[si].X, xs[i])
		p.Series[si].Y = append(p.Series[si].Y, ys[i])
	}
	return nil
}

// buildStacked pivots (X, Stack) → Y into one bar series per Stack value. Rows and
// segments are sorted; missing cells count as zero and duplicate cells are summed.
func buildStacked(p *Plot, spec Spec, table *dataset.Table) error {
	rowKeys, rowLabels, err := sortedKeys(table, spec.X)
	if err != nil {
		return err
	}
	colKeys, colLabels, err := sortedKeys(table, spec.Stack)
	if err != nil {
		return err
	}
	ys, err := table.Floats(spec.Y[0].Column)
	if err != nil {
		return err
	}
	rawX, _ := table.Labels(spec.X)
	rawS, _ := table.Labels(spec.Stack)

	values := make([][]float64, len(colKeys))
	for c := range values {
		values[c] = make([]float64, len(rowKeys))
	}
	for i := range table.Rows {
		if math.IsNaN(ys[i]) {
			continue
		}
		values[colKeys[rawS[i]]][rowKeys[rawX[i]]] += ys[i]
	}

	xs := make([]float64, len(rowLabels))
	p.XTicks = make([]Tick, len(rowLabels))
	for i, l := range rowLabels {
		xs[i] = float64(i)
		p.XTicks[i] = Tick{Value: float64(i), Label: l}
	}

	base := make([]float64, len(rowLabels))
	for c, name := range colLabels {
		b := make([]float64, len(base))
		copy(b, base)
		p.Series = append(p.Series, Series{
			Name:  name,
			Kind:  KindBar,
			X:     xs,
			Y:     values[c],
			Base:  b,
			Color: paletteColor(c),
		})
		for i, v := range values[c] {
			base[i] += v
		}
	}
	p.BarWidth = 0.5
	return nil
}

// sortedKeys returns the distinct labels of column in sorted order (numeric when every
// value is a number) and a label → position map.
func sortedKeys(table *dataset.Table, column string) (map[string]int, []string, error) {
	labels, err := table.Labels(column)
	if err != nil {
		return nil, nil, err
	}
	nums, numErr := table.Floats(column)

	type key struct {
		label string
		num   float64
	}
	seen := map[string]bool{}
	var keys []key
	for i, l := range labels {
		if seen[l] {
			continue
		}
		seen[l] = true
		k := key{label: l}
		if numErr == nil {
			k.num = nums[i]
		}
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if numErr == nil {
			return keys[i].num < keys[j].num
		}
		return keys[i].label < keys[j].label
	})

	pos := make(map[string]int, len(keys))
	out := make([]string, len(keys))
	for i, k := range keys {
		pos[k.label] = i
		out[i] = k.label
	}
	return pos, out, nil
}

package chart

import "image/color"

type Kind int

const (
	KindBar Kind = iota
	KindLine
	KindScatter
	KindStackedBar
)

func (k Kind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindLine:
		return "line"
	case KindScatter:
		return "scatter"
	case KindStackedBar:
		return "stacked-bar"
	default:
		return "unknown"
	}
}

// TickMode controls where x ticks go and what they say.
type TickMode int

const (
	TicksAuto       TickMode = iota // numeric axis with evenly spaced ticks
	TicksCategories                 // one slot per row, labelled with the X value
	TicksPositional                 // numeric axis, ticks at 0..n-1 labelled with the position
	TicksValues                     // a tick at every X value
)

type LegendPlacement int

const (
	LegendNone LegendPlacement = iota
	LegendUpperRight
	LegendUpperLeft
	LegendBelow // centered under the x axis, LegendColumns per row
	LegendBest  // the inner corner that covers the least data
)

// Field is one Y series. A nil Color takes the next palette color.
type Field struct {
	Column string
	Label  string
	Color  color.Color
}

// Spec declares how one query result becomes a chart.
type Spec struct {
	Title  string
	XLabel string
	YLabel string

	Kind    Kind
	X       string
	Y       []Field
	GroupBy string // scatter: one series per distinct value
	Stack   string // stacked bar: pivot column, one segment per distinct value
	Limit   int    // use only the first Limit rows when > 0

	Ticks          TickMode
	TickRotation   float64 // degrees, counter-clockwise
	TickAlignRight bool

	Markers bool
	LogY    bool
	Grid    bool

	Legend        LegendPlacement
	LegendTitle   string
	LegendColumns int

	Width  float64 // inches
	Height float64
}

// Columns lists every column the spec reads.
func (s Spec) Columns() []string {
	cols := []string{s.X}
	for _, f := range s.Y {
		cols = append(cols, f.Column)
	}
	if s.GroupBy != "" {
		cols = append(cols, s.GroupBy)
	}
	if s.Stack != "" {
		cols = append(cols, s.Stack)
	}
	return cols
}

var (
	namedBlue  = color.RGBA{0, 0, 255, 255}
	namedGreen = color.RGBA{0, 128, 0, 255}
	namedRed   = color.RGBA{255, 0, 0, 255}
)

// Recipes is indexed by query position. Extending the catalog means appending here.
var Recipes = []Spec{
	{
		Title:  "Unique Values from LandUse Column",
		XLabel: "Land Use", YLabel: "Number of Occurrences",
		Kind: KindBar, X: "LandUse", Y: []Field{{Column: "Count"}},
		Ticks: TicksCategories, TickRotation: 45, TickAlignRight: true,
		Width: 12, Height: 6,
	},
	{
		Title:  "Average Sale Price by Land Use",
		XLabel: "Land Use", YLabel: "Average Sale Price",
		Kind: KindBar, X: "LandUse", Y: []Field{{Column: "AvgSalePrice"}},
		Ticks: TicksCategories, TickRotation: 45, TickAlignRight: true,
		Width: 12, Height: 6,
	},
	{
		Title:  "Average Sale Price of Single Family Houses by Bedrooms",
		XLabel: "Bedrooms", YLabel: "Average Sale Price",
		Kind: KindBar, X: "Bedrooms", Y: []Field{{Column: "AvgSalePrice"}},
		Ticks: TicksPositional,
		Width: 12, Height: 6,
	},
	{
		Title:  "Distribution of Number of Bedrooms",
		XLabel: "Bedrooms", YLabel: "Count",
		Kind: KindBar, X: "Bedrooms", Y: []Field{{Column: "Count"}},
		Ticks: TicksPositional,
		Width: 12, Height: 6,
	},
	{
		Title:  "Average Selling Price Depending on the Number of Bathrooms",
		XLabel: "Number of Bathrooms", YLabel: "Average Sale Price",
		Kind: KindLine, X: "Bathrooms", Y: []Field{{Column: "AverageSalePrice"}},
		Ticks: TicksValues, Markers: true,
		Width: 12, Height: 6,
	},
	{
		Title:  "Top 5 Properties with the Highest Total Value",
		XLabel: "Property Address", YLabel: "Total Value",
		Kind: KindBar, X: "PropertySplitAddress", Y: []Field{{Column: "TotalValue"}},
		Limit: 5, Ticks: TicksCategories, TickRotation: 45,
		Width: 12, Height: 6,
	},
	{
		Title:  "Most Common Years of Construction by Land Use",
		XLabel: "Year of Construction", YLabel: "Count",
		Kind: KindBar, X: "YearBuilt", Y: []Field{{Column: "Count"}},
		Limit: 5, Ticks: TicksValues,
		Width: 12, Height: 6,
	},
	{
		Title:  "Real Estate Sales Statistics by Years of Construction",
		XLabel: "Year of Construction", YLabel: "Price",
		Kind: KindLine, X: "YearBuilt",
		Y: []Field{
			{Column: "AvgSalePrice", Label: "Avg Sale Price", Color: namedBlue},
			{Column: "MinSalePrice", Label: "Min Sale Price", Color: namedGreen},
			{Column: "MaxSalePrice", Label: "Max Sale Price", Color: namedRed},
		},
		LogY: true, Grid: true, Legend: LegendUpperLeft,
		Width: 12, Height: 6,
	},
	{
		Title:  "Average Sale Price for Various Combinations of Bedrooms and Land Use",
		XLabel: "Bedrooms", YLabel: "Average Sale Price",
		Kind: KindScatter, X: "Bedrooms", Y: []Field{{Column: "AvgSalePrice"}}, GroupBy: "LandUse",
		Legend: LegendBelow, LegendColumns: 3,
		Width: 12, Height: 6,
	},
	{
		Title:  "Number of Properties Sold in Different Price Ranges by Year of Construction",
		XLabel: "Year of Construction", YLabel: "Number of Properties Sold",
		Kind: KindStackedBar, X: "YearBuilt", Y: []Field{{Column: "SalesCount"}}, Stack: "PriceRange",
		Ticks: TicksCategories, TickRotation: 45,
		Legend: LegendBest, LegendTitle: "Price Range",
		Width: 6.4, Height: 4.8,
	},
}

// palette is the tab10 qualitative color map.
var palette = []color.Color{
	color.RGBA{0x1f, 0x77, 0xb4, 0xff},
	color.RGBA{0xff, 0x7f, 0x0e, 0xff},
	color.RGBA{0x2c, 0xa0, 0x2c, 0xff},
	color.RGBA{0xd6, 0x27, 0x28, 0xff},
	color.RGBA{0x94, 0x67, 0xbd, 0xff},
	color.RGBA{0x8c, 0x56, 0x4b, 0xff},
	color.RGBA{0xe3, 0x77, 0xc2, 0xff},
	color.RGBA{0x7f, 0x7f, 0x7f, 0xff},
	color.RGBA{0xbc, 0xbd, 0x22, 0xff},
	color.RGBA{0x17, 0xbe, 0xcf, 0xff},
}

func paletteColor(i int) color.Color {
	return palette[i%len(palette)]
}

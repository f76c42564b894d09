package charts

import (
	"image/color"

	"github.com/KaramelBytes/cacscope/internal/metrics"
	"golang.org/x/image/colornames"
)

// Kind selects the chart type.
type Kind string

const (
	Box        Kind = "box"
	Scatter    Kind = "scatter"
	Bar        Kind = "bar"
	GroupedBar Kind = "grouped-bar"
)

// Reduce collapses the rows of one category into a single bar height.
type Reduce string

const (
	Sum  Reduce = "sum"
	Mean Reduce = "mean"
)

// Spec describes one chart: what to plot and how to label it.
type Spec struct {
	ID    string
	Kind  Kind
	Title string
	X     string
	Y     []string
	// Color groups rows into categories; empty means a single group.
	Color string
	// Trendline overlays an OLS fit per color group (scatter only).
	Trendline bool
	// Sorted feeds the chart the CAC-descending table instead of the loaded order.
	Sorted bool
	// Palette is a qualitative ColorBrewer name (Set1, Set2, Set3).
	Palette string
	// FixedColors maps y columns to colors (grouped bars).
	FixedColors map[string]color.Color
	XTitle      string
	YTitle      string
	// LabelDigits > 0 shows value labels rounded to that many decimals.
	LabelDigits int
	// LabelXY labels scatter points "x\ny<LabelSuffix>" instead of y alone.
	LabelXY     bool
	LabelSuffix string
	Reduce      Reduce
}

// Catalog returns the eight charts of the CAC analysis in display order.
func Catalog() []Spec {
	ch := metrics.ColChannel
	return []Spec{
		{
			ID: "cac-by-channel", Kind: Box, Sorted: true,
			Title: "Customer Acquisition Cost (CAC) by Marketing Channel",
			X:     ch, Y: []string{metrics.ColCAC}, Color: ch, Palette: "Set2",
			XTitle: "Marketing Channel", YTitle: "CAC (INR)",
		},
		{
			ID: "cac-vs-new-customers", Kind: Scatter, Sorted: true, Trendline: true,
			Title: "CAC vs New Customers by Channel",
			X:     metrics.ColCustomers, Y: []string{metrics.ColCAC}, Color: ch, Palette: "Set2",
			XTitle: "New Customers", YTitle: "CAC (INR)", LabelDigits: 2,
		},
		{
			ID: "cac-vs-spend", Kind: Scatter, Sorted: true, Trendline: true,
			Title: "Customer Acquisition Cost(CAC) vs Marketing Spend by Marketing Channel",
			X:     metrics.ColSpend, Y: []string{metrics.ColCAC}, Color: ch, Palette: "Set1",
			XTitle: "Marketing Spend (INR)", YTitle: "CAC (INR)", LabelDigits: 2,
		},
		{
			ID: "conversion-rate-by-channel", Kind: Box,
			Title: "Conversion Rate by Marketing Channel",
			X:     ch, Y: []string{metrics.ColConversionRate}, Color: ch, Palette: "Set3",
			XTitle: "Marketing Channel", YTitle: "Conversion Rate",
		},
		{
			ID: "customers-per-spend", Kind: Bar,
			Title: "New Customers per Marketing Spend by Channel",
			X:     ch, Y: []string{metrics.ColCustomersPerSpend}, Color: ch, Palette: "Set2",
			XTitle: "Marketing Channel", YTitle: "New Customers per INR Spent",
			LabelDigits: 4, Reduce: Sum,
		},
		{
			ID: "break-even-customers", Kind: Box,
			Title: "Break-even Customers by Channel",
			X:     ch, Y: []string{metrics.ColBECustomers}, Color: ch, Palette: "Set2",
			XTitle: "Marketing Channel", YTitle: "Break-even Customers",
		},
		{
			ID: "cac-vs-conversion-rate", Kind: Scatter,
			Title: "CAC vs Conversion Rate by Channel",
			X:     metrics.ColCAC, Y: []string{metrics.ColConversionRate}, Color: ch, Palette: "Set1",
			XTitle: "CAC (INR)", YTitle: "Conversion Rate (%)",
			LabelDigits: 2, LabelXY: true, LabelSuffix: "%",
		},
		{
			ID: "cac-and-new-customers", Kind: GroupedBar,
			Title: "CAC and New Customers by Channel",
			X:     ch, Y: []string{metrics.ColCAC, metrics.ColCustomers},
			FixedColors: map[string]color.Color{metrics.ColCAC: colornames.Orange, metrics.ColCustomers: colornames.Forestgreen},
			XTitle:      "Marketing Channel", YTitle: "Value", Reduce: Mean,
		},
	}
}

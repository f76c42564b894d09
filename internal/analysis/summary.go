package analysis

import (
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// SummaryHeader names the columns of the grouped summary table.
var SummaryHeader = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// WriteSummaryTable prints one row per group: key, then the describe tuple.
func WriteSummaryTable(w io.Writer, key string, groups []GroupSummary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{key}, SummaryHeader...))
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, g := range groups {
		s := g.Stats
		table.Append([]string{
			g.Key,
			strconv.Itoa(s.Count),
			FormatValue(s.Mean),
			FormatValue(s.Std),
			FormatValue(s.Min),
			FormatValue(s.Q25),
			FormatValue(s.Q50),
			FormatValue(s.Q75),
			FormatValue(s.Max),
		})
	}
	table.Render()
}

// FormatValue prints six decimals, NaN as "NaN" and infinities as "inf"/"-inf".
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

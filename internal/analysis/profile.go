package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/cacscope/internal/dataset"
)

// ProfileOptions controls the dataset overview.
type ProfileOptions struct {
	// SampleRows determines how many head rows to include in the report.
	SampleRows int
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
	// Warnings are carried into the report notes verbatim.
	Warnings []string
}

// DefaultProfileOptions returns reasonable defaults for the overview.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{SampleRows: 5, Outliers: true, OutlierThreshold: 3.5}
}

// Report is a markdown-friendly overview of a table.
type Report struct {
	Name     string
	Rows     int
	Header   []string
	Cols     []ColumnSummary
	Samples  [][]string
	Warnings []string
}

// ColumnSummary captures type and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical|bool|unknown
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Stats     Stats
	NonFinite int
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// Profile summarizes every column of t: kind, missing and unique counts,
// describe statistics for numeric columns, top values for categorical ones.
func Profile(t *dataset.Table, opt ProfileOptions) (*Report, error) {
	rep := &Report{Name: t.Name, Rows: t.Len(), Header: t.Names(), Warnings: opt.Warnings}
	for _, name := range t.Names() {
		raw, err := t.Strings(name)
		if err != nil {
			return nil, err
		}
		miss, err := t.Missing(name)
		if err != nil {
			return nil, err
		}
		s := ColumnSummary{Name: name, Kind: t.Kind(name)}
		cats := map[string]int{}
		for i, v := range raw {
			if miss[i] {
				s.Missing++
				continue
			}
			s.NonNull++
			cats[v]++
		}
		s.Unique = len(cats)

		switch s.Kind {
		case "numeric":
			vals, err := t.Floats(name)
			if err != nil {
				return nil, err
			}
			s.Stats = Describe(vals)
			var fin []float64
			for _, v := range vals {
				if math.IsInf(v, 0) {
					s.NonFinite++
				}
				if finite(v) {
					fin = append(fin, v)
				}
			}
			if opt.Outliers && len(fin) >= 8 {
				s.OutliersCount, s.OutliersMaxAbsZ, s.OutlierThreshold = robustOutliers(fin, opt.OutlierThreshold)
			}
		case "categorical", "bool":
			tops := make([]CategoryCount, 0, len(cats))
			for k, v := range cats {
				tops = append(tops, CategoryCount{Value: k, Count: v})
			}
			sort.Slice(tops, func(i, j int) bool {
				if tops[i].Count == tops[j].Count {
					return tops[i].Value < tops[j].Value
				}
				return tops[i].Count > tops[j].Count
			})
			if len(tops) > 8 {
				tops = tops[:8]
			}
			s.TopValues = tops
		}
		rep.Cols = append(rep.Cols, s)
	}
	n := opt.SampleRows
	if n < 0 {
		n = 0
	}
	rep.Samples = t.Head(n)
	return rep, nil
}

func robustOutliers(vals []float64, thr float64) (count int, maxAbsZ, threshold float64) {
	if thr <= 0 {
		thr = 3.5
	}
	median, mad := medianMAD(vals)
	if mad > 0 {
		for _, v := range vals {
			az := math.Abs(0.6745 * (v - median) / mad)
			if az > thr {
				count++
			}
			if az > maxAbsZ {
				maxAbsZ = az
			}
		}
	}
	return count, maxAbsZ, thr
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%, unique %d)", safeName(c.Name), c.Kind, c.NonNull, missPct, c.Unique))
		switch c.Kind {
		case "numeric":
			st := c.Stats
			b.WriteString(fmt.Sprintf(" — min %.4g, q1 %.4g, median %.4g, q3 %.4g, max %.4g, mean %.4g, std %.4g",
				st.Min, st.Q25, st.Q50, st.Q75, st.Max, st.Mean, st.Std))
			if c.NonFinite > 0 {
				b.WriteString(fmt.Sprintf("; non-finite: %d", c.NonFinite))
			}
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
				if c.OutliersMaxAbsZ > 0 {
					b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", c.OutliersMaxAbsZ))
				}
			}
		case "categorical", "bool":
			if len(c.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
			}
		}
		b.WriteString("\n")
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, h := range r.Header {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(h))
		}
		b.WriteString(" |\n|")
		for range r.Header {
			b.WriteString(" --- |")
		}
		b.WriteString("\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Header {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

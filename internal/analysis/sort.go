package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/cacscope/internal/dataset"
	"github.com/KaramelBytes/cacscope/internal/metrics"
)

// SortIndex returns a stable permutation ordering vals ascending or
// descending. NaN always sorts last and keeps its input order.
func SortIndex(vals []float64, descending bool) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		x, y := vals[idx[a]], vals[idx[b]]
		xn, yn := math.IsNaN(x), math.IsNaN(y)
		if xn || yn {
			return !xn && yn
		}
		if descending {
			return x > y
		}
		return x < y
	})
	return idx
}

// SortBy returns a new table ordered by the numeric column.
func SortBy(t *dataset.Table, col string, descending bool) (*dataset.Table, error) {
	vals, err := t.Floats(col)
	if err != nil {
		return nil, err
	}
	return t.Subset(SortIndex(vals, descending))
}

// SortByCAC orders rows by CAC, highest first.
func SortByCAC(t *dataset.Table) (*dataset.Table, error) {
	return SortBy(t, metrics.ColCAC, true)
}

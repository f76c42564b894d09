package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats is the describe tuple for one numeric column.
type Stats struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Describe computes count, mean, sample std, min, quartiles and max.
// NaN values are skipped; ±Inf values are kept and propagate into the result.
// With no values every statistic is NaN.
func Describe(vals []float64) Stats {
	xs := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	nan := math.NaN()
	if len(xs) == 0 {
		return Stats{Mean: nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan}
	}
	sort.Float64s(xs)
	s := Stats{
		Count: len(xs),
		Mean:  stat.Mean(xs, nil),
		Std:   nan,
		Min:   xs[0],
		Q25:   quantile(xs, 0.25),
		Q50:   quantile(xs, 0.5),
		Q75:   quantile(xs, 0.75),
		Max:   xs[len(xs)-1],
	}
	if len(xs) > 1 {
		s.Std = stat.StdDev(xs, nil)
	}
	return s
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

// quantile interpolates linearly at position q*(n-1) of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

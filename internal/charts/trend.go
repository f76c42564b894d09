package charts

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Trend is a fitted line y = Intercept + Slope*x over [XMin, XMax].
type Trend struct {
	Intercept float64
	Slope     float64
	XMin      float64
	XMax      float64
}

// At evaluates the line.
func (t Trend) At(x float64) float64 { return t.Intercept + t.Slope*x }

// FitOLS fits an ordinary least-squares line. It needs at least two points
// and some spread in x.
func FitOLS(xs, ys []float64) (Trend, bool) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return Trend{}, false
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo == hi {
		return Trend{}, false
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return Trend{}, false
	}
	return Trend{Intercept: alpha, Slope: beta, XMin: lo, XMax: hi}, true
}

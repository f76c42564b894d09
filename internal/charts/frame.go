package charts

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/KaramelBytes/cacscope/internal/dataset"
)

// Point is one scatter coordinate with its display label.
type Point struct {
	X, Y  float64
	Label string
}

// Series is one plotted trace.
type Series struct {
	Name string
	// ColorIndex selects from the chart palette; Color overrides it when set.
	ColorIndex int
	Color      color.Color
	// Values holds box samples, or one bar height per frame category.
	Values []float64
	Points []Point
	Trend  *Trend
}

// Frame is the data extracted from a table for one spec.
type Frame struct {
	Categories []string
	Series     []Series
	// Dropped counts rows left out because a coordinate was NaN or ±Inf.
	Dropped int
}

// Prepare extracts what a chart plots. Categories keep first-appearance order.
func Prepare(spec Spec, t *dataset.Table) (*Frame, error) {
	if len(spec.Y) == 0 {
		return nil, fmt.Errorf("chart %s: no y column", spec.ID)
	}
	switch spec.Kind {
	case Box:
		return prepareBox(spec, t)
	case Scatter:
		return prepareScatter(spec, t)
	case Bar, GroupedBar:
		return prepareBars(spec, t)
	default:
		return nil, fmt.Errorf("chart %s: unknown kind %q", spec.ID, spec.Kind)
	}
}

func groupKeys(t *dataset.Table, col string) ([]string, error) {
	if col == "" {
		return make([]string, t.Len()), nil
	}
	return t.Strings(col)
}

func order(keys []string) ([]string, map[string]int) {
	var cats []string
	pos := map[string]int{}
	for _, k := range keys {
		if _, ok := pos[k]; !ok {
			pos[k] = len(cats)
			cats = append(cats, k)
		}
	}
	return cats, pos
}

func prepareBox(spec Spec, t *dataset.Table) (*Frame, error) {
	keys, err := t.Strings(spec.X)
	if err != nil {
		return nil, err
	}
	ys, err := t.Floats(spec.Y[0])
	if err != nil {
		return nil, err
	}
	cats, pos := order(keys)
	f := &Frame{Categories: cats, Series: make([]Series, len(cats))}
	for i, c := range cats {
		f.Series[i] = Series{Name: c, ColorIndex: i}
	}
	for i, k := range keys {
		if !finite(ys[i]) {
			f.Dropped++
			continue
		}
		s := &f.Series[pos[k]]
		s.Values = append(s.Values, ys[i])
	}
	return f, nil
}

func prepareScatter(spec Spec, t *dataset.Table) (*Frame, error) {
	keys, err := groupKeys(t, spec.Color)
	if err != nil {
		return nil, err
	}
	xs, err := t.Floats(spec.X)
	if err != nil {
		return nil, err
	}
	ys, err := t.Floats(spec.Y[0])
	if err != nil {
		return nil, err
	}
	cats, pos := order(keys)
	f := &Frame{Categories: cats, Series: make([]Series, len(cats))}
	for i, c := range cats {
		f.Series[i] = Series{Name: c, ColorIndex: i}
	}
	for i, k := range keys {
		if !finite(xs[i]) || !finite(ys[i]) {
			f.Dropped++
			continue
		}
		s := &f.Series[pos[k]]
		s.Points = append(s.Points, Point{X: xs[i], Y: ys[i], Label: pointLabel(spec, xs[i], ys[i])})
	}
	if spec.Trendline {
		for i := range f.Series {
			s := &f.Series[i]
			px := make([]float64, len(s.Points))
			py := make([]float64, len(s.Points))
			for j, p := range s.Points {
				px[j], py[j] = p.X, p.Y
			}
			if tr, ok := FitOLS(px, py); ok {
				s.Trend = &tr
			}
		}
	}
	return f, nil
}

func prepareBars(spec Spec, t *dataset.Table) (*Frame, error) {
	keys, err := t.Strings(spec.X)
	if err != nil {
		return nil, err
	}
	cats, pos := order(keys)
	f := &Frame{Categories: cats}
	for si, col := range spec.Y {
		ys, err := t.Floats(col)
		if err != nil {
			return nil, err
		}
		sums := make([]float64, len(cats))
		counts := make([]int, len(cats))
		for i, k := range keys {
			if !finite(ys[i]) {
				f.Dropped++
				continue
			}
			sums[pos[k]] += ys[i]
			counts[pos[k]]++
		}
		vals := make([]float64, len(cats))
		for c := range cats {
			switch spec.Reduce {
			case Mean:
				vals[c] = math.NaN()
				if counts[c] > 0 {
					vals[c] = sums[c] / float64(counts[c])
				}
			default:
				vals[c] = sums[c]
			}
		}
		f.Series = append(f.Series, Series{
			Name:       col,
			ColorIndex: si,
			Color:      spec.FixedColors[col],
			Values:     vals,
		})
	}
	return f, nil
}

// label rounds for display only; zero digits means no label.
func label(v float64, digits int) string {
	if digits <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func pointLabel(spec Spec, x, y float64) string {
	if spec.LabelDigits <= 0 {
		return ""
	}
	if spec.LabelXY {
		return label(x, spec.LabelDigits) + "\n" + label(y, spec.LabelDigits) + spec.LabelSuffix
	}
	return label(y, spec.LabelDigits) + spec.LabelSuffix
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

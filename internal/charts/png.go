package charts

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PNGRenderer writes one static image per chart.
type PNGRenderer struct {
	Dir    string
	Prefix string
	Width  vg.Length
	Height vg.Length
	paths  []string
}

// NewPNGRenderer writes <prefix>-NN-<chart id>.png files under dir.
func NewPNGRenderer(dir, prefix string) *PNGRenderer {
	return &PNGRenderer{Dir: dir, Prefix: prefix, Width: 9 * vg.Inch, Height: 6 * vg.Inch}
}

func (r *PNGRenderer) Add(spec Spec, f *Frame) error {
	colors, err := paletteColors(spec.Palette)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XTitle
	p.Y.Label.Text = spec.YTitle
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	switch spec.Kind {
	case Box:
		for i, s := range f.Series {
			if len(s.Values) == 0 {
				continue
			}
			b, err := plotter.NewBoxPlot(vg.Points(20), float64(i), plotter.Values(s.Values))
			if err != nil {
				return err
			}
			b.FillColor = pick(colors, s.ColorIndex)
			p.Add(b)
		}
		p.NominalX(f.Categories...)
	case Scatter:
		for _, s := range f.Series {
			if len(s.Points) == 0 {
				continue
			}
			xys := make(plotter.XYs, len(s.Points))
			labels := make([]string, len(s.Points))
			for i, pt := range s.Points {
				xys[i].X, xys[i].Y = pt.X, pt.Y
				labels[i] = pt.Label
			}
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return err
			}
			sc.GlyphStyle.Color = pick(colors, s.ColorIndex)
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			sc.GlyphStyle.Radius = vg.Points(3)
			p.Add(sc)
			p.Legend.Add(s.Name, sc)
			if spec.LabelDigits > 0 {
				lb, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
				if err != nil {
					return err
				}
				p.Add(lb)
			}
			if s.Trend != nil {
				l, err := plotter.NewLine(plotter.XYs{
					{X: s.Trend.XMin, Y: s.Trend.At(s.Trend.XMin)},
					{X: s.Trend.XMax, Y: s.Trend.At(s.Trend.XMax)},
				})
				if err != nil {
					return err
				}
				l.LineStyle.Color = pick(colors, s.ColorIndex)
				l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
				p.Add(l)
			}
		}
	case Bar:
		// one bar per category so each carries its own color
		for _, s := range f.Series {
			for i, v := range s.Values {
				if !finite(v) {
					continue
				}
				b, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(24))
				if err != nil {
					return err
				}
				b.XMin = float64(i)
				b.Color = pick(colors, i)
				b.LineStyle.Width = 0
				p.Add(b)
			}
		}
		p.NominalX(f.Categories...)
	case GroupedBar:
		w := vg.Points(16)
		group := w * vg.Length(len(f.Series)-1)
		for si, s := range f.Series {
			vals := make(plotter.Values, len(s.Values))
			for i, v := range s.Values {
				if finite(v) {
					vals[i] = v
				}
			}
			b, err := plotter.NewBarChart(vals, w)
			if err != nil {
				return err
			}
			b.Offset = w*vg.Length(si) - group/2
			b.LineStyle.Width = 0
			b.Color = pick(colors, s.ColorIndex)
			if s.Color != nil {
				b.Color = s.Color
			}
			p.Add(b)
			p.Legend.Add(s.Name, b)
		}
		p.NominalX(f.Categories...)
	default:
		return fmt.Errorf("unknown chart kind %q", spec.Kind)
	}

	path := filepath.Join(r.Dir, fmt.Sprintf("%s-%02d-%s.png", r.Prefix, len(r.paths)+1, spec.ID))
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	r.paths = append(r.paths, path)
	return nil
}

func (r *PNGRenderer) Close() ([]string, error) {
	if len(r.paths) == 0 {
		return nil, fmt.Errorf("no charts to render")
	}
	return r.paths, nil
}

package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/KaramelBytes/cacscope/internal/analysis"
	"github.com/KaramelBytes/cacscope/internal/utils"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HTMLRenderer collects interactive charts into one self-contained page.
type HTMLRenderer struct {
	Path string
	page *components.Page
	n    int
}

// NewHTMLRenderer creates a renderer that writes the page to path on Close.
func NewHTMLRenderer(path, title string) *HTMLRenderer {
	page := components.NewPage()
	page.PageTitle = title
	return &HTMLRenderer{Path: path, page: page}
}

func (r *HTMLRenderer) Add(spec Spec, f *Frame) error {
	colors, err := paletteColors(spec.Palette)
	if err != nil {
		return err
	}
	switch spec.Kind {
	case Box:
		r.page.AddCharts(htmlBox(spec, f, colors))
	case Scatter:
		r.page.AddCharts(htmlScatter(spec, f, colors))
	case Bar, GroupedBar:
		r.page.AddCharts(htmlBars(spec, f, colors))
	default:
		return fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	r.n++
	return nil
}

func (r *HTMLRenderer) Close() ([]string, error) {
	if r.n == 0 {
		return nil, fmt.Errorf("no charts to render")
	}
	var buf bytes.Buffer
	if err := r.page.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render charts: %w", err)
	}
	if err := utils.SafeWriteFile(r.Path, buf.Bytes()); err != nil {
		return nil, err
	}
	return []string{r.Path}, nil
}

func globalOpts(spec Spec, xType string, legend bool) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{
			Title: spec.Title,
			Left:  "center",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(legend),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: spec.XTitle,
			Type: xType,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: spec.YTitle,
			Type: "value",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "480px",
		}),
	}
}

// tukey returns [min, q1, median, q3, max] with whiskers clipped to 1.5 IQR,
// plus the points beyond the whiskers.
func tukey(vals []float64) ([]float64, []float64) {
	st := analysis.Describe(vals)
	iqr := st.Q75 - st.Q25
	lo, hi := st.Q25-1.5*iqr, st.Q75+1.5*iqr
	wl, wh := math.Inf(1), math.Inf(-1)
	var out []float64
	for _, v := range vals {
		if v < lo || v > hi {
			out = append(out, v)
			continue
		}
		wl = math.Min(wl, v)
		wh = math.Max(wh, v)
	}
	return []float64{wl, st.Q25, st.Q50, st.Q75, wh}, out
}

func htmlBox(spec Spec, f *Frame, colors []color.Color) *charts.BoxPlot {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(globalOpts(spec, "category", false)...)
	data := make([]opts.BoxPlotData, len(f.Series))
	outliers := charts.NewScatter()
	hasOutliers := false
	for i, s := range f.Series {
		c := hexOf(pick(colors, s.ColorIndex))
		if len(s.Values) == 0 {
			data[i] = opts.BoxPlotData{Name: s.Name, Value: "-"}
			continue
		}
		five, out := tukey(s.Values)
		data[i] = opts.BoxPlotData{Name: s.Name, Value: five, ItemStyle: &opts.ItemStyle{Color: c}}
		if len(out) == 0 {
			continue
		}
		points := make([]opts.ScatterData, len(out))
		for j, v := range out {
			points[j] = opts.ScatterData{Value: []interface{}{s.Name, v}}
		}
		outliers.AddSeries(s.Name+" outliers", points,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: c}),
		)
		hasOutliers = true
	}
	box.SetXAxis(f.Categories).AddSeries(spec.Y[0], data)
	if hasOutliers {
		box.Overlap(outliers)
	}
	return box
}

func htmlScatter(spec Spec, f *Frame, colors []color.Color) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(globalOpts(spec, "value", true)...)
	var trends []*charts.Line
	for _, s := range f.Series {
		c := hexOf(pick(colors, s.ColorIndex))
		data := make([]opts.ScatterData, len(s.Points))
		for i, p := range s.Points {
			data[i] = opts.ScatterData{Name: p.Label, Value: []interface{}{p.X, p.Y}, SymbolSize: 10}
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithItemStyleOpts(opts.ItemStyle{Color: c}),
		}
		if spec.LabelDigits > 0 {
			seriesOpts = append(seriesOpts, charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Position:  "top",
				Formatter: "{b}",
			}))
		}
		sc.AddSeries(s.Name, data, seriesOpts...)
		if s.Trend != nil {
			line := charts.NewLine()
			line.AddSeries(s.Name+" trend", []opts.LineData{
				{Value: []interface{}{s.Trend.XMin, s.Trend.At(s.Trend.XMin)}},
				{Value: []interface{}{s.Trend.XMax, s.Trend.At(s.Trend.XMax)}},
			},
				charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: c, Type: "dashed"}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: c}),
			)
			trends = append(trends, line)
		}
	}
	for _, l := range trends {
		sc.Overlap(l)
	}
	return sc
}

func htmlBars(spec Spec, f *Frame, colors []color.Color) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(spec, "category", spec.Kind == GroupedBar)...)
	bar.SetXAxis(f.Categories)
	perCategory := spec.Kind == Bar && spec.Color != ""
	for _, s := range f.Series {
		data := make([]opts.BarData, len(s.Values))
		for i, v := range s.Values {
			var val interface{} = v
			if !finite(v) {
				val = "-"
			}
			data[i] = opts.BarData{Name: f.Categories[i], Value: val}
			if perCategory {
				data[i].ItemStyle = &opts.ItemStyle{Color: hexOf(pick(colors, i))}
			}
		}
		seriesOpts := []charts.SeriesOpts{}
		if !perCategory {
			c := s.Color
			if c == nil {
				c = pick(colors, s.ColorIndex)
			}
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: hexOf(c)}))
		}
		if spec.LabelDigits > 0 {
			seriesOpts = append(seriesOpts, charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Position:  "top",
				Formatter: opts.FuncStripCommentsOpts(fmt.Sprintf("function (p) { return Number(p.value).toFixed(%d); }", spec.LabelDigits)),
			}))
		}
		bar.AddSeries(s.Name, data, seriesOpts...)
	}
	return bar
}

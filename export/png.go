package export

import (
	"io"
	"math"
	"reflect"
	"strings"
	"time"

	charts "github.com/midbel/livecharts"
	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNoData = errors.New("no data to plot")

const dotWidth = 4

// PNG draws the series with go-chart. Line, area and scatter kinds share the
// same plot; bar draws one bar per point, colored after its serie.
func PNG[T charts.Key](w io.Writer, opts charts.Options, series []charts.Serie[T]) error {
	ext, ok := charts.SeriesExtent(series)
	if !ok {
		return ErrNoData
	}
	if opts.Kind == charts.KindBar {
		return barPNG(w, opts, series)
	}
	var (
		width  = int(opts.Width)
		height = int(opts.ChartHeight())
		list   []chart.Series
	)
	for i, s := range series {
		if s.Empty() {
			continue
		}
		list = append(list, plotSerie(s, serieStyle(opts, serieColor(opts, s, i))))
	}
	minx, maxx := widen(keyFloat(ext.MinX), keyFloat(ext.MaxX))
	miny, maxy := widen(ext.ValueRange())
	ch := chart.Chart{
		Title:      opts.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: padding(opts.Padding)},
		XAxis: chart.XAxis{
			Name:           opts.X.Label,
			Range:          &chart.ContinuousRange{Min: minx, Max: maxx},
			ValueFormatter: xFormatter[T](opts.X.Format),
		},
		YAxis: chart.YAxis{
			Name:  opts.Y.Label,
			Range: &chart.ContinuousRange{Min: miny, Max: maxy},
		},
		Series: list,
	}
	return ch.Render(chart.PNG, w)
}

func barPNG[T charts.Key](w io.Writer, opts charts.Options, series []charts.Serie[T]) error {
	var (
		format = xFormatter[T](opts.X.Format)
		bars   []chart.Value
	)
	for i, s := range series {
		color := serieColor(opts, s, i)
		for _, pt := range s.Points {
			if math.IsNaN(pt.Y) {
				continue
			}
			bars = append(bars, chart.Value{
				Label: format(any(pt.X)),
				Value: pt.Y,
				Style: chart.Style{
					FillColor:   color,
					StrokeColor: color,
				},
			})
		}
	}
	if len(bars) == 0 {
		return ErrNoData
	}
	size := int(opts.DrawingWidth()) / (2 * len(bars))
	if size < 1 {
		size = 1
	}
	ch := chart.BarChart{
		Title:      opts.Title,
		Width:      int(opts.Width),
		Height:     int(opts.ChartHeight()),
		Background: chart.Style{Padding: padding(opts.Padding)},
		BarWidth:   size,
		BarSpacing: size,
		Bars:       bars,
	}
	return ch.Render(chart.PNG, w)
}

func plotSerie[T charts.Key](s charts.Serie[T], style chart.Style) chart.Series {
	var (
		xs []float64
		ts []time.Time
		ys []float64
	)
	for _, pt := range s.Points {
		if math.IsNaN(pt.Y) {
			continue
		}
		if t, ok := any(pt.X).(time.Time); ok {
			ts = append(ts, t)
		} else {
			xs = append(xs, keyFloat(pt.X))
		}
		ys = append(ys, pt.Y)
	}
	if ts != nil {
		return chart.TimeSeries{
			Name:    s.ID,
			XValues: ts,
			YValues: ys,
			Style:   style,
		}
	}
	return chart.ContinuousSeries{
		Name:    s.ID,
		XValues: xs,
		YValues: ys,
		Style:   style,
	}
}

func serieStyle(opts charts.Options, color drawing.Color) chart.Style {
	style := chart.Style{
		StrokeColor: color,
		StrokeWidth: opts.Style.Line.Width,
	}
	if style.StrokeWidth <= 0 {
		style.StrokeWidth = 1
	}
	switch opts.Kind {
	case charts.KindArea:
		style.FillColor = color.WithAlpha(uint8(opts.Style.Fill.Opacity * 255))
	case charts.KindScatter:
		style.StrokeColor = drawing.ColorTransparent
		style.DotColor = color
		style.DotWidth = dotWidth
	}
	return style
}

func serieColor[T charts.Key](opts charts.Options, s charts.Serie[T], i int) drawing.Color {
	palette := charts.Palette(opts.Style.Palette)
	if len(palette) == 0 {
		palette = charts.Category10
	}
	str := s.Color
	if !strings.HasPrefix(str, "#") {
		str = palette.At(i)
	}
	return drawing.ColorFromHex(strings.TrimPrefix(str, "#"))
}

func padding(pad charts.Padding) chart.Box {
	return chart.Box{
		Top:    int(pad.Top),
		Right:  int(pad.Right),
		Bottom: int(pad.Bottom),
		Left:   int(pad.Left),
	}
}

func xFormatter[T charts.Key](layout string) chart.ValueFormatter {
	var zero T
	if _, ok := any(zero).(time.Time); !ok {
		return chart.FloatValueFormatter
	}
	if layout == "" {
		layout = "15:04:05"
	}
	return func(v any) string {
		switch x := v.(type) {
		case time.Time:
			return x.Format(layout)
		case float64:
			return time.Unix(0, int64(x)).UTC().Format(layout)
		default:
			return ""
		}
	}
}

func keyFloat[T charts.Key](x T) float64 {
	switch k := any(x).(type) {
	case time.Time:
		return chart.TimeToFloat64(k)
	case float64:
		return k
	default:
		return reflect.ValueOf(x).Float()
	}
}

// widen returns a range go-chart accepts: bounds in increasing order and a
// zero width range opened by one unit on each side.
func widen(lo, hi float64) (float64, float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return lo - 1, hi + 1
	}
	return lo, hi
}

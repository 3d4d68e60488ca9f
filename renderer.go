package charts

import (
	"math"

	"github.com/midbel/svg"
)

type TextPosition int

const (
	TextBefore TextPosition = 1 << iota
	TextAfter
)

const currentColor = "currentColor"

type Renderer[T Key] interface {
	Render(Serie[T], Scaler[T], Scaler[float64]) svg.Element
}

// rendererFor selects the renderer of a chart kind. index and count give the
// position of the serie among the series drawn.
func rendererFor[T Key](kind Kind, style Style, index, count int) Renderer[T] {
	switch kind {
	case KindArea:
		return LinearRenderer[T]{
			Fill:          true,
			Style:         style,
			Point:         style.getPointFunc(),
			Text:          style.getTextPosition(),
			IgnoreMissing: true,
		}
	case KindScatter:
		pt := style.getPointFunc()
		if pt == nil {
			pt = Circle
		}
		return PointRenderer[T]{
			Point: pt,
			Size:  style.getSize(),
		}
	case KindBar:
		return BarRenderer[T]{
			Width: 0.9,
			Index: index,
			Count: count,
		}
	default:
		return LinearRenderer[T]{
			Style:         style,
			Point:         style.getPointFunc(),
			Text:          style.getTextPosition(),
			IgnoreMissing: true,
		}
	}
}

type BarRenderer[T Key] struct {
	Width float64
	Index int
	Count int
}

func (r BarRenderer[T]) Render(serie Serie[T], xs Scaler[T], ys Scaler[float64]) svg.Element {
	if r.Width <= 0 {
		r.Width = 1
	}
	if r.Count <= 0 {
		r.Count = 1
	}
	var (
		grp  = getBaseGroup(serie.Color, "bar")
		band = r.band(serie, xs)
		size = band / float64(r.Count)
		w    = size * r.Width
		o    = (size-w)/2 + float64(r.Index)*size
	)
	grp.Id = serie.ID
	for _, pt := range serie.Points {
		if math.IsNaN(pt.Y) {
			continue
		}
		var (
			x = xs.Scale(pt.X) + o
			y = ys.Scale(pt.Y)
		)
		if _, ok := xs.(interface{ Band() float64 }); !ok {
			x -= band / 2
		}
		var el svg.Rect
		el.Pos = svg.NewPos(x, y)
		el.Dim = svg.NewDim(w, ys.Max()-y)
		grp.Append(el.AsElement())
	}
	return grp.AsElement()
}

func (r BarRenderer[T]) band(serie Serie[T], xs Scaler[T]) float64 {
	if b, ok := xs.(interface{ Band() float64 }); ok {
		return b.Band()
	}
	if serie.Len() <= 1 {
		return xs.Max() - xs.Min()
	}
	return (xs.Max() - xs.Min()) / float64(serie.Len())
}

type PointRenderer[T Key] struct {
	Point PointFunc
	Size  float64
}

func (r PointRenderer[T]) Render(serie Serie[T], xs Scaler[T], ys Scaler[float64]) svg.Element {
	if r.Point == nil {
		r.Point = Circle
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	grp := getBaseGroup(serie.Color, "scatter")
	grp.Id = serie.ID
	for _, pt := range serie.Points {
		if math.IsNaN(pt.Y) {
			continue
		}
		pos := svg.NewPos(xs.Scale(pt.X), ys.Scale(pt.Y))
		grp.Append(r.Point(pos, r.Size))
	}
	return grp.AsElement()
}

// LinearRenderer draws a serie as a line, or as an area closed on the bottom
// of the drawing when Fill is set. With IgnoreMissing, points without value
// break the line in separate runs; otherwise the line joins over them.
type LinearRenderer[T Key] struct {
	Fill          bool
	Style         Style
	Point         PointFunc
	Text          TextPosition
	IgnoreMissing bool
}

func (r LinearRenderer[T]) Render(serie Serie[T], xs Scaler[T], ys Scaler[float64]) svg.Element {
	class := "line"
	if r.Fill {
		class = "area"
	}
	var (
		grp  = getBaseGroup(serie.Color, class)
		pat  = getBasePath(r.Style, r.Fill)
		base = ys.Max()
		size = r.Style.getSize()
	)
	grp.Id = serie.ID
	for _, run := range runs(serie.Points, r.IgnoreMissing) {
		var pos svg.Pos
		for i, pt := range run {
			pos = svg.NewPos(xs.Scale(pt.X), ys.Scale(pt.Y))
			switch {
			case i == 0 && r.Fill:
				pat.AbsMoveTo(svg.NewPos(pos.X, base))
				pat.AbsLineTo(pos)
			case i == 0:
				pat.AbsMoveTo(pos)
			default:
				pat.AbsLineTo(pos)
			}
			if r.Point != nil {
				grp.Append(r.Point(pos, size))
			}
		}
		if r.Fill {
			pat.AbsLineTo(svg.NewPos(pos.X, base))
			pat.ClosePath()
		}
	}

	if pt, ok := labelPoint(serie.Points, r.Text); ok {
		txt := getLineText(serie.ID, xs.Scale(pt.X), ys.Scale(pt.Y), r.Text == TextBefore)
		grp.Append(txt.AsElement())
	}
	grp.Append(pat.AsElement())
	return grp.AsElement()
}

// runs splits points on missing values. When split is false, missing values
// are dropped and a single run is returned. Empty runs are never returned.
func runs[T Key](points []Point[T, float64], split bool) [][]Point[T, float64] {
	var (
		list [][]Point[T, float64]
		curr []Point[T, float64]
	)
	for _, pt := range points {
		if math.IsNaN(pt.Y) {
			if split && len(curr) > 0 {
				list = append(list, curr)
				curr = nil
			}
			continue
		}
		curr = append(curr, pt)
	}
	if len(curr) > 0 {
		list = append(list, curr)
	}
	return list
}

// labelPoint gives the point next to which the serie label goes: the first
// point with a value for TextBefore, the last one for TextAfter.
func labelPoint[T Key](points []Point[T, float64], pos TextPosition) (Point[T, float64], bool) {
	var zero Point[T, float64]
	switch pos {
	case TextBefore:
		for _, pt := range points {
			if !math.IsNaN(pt.Y) {
				return pt, true
			}
		}
	case TextAfter:
		for i := len(points) - 1; i >= 0; i-- {
			if !math.IsNaN(points[i].Y) {
				return points[i], true
			}
		}
	default:
	}
	return zero, false
}

func getLineText(str string, x, y float64, before bool) svg.Text {
	txt := svg.NewText(str)
	txt.Font = svg.NewFont(FontSize)
	txt.Pos = svg.NewPos(x, y)
	txt.Anchor = "end"
	txt.Baseline = "middle"
	if !before {
		txt.Anchor = "start"
		txt.Pos.X += FontSize * 0.4
	} else {
		txt.Pos.X -= FontSize * 0.4
	}
	return txt
}

func getBasePath(style Style, fill bool) svg.Path {
	var pat svg.Path
	pat.Rendering = "geometricPrecision"
	pat.Stroke = style.getStroke()
	if fill {
		pat.Fill = svg.NewFill(currentColor)
		pat.Fill.Opacity = style.Fill.Opacity
	} else {
		pat.Fill = svg.NewFill("none")
	}
	return pat
}

func getBaseGroup(color string, class ...string) svg.Group {
	var g svg.Group
	if color != "" {
		g.Fill = svg.NewFill(color)
		g.Stroke = svg.NewStroke(color, 1)
	}
	g.Class = class
	return g
}

package charts

import (
	"fmt"
	"strconv"
	"time"

	"github.com/midbel/svg"
)

const FontSize = 12.0

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

type Axis[T ScalerConstraint] struct {
	Label string
	Orientation
	Ticks          int
	Scaler         Scaler[T]
	Format         func(T) string
	WithInnerTicks bool
	WithLabelTicks bool
	WithOuterTicks bool
	WithBands      bool
}

func (a Axis[T]) Render(length, size, left, top float64) svg.Element {
	g := svg.NewGroup(svg.WithTranslate(left, top))
	g.Class = append(g.Class, "axis")
	d := domainLine(a.Orientation, length, svg.NewStroke("black", 1))
	g.Append(d.AsElement())

	var (
		data   = a.Scaler.Values(a.Ticks)
		font   = svg.NewFont(FontSize)
		format = a.Format
		align  float64
	)
	if format == nil {
		format = formatValue[T]
	}
	if b, ok := a.Scaler.(interface{ Band() float64 }); ok {
		align = b.Band() / 2
	}
	for i, v := range data {
		var (
			pos = a.Scaler.Scale(v)
			grp = svg.NewGroup(svg.WithTranslate(pos, 0))
		)
		if a.Vertical() {
			grp.Transform.TX = 0
			grp.Transform.TY = pos
		}
		if a.WithInnerTicks {
			tick := lineTick(a.Orientation, align, FontSize*0.8, d.Stroke)
			grp.Append(tick.AsElement())
		}
		if a.WithLabelTicks {
			text := tickText(a.Orientation, format(v), align, font)
			grp.Append(text.AsElement())
		}
		if a.WithOuterTicks && i < len(data)-1 {
			sk := d.Stroke
			sk.Opacity = 0.1
			tick := lineTick(a.Orientation, align, -size, sk)
			grp.Append(tick.AsElement())
		}
		if a.WithBands && i%2 == 0 && len(data) > 1 {
			rec := tickBand(a.Orientation, size, length/float64(len(data)-1))
			grp.Append(rec.AsElement())
		}
		g.Append(grp.AsElement())
	}
	if a.Label != "" {
		g.Append(axisLabel(a.Orientation, a.Label, length).AsElement())
	}
	return g.AsElement()
}

func formatValue[T ScalerConstraint](v T) string {
	switch x := any(v).(type) {
	case time.Time:
		return x.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(x, 'f', 2, 64)
	case string:
		return x
	default:
		return fmt.Sprint(v)
	}
}

func axisLabel(orient Orientation, str string, length float64) svg.Text {
	text := svg.NewText(str)
	text.Font = svg.NewFont(FontSize)
	text.Anchor = "end"
	if orient.Vertical() {
		text.Anchor = "start"
		text.Baseline = "hanging"
		text.Pos = svg.NewPos(6, 0)
		if orient.Reverse() {
			text.Anchor = "end"
			text.Pos.X = -6
		}
		return text
	}
	text.Pos = svg.NewPos(length, -6)
	if orient.Reverse() {
		text.Baseline = "hanging"
		text.Pos.Y = 6
	}
	return text
}

func domainLine(orient Orientation, length float64, stroke svg.Stroke) svg.Line {
	x, y := length, 0.0
	if orient.Vertical() {
		x, y = y, x
	}
	d := svg.NewLine(svg.NewPos(0, 0), svg.NewPos(x, y))
	d.Stroke = stroke
	return d
}

func tickBand(orient Orientation, width, height float64) svg.Rect {
	var rec svg.Rect
	rec.Pos = svg.NewPos(0, 0)
	rec.Dim = svg.NewDim(width, height)
	if !orient.Vertical() {
		rec.Dim.W, rec.Dim.H = rec.Dim.H, rec.Dim.W
		if !orient.Reverse() {
			rec.Transform.RA = 180
			rec.Transform.TX = rec.Dim.W
		}
	}
	rec.Fill = svg.NewFill(currentColor)
	rec.Fill.Opacity = 0.05
	return rec
}

func lineTick(orient Orientation, offset, size float64, stroke svg.Stroke) svg.Line {
	var (
		pos1 = svg.NewPos(offset, 0)
		pos2 = svg.NewPos(offset, size)
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		pos2.X, pos2.Y = -pos2.Y, pos2.X
		pos1.X, pos1.Y = 0, offset
	case orient.Vertical() && orient.Reverse():
		pos2.X, pos2.Y = pos2.Y, pos2.X
		pos1.X, pos1.Y = 0, offset
	case !orient.Vertical() && orient.Reverse():
		pos2.Y = -pos2.Y
	default:
	}
	tick := svg.NewLine(pos1, pos2)
	tick.Stroke = stroke
	return tick
}

func tickText(orient Orientation, str string, offset float64, font svg.Font) svg.Text {
	var (
		base   = "hanging"
		anchor = "middle"
		x, y   = offset, FontSize * 1.2
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		base = "middle"
		anchor = "end"
		x, y = -y, x
	case orient.Vertical() && orient.Reverse():
		base = "middle"
		anchor = "start"
		x, y = y, x
	case !orient.Vertical() && orient.Reverse():
		base = "auto"
		y = -y
	default:
	}
	text := svg.NewText(str)
	text.Pos = svg.NewPos(x, y)
	text.Font = font
	text.Anchor = anchor
	text.Baseline = base
	return text
}

package charts

import (
	"github.com/midbel/svg"
)

// DefaultSize is the size of a point marker when the style gives none.
const DefaultSize = 4.0

// PointFunc draws a marker of the given size centered on a point. Markers
// have no fill of their own and take the color of their serie.
type PointFunc func(center svg.Pos, size float64) svg.Element

var markers = map[string]PointFunc{
	"circle":  Circle,
	"square":  Square,
	"diamond": Diamond,
}

func Circle(center svg.Pos, size float64) svg.Element {
	var el svg.Circle
	el.Pos = center
	el.Radius = size / 2
	return el.AsElement()
}

func Square(center svg.Pos, size float64) svg.Element {
	el := squareAt(center, size)
	return el.AsElement()
}

// Diamond is a square turned by 45 degrees around its center.
func Diamond(center svg.Pos, size float64) svg.Element {
	el := squareAt(center, size)
	el.Transform.RA = 45
	el.Transform.RX = center.X
	el.Transform.RY = center.Y
	return el.AsElement()
}

func squareAt(center svg.Pos, size float64) svg.Rect {
	var el svg.Rect
	el.Pos = svg.NewPos(center.X-size/2, center.Y-size/2)
	el.Dim = svg.NewDim(size, size)
	return el
}

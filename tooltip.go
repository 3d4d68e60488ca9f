package charts

import (
	"math"
	"strconv"

	"github.com/midbel/svg"
)

// drawTooltip draws a guide at the queried position and a marker on every
// nearest point. Points without value get no marker.
func drawTooltip[T Key](list []Nearest[T], at float64, height float64, xs Scaler[T], ys Scaler[float64]) svg.Element {
	grp := getBaseGroup("", "tooltip")

	guide := svg.NewLine(svg.NewPos(at, 0), svg.NewPos(at, height))
	guide.Stroke = svg.NewStroke("black", 1)
	guide.Stroke.Opacity = 0.3
	grp.Append(guide.AsElement())

	for _, n := range list {
		if math.IsNaN(n.Point.Y) {
			continue
		}
		var (
			pos = svg.NewPos(xs.Scale(n.Point.X), ys.Scale(n.Point.Y))
			g   = getBaseGroup(n.Color, "tooltip-point")
			el  svg.Circle
		)
		g.Id = n.ID
		el.Pos = pos
		el.Radius = DefaultSize
		g.Append(el.AsElement())

		txt := svg.NewText(n.ID + ": " + strconv.FormatFloat(n.Point.Y, 'f', -1, 64))
		txt.Font = svg.NewFont(FontSize)
		txt.Pos = svg.NewPos(pos.X+DefaultSize*2, pos.Y)
		txt.Baseline = "middle"
		g.Append(txt.AsElement())

		grp.Append(g.AsElement())
	}
	return grp.AsElement()
}

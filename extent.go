package charts

import (
	"math"
)

// Extent is the bounding box of the points held by a set of series.
type Extent[T Key] struct {
	MinX T
	MaxX T
	MinY float64
	MaxY float64
}

// Extent computes the bounds of all the buffered points. NaN values are
// skipped on the y axis. It returns false when no point is buffered.
func (b *Buffer[T]) Extent() (Extent[T], bool) {
	return SeriesExtent(b.series)
}

func SeriesExtent[T Key](series []Serie[T]) (Extent[T], bool) {
	var (
		ext  Extent[T]
		seen bool
	)
	ext.MinY = math.Inf(1)
	ext.MaxY = math.Inf(-1)
	for _, s := range series {
		if s.Empty() {
			continue
		}
		if fst := s.First().X; !seen || keyLess(fst, ext.MinX) {
			ext.MinX = fst
		}
		if lst := s.Last().X; !seen || keyLess(ext.MaxX, lst) {
			ext.MaxX = lst
		}
		seen = true
		for _, pt := range s.Points {
			if math.IsNaN(pt.Y) {
				continue
			}
			ext.MinY = math.Min(ext.MinY, pt.Y)
			ext.MaxY = math.Max(ext.MaxY, pt.Y)
		}
	}
	if !seen {
		return ext, false
	}
	if math.IsInf(ext.MinY, 1) {
		ext.MinY, ext.MaxY = 0, 0
	}
	return ext, true
}

// ValueRange gives the bounds of the y domain drawn for the extent.
func (e Extent[T]) ValueRange() (float64, float64) {
	return e.MinY, e.MaxY + e.MaxY*Headroom
}

package charts

// Nearest is the point of a serie closest to a queried x-key.
type Nearest[T Key] struct {
	ID    string
	Color string
	Point Point[T, float64]
}

// Locate returns, for each non empty serie, the point whose x-key is the
// closest to x. Results follow the order of series.
func Locate[T Key](x T, series []Serie[T]) []Nearest[T] {
	list := make([]Nearest[T], 0, len(series))
	for _, s := range series {
		pt, ok := s.Nearest(x)
		if !ok {
			continue
		}
		list = append(list, Nearest[T]{
			ID:    s.ID,
			Color: s.Color,
			Point: pt,
		})
	}
	return list
}

func (b *Buffer[T]) Locate(x T) []Nearest[T] {
	return Locate(x, b.series)
}

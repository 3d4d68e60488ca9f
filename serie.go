package charts

import (
	"sort"

	"github.com/midbel/slices"
)

type Serie[T Key] struct {
	ID     string
	Color  string
	Points []Point[T, float64]
}

func (s Serie[T]) Len() int {
	return len(s.Points)
}

func (s Serie[T]) Empty() bool {
	return len(s.Points) == 0
}

// First and Last panic on an empty serie.
func (s Serie[T]) First() Point[T, float64] {
	return slices.Fst(s.Points)
}

func (s Serie[T]) Last() Point[T, float64] {
	return slices.Lst(s.Points)
}

// Nearest returns the point of s whose x-key is the closest to x. The
// points are expected to be sorted by x-key. When x sits exactly between
// two points, the earlier one wins.
func (s Serie[T]) Nearest(x T) (Point[T, float64], bool) {
	var zero Point[T, float64]
	if s.Empty() {
		return zero, false
	}
	i := sort.Search(len(s.Points), func(i int) bool {
		return !keyLess(s.Points[i].X, x)
	})
	if i >= len(s.Points) {
		return s.Last(), true
	}
	if i == 0 {
		return s.First(), true
	}
	p1, p2 := s.Points[i-1], s.Points[i]
	if keyDiff(x, p1.X) > keyDiff(p2.X, x) {
		return p2, true
	}
	return p1, true
}

func (s Serie[T]) clone() Serie[T] {
	c := s
	c.Points = make([]Point[T, float64], len(s.Points))
	copy(c.Points, s.Points)
	return c
}

// dropFront removes the n oldest points in place and returns how many
// points were actually removed.
func (s *Serie[T]) dropFront(n int) int {
	if n <= 0 {
		return 0
	}
	if n > len(s.Points) {
		n = len(s.Points)
	}
	z := copy(s.Points, s.Points[n:])
	s.Points = s.Points[:z]
	return n
}

func cloneSeries[T Key](series []Serie[T]) []Serie[T] {
	list := make([]Serie[T], len(series))
	for i := range series {
		list[i] = series[i].clone()
	}
	return list
}

package charts

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func points(xs ...float64) []Point[float64, float64] {
	list := make([]Point[float64, float64], 0, len(xs))
	for _, x := range xs {
		list = append(list, NumberPoint(x, x*10))
	}
	return list
}

func keys(pts []Point[float64, float64]) []float64 {
	list := make([]float64, 0, len(pts))
	for _, p := range pts {
		list = append(list, p.X)
	}
	return list
}

func newBuffer(t *testing.T, capacity int, ids ...string) *Buffer[float64] {
	t.Helper()
	b := NewBuffer[float64](capacity)
	for _, id := range ids {
		require.NoError(t, b.AddSerie(id, ""))
	}
	return b
}

func serieKeys(t *testing.T, b *Buffer[float64], id string) []float64 {
	t.Helper()
	s, ok := b.Serie(id)
	require.True(t, ok, "serie %s not found", id)
	return keys(s.Points)
}

func TestBufferAddSerie(t *testing.T) {
	b := newBuffer(t, 3, "x")

	err := b.AddSerie("x", "red")
	require.Error(t, err)

	var dup *DuplicateSeriesError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "x", dup.ID)
	assert.Equal(t, 1, b.Len())

	s, ok := b.Serie("x")
	require.True(t, ok)
	assert.Empty(t, s.Color)
}

func TestBufferAddSerieOrder(t *testing.T) {
	b := newBuffer(t, 0, "c", "a", "b")
	var ids []string
	for _, s := range b.Series() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestBufferRemoveSeries(t *testing.T) {
	b := newBuffer(t, 0, "a", "b", "c")

	b.RemoveSeries()
	assert.Equal(t, 3, b.Len())

	b.RemoveSeries("b", "unknown")
	require.Equal(t, 2, b.Len())
	series := b.Series()
	assert.Equal(t, "a", series[0].ID)
	assert.Equal(t, "c", series[1].ID)

	b.RemoveSeries("a", "c")
	assert.Equal(t, 0, b.Len())
	require.NoError(t, b.AddSerie("a", ""))
}

func TestBufferMergeAppend(t *testing.T) {
	b := newBuffer(t, 10, "a", "b")

	u := b.Merge(map[string][]Point[float64, float64]{
		"a": points(1, 2),
		"b": points(1),
	})
	assert.False(t, u.Slide)
	assert.Zero(t, u.Evicted)

	u = b.Merge(map[string][]Point[float64, float64]{
		"a":       points(3),
		"unknown": points(1, 2, 3),
	})
	assert.False(t, u.Slide)
	u = b.Merge(map[string][]Point[float64, float64]{
		"a": points(4, 5),
		"b": points(2, 3),
	})
	assert.False(t, u.Slide)

	assert.Equal(t, []float64{1, 2, 3, 4, 5}, serieKeys(t, b, "a"))
	assert.Equal(t, []float64{1, 2, 3}, serieKeys(t, b, "b"))
	require.Len(t, u.Series, 2)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, keys(u.Series[0].Points))
	assert.Equal(t, 2, b.Len())
}

func TestBufferMergeUnbounded(t *testing.T) {
	b := newBuffer(t, 0, "a")
	for i := 0; i < 100; i++ {
		u := b.Merge(map[string][]Point[float64, float64]{
			"a": points(float64(i)),
		})
		require.False(t, u.Slide)
	}
	s, _ := b.Serie("a")
	assert.Equal(t, 100, s.Len())
}

func TestBufferMergeSlide(t *testing.T) {
	b := newBuffer(t, 3, "a")
	b.Merge(map[string][]Point[float64, float64]{
		"a": points(1, 2, 3),
	})

	u := b.Merge(map[string][]Point[float64, float64]{
		"a": {NumberPoint(4, 9)},
	})
	require.True(t, u.Slide)
	assert.Equal(t, 1, u.Evicted)
	assert.Equal(t, []float64{2, 3, 4}, serieKeys(t, b, "a"))

	require.Len(t, u.Series, 1)
	assert.Equal(t, []float64{1, 2, 3, 4}, keys(u.Series[0].Points))
	assert.Equal(t, 9.0, u.Series[0].Points[3].Y)
}

func TestBufferMergeSlideAlign(t *testing.T) {
	b := newBuffer(t, 3, "a", "b", "c")
	b.Merge(map[string][]Point[float64, float64]{
		"a": points(1, 2, 3),
		"b": points(0.5, 3),
	})

	u := b.Merge(map[string][]Point[float64, float64]{
		"a": points(4),
	})
	require.True(t, u.Slide)
	assert.Equal(t, 2, u.Evicted)
	assert.Equal(t, []float64{2, 3, 4}, serieKeys(t, b, "a"))
	assert.Equal(t, []float64{3}, serieKeys(t, b, "b"))
	assert.Empty(t, serieKeys(t, b, "c"))

	assert.Equal(t, []float64{0.5, 3}, keys(u.Series[1].Points))
}

func TestBufferMergeSlideReferenceTie(t *testing.T) {
	b := newBuffer(t, 2, "a", "b")
	b.Merge(map[string][]Point[float64, float64]{
		"a": points(1, 3),
		"b": points(2),
	})

	u := b.Merge(map[string][]Point[float64, float64]{
		"b": points(3, 3),
	})
	require.True(t, u.Slide)
	assert.Equal(t, []float64{1, 3}, serieKeys(t, b, "a"))
	assert.Equal(t, []float64{3, 3}, serieKeys(t, b, "b"))
}

func TestBufferMergeSlideEmpties(t *testing.T) {
	b := newBuffer(t, 1, "a", "b")
	b.Merge(map[string][]Point[float64, float64]{
		"a": points(1),
		"b": points(5),
	})

	u := b.Merge(map[string][]Point[float64, float64]{
		"b": points(6),
	})
	require.True(t, u.Slide)
	assert.Equal(t, 2, u.Evicted)
	assert.Empty(t, serieKeys(t, b, "a"))
	assert.Equal(t, []float64{6}, serieKeys(t, b, "b"))

	u = b.Merge(map[string][]Point[float64, float64]{
		"b": points(7),
	})
	require.True(t, u.Slide)
	assert.Equal(t, []float64{7}, serieKeys(t, b, "b"))
}

func TestBufferSnapshot(t *testing.T) {
	b := newBuffer(t, 3, "a")
	u := b.Merge(map[string][]Point[float64, float64]{
		"a": points(1, 2),
	})
	u.Series[0].Points[0].Y = 1000
	u.Series[0].Points = append(u.Series[0].Points, NumberPoint(100, 100))

	s, _ := b.Serie("a")
	assert.Equal(t, []float64{1, 2}, keys(s.Points))
	assert.Equal(t, 10.0, s.Points[0].Y)

	series := b.Series()
	series[0].Points[1].X = -1
	assert.Equal(t, []float64{1, 2}, serieKeys(t, b, "a"))
}

func TestBufferAppendLaw(t *testing.T) {
	var (
		b    = newBuffer(t, 50, "a", "b")
		want = map[string][]float64{}
		rnd  = rand.New(rand.NewSource(42))
		next = map[string]float64{}
	)
	for i := 0; i < 10; i++ {
		set := make(map[string][]Point[float64, float64])
		for _, id := range []string{"a", "b"} {
			n := rnd.Intn(3)
			for j := 0; j < n; j++ {
				next[id]++
				set[id] = append(set[id], NumberPoint(next[id], rnd.Float64()))
				want[id] = append(want[id], next[id])
			}
		}
		u := b.Merge(set)
		require.False(t, u.Slide)
	}
	assert.Equal(t, want["a"], serieKeys(t, b, "a"))
	assert.Equal(t, want["b"], serieKeys(t, b, "b"))
}

func TestBufferSlidingWindow(t *testing.T) {
	var (
		capacity = 5
		ids      = []string{"a", "b", "c"}
		b        = newBuffer(t, capacity, ids...)
		rnd      = rand.New(rand.NewSource(7))
		next     = map[string]float64{}
	)
	for i := 0; i < 200; i++ {
		set := make(map[string][]Point[float64, float64])
		for _, id := range ids {
			n := rnd.Intn(4)
			for j := 0; j < n; j++ {
				next[id] += float64(rnd.Intn(3))
				set[id] = append(set[id], NumberPoint(next[id], 0))
			}
		}
		u := b.Merge(set)
		if !u.Slide {
			continue
		}
		series := b.Series()
		ref := -1
		for j, s := range series {
			assert.LessOrEqual(t, s.Len(), capacity)
			if s.Empty() {
				continue
			}
			if ref < 0 || series[ref].Last().X < s.Last().X {
				ref = j
			}
		}
		if ref < 0 {
			continue
		}
		for _, s := range series {
			if s.Empty() {
				continue
			}
			assert.GreaterOrEqual(t, s.First().X, series[ref].First().X)
		}
	}
}

func TestBufferExtent(t *testing.T) {
	b := newBuffer(t, 0, "a", "b")
	_, ok := b.Extent()
	assert.False(t, ok)

	b.Merge(map[string][]Point[float64, float64]{
		"a": points(2, 4),
		"b": {NumberPoint(1, -5), NumberPoint(3, 100)},
	})
	ext, ok := b.Extent()
	require.True(t, ok)
	assert.Equal(t, 1.0, ext.MinX)
	assert.Equal(t, 4.0, ext.MaxX)
	assert.Equal(t, -5.0, ext.MinY)
	assert.Equal(t, 100.0, ext.MaxY)
}

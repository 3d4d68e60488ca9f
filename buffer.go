package charts

import (
	mapset "github.com/deckarep/golang-set/v2"
	log "github.com/sirupsen/logrus"
)

// Observer is notified of the changes applied to a Buffer.
type Observer interface {
	Merged(slide bool, evicted int)
	Resized(id string, length int)
	Removed(id string)
}

type Option func(*settings)

type settings struct {
	observer Observer
	logger   log.FieldLogger
	width    func() float64
}

func WithObserver(obs Observer) Option {
	return func(s *settings) {
		s.observer = obs
	}
}

func WithLogger(logger log.FieldLogger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithWidth gives the chart the width of its container. The chart polls it
// and lays itself out again when it changes.
func WithWidth(width func() float64) Option {
	return func(s *settings) {
		s.width = width
	}
}

func makeSettings(options []Option) settings {
	var s settings
	for _, o := range options {
		o(&s)
	}
	if s.logger == nil {
		s.logger = log.StandardLogger()
	}
	return s
}

// Update describes the outcome of a Buffer.Merge.
type Update[T Key] struct {
	// Slide is set when the merge went over capacity and points were evicted.
	Slide bool
	// Evicted counts the points dropped by the trim and the realignment.
	Evicted int
	// Series holds the state the caller should draw from: the series before
	// the trim when sliding, the current series otherwise.
	Series []Serie[T]
}

// Buffer keeps an ordered set of series with at most Capacity points each.
//
// A Buffer is not safe for concurrent use.
type Buffer[T Key] struct {
	capacity int
	series   []Serie[T]

	observer Observer
	logger   log.FieldLogger
}

// NewBuffer creates an empty buffer. A capacity of zero or less leaves the
// series unbounded.
func NewBuffer[T Key](capacity int, options ...Option) *Buffer[T] {
	set := makeSettings(options)
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer[T]{
		capacity: capacity,
		observer: set.observer,
		logger:   set.logger,
	}
}

func (b *Buffer[T]) Capacity() int {
	return b.capacity
}

func (b *Buffer[T]) Len() int {
	return len(b.series)
}

// Series returns a copy of all the series in insertion order.
func (b *Buffer[T]) Series() []Serie[T] {
	return cloneSeries(b.series)
}

func (b *Buffer[T]) Serie(id string) (Serie[T], bool) {
	i := b.indexOf(id)
	if i < 0 {
		return Serie[T]{}, false
	}
	return b.series[i].clone(), true
}

func (b *Buffer[T]) AddSerie(id, color string) error {
	if b.indexOf(id) >= 0 {
		return &DuplicateSeriesError{ID: id}
	}
	b.series = append(b.series, Serie[T]{
		ID:    id,
		Color: color,
	})
	if b.observer != nil {
		b.observer.Resized(id, 0)
	}
	return nil
}

func (b *Buffer[T]) RemoveSeries(ids ...string) {
	if len(ids) == 0 {
		return
	}
	var (
		set  = mapset.NewThreadUnsafeSet(ids...)
		keep = b.series[:0]
	)
	for _, s := range b.series {
		if set.Contains(s.ID) {
			if b.observer != nil {
				b.observer.Removed(s.ID)
			}
			continue
		}
		keep = append(keep, s)
	}
	for i := len(keep); i < len(b.series); i++ {
		b.series[i] = Serie[T]{}
	}
	b.series = keep
}

// Merge appends the given points to their series. Ids unknown to the buffer
// are ignored.
//
// When appending would bring any serie over capacity, all series slide: each
// one is trimmed from the front to the capacity, then every serie loses its
// points older than the first point of the serie with the most recent last
// point. The realignment applies to all series, even those that received no
// point or stayed under capacity.
func (b *Buffer[T]) Merge(points map[string][]Point[T, float64]) Update[T] {
	var u Update[T]
	if !b.wouldOverflow(points) {
		for i := range b.series {
			s := &b.series[i]
			s.Points = append(s.Points, points[s.ID]...)
		}
		u.Series = b.Series()
	} else {
		u.Slide = true
		u.Series = b.Series()
		for i := range b.series {
			incoming := points[b.series[i].ID]
			b.series[i].Points = append(b.series[i].Points, incoming...)
			u.Series[i].Points = append(u.Series[i].Points, incoming...)
		}
		u.Evicted = b.trim() + b.align()
		b.logger.WithFields(log.Fields{
			"capacity": b.capacity,
			"evicted":  u.Evicted,
		}).Debug("series slide")
	}
	b.notify(u)
	return u
}

func (b *Buffer[T]) wouldOverflow(points map[string][]Point[T, float64]) bool {
	if b.capacity <= 0 {
		return false
	}
	for _, s := range b.series {
		if len(s.Points)+len(points[s.ID]) > b.capacity {
			return true
		}
	}
	return false
}

func (b *Buffer[T]) trim() int {
	var evicted int
	for i := range b.series {
		s := &b.series[i]
		evicted += s.dropFront(len(s.Points) - b.capacity)
	}
	return evicted
}

func (b *Buffer[T]) align() int {
	ref := b.reference()
	if ref < 0 {
		return 0
	}
	var (
		first   = b.series[ref].First().X
		evicted int
	)
	for i := range b.series {
		if i == ref {
			continue
		}
		var (
			s = &b.series[i]
			n int
		)
		for n < len(s.Points) && keyLess(s.Points[n].X, first) {
			n++
		}
		evicted += s.dropFront(n)
	}
	return evicted
}

// reference gives the index of the serie with the greatest last x-key. The
// first serie found keeps its place on ties.
func (b *Buffer[T]) reference() int {
	ref := -1
	for i, s := range b.series {
		if s.Empty() {
			continue
		}
		if ref < 0 || keyLess(b.series[ref].Last().X, s.Last().X) {
			ref = i
		}
	}
	return ref
}

func (b *Buffer[T]) notify(u Update[T]) {
	if b.observer == nil {
		return
	}
	b.observer.Merged(u.Slide, u.Evicted)
	for _, s := range b.series {
		b.observer.Resized(s.ID, len(s.Points))
	}
}

func (b *Buffer[T]) indexOf(id string) int {
	for i := range b.series {
		if b.series[i].ID == id {
			return i
		}
	}
	return -1
}

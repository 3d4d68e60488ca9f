package charts

import (
	"fmt"
	"math"
	"time"
)

type ScalerConstraint interface {
	~float64 | ~string | time.Time
}

type Domain[T ScalerConstraint] interface {
	Diff(T) float64
	Extend() float64
	Values(int) []T
	Merge(Domain[T]) (Domain[T], error)
}

type numberDomain struct {
	fst float64
	lst float64
}

func NumberDomain(f, t float64) Domain[float64] {
	return numberDomain{
		fst: f,
		lst: t,
	}
}

func (n numberDomain) Merge(other Domain[float64]) (Domain[float64], error) {
	d, ok := other.(numberDomain)
	if !ok {
		return nil, fmt.Errorf("domain can not be merged!")
	}
	x := n
	if n.fst > d.fst {
		x.fst = d.fst
	}
	if n.lst < d.lst {
		x.lst = d.lst
	}
	return x, nil
}

func (n numberDomain) Diff(v float64) float64 {
	return v - n.fst
}

func (n numberDomain) Extend() float64 {
	return n.lst - n.fst
}

func (n numberDomain) Values(c int) []float64 {
	if c <= 0 {
		return []float64{n.fst, n.lst}
	}
	var (
		all  = make([]float64, c)
		step = n.Extend() / float64(c)
	)
	for i := 0; i < c; i++ {
		all[i] = n.fst + float64(i)*step
	}
	all = append(all, n.lst)
	return all
}

func (n numberDomain) at(f float64) float64 {
	return n.fst + f
}

type timeDomain struct {
	fst time.Time
	lst time.Time
}

func TimeDomain(f, t time.Time) Domain[time.Time] {
	return timeDomain{
		fst: f,
		lst: t,
	}
}

func (t timeDomain) Merge(other Domain[time.Time]) (Domain[time.Time], error) {
	d, ok := other.(timeDomain)
	if !ok {
		return nil, fmt.Errorf("domain can not be merged!")
	}
	n := t
	if t.fst.After(d.fst) {
		n.fst = d.fst
	}
	if t.lst.Before(d.lst) {
		n.lst = d.lst
	}
	return n, nil
}

func (t timeDomain) Diff(v time.Time) float64 {
	diff := v.Sub(t.fst)
	return float64(diff)
}

func (t timeDomain) Extend() float64 {
	diff := t.lst.Sub(t.fst)
	return float64(diff)
}

func (t timeDomain) Values(c int) []time.Time {
	if c <= 0 {
		return []time.Time{t.fst, t.lst}
	}
	var (
		all  = make([]time.Time, c)
		step = t.Extend() / float64(c)
	)
	for i := 0; i < c; i++ {
		all[i] = t.fst.Add(time.Duration(float64(i) * step))
	}
	all = append(all, t.lst)
	return all
}

func (t timeDomain) at(f float64) time.Time {
	return t.fst.Add(time.Duration(f))
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return math.Max(r.F, r.T)
}

func (r Range) Min() float64 {
	return math.Min(r.F, r.T)
}

// Scaler maps values of a domain onto a pixel range and back.
type Scaler[T ScalerConstraint] interface {
	Scale(T) float64
	Invert(float64) T
	Space() float64
	Values(int) []T
	Max() float64
	Min() float64

	replace(Range) Scaler[T]
}

type numberScaler struct {
	Range
	numberDomain
}

func NumberScaler(dom Domain[float64], rg Range) Scaler[float64] {
	n, _ := dom.(numberDomain)
	return numberScaler{
		Range:        rg,
		numberDomain: n,
	}
}

func (n numberScaler) Scale(v float64) float64 {
	return n.F + n.Diff(v)*n.Space()
}

func (n numberScaler) Invert(px float64) float64 {
	s := n.Space()
	if s == 0 {
		return n.fst
	}
	return n.at((px - n.F) / s)
}

func (n numberScaler) Space() float64 {
	if n.Extend() == 0 {
		return 0
	}
	return n.Len() / n.Extend()
}

func (n numberScaler) replace(rg Range) Scaler[float64] {
	x := n
	x.Range = rg
	return x
}

type timeScaler struct {
	Range
	timeDomain
}

func TimeScaler(dom Domain[time.Time], rg Range) Scaler[time.Time] {
	t, _ := dom.(timeDomain)
	return timeScaler{
		Range:      rg,
		timeDomain: t,
	}
}

func (s timeScaler) Scale(v time.Time) float64 {
	return s.F + s.Diff(v)*s.Space()
}

func (s timeScaler) Invert(px float64) time.Time {
	sp := s.Space()
	if sp == 0 {
		return s.fst
	}
	return s.at((px - s.F) / sp)
}

func (s timeScaler) Space() float64 {
	if s.Extend() == 0 {
		return 0
	}
	return s.Len() / s.Extend()
}

func (s timeScaler) replace(rg Range) Scaler[time.Time] {
	x := s
	x.Range = rg
	return x
}

// ordinalPadding is the fraction of a band left empty between two bands.
const ordinalPadding = 0.1

type ordinalScaler[T Key] struct {
	Range
	Keys []T
}

// OrdinalScaler splits the range into one band per distinct key. Duplicated
// keys are merged, keeping the order of first occurrence.
func OrdinalScaler[T Key](keys []T, rg Range) Scaler[T] {
	return ordinalScaler[T]{
		Range: rg,
		Keys:  mergeKeys(nil, keys),
	}
}

func (s ordinalScaler[T]) Scale(v T) float64 {
	var x int
	for i := range s.Keys {
		if keyDiff(s.Keys[i], v) == 0 {
			x = i
			break
		}
	}
	return s.F + float64(x)*s.Space() + s.Offset()
}

func (s ordinalScaler[T]) Invert(px float64) T {
	var zero T
	if len(s.Keys) == 0 {
		return zero
	}
	x := int((px - s.F) / s.Space())
	if x < 0 {
		x = 0
	}
	if x >= len(s.Keys) {
		x = len(s.Keys) - 1
	}
	return s.Keys[x]
}

func (s ordinalScaler[T]) Space() float64 {
	if len(s.Keys) == 0 {
		return s.Len()
	}
	return s.Len() / float64(len(s.Keys))
}

// Band is the width of a band once its padding is removed.
func (s ordinalScaler[T]) Band() float64 {
	return s.Space() * (1 - ordinalPadding)
}

func (s ordinalScaler[T]) Offset() float64 {
	return s.Space() * ordinalPadding / 2
}

func (s ordinalScaler[T]) Values(c int) []T {
	if c > 0 && c < len(s.Keys) {
		return s.Keys[:c]
	}
	return s.Keys
}

func (s ordinalScaler[T]) replace(rg Range) Scaler[T] {
	x := s
	x.Range = rg
	x.Keys = make([]T, len(s.Keys))
	copy(x.Keys, s.Keys)
	return x
}

func mergeKeys[T Key](list, values []T) []T {
	var seen []T
	merge := func(values []T) {
		for _, v := range values {
			if containsKey(seen, v) {
				continue
			}
			seen = append(seen, v)
		}
	}
	merge(list)
	merge(values)
	return seen
}

func containsKey[T Key](list []T, v T) bool {
	for i := range list {
		if keyDiff(list[i], v) == 0 {
			return true
		}
	}
	return false
}

// Headroom is the share of the greatest value added on top of the y domain.
const Headroom = 0.1

// keyScaler builds the scaler of the x axis from the series.
func keyScaler[T Key](kind ScaleKind, series []Serie[T], rg Range) (Scaler[T], error) {
	if kind == ScaleOrdinal {
		var keys []T
		for _, s := range series {
			for _, pt := range s.Points {
				keys = append(keys, pt.X)
			}
		}
		return OrdinalScaler(keys, rg), nil
	}
	var zero T
	switch any(zero).(type) {
	case float64:
		if kind != ScaleLinear {
			break
		}
		dom, err := mergeDomains(series, func(s Serie[T]) Domain[float64] {
			return NumberDomain(any(s.First().X).(float64), any(s.Last().X).(float64))
		})
		if err != nil {
			return nil, err
		}
		if dom == nil {
			dom = NumberDomain(0, 1)
		}
		return any(NumberScaler(dom, rg)).(Scaler[T]), nil
	case time.Time:
		if kind != ScaleTime {
			break
		}
		dom, err := mergeDomains(series, func(s Serie[T]) Domain[time.Time] {
			return TimeDomain(any(s.First().X).(time.Time), any(s.Last().X).(time.Time))
		})
		if err != nil {
			return nil, err
		}
		if dom == nil {
			now := time.Now()
			dom = TimeDomain(now, now)
		}
		return any(TimeScaler(dom, rg)).(Scaler[T]), nil
	}
	return nil, &UnsupportedAxisTypeError{Kind: kind}
}

// mergeDomains merges the domains spanned by the non empty series. It
// returns nil when all series are empty.
func mergeDomains[K Key, T ScalerConstraint](series []Serie[K], domain func(Serie[K]) Domain[T]) (Domain[T], error) {
	var dom Domain[T]
	for _, s := range series {
		if s.Empty() {
			continue
		}
		d := domain(s)
		if dom == nil {
			dom = d
			continue
		}
		var err error
		if dom, err = dom.Merge(d); err != nil {
			return nil, err
		}
	}
	return dom, nil
}

// valueScaler builds the scaler of the y axis. The greatest value gets some
// headroom.
func valueScaler[T Key](kind ScaleKind, series []Serie[T], rg Range) (Scaler[float64], error) {
	if kind != ScaleLinear {
		return nil, &UnsupportedAxisTypeError{Kind: kind}
	}
	dom := NumberDomain(0, 1)
	if ext, ok := SeriesExtent(series); ok {
		dom = NumberDomain(ext.ValueRange())
	}
	return NumberScaler(dom, rg), nil
}

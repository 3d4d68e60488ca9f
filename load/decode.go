package load

import (
	"fmt"
	"math"
	"strconv"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	charts "github.com/midbel/livecharts"
	"github.com/pkg/errors"
)

// Decoder turns records into points of type T.
type Decoder[T charts.Key] struct {
	X Selector
	Y Selector
	// Serie names the field giving the serie of a record.
	Serie string
	// Layout parses time keys given as strings; RFC3339 when empty.
	Layout string
}

func NewDecoder[T charts.Key](opts charts.Options) (Decoder[T], error) {
	var (
		dec Decoder[T]
		err error
	)
	if dec.X, err = NewSelector(opts.X.Key); err != nil {
		return dec, err
	}
	if dec.Y, err = NewSelector(opts.Y.Key); err != nil {
		return dec, err
	}
	dec.Layout = opts.X.Format
	return dec, nil
}

// Key converts a raw value, as found in a record or a query, to an x-key.
func (d Decoder[T]) Key(v any) (T, error) {
	return toKey[T](v, d.Layout)
}

func (d Decoder[T]) Point(rec Record) (charts.Point[T, float64], error) {
	var pt charts.Point[T, float64]
	x, err := d.X.Select(rec)
	if err != nil {
		return pt, err
	}
	if pt.X, err = toKey[T](x, d.Layout); err != nil {
		return pt, err
	}
	y, err := d.Y.Select(rec)
	if err != nil {
		return pt, err
	}
	if y == nil {
		pt.Y = math.NaN()
		return pt, nil
	}
	pt.Y, err = toFloat(y)
	return pt, err
}

func (d Decoder[T]) Points(list []Record) ([]charts.Point[T, float64], error) {
	points := make([]charts.Point[T, float64], 0, len(list))
	for i, rec := range list {
		pt, err := d.Point(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "record #%d", i+1)
		}
		points = append(points, pt)
	}
	return points, nil
}

// Group decodes records and splits them by serie. Records without serie
// field go to fallback. Ids are returned in order of first appearance.
func (d Decoder[T]) Group(list []Record, fallback string) ([]string, map[string][]charts.Point[T, float64], error) {
	var (
		ids    []string
		seen   = mapset.NewThreadUnsafeSet[string]()
		groups = make(map[string][]charts.Point[T, float64])
	)
	for i, rec := range list {
		pt, err := d.Point(rec)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "record #%d", i+1)
		}
		id := fallback
		if v, ok := rec[d.Serie]; ok && d.Serie != "" && v != nil {
			id = fmt.Sprint(v)
		}
		if seen.Add(id) {
			ids = append(ids, id)
		}
		groups[id] = append(groups[id], pt)
	}
	return ids, groups, nil
}

func toKey[T charts.Key](v any, layout string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case float64:
		f, err := toFloat(v)
		return any(f).(T), err
	case time.Time:
		t, err := toTime(v, layout)
		return any(t).(T), err
	default:
		return zero, errors.Errorf("%T: unsupported key type", zero)
	}
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, errors.Errorf("%s: not a number", x)
		}
		return f, nil
	default:
		return 0, errors.Errorf("%v: not a number (%T)", v, v)
	}
}

func toTime(v any, layout string) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		if layout == "" {
			layout = time.RFC3339
		}
		t, err := time.Parse(layout, x)
		if err != nil {
			return t, errors.Wrapf(err, "%s: not a time", x)
		}
		return t, nil
	default:
		f, err := toFloat(v)
		if err != nil {
			return time.Time{}, err
		}
		sec, frac := math.Modf(f)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
	}
}

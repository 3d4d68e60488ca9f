package load

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	charts "github.com/midbel/livecharts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	list, err := ReadFile(filepath.Join("testdata", "latency.csv"))
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "alpha", list[0]["host"])
	assert.Equal(t, 0.25, list[0]["value"])
	assert.Equal(t, "", list[3]["value"])

	list, err = ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReadJSON(t *testing.T) {
	list, err := ReadJSON(strings.NewReader(`{"x": 1, "y": 2}`))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1.0, list[0]["x"])

	list, err = ReadJSON(strings.NewReader(`[{"x": 1, "y": 2}, {"x": 2, "y": 4}]`))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = ReadJSON(strings.NewReader("  "))
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = ReadJSON(strings.NewReader("[1, 2"))
	assert.Error(t, err)
}

func TestSelector(t *testing.T) {
	rec := Record{"value": 0.5, "count": 4.0}

	sel, err := NewSelector("value")
	require.NoError(t, err)
	v, err := sel.Select(rec)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	sel, err = NewSelector("value * count + 1")
	require.NoError(t, err)
	v, err = sel.Select(rec)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	sel, err = NewSelector("missing")
	require.NoError(t, err)
	_, err = sel.Select(rec)
	assert.Error(t, err)

	_, err = NewSelector("value *")
	assert.Error(t, err)
}

func TestDecoderNumber(t *testing.T) {
	opts := charts.DefaultOptions()
	opts.X.Key = "x"
	opts.Y.Key = "y * 10"

	dec, err := NewDecoder[float64](opts)
	require.NoError(t, err)

	points, err := dec.Points([]Record{
		{"x": 1.0, "y": 1.0},
		{"x": "2", "y": 2.0},
	})
	require.NoError(t, err)
	assert.Equal(t, []charts.Point[float64, float64]{
		charts.NumberPoint(1, 10),
		charts.NumberPoint(2, 20),
	}, points)

	_, err = dec.Points([]Record{{"x": "abc", "y": 1.0}})
	assert.Error(t, err)
}

func TestDecoderGroup(t *testing.T) {
	opts := charts.DefaultOptions()
	opts.X.Key = "when"
	opts.Y.Key = "value"

	list, err := ReadFile(filepath.Join("testdata", "latency.csv"))
	require.NoError(t, err)

	dec, err := NewDecoder[time.Time](opts)
	require.NoError(t, err)
	dec.Serie = "host"

	_, _, err = dec.Group(list, "default")
	require.Error(t, err)

	ids, groups, err := dec.Group(list[:3], "default")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, ids)
	require.Len(t, groups["alpha"], 2)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 20, 0, time.UTC), groups["alpha"][1].X)
	assert.Equal(t, 0.75, groups["alpha"][1].Y)

	dec.Serie = ""
	ids, groups, err = dec.Group(list[:3], "default")
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, ids)
	assert.Len(t, groups["default"], 3)
}

func TestToTime(t *testing.T) {
	got, err := toTime(1709294400.5, "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 5e8, time.UTC), got)

	got, err = toTime("01/03/2024", "02/01/2006")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = toTime("yesterday", "")
	assert.Error(t, err)
}

func TestDecoderNull(t *testing.T) {
	opts := charts.DefaultOptions()
	opts.X.Key = "x"
	opts.Y.Key = "y"
	dec, err := NewDecoder[float64](opts)
	require.NoError(t, err)

	pt, err := dec.Point(Record{"x": 1.0, "y": nil})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(pt.Y))
}

func TestLimit(t *testing.T) {
	list := []Record{{"i": 0.0}, {"i": 1.0}, {"i": 2.0}, {"i": 3.0}}
	assert.Len(t, Limit{Offset: 1, Count: 2}.Apply(list), 2)
	assert.Equal(t, 3.0, Limit{Offset: -1}.Apply(list)[0]["i"])
	assert.Empty(t, Limit{Offset: 10}.Apply(list))
	assert.Len(t, Limit{}.Apply(list), 4)
}

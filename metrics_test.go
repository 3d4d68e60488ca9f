package charts

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	var (
		col = NewCollector("livechart")
		reg = prometheus.NewPedanticRegistry()
		buf = NewBuffer[float64](2, WithObserver(col))
	)
	require.NoError(t, reg.Register(col))

	require.NoError(t, buf.AddSerie("a", ""))
	require.NoError(t, buf.AddSerie("b", ""))
	buf.Merge(map[string][]Point[float64, float64]{
		"a": points(1, 2),
	})
	buf.Merge(map[string][]Point[float64, float64]{
		"a": points(3),
		"b": points(0),
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(col.merges))
	assert.Equal(t, 1.0, testutil.ToFloat64(col.slides))
	assert.Equal(t, 2.0, testutil.ToFloat64(col.evicted))
	assert.Equal(t, 2.0, testutil.ToFloat64(col.points.WithLabelValues("a")))
	assert.Equal(t, 0.0, testutil.ToFloat64(col.points.WithLabelValues("b")))

	buf.RemoveSeries("a")
	count, err := testutil.GatherAndCount(reg, "livechart_serie_points")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

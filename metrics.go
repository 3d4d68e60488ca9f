package charts

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes the activity of a Buffer as Prometheus metrics. It is
// meant to be given to a Buffer or a Chart with WithObserver.
type Collector struct {
	merges  prometheus.Counter
	slides  prometheus.Counter
	evicted prometheus.Counter
	points  *prometheus.GaugeVec
}

func NewCollector(namespace string) *Collector {
	return &Collector{
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merges_total",
			Help:      "Number of merges applied to the series",
		}),
		slides: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slides_total",
			Help:      "Number of merges that went over capacity",
		}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evicted_points_total",
			Help:      "Number of points dropped from the series",
		}),
		points: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "serie_points",
			Help:      "Number of points held by a serie",
		}, []string{"serie"}),
	}
}

func (c *Collector) Merged(slide bool, evicted int) {
	c.merges.Inc()
	if slide {
		c.slides.Inc()
	}
	c.evicted.Add(float64(evicted))
}

func (c *Collector) Resized(id string, length int) {
	c.points.WithLabelValues(id).Set(float64(length))
}

func (c *Collector) Removed(id string) {
	c.points.DeleteLabelValues(id)
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.merges.Describe(ch)
	c.slides.Describe(ch)
	c.evicted.Describe(ch)
	c.points.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.merges.Collect(ch)
	c.slides.Collect(ch)
	c.evicted.Collect(ch)
	c.points.Collect(ch)
}

//go:build !tinygo

package qliic

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics for one thing, kept in a registry private to the server
type metrics struct {
	thinger  Thinger
	registry *prometheus.Registry
	msgs     *prometheus.CounterVec
	sockets  prometheus.Gauge
	values   *prometheus.GaugeVec
}

func newMetrics(thinger Thinger) *metrics {
	labels := prometheus.Labels{
		"id":    thinger.Id(),
		"model": thinger.Model(),
	}
	m := &metrics{
		thinger:  thinger,
		registry: prometheus.NewRegistry(),
		msgs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "qliic_msgs_total",
			Help:        "Messages handled, by path.",
			ConstLabels: labels,
		}, []string{"path"}),
		sockets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "qliic_sockets",
			Help:        "Sockets plugged into the bus.",
			ConstLabels: labels,
		}),
		values: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "qliic_value",
			Help:        "Last reported thing state.",
			ConstLabels: labels,
		}, []string{"field"}),
	}
	m.registry.MustRegister(m.msgs, m.sockets, m.values)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// observe counts a handled msg.  On updates, the thing's gauges are refreshed.
func (m *metrics) observe(path string) {
	if path == "" {
		path = "unknown"
	}
	m.msgs.With(prometheus.Labels{"path": path}).Inc()
	if path != "update" {
		return
	}
	gauger, ok := m.thinger.(Gauger)
	if !ok {
		return
	}
	m.thinger.Lock()
	gauges := gauger.Gauges()
	m.thinger.Unlock()
	for field, value := range gauges {
		m.values.With(prometheus.Labels{"field": field}).Set(value)
	}
}

//go:build !minimal

package expand

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of an expander. A nil *Metrics
// records nothing.
type Metrics struct {
	files       *prometheus.CounterVec
	invocations *prometheus.CounterVec
	generated   *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics creates the expansion collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		files: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synx_expand_files_total",
				Help: "Total number of expansion runs by result",
			},
			[]string{"result"},
		),

		invocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synx_expand_transformer_invocations_total",
				Help: "Total number of transformer invocations",
			},
			[]string{"transformer", "result"},
		),

		generated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "synx_expand_generated_decls_total",
				Help: "Total number of declarations generated by transformers",
			},
			[]string{"transformer"},
		),

		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "synx_expand_duration_seconds",
				Help:    "Duration of expansion runs in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15), // 100µs to 1.6s
			},
		),
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *Metrics) recordRun(err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.files.WithLabelValues(resultLabel(err)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) recordInvocation(transformer string, generated int, err error) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(transformer, resultLabel(err)).Inc()
	if generated > 0 {
		m.generated.WithLabelValues(transformer).Add(float64(generated))
	}
}

package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/samuelfneumann/tabular/agent"
)

// Prometheus exports episode metrics as Prometheus metrics. Metrics
// are labelled by run so that several runs may share one registry.
//
// Prometheus does not persist anything, Save is a no-op.
type Prometheus struct {
	episodes *prometheus.CounterVec
	returns  *prometheus.GaugeVec
	steps    *prometheus.HistogramVec
	epsilon  *prometheus.GaugeVec
	ends     *prometheus.CounterVec
	run      string
}

// NewPrometheus registers the episode metrics of run with reg
func NewPrometheus(reg prometheus.Registerer, run string) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		episodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tabular_episodes_total",
			Help: "Total episodes completed",
		}, []string{"run"}),
		returns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tabular_episode_return",
			Help: "Return of the most recent episode",
		}, []string{"run"}),
		steps: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tabular_episode_steps",
			Help:    "Number of steps taken per episode",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 to 2048
		}, []string{"run"}),
		epsilon: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tabular_epsilon",
			Help: "Exploration probability of the most recent episode",
		}, []string{"run"}),
		ends: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tabular_episode_ends_total",
			Help: "Total episodes completed by the way they ended",
		}, []string{"run", "end"}),
		run: run,
	}
}

// Track updates the metrics with a finished episode
func (p *Prometheus) Track(s agent.Summary) {
	p.episodes.WithLabelValues(p.run).Inc()
	p.returns.WithLabelValues(p.run).Set(s.Return)
	p.steps.WithLabelValues(p.run).Observe(float64(s.Steps))
	p.epsilon.WithLabelValues(p.run).Set(s.Epsilon)
	p.ends.WithLabelValues(p.run, s.End.String()).Inc()
}

func (p *Prometheus) Save() error {
	return nil
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "clusters"

type Prometheus struct {
	Samples    prometheus.Counter
	Runs       *prometheus.CounterVec
	Sizes      *prometheus.GaugeVec
	Inertia    prometheus.Gauge
	Iterations prometheus.Gauge
	Stages     *prometheus.GaugeVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "generated samples",
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "pipeline runs by outcome",
		}, []string{"status"}),
		Sizes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_size",
			Help:      "rows assigned to each label",
		}, []string{"cluster"}),
		Inertia: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inertia",
			Help:      "within-cluster sum of squares of the fitted model",
		}),
		Iterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fit_iterations",
			Help:      "iterations of the retained k-means run",
		}),
		Stages: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "duration of each pipeline stage",
		}, []string{"stage"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Samples, p.Runs, p.Sizes, p.Inertia, p.Iterations, p.Stages}
}

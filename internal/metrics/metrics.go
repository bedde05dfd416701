package metrics

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/drakos74/noisy-clusters/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the run metrics in their own registry.
type Metrics struct {
	mutex      *sync.RWMutex
	registry   *prometheus.Registry
	prometheus Prometheus
}

// New creates a new set of metrics registered on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		mutex:      new(sync.RWMutex),
		registry:   prometheus.NewRegistry(),
		prometheus: NewPrometheusMetrics(),
	}
	m.registry.MustRegister(m.prometheus.collectors()...)
	return m
}

func (m *Metrics) Samples(n int) {
	m.prometheus.Samples.Add(float64(n))
}

func (m *Metrics) Run(status string) {
	m.prometheus.Runs.WithLabelValues(status).Inc()
}

func (m *Metrics) Fit(inertia float64, iterations int, sizes map[int]int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prometheus.Inertia.Set(inertia)
	m.prometheus.Iterations.Set(float64(iterations))
	m.prometheus.Sizes.Reset()
	for label, size := range sizes {
		m.prometheus.Sizes.WithLabelValues(strconv.Itoa(label)).Set(float64(size))
	}
}

// Stage records the duration of the given stage since start.
func (m *Metrics) Stage(name string, start time.Time) {
	m.prometheus.Stages.WithLabelValues(name).Set(time.Since(start).Seconds())
}

// WriteTo writes the metrics in the text exposition format to the given path.
func (m *Metrics) WriteTo(path string) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics to '%s': %v: %w", path, err, storage.IOErr)
	}
	return nil
}

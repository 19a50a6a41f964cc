package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(
		Observer.prometheus.Extractions,
		Observer.prometheus.Trainings,
		Observer.prometheus.Predictions,
		Observer.prometheus.Epochs,
	)
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

// Extraction counts one feature extraction with the given result label.
func (m *Metrics) Extraction(result string) {
	m.prometheus.Extractions.WithLabelValues(result).Inc()
}

// Training counts one training run completion with the given status.
func (m *Metrics) Training(status string) {
	m.prometheus.Trainings.WithLabelValues(status).Inc()
}

// Prediction counts one prediction with the given result label.
func (m *Metrics) Prediction(result string) {
	m.prometheus.Predictions.WithLabelValues(result).Inc()
}

// Epoch counts one completed training epoch.
func (m *Metrics) Epoch() {
	m.prometheus.Epochs.Inc()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Extractions *prometheus.CounterVec
	Trainings   *prometheus.CounterVec
	Predictions *prometheus.CounterVec
	Epochs      prometheus.Counter
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "virality",
				Name:      "extractions",
			}, []string{"result"}),
		Trainings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "virality",
				Name:      "trainings",
			}, []string{"status"}),
		Predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "virality",
				Name:      "predictions",
			}, []string{"result"}),
		Epochs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "virality",
				Name:      "epochs",
			}),
	}
}

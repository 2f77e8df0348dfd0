package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the document-operation counters. A nil *Metrics is valid
// and records nothing, which keeps unit tests free of registry setup.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics creates and registers the service metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "document_operations_total",
				Help: "Total number of document operations by outcome.",
			},
			[]string{"operation", "status"},
		),
	}
	if err := reg.Register(m.operations); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operations.WithLabelValues(operation, status).Inc()
}

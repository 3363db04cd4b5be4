package note

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/notes-app/internal/domain"
)

// Operation result labels.
const (
	resultOK       = "ok"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"
	resultError    = "error"
)

// Metrics counts note operations by operation and result.
type Metrics struct {
	operations *prometheus.CounterVec
}

// NewMetrics creates unregistered note operation metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notes",
			Name:      "operations_total",
			Help:      "Note service operations by operation and result.",
		}, []string{"op", "result"}),
	}
}

// RegisterCollectors registers the metrics with reg.
func (m *Metrics) RegisterCollectors(reg prometheus.Registerer) error {
	return reg.Register(m.operations)
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, domain.ErrValidation):
		return resultInvalid
	case errors.Is(err, domain.ErrNotFound):
		return resultNotFound
	default:
		return resultError
	}
}

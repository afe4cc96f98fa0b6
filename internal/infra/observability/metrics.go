package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the ledger.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	operationsTotal *prometheus.CounterVec
	clientsGauge    prometheus.Gauge
	accountsGauge   prometheus.Gauge
}

// OpsSnapshot is a cheap aggregate view of operation counters, served by
// the GET /v1/metrics/ops endpoint.
type OpsSnapshot struct {
	Deposits          int64   `json:"deposits"`
	Withdrawals       int64   `json:"withdrawals"`
	RejectedDeposits  int64   `json:"rejected_deposits"`
	RejectedWithdraws int64   `json:"rejected_withdrawals"`
	ErrorRate         float64 `json:"error_rate"`
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_request_duration_seconds",
				Help:    "Duration of ledger operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total ledger operations by outcome.",
			},
			[]string{"operation", "status"},
		),
		clientsGauge: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_clients",
				Help: "Registered clients.",
			},
		),
		accountsGauge: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_accounts",
				Help: "Open accounts.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrOperation increments the operation counter with a status label.
func (m *Metrics) IncrOperation(operation, status string) {
	m.operationsTotal.WithLabelValues(operation, status).Inc()
}

// SetRegistrySizes updates the client and account gauges.
func (m *Metrics) SetRegistrySizes(clients, accounts int) {
	m.clientsGauge.Set(float64(clients))
	m.accountsGauge.Set(float64(accounts))
}

// GetOpsSnapshot reads the current operation counters.
func (m *Metrics) GetOpsSnapshot() *OpsSnapshot {
	deposits := getCounterValue(m.operationsTotal, "deposit", "success")
	withdrawals := getCounterValue(m.operationsTotal, "withdraw", "success")
	rejectedDep := getCounterValue(m.operationsTotal, "deposit", "error")
	rejectedWd := getCounterValue(m.operationsTotal, "withdraw", "error")

	total := deposits + withdrawals + rejectedDep + rejectedWd
	errorRate := float64(0)
	if total > 0 {
		errorRate = (rejectedDep + rejectedWd) / total
	}

	return &OpsSnapshot{
		Deposits:          int64(deposits),
		Withdrawals:       int64(withdrawals),
		RejectedDeposits:  int64(rejectedDep),
		RejectedWithdraws: int64(rejectedWd),
		ErrorRate:         errorRate,
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for
// the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. A single instance is
// created in main and injected where needed.
type Metrics struct {
	CheckCycles       prometheus.Counter
	UsersChecked      prometheus.Counter
	RemindersSent     *prometheus.CounterVec
	RemindersSkipped  *prometheus.CounterVec
	RemindersFailed   *prometheus.CounterVec
	CheckDuration     prometheus.Histogram
	SnapshotDuration  prometheus.Histogram
	RequestDurationMs *prometheus.HistogramVec
}

// New creates all metrics and registers them with the default registerer.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics against the given registerer. Tests pass a
// fresh registry so repeated construction does not collide.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CheckCycles: factory.NewCounter(prometheus.CounterOpts{
			Name: "rescueops_check_cycles_total",
			Help: "Total number of certification check cycles run",
		}),
		UsersChecked: factory.NewCounter(prometheus.CounterOpts{
			Name: "rescueops_users_checked_total",
			Help: "Total number of member compliance evaluations performed",
		}),
		RemindersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rescueops_reminders_sent_total",
			Help: "Certification reminders dispatched, by reminder type",
		}, []string{"type"}),
		RemindersSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rescueops_reminders_skipped_total",
			Help: "Reminders skipped because one was already on record, by type",
		}, []string{"type"}),
		RemindersFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rescueops_reminders_failed_total",
			Help: "Reminder dispatch failures, by reminder type",
		}, []string{"type"}),
		CheckDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rescueops_check_cycle_duration_seconds",
			Help:    "Duration of full certification check cycles",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		SnapshotDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rescueops_snapshot_duration_seconds",
			Help:    "Duration of compliance snapshot generation",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RequestDurationMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rescueops_http_request_duration_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"method", "path"}),
	}
}

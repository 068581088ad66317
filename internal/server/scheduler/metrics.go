package scheduler

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the scheduler's Prometheus collectors.
type Metrics struct {
	PassRuns      *prometheus.CounterVec
	PassDuration  *prometheus.HistogramVec
	RemindersSent prometheus.Counter
	ReminderFails prometheus.Counter
	Materialized  prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PassRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasktracker",
			Subsystem: "scheduler",
			Name:      "pass_runs_total",
			Help:      "Scheduler passes by pass name and outcome.",
		}, []string{"pass", "outcome"}),
		PassDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tasktracker",
			Subsystem: "scheduler",
			Name:      "pass_duration_seconds",
			Help:      "Wall time of scheduler passes.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"pass"}),
		RemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tasktracker",
			Subsystem: "scheduler",
			Name:      "reminders_sent_total",
			Help:      "Deadline reminders delivered.",
		}),
		ReminderFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tasktracker",
			Subsystem: "scheduler",
			Name:      "reminder_failures_total",
			Help:      "Deadline reminders that could not be delivered or recorded.",
		}),
		Materialized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tasktracker",
			Subsystem: "scheduler",
			Name:      "recurring_tasks_created_total",
			Help:      "Task occurrences created from recurrence templates.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.PassRuns, m.PassDuration, m.RemindersSent, m.ReminderFails, m.Materialized)
	}
	return m
}

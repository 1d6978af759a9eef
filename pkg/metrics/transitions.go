package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TransitionMetrics records outcomes of order lifecycle transitions.
type TransitionMetrics struct {
	duration *prometheus.HistogramVec
	accepted *prometheus.CounterVec
	rejected *prometheus.CounterVec
	conflict *prometheus.CounterVec
}

// NewTransitionMetrics registers the transition metrics on the provided registerer.
func NewTransitionMetrics(reg prometheus.Registerer) *TransitionMetrics {
	if reg == nil {
		return &TransitionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_transition_duration_seconds",
		Help:    "Duration of order transition handling in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	accepted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transition_accepted",
		Help: "Accepted order transitions.",
	}, []string{"action"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transition_rejected",
		Help: "Rejected order transitions.",
	}, []string{"action", "reason"})
	conflict := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transition_conflict",
		Help: "Transitions lost to a concurrent status change.",
	}, []string{"action"})
	reg.MustRegister(duration, accepted, rejected, conflict)
	return &TransitionMetrics{
		duration: duration,
		accepted: accepted,
		rejected: rejected,
		conflict: conflict,
	}
}

// ObserveDuration records the handling duration for the named action.
func (t *TransitionMetrics) ObserveDuration(action string, duration time.Duration) {
	if t == nil || t.duration == nil {
		return
	}
	t.duration.WithLabelValues(normalizeLabel(action)).Observe(duration.Seconds())
}

// IncAccepted increments the accepted counter for the named action.
func (t *TransitionMetrics) IncAccepted(action string) {
	if t == nil || t.accepted == nil {
		return
	}
	t.accepted.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncRejected increments the rejected counter for the named action and reason.
func (t *TransitionMetrics) IncRejected(action, reason string) {
	if t == nil || t.rejected == nil {
		return
	}
	t.rejected.WithLabelValues(normalizeLabel(action), normalizeLabel(reason)).Inc()
}

// IncConflict increments the conflict counter for the named action.
func (t *TransitionMetrics) IncConflict(action string) {
	if t == nil || t.conflict == nil {
		return
	}
	t.conflict.WithLabelValues(normalizeLabel(action)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

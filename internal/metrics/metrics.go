package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the settlement counters.
type Metrics struct {
	submissions          *prometheus.CounterVec
	fundings             *prometheus.CounterVec
	payouts              *prometheus.CounterVec
	verificationFailures *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reviewpool_submissions_total",
				Help: "Review submissions by result",
			},
			[]string{"result"},
		),
		fundings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reviewpool_fundings_total",
				Help: "Task fundings and renewals by result",
			},
			[]string{"kind", "result"},
		),
		payouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reviewpool_payouts_total",
				Help: "Payout lock and confirmation events by stage and result",
			},
			[]string{"stage", "result"},
		),
		verificationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reviewpool_verification_failures_total",
				Help: "Rejected payment references by reason",
			},
			[]string{"reason"},
		),
	}

	reg.MustRegister(m.submissions, m.fundings, m.payouts, m.verificationFailures)
	return m
}

// Nop returns metrics registered against a throwaway registry.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) Submission(result string) {
	m.submissions.WithLabelValues(result).Inc()
}

func (m *Metrics) Funding(kind, result string) {
	m.fundings.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) Payout(stage, result string) {
	m.payouts.WithLabelValues(stage, result).Inc()
}

func (m *Metrics) VerificationFailure(reason string) {
	m.verificationFailures.WithLabelValues(reason).Inc()
}

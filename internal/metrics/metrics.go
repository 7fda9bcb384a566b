package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application counters. A nil *Metrics is valid and
// records nothing, which keeps tests free of registry setup.
type Metrics struct {
	logins           *prometheus.CounterVec
	projectMutations *prometheus.CounterVec
	contacts         *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "login_attempts_total",
			Help:      "Admin login attempts by outcome.",
		}, []string{"outcome"}),
		projectMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "project_mutations_total",
			Help:      "Project writes by kind and outcome.",
		}, []string{"kind", "outcome"}),
		contacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.logins, m.projectMutations, m.contacts)
	return m
}

func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ProjectMutation(kind, outcome string) {
	if m == nil {
		return
	}
	m.projectMutations.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) Contact(outcome string) {
	if m == nil {
		return
	}
	m.contacts.WithLabelValues(outcome).Inc()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// AppMetrics exposes counters/histograms for page traffic and the
// platform's external collaborators.
type AppMetrics struct {
	pageViews       *prometheus.CounterVec
	externalCalls   *prometheus.CounterVec
	externalLatency *prometheus.HistogramVec
}

func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	m := &AppMetrics{
		pageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vaidya",
			Subsystem: "pages",
			Name:      "views_total",
			Help:      "Total page renders by page key",
		}, []string{"page"}),
		externalCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vaidya",
			Subsystem: "external",
			Name:      "calls_total",
			Help:      "Total calls to external collaborators",
		}, []string{"collaborator", "status"}),
		externalLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vaidya",
			Subsystem: "external",
			Name:      "call_latency_seconds",
			Help:      "Latency of external collaborator calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collaborator"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.pageViews, m.externalCalls, m.externalLatency)
	return m
}

func (m *AppMetrics) ObservePageView(page string) {
	if m == nil {
		return
	}
	m.pageViews.WithLabelValues(page).Inc()
}

func (m *AppMetrics) ObserveExternalCall(collaborator, status string) {
	if m == nil {
		return
	}
	m.externalCalls.WithLabelValues(collaborator, status).Inc()
}

func (m *AppMetrics) ObserveExternalLatency(collaborator string, seconds float64) {
	if m == nil {
		return
	}
	m.externalLatency.WithLabelValues(collaborator).Observe(seconds)
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestAppMetricsObserve(t *testing.T) {
	m := NewAppMetrics(prometheus.NewRegistry())
	m.ObservePageView("home")
	m.ObserveExternalCall("maps", "ok")
	m.ObserveExternalLatency("maps", 0.25)
}

func TestAppMetricsNilReceiver(t *testing.T) {
	var m *AppMetrics
	m.ObservePageView("home")
	m.ObserveExternalCall("gemini", "error")
	m.ObserveExternalLatency("gemini", 1.2)
}

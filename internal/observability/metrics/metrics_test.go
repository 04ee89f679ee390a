package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestIntakeMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)
	m.ObserveSubmission("accepted")
	m.ObserveDelivery("telegram", "delivered")
	m.ObserveDeliveryLatency("telegram", 0.25)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	sub, ok := byName["leadgate_intake_submissions_total"]
	if !ok {
		t.Fatal("expected submissions counter to be registered")
	}
	if got := sub.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Errorf("expected 1 submission observed, got %v", got)
	}

	if _, ok := byName["leadgate_intake_delivery_total"]; !ok {
		t.Fatal("expected delivery counter to be registered")
	}
	if _, ok := byName["leadgate_intake_delivery_latency_seconds"]; !ok {
		t.Fatal("expected delivery latency histogram to be registered")
	}
}

func TestIntakeMetricsNilSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveSubmission("accepted")
	m.ObserveDelivery("crm", "failed")
	m.ObserveDeliveryLatency("crm", 0.1)
}

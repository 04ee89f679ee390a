package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the lead intake pipeline.
type IntakeMetrics struct {
	submissionsTotal *prometheus.CounterVec
	deliveryTotal    *prometheus.CounterVec
	deliveryLatency  *prometheus.HistogramVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total inbound lead submissions by result",
		}, []string{"result"}),
		deliveryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadgate",
			Subsystem: "intake",
			Name:      "delivery_total",
			Help:      "Total channel delivery attempts by outcome",
		}, []string{"channel", "outcome"}),
		deliveryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadgate",
			Subsystem: "intake",
			Name:      "delivery_latency_seconds",
			Help:      "Latency of channel delivery attempts",
			Buckets:   prometheus.DefBuckets,
		}, []string{"channel"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.deliveryTotal, m.deliveryLatency)
	return m
}

func (m *IntakeMetrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

func (m *IntakeMetrics) ObserveDelivery(channel, outcome string) {
	if m == nil {
		return
	}
	m.deliveryTotal.WithLabelValues(channel, outcome).Inc()
}

func (m *IntakeMetrics) ObserveDeliveryLatency(channel string, seconds float64) {
	if m == nil {
		return
	}
	m.deliveryLatency.WithLabelValues(channel).Observe(seconds)
}

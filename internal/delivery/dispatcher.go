package delivery

import (
	"context"
	"sync"
	"time"

	"github.com/avenirlabs/leadgate/internal/intake"
	"github.com/avenirlabs/leadgate/internal/observability/metrics"
	"github.com/avenirlabs/leadgate/pkg/logging"
)

// Status tags the result of a single channel attempt.
type Status string

const (
	StatusDelivered Status = "delivered"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome records what happened on one channel. Detail carries diagnostics
// for failed attempts only.
type Outcome struct {
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Delivered reports whether the channel accepted the lead.
func (o Outcome) Delivered() bool { return o.Status == StatusDelivered }

// Channel is a single downstream delivery target for a lead.
// Implementations convert transport problems into errors; the dispatcher
// turns those into outcomes.
type Channel interface {
	Name() string
	Configured() bool
	Deliver(ctx context.Context, sub *intake.Submission, meta intake.Meta) error
}

// Result aggregates both channel outcomes. OK is true when at least one
// channel delivered.
type Result struct {
	OK       bool
	Telegram Outcome
	CRM      Outcome
}

// Dispatcher fans a normalized lead out to the Telegram relay and the CRM
// webhook. The channels are independent: one failing never prevents the
// other attempt, and neither attempt is retried.
type Dispatcher struct {
	relay   Channel
	crm     Channel
	timeout time.Duration
	metrics *metrics.IntakeMetrics
	logger  *logging.Logger
}

// NewDispatcher creates a dispatcher. timeout bounds each channel attempt;
// zero disables the bound.
func NewDispatcher(relay, crm Channel, timeout time.Duration, m *metrics.IntakeMetrics, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		relay:   relay,
		crm:     crm,
		timeout: timeout,
		metrics: m,
		logger:  logger,
	}
}

// Dispatch attempts both channels concurrently and waits for both, so total
// latency is bounded by the slower channel rather than their sum.
func (d *Dispatcher) Dispatch(ctx context.Context, sub *intake.Submission, meta intake.Meta) Result {
	var wg sync.WaitGroup
	var tg, crm Outcome

	wg.Add(2)
	go func() {
		defer wg.Done()
		tg = d.attempt(ctx, d.relay, sub, meta)
	}()
	go func() {
		defer wg.Done()
		crm = d.attempt(ctx, d.crm, sub, meta)
	}()
	wg.Wait()

	return Result{
		OK:       tg.Delivered() || crm.Delivered(),
		Telegram: tg,
		CRM:      crm,
	}
}

func (d *Dispatcher) attempt(ctx context.Context, ch Channel, sub *intake.Submission, meta intake.Meta) Outcome {
	if ch == nil || !ch.Configured() {
		name := "channel"
		if ch != nil {
			name = ch.Name()
		}
		d.metrics.ObserveDelivery(name, string(StatusSkipped))
		return Outcome{Status: StatusSkipped}
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	err := ch.Deliver(ctx, sub, meta)
	d.metrics.ObserveDeliveryLatency(ch.Name(), time.Since(start).Seconds())

	if err != nil {
		d.logger.Error("channel delivery failed", "channel", ch.Name(), "error", err, "origin", meta.Origin)
		d.metrics.ObserveDelivery(ch.Name(), string(StatusFailed))
		return Outcome{Status: StatusFailed, Detail: err.Error()}
	}

	d.metrics.ObserveDelivery(ch.Name(), string(StatusDelivered))
	return Outcome{Status: StatusDelivered}
}

package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/avenirlabs/leadgate/internal/intake"
	"github.com/avenirlabs/leadgate/pkg/logging"
)

var crmTracer = otel.Tracer("leadgate.internal.delivery.crm")

// CRMChannel posts the structured submission to a CRM webhook endpoint.
type CRMChannel struct {
	url        string
	token      string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewCRMChannel builds the webhook channel. An empty URL leaves the channel
// unconfigured. token, when set, is attached as a bearer credential.
func NewCRMChannel(url, token string, logger *logging.Logger) *CRMChannel {
	if logger == nil {
		logger = logging.Default()
	}
	return &CRMChannel{
		url:   url,
		token: token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (c *CRMChannel) Name() string { return "crm" }

func (c *CRMChannel) Configured() bool { return c.url != "" }

type crmPayload struct {
	*intake.Submission
	Origin     string    `json:"origin"`
	UserAgent  string    `json:"user_agent"`
	ReceivedAt time.Time `json:"received_at"`
}

// Deliver posts the submission plus derived metadata as JSON.
func (c *CRMChannel) Deliver(ctx context.Context, sub *intake.Submission, meta intake.Meta) error {
	ctx, span := crmTracer.Start(ctx, "delivery.crm.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("lead.source", sub.Source),
		attribute.String("lead.origin", meta.Origin),
	)

	payload, err := json.Marshal(crmPayload{
		Submission: sub,
		Origin:     meta.Origin,
		UserAgent:  meta.UserAgent,
		ReceivedAt: meta.ReceivedAt,
	})
	if err != nil {
		return fmt.Errorf("delivery: marshal crm payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("delivery: build crm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delivery: crm request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("delivery: crm status %d: %s", resp.StatusCode, bodySnippet(body))
		span.RecordError(err)
		return err
	}

	c.logger.Info("lead posted to crm", "origin", meta.Origin)
	return nil
}

package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/avenirlabs/leadgate/internal/intake"
	"github.com/avenirlabs/leadgate/pkg/logging"
)

var telegramTracer = otel.Tracer("leadgate.internal.delivery.telegram")

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramChannel relays lead summaries to a Telegram chat via the Bot API.
type TelegramChannel struct {
	token      string
	chatID     string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewTelegramChannel builds the relay channel. An empty token or chat ID
// leaves the channel unconfigured, which is not an error.
func NewTelegramChannel(token, chatID, baseURL string, logger *logging.Logger) *TelegramChannel {
	if logger == nil {
		logger = logging.Default()
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultTelegramBaseURL
	}
	return &TelegramChannel{
		token:   token,
		chatID:  chatID,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (c *TelegramChannel) Name() string { return "telegram" }

func (c *TelegramChannel) Configured() bool {
	return c.token != "" && c.chatID != ""
}

// Deliver posts the formatted lead summary with a single sendMessage call.
func (c *TelegramChannel) Deliver(ctx context.Context, sub *intake.Submission, meta intake.Meta) error {
	ctx, span := telegramTracer.Start(ctx, "delivery.telegram.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("lead.source", sub.Source),
		attribute.String("lead.origin", meta.Origin),
	)

	payload, err := json.Marshal(map[string]any{
		"chat_id":                  c.chatID,
		"text":                     FormatMessage(sub, meta),
		"disable_web_page_preview": true,
	})
	if err != nil {
		return fmt.Errorf("delivery: marshal telegram payload: %w", err)
	}

	url := c.baseURL + "/bot" + c.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("delivery: build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delivery: telegram request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("delivery: telegram status %d: %s", resp.StatusCode, bodySnippet(body))
		span.RecordError(err)
		return err
	}

	c.logger.Info("lead relayed to telegram", "chat_id", c.chatID, "origin", meta.Origin)
	return nil
}

// bodySnippet bounds a response body for use in diagnostics.
func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	runes := []rune(s)
	if len(runes) > 200 {
		return string(runes[:200]) + "..."
	}
	return s
}

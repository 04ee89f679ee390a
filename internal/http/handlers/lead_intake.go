package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/avenirlabs/leadgate/internal/delivery"
	"github.com/avenirlabs/leadgate/internal/intake"
	"github.com/avenirlabs/leadgate/internal/observability/metrics"
	"github.com/avenirlabs/leadgate/internal/ratelimit"
	"github.com/avenirlabs/leadgate/pkg/logging"
)

// IntakeHandler handles HTTP requests for lead intake.
type IntakeHandler struct {
	limiter    *ratelimit.FixedWindow
	dispatcher *delivery.Dispatcher
	metrics    *metrics.IntakeMetrics
	logger     *logging.Logger
}

// NewIntakeHandler creates a new intake handler.
func NewIntakeHandler(limiter *ratelimit.FixedWindow, dispatcher *delivery.Dispatcher, m *metrics.IntakeMetrics, logger *logging.Logger) *IntakeHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &IntakeHandler{
		limiter:    limiter,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
	}
}

// IntakeResponse is the intake endpoint's JSON body. TG and CRM are present
// only when delivery was attempted.
type IntakeResponse struct {
	OK    bool              `json:"ok"`
	Error string            `json:"error,omitempty"`
	TG    *delivery.Outcome `json:"tg,omitempty"`
	CRM   *delivery.Outcome `json:"crm,omitempty"`
}

// Submit handles POST /api/lead requests. The per-request flow is linear
// with early exits: rate check, parse, normalize, spam check, dispatch.
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	origin := ClientOrigin(r)

	if !h.limiter.Allow(origin) {
		h.logger.Warn("submission rate limited", "origin", origin)
		h.metrics.ObserveSubmission("rate_limited")
		writeJSON(w, http.StatusTooManyRequests, IntakeResponse{OK: false, Error: "rate_limited"})
		return
	}

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		h.metrics.ObserveSubmission("invalid")
		writeJSON(w, http.StatusBadRequest, IntakeResponse{OK: false, Error: "invalid_json"})
		return
	}

	sub := intake.Normalize(raw)
	meta := intake.Meta{
		Origin:     origin,
		UserAgent:  r.UserAgent(),
		ReceivedAt: time.Now().UTC(),
	}

	if intake.IsSpam(sub) {
		// Spam is acknowledged exactly like an accepted lead so automated
		// abuse tooling gets no distinguishing signal.
		h.logger.Info("submission silently dropped", "origin", origin)
		h.metrics.ObserveSubmission("spam")
		writeJSON(w, http.StatusOK, IntakeResponse{OK: true})
		return
	}

	result := h.dispatcher.Dispatch(r.Context(), sub, meta)
	h.metrics.ObserveSubmission("accepted")
	h.logger.Info("lead dispatched",
		"origin", origin,
		"ok", result.OK,
		"tg", string(result.Telegram.Status),
		"crm", string(result.CRM.Status),
	)

	writeJSON(w, http.StatusOK, IntakeResponse{
		OK:  result.OK,
		TG:  &result.Telegram,
		CRM: &result.CRM,
	})
}

// ClientOrigin derives a best-effort submitter identity from the forwarding
// header. It is used for throttling and diagnostics, never trusted as
// identity.
func ClientOrigin(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	return "unknown"
}

func writeJSON(w http.ResponseWriter, status int, body IntakeResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

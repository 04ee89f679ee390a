package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avenirlabs/leadgate/internal/intake"
)

func TestTelegramConfigured(t *testing.T) {
	if NewTelegramChannel("", "", "", nil).Configured() {
		t.Error("expected channel without credentials to be unconfigured")
	}
	if NewTelegramChannel("123:abc", "", "", nil).Configured() {
		t.Error("expected channel without chat id to be unconfigured")
	}
	if !NewTelegramChannel("123:abc", "-100", "", nil).Configured() {
		t.Error("expected channel with both credentials to be configured")
	}
}

func TestTelegramDeliver(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	ch := NewTelegramChannel("123:abc", "-100200300", srv.URL, nil)
	sub := intake.Normalize(map[string]any{"name": "Ann", "phone": "+79991234567"})
	meta := intake.Meta{Origin: "203.0.113.9", ReceivedAt: time.Now().UTC()}

	if err := ch.Deliver(context.Background(), sub, meta); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("expected sendMessage path, got %q", gotPath)
	}
	if gotBody["chat_id"] != "-100200300" {
		t.Errorf("expected chat_id, got %v", gotBody["chat_id"])
	}
	text, _ := gotBody["text"].(string)
	if !strings.Contains(text, "Name: Ann") || !strings.Contains(text, "Phone: +79991234567") {
		t.Errorf("expected formatted summary, got %q", text)
	}
}

func TestTelegramDeliverNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	ch := NewTelegramChannel("123:abc", "-1", srv.URL, nil)
	err := ch.Deliver(context.Background(), intake.Normalize(map[string]any{}), intake.Meta{})

	if err == nil {
		t.Fatal("expected error for non-2xx status")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("expected status and body snippet in error, got %v", err)
	}
}

func TestTelegramDeliverTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection errors

	ch := NewTelegramChannel("123:abc", "-1", srv.URL, nil)
	err := ch.Deliver(context.Background(), intake.Normalize(map[string]any{}), intake.Meta{})

	if err == nil {
		t.Fatal("expected error when relay is unreachable")
	}
}

func TestBodySnippetBounded(t *testing.T) {
	long := strings.Repeat("e", 5000)
	got := bodySnippet([]byte(long))
	if len([]rune(got)) > 203 {
		t.Errorf("expected bounded snippet, got %d chars", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis on truncated snippet")
	}
}

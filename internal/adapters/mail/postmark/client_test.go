package postmark

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-care-log/internal/ports/mail"
)

func TestSend(t *testing.T) {
	var received postmarkEmail
	var gotToken, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Postmark-Server-Token")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"MessageID": "test-id"}`))
	}))
	defer server.Close()

	client, err := NewClient("test-token", "noreply@example.com", WithAPIURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Send(context.Background(), mail.Message{
		To:      "alice@example.com",
		Subject: "Meal time",
		Text:    "feed",
		HTML:    "<p>feed</p>",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotToken != "test-token" {
		t.Errorf("server token = %q, want %q", gotToken, "test-token")
	}
	if gotPath != "/email" {
		t.Errorf("path = %q, want /email", gotPath)
	}
	if received.To != "alice@example.com" || received.From != "noreply@example.com" {
		t.Errorf("unexpected addresses: %+v", received)
	}
	if received.Subject != "Meal time" || received.HtmlBody != "<p>feed</p>" || received.TextBody != "feed" {
		t.Errorf("unexpected content: %+v", received)
	}
}

func TestSendAPIErrorIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"ErrorCode": 300}`))
	}))
	defer server.Close()

	client, err := NewClient("test-token", "noreply@example.com", WithAPIURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Send(context.Background(), mail.Message{To: "bob@example.com", Subject: "x"})
	if !errors.Is(err, mail.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestSendNotConfigured(t *testing.T) {
	client, err := NewClient("", "noreply@example.com")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Send(context.Background(), mail.Message{To: "alice@example.com"})
	if !errors.Is(err, mail.ErrTransport) {
		t.Fatalf("expected ErrTransport for unconfigured client, got %v", err)
	}
}

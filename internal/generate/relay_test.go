package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRelayGenerateSendsRequestAndReturnsResponse(t *testing.T) {
	var got relayRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if err := json.NewEncoder(w).Encode(relayResponse{Response: "こんにちは！"}); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewRelayClient(server.URL)
	reply, err := client.Generate(context.Background(), Request{
		Message:   "おはよう",
		Context:   "context block",
		Character: "まりぴ",
		Emotion:   &Emotion{Total: 85, Label: "joy"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "こんにちは！" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if got.Message != "おはよう" || got.Character != "まりぴ" {
		t.Fatalf("unexpected forwarded request: %+v", got)
	}
	if got.Emotion == nil || got.Emotion.Total != 85 || got.Emotion.Label != "joy" {
		t.Fatalf("unexpected forwarded emotion: %+v", got.Emotion)
	}
}

func TestRelayGenerateToleratesAPIBase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewEncoder(w).Encode(relayResponse{Response: "ok"}); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewRelayClient(server.URL + "/api")
	if _, err := client.Generate(context.Background(), Request{Message: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRelayGenerateReturnsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRelayClient(server.URL)
	_, err := client.Generate(context.Background(), Request{Message: "hi"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusBadGateway {
		t.Fatalf("expected StatusError 502, got %v", err)
	}
	if !IsServerError(err) {
		t.Fatal("expected 502 to be a server error")
	}
}

func TestRelayGenerateClientErrorIsNotServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewRelayClient(server.URL)
	_, err := client.Generate(context.Background(), Request{Message: "hi"})

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != http.StatusNotFound {
		t.Fatalf("expected StatusError 404, got %v", err)
	}
	if IsServerError(err) {
		t.Fatal("404 must not be a server error")
	}
}

func TestRelayGenerateRejectsMissingResponseField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"error":"empty"}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	defer server.Close()

	client := NewRelayClient(server.URL)
	if _, err := client.Generate(context.Background(), Request{Message: "hi"}); err == nil {
		t.Fatal("expected error for missing response field")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(types.AIConfig{Provider: "anthropic"}); err == nil {
		t.Error("want configuration error for missing API key")
	}
}

func TestNewGeneratorUnknownProvider(t *testing.T) {
	if _, err := NewGenerator(types.AIConfig{Provider: "bard", APIKey: "k"}); err == nil {
		t.Error("want error for unknown provider")
	}
}

func TestNewGeneratorDefaultsToAnthropic(t *testing.T) {
	gen, err := NewGenerator(types.AIConfig{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	if _, ok := gen.(*AnthropicBackend); !ok {
		t.Errorf("default backend = %T, want *AnthropicBackend", gen)
	}
}

func TestAnthropicGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("x-api-key = %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("missing anthropic-version header")
		}
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "hello" {
			t.Errorf("messages = %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(anthropicResponse{Content: []anthropicContent{
			{Type: "text", Text: "first "},
			{Type: "tool_use", Text: "ignored"},
			{Type: "text", Text: "second"},
		}})
	}))
	defer srv.Close()

	oldURL := anthropicAPIURL
	anthropicAPIURL = srv.URL
	defer func() { anthropicAPIURL = oldURL }()

	b := NewAnthropicBackend(types.AIConfig{APIKey: "test-key"})
	got, err := b.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "first second" {
		t.Errorf("reply = %q", got)
	}
}

func TestAnthropicGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"type":"authentication_error"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	oldURL := anthropicAPIURL
	anthropicAPIURL = srv.URL
	defer func() { anthropicAPIURL = oldURL }()

	b := NewAnthropicBackend(types.AIConfig{APIKey: "bad-key"})
	_, err := b.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("want error for 401 response")
	}
	if !IsAuthError(err) {
		t.Errorf("IsAuthError(%v) = false", err)
	}
}

func TestAnthropicGenerateEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(anthropicResponse{})
	}))
	defer srv.Close()

	oldURL := anthropicAPIURL
	anthropicAPIURL = srv.URL
	defer func() { anthropicAPIURL = oldURL }()

	b := NewAnthropicBackend(types.AIConfig{APIKey: "k"})
	if _, err := b.Generate(context.Background(), "hello"); err == nil {
		t.Error("want error for empty content")
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		msg   string
		auth  bool
		quota bool
	}{
		{"request failed: 401 unauthorized", true, false},
		{"invalid api key provided", true, false},
		{"rate limit exceeded, retry later", false, true},
		{"monthly quota exhausted", false, true},
		{"server returned 429", false, true},
		{"connection refused", false, false},
	}
	for _, tt := range tests {
		err := errors.New(tt.msg)
		if got := IsAuthError(err); got != tt.auth {
			t.Errorf("IsAuthError(%q) = %v, want %v", tt.msg, got, tt.auth)
		}
		if got := IsQuotaError(err); got != tt.quota {
			t.Errorf("IsQuotaError(%q) = %v, want %v", tt.msg, got, tt.quota)
		}
	}
	if IsAuthError(nil) || IsQuotaError(nil) {
		t.Error("nil error classified as a failure")
	}
}

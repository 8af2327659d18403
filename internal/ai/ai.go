// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ai abstracts the external text-completion capability behind a
// single Generate call so the pipeline is testable with deterministic stubs.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Generator is the opaque completion capability: one prompt in, one text
// reply out. Implementations wrap a concrete provider API.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator constructs the configured provider. A missing API key is a
// configuration error: fatal at startup, never retried.
func NewGenerator(cfg types.AIConfig) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing API key for provider %q", cfg.Provider)
	}
	switch cfg.Provider {
	case "", "anthropic":
		return NewAnthropicBackend(cfg), nil
	case "openai":
		return NewOpenAIBackend(cfg), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}

// IsAuthError reports whether err looks like an authorization failure.
// Providers do not expose typed errors for this, so classification is by
// message substring.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"unauthorized", "authentication", "invalid api key", "401", "403"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// IsQuotaError reports whether err looks like a quota or rate-limit failure.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"quota", "rate limit", "rate_limit", "429", "overloaded"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/answer-engine/pkg/types"
)

const defaultOpenAIModel = openai.GPT4oMini

// OpenAIBackend calls an OpenAI-compatible chat-completion API.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend builds a backend from the shared AI config.
func NewOpenAIBackend(cfg types.AIConfig) *OpenAIBackend {
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIBackend{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}
}

// Generate sends one user message and returns the first choice's content.
func (b *OpenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domai "github.com/dfmejia/fraude-incapacidades/internal/domain/ai"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
	"github.com/dfmejia/fraude-incapacidades/internal/infra/ai/prompt"
)

const maxTokens = 2048

// Client implements both AI ports: the vision extraction of certificate
// fields and the narrative dictamen.
type Client struct {
	*openai.Client
	ExtractionModel string
	NarrativeModel  string
}

func NewClient(apiKey, extractionModel, narrativeModel string) *Client {
	return &Client{
		Client:          openai.NewClient(apiKey),
		ExtractionModel: extractionModel,
		NarrativeModel:  narrativeModel,
	}
}

// Extract asks the vision model for the structured extraction of a stored
// certificate. The result is best-effort: empty fields are normal.
func (c *Client) Extract(ctx context.Context, fileURL string) (certificate.Extraction, error) {
	model := c.ExtractionModel
	if model == "" {
		model = "gpt-4o"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.ExtractionSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.ExtractionUserPrompt(fileURL)},
		},
	}
	setTokenLimit(&req, model)

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return certificate.Extraction{}, wrapErr("extraction", err)
	}
	if len(resp.Choices) == 0 {
		return certificate.Extraction{}, fmt.Errorf("extraction returned no choices")
	}

	var extraction certificate.Extraction
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &extraction); err != nil {
		return certificate.Extraction{}, fmt.Errorf("unparseable extraction payload: %w", err)
	}
	return extraction, nil
}

// Narrate turns a finished report into the human-readable dictamen.
func (c *Client) Narrate(ctx context.Context, reportJSON string) (string, error) {
	model := c.NarrativeModel
	if model == "" {
		model = "gpt-4o"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.NarrativeSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.NarrativeUserPrompt(reportJSON)},
		},
	}
	setTokenLimit(&req, model)

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapErr("narrative", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("narrative returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
func setTokenLimit(req *openai.ChatCompletionRequest, model string) {
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}
}

func wrapErr(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w", op, domai.ErrQuotaExceeded)
	}
	return fmt.Errorf("%s chat completion failed: %w", op, err)
}

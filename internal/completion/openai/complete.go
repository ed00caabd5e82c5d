package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"docanalyzer/internal/completion"
	"docanalyzer/internal/port"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// apiResponse models the Chat Completions API response.
type apiResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user message. Temperature is always
// sent, including zero.
func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	bodyBytes, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, completion.Unavailable(c.provider, fmt.Errorf("calling API: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, completion.Unavailable(c.provider, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("%s API error (status %d): %s", c.provider, resp.StatusCode, completion.Truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := completion.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, completion.NewRateLimitError(c.provider, baseErr, retryAfter)
		}
		return nil, completion.Unavailable(c.provider, baseErr)
	}

	var parsed apiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, completion.Unavailable(c.provider, fmt.Errorf("unmarshaling response: %w", err))
	}
	if len(parsed.Choices) == 0 {
		return nil, completion.Unavailable(c.provider, fmt.Errorf("empty response from API: no choices"))
	}

	model := parsed.Model
	if model == "" {
		model = c.model
	}
	choice := parsed.Choices[0]
	return &port.CompletionResponse{
		Text:      choice.Message.Content,
		Model:     model,
		Truncated: choice.FinishReason == "length",
	}, nil
}

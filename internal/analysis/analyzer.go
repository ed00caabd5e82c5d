// Package analysis turns extracted document text into an AnalysisResult by
// prompting a completion API and recovering a JSON object from its reply.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/port"
)

// Analyzer implements port.DocumentAnalyzer. It holds no per-request state and
// is safe for concurrent use.
type Analyzer struct {
	client port.CompletionClient
}

// NewAnalyzer creates an Analyzer that calls client once per document.
func NewAnalyzer(client port.CompletionClient) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze prompts the completion API with text at temperature 0 and interprets
// the reply. Upstream failures are returned as errors; an unusable reply is
// not an error and yields the failure shape.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	logger := zerolog.Ctx(ctx)

	resp, err := a.client.Complete(ctx, port.CompletionRequest{
		Prompt:      BuildPrompt(text),
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("completing analysis prompt: %w", err)
	}

	result := Interpret(resp.Text, resp.Truncated)
	if !result.Succeeded() {
		logger.Warn().
			Str("model", resp.Model).
			Str("reason", result.Failure.Error).
			Int("reply_length", len(resp.Text)).
			Msg("analyzer.Analyze: reply not usable")
		return result, nil
	}

	if shapeErr := CheckShape(result.Document); shapeErr != nil {
		logger.Warn().
			Err(shapeErr).
			Str("model", resp.Model).
			Msg("analyzer.Analyze: reply deviates from expected shape")
	}
	return result, nil
}

// Interpret sanitizes a raw reply and parses the candidate. Only a JSON object
// produces the success shape; scalars, arrays, invalid JSON and truncated
// replies produce the failure shape.
func Interpret(raw string, truncated bool) *domain.AnalysisResult {
	cleaned := Sanitize(raw)
	if truncated {
		return domain.NewAnalysisFailure(domain.AnalysisErrorTruncated, raw, cleaned)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil || obj == nil {
		return domain.NewAnalysisFailure(domain.AnalysisErrorInvalidJSON, raw, cleaned)
	}
	return domain.NewAnalysisSuccess(json.RawMessage(cleaned))
}

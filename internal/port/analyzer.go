package port

import (
	"context"

	"docanalyzer/internal/domain"
)

// DocumentAnalyzer turns extracted document text into an AnalysisResult.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Analyze(ctx context.Context, input service.DocumentInput) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockDocumentService) ExtractText(ctx context.Context, input service.DocumentInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

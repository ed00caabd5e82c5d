package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"docanalyzer/internal/config"
	"docanalyzer/internal/domain"
	"docanalyzer/internal/port"
)

// DocumentInput is the DTO for a single uploaded document.
type DocumentInput struct {
	FileName string
	// Size is the declared size in bytes, or -1 when unknown.
	Size int64
	File io.Reader
}

// DocumentService defines the document analysis contract.
type DocumentService interface {
	Analyze(ctx context.Context, input DocumentInput) (*domain.AnalysisResult, error)
	ExtractText(ctx context.Context, input DocumentInput) (string, error)
}

type documentService struct {
	extractor port.TextExtractor
	analyzer  port.DocumentAnalyzer
	maxBytes  int64
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	extractor port.TextExtractor,
	analyzer port.DocumentAnalyzer,
	cfg *config.UploadConfig,
) DocumentService {
	return &documentService{
		extractor: extractor,
		analyzer:  analyzer,
		maxBytes:  cfg.MaxBytes(),
	}
}

func (s *documentService) Analyze(ctx context.Context, input DocumentInput) (*domain.AnalysisResult, error) {
	logger := zerolog.Ctx(ctx)

	text, err := s.ExtractText(ctx, input)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		logger.Error().Err(err).Str("file", input.FileName).Msg("documentService.Analyze: analysis failed")
		return nil, fmt.Errorf("analyzing document: %w", err)
	}

	logger.Info().
		Str("file", input.FileName).
		Int("text_length", len(text)).
		Bool("parsed", result.Succeeded()).
		Dur("duration", time.Since(start)).
		Msg("documentService.Analyze: analysis complete")
	return result, nil
}

func (s *documentService) ExtractText(ctx context.Context, input DocumentInput) (string, error) {
	logger := zerolog.Ctx(ctx)

	data, err := s.readUpload(input)
	if err != nil {
		return "", err
	}

	text, err := s.extractor.Extract(ctx, data)
	if err != nil {
		logger.Warn().Err(err).Str("file", input.FileName).Int("bytes", len(data)).
			Msg("documentService.ExtractText: extraction failed")
		return "", fmt.Errorf("extracting text: %w", err)
	}

	logger.Debug().Str("file", input.FileName).Int("bytes", len(data)).Int("text_length", len(text)).
		Msg("documentService.ExtractText: extracted text")
	return text, nil
}

// readUpload reads the whole upload into memory, enforcing the size limit.
func (s *documentService) readUpload(input DocumentInput) ([]byte, error) {
	if s.maxBytes > 0 && input.Size > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	r := input.File
	if s.maxBytes > 0 {
		r = io.LimitReader(r, s.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	return data, nil
}

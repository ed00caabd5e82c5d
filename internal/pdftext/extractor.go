// Package pdftext extracts plain text from PDF documents.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"docanalyzer/internal/domain"
)

// Extractor implements port.TextExtractor for PDF input. It keeps no state
// between calls.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text of every page in order, each non-empty page
// followed by a newline. Pages that fail to decode contribute nothing. A
// document with no extractable text yields "" and no error; bytes that do
// not parse as a PDF yield domain.ErrMalformedDocument.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	r, numPages, err := open(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	logger := zerolog.Ctx(ctx)
	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := pageText(r, i)
		if err != nil {
			logger.Debug().Err(err).Int("page", i).Msg("pdftext.Extract: skipping unreadable page")
			continue
		}
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// open parses the document and counts its pages. The parser panics on some
// malformed inputs, so panics are converted to errors.
func open(data []byte) (r *pdf.Reader, numPages int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, numPages, err = nil, 0, fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()

	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, 0, err
	}
	return r, r.NumPage(), nil
}

func pageText(r *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("page %d: pdf parser panic: %v", num, rec)
		}
	}()

	page := r.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

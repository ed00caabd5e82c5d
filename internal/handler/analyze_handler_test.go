package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docanalyzer/internal/completion"
	"docanalyzer/internal/domain"
	"docanalyzer/internal/export"
	"docanalyzer/internal/handler"
	"docanalyzer/internal/service"
	"docanalyzer/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartUpload(t *testing.T, target, field, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *handler.APIError {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func TestAnalyzeHandler_Analyze_Success(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewAnalyzeHandler(mockSvc)

	doc := `{"document_type":"Invoice","fields":{"total":"100"},"summary":["Paid"]}`
	mockSvc.On("Analyze", mock.Anything, mock.MatchedBy(func(in service.DocumentInput) bool {
		return in.FileName == "invoice.pdf" && in.Size == int64(len("%PDF-1.4 test content"))
	})).Return(domain.NewAnalysisSuccess(json.RawMessage(doc)), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "/analyze", "file", "invoice.pdf", []byte("%PDF-1.4 test content"))

	h.Analyze(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, doc, w.Body.String())
	mockSvc.AssertExpectations(t)
}

func TestAnalyzeHandler_Analyze_FailureShapeIs200(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewAnalyzeHandler(mockSvc)

	mockSvc.On("Analyze", mock.Anything, mock.AnythingOfType("service.DocumentInput")).
		Return(domain.NewAnalysisFailure(domain.AnalysisErrorInvalidJSON, "Sorry, I cannot process this.", "Sorry, I cannot process this."), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "/analyze", "file", "doc.pdf", []byte("%PDF"))

	h.Analyze(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"upstream reply not parseable as JSON","raw_response":"Sorry, I cannot process this.","cleaned_attempt":"Sorry, I cannot process this."}`, w.Body.String())
}

func TestAnalyzeHandler_Analyze_NoFile(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewAnalyzeHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/analyze", nil)

	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decodeError(t, w).Code)
	mockSvc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalyzeHandler_Analyze_WrongFieldName(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewAnalyzeHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "/analyze", "document", "doc.pdf", []byte("%PDF"))

	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeHandler_Analyze_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"malformed", fmt.Errorf("extracting text: %w", domain.ErrMalformedDocument), http.StatusUnprocessableEntity, "MALFORMED_DOCUMENT"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"upstream", completion.Unavailable("groq", errors.New("status 503")), http.StatusBadGateway, "UPSTREAM_UNAVAILABLE"},
		{"rate limited", completion.NewRateLimitError("groq", errors.New("429"), 12), http.StatusTooManyRequests, "UPSTREAM_RATE_LIMITED"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockDocumentService)
			h := handler.NewAnalyzeHandler(mockSvc)
			mockSvc.On("Analyze", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = multipartUpload(t, "/analyze", "file", "doc.pdf", []byte("%PDF"))

			h.Analyze(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestAnalyzeHandler_Analyze_RateLimitSetsRetryAfter(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewAnalyzeHandler(mockSvc)
	mockSvc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("analyzing document: %w", completion.NewRateLimitError("claude", errors.New("429"), 45)))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "/analyze", "file", "doc.pdf", []byte("%PDF"))

	h.Analyze(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "45", w.Header().Get("Retry-After"))
}

func TestAnalyzeHandler_Export_XLSX(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewAnalyzeHandler(mockSvc)
	doc := `{"document_type":"Contract","fields":{"party":"Acme"},"summary":["Two year term"]}`
	mockSvc.On("Analyze", mock.Anything, mock.Anything).Return(domain.NewAnalysisSuccess(json.RawMessage(doc)), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "/analyze/export", "file", "Lease Agreement.pdf", []byte("%PDF"))

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.XLSXContentType, w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="Lease_Agreement_`), disposition)
	assert.True(t, strings.HasSuffix(disposition, `.xlsx"`), disposition)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Document Type", "Contract"}, rows[1])
	assert.Equal(t, []string{"party", "Acme"}, rows[2])
	assert.Equal(t, []string{"Summary 1", "Two year term"}, rows[3])
}

func TestAnalyzeHandler_Export_CSV(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewAnalyzeHandler(mockSvc)
	mockSvc.On("Analyze", mock.Anything, mock.Anything).
		Return(domain.NewAnalysisFailure(domain.AnalysisErrorInvalidJSON, "nope", "nope"), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "/analyze/export?format=csv", "file", "scan.pdf", []byte("%PDF"))

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.CSVContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	body := strings.TrimPrefix(w.Body.String(), string(export.BOM))
	assert.Contains(t, body, "Error,upstream reply not parseable as JSON")
	assert.Contains(t, body, "Raw Response,nope")
}

func TestAnalyzeHandler_Export_InvalidFormat(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewAnalyzeHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "/analyze/export?format=pdf", "file", "scan.pdf", []byte("%PDF"))

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FORMAT", decodeError(t, w).Code)
	mockSvc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalyzeHandler_Export_ErrorUsesEnvelope(t *testing.T) {
	mockSvc := new(mocks.MockDocumentService)
	h := handler.NewAnalyzeHandler(mockSvc)
	mockSvc.On("Analyze", mock.Anything, mock.Anything).Return(nil, domain.ErrMalformedDocument)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartUpload(t, "/analyze/export", "file", "scan.pdf", []byte("garbage"))

	h.Export(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "MALFORMED_DOCUMENT", decodeError(t, w).Code)
}

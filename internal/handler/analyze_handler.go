package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"docanalyzer/internal/domain"
	"docanalyzer/internal/export"
	"docanalyzer/internal/service"
)

// AnalyzeHandler handles document analysis endpoints.
type AnalyzeHandler struct {
	documentService service.DocumentService
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(documentService service.DocumentService) *AnalyzeHandler {
	return &AnalyzeHandler{documentService: documentService}
}

// Analyze handles POST /analyze
// @Summary Analyze a PDF document
// @Description Extracts the PDF's text, asks the completion API to classify it and extract fields and a summary, and returns the JSON object the model produced. When the reply is not a JSON object the body is the failure shape (error, raw_response, cleaned_attempt), still with status 200.
// @Tags analysis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} AnalysisResponse "Model output, or AnalysisFailureResponse when unparseable"
// @Failure 400 {object} ErrorResponseBody "Missing file"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Not a parseable PDF"
// @Failure 429 {object} ErrorResponseBody "Rate limited"
// @Failure 502 {object} ErrorResponseBody "Completion API failure"
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	result, _, ok := h.analyzeUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export handles POST /analyze/export
// @Summary Analyze a PDF document and download the result as a spreadsheet
// @Description Runs the same analysis as POST /analyze and returns it as an xlsx workbook (default) or CSV file.
// @Tags analysis
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param file formData file true "PDF document"
// @Param format query string false "Output format: xlsx or csv" default(xlsx)
// @Success 200 {file} file "Spreadsheet attachment"
// @Failure 400 {object} ErrorResponseBody "Missing file or invalid format"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Not a parseable PDF"
// @Failure 429 {object} ErrorResponseBody "Rate limited"
// @Failure 502 {object} ErrorResponseBody "Completion API failure"
// @Router /analyze/export [post]
func (h *AnalyzeHandler) Export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "csv" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be xlsx or csv")
		return
	}

	result, fileName, ok := h.analyzeUpload(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	contentType := export.XLSXContentType
	var err error
	if format == "csv" {
		contentType = export.CSVContentType
		err = export.WriteCSV(&buf, result)
	} else {
		err = export.WriteXLSX(&buf, result)
	}
	if err != nil {
		HandleError(c, fmt.Errorf("rendering %s export: %w", format, err))
		return
	}

	filename := export.BuildFilename(fileName, format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// analyzeUpload reads the "file" form field and runs the analysis. On failure
// the error response has been written and ok is false.
func (h *AnalyzeHandler) analyzeUpload(c *gin.Context) (result *domain.AnalysisResult, fileName string, ok bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return nil, "", false
	}
	defer func() { _ = file.Close() }()

	input := service.DocumentInput{
		FileName: header.Filename,
		Size:     header.Size,
		File:     file,
	}

	result, err = h.documentService.Analyze(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return nil, "", false
	}
	return result, header.Filename, true
}

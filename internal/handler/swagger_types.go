package handler

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"Document Analyzer API running"`
}

// AnalysisResponse documents the success shape of POST /analyze. The model is
// not bound to it; whatever JSON object the model returns is passed through.
type AnalysisResponse struct {
	DocumentType string            `json:"document_type" example:"Invoice"`
	Fields       map[string]string `json:"fields" example:"total:100,vendor:Acme Corp"`
	Summary      []string          `json:"summary" example:"Invoice from Acme Corp,Total due 100"`
}

// AnalysisFailureResponse documents the shape returned with 200 when the
// model's reply could not be parsed as a JSON object.
type AnalysisFailureResponse struct {
	Error          string `json:"error" example:"upstream reply not parseable as JSON"`
	RawResponse    string `json:"raw_response" example:"Sorry, I cannot process this."`
	CleanedAttempt string `json:"cleaned_attempt" example:"Sorry, I cannot process this."`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

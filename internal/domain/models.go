package domain

import (
	"encoding/json"
	"errors"
)

// Error tags carried by the failure shape of an AnalysisResult.
const (
	AnalysisErrorInvalidJSON = "upstream reply not parseable as JSON"
	AnalysisErrorTruncated   = "upstream reply truncated"
)

// AnalysisFailure is returned in place of the model's object when the reply
// could not be coerced into JSON.
type AnalysisFailure struct {
	Error          string `json:"error"`
	RawResponse    string `json:"raw_response"`
	CleanedAttempt string `json:"cleaned_attempt"`
}

// AnalysisResult is exactly one of: the JSON object produced by the model
// (Document), or a Failure describing why no object could be recovered.
type AnalysisResult struct {
	Document json.RawMessage
	Failure  *AnalysisFailure
}

// NewAnalysisSuccess wraps a JSON object returned by the model.
func NewAnalysisSuccess(doc json.RawMessage) *AnalysisResult {
	return &AnalysisResult{Document: doc}
}

// NewAnalysisFailure builds the failure shape.
func NewAnalysisFailure(tag, raw, cleaned string) *AnalysisResult {
	return &AnalysisResult{Failure: &AnalysisFailure{
		Error:          tag,
		RawResponse:    raw,
		CleanedAttempt: cleaned,
	}}
}

// Succeeded reports whether the result carries the model's object.
func (r *AnalysisResult) Succeeded() bool {
	return r.Failure == nil
}

// MarshalJSON emits the model's object unchanged, or the failure object.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	if len(r.Document) == 0 {
		return nil, errors.New("analysis result has neither document nor failure")
	}
	return r.Document, nil
}

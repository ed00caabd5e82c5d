package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docanalyzer/internal/domain"
)

func TestAnalysisResult_MarshalSuccess(t *testing.T) {
	doc := `{"summary":["b","a"],"document_type":"Invoice","fields":{"z":1,"a":2}}`
	result := domain.NewAnalysisSuccess(json.RawMessage(doc))

	b, err := json.Marshal(result)

	require.NoError(t, err)
	// key order of the model's object is preserved
	assert.Equal(t, doc, string(b))
	assert.True(t, result.Succeeded())
}

func TestAnalysisResult_MarshalFailure(t *testing.T) {
	result := domain.NewAnalysisFailure(domain.AnalysisErrorInvalidJSON, "raw reply", "cleaned")

	b, err := json.Marshal(result)

	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"upstream reply not parseable as JSON","raw_response":"raw reply","cleaned_attempt":"cleaned"}`, string(b))
	assert.False(t, result.Succeeded())
}

func TestAnalysisResult_MarshalFailureKeepsEmptyStrings(t *testing.T) {
	result := domain.NewAnalysisFailure(domain.AnalysisErrorInvalidJSON, "", "")

	b, err := json.Marshal(result)

	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &body))
	assert.Contains(t, body, "raw_response")
	assert.Contains(t, body, "cleaned_attempt")
}

func TestAnalysisResult_MarshalEmptyIsError(t *testing.T) {
	_, err := json.Marshal(domain.AnalysisResult{})

	assert.Error(t, err)
}

func TestAnalysisResult_MarshalAsValue(t *testing.T) {
	result := *domain.NewAnalysisSuccess(json.RawMessage(`{"a":1}`))

	b, err := json.Marshal(map[string]interface{}{"result": result})

	require.NoError(t, err)
	assert.JSONEq(t, `{"result":{"a":1}}`, string(b))
}

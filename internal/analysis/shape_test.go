package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docanalyzer/internal/analysis"
)

func TestCheckShape(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"expected shape", `{"document_type":"Invoice","fields":{"total":100.50},"summary":["Paid"]}`, false},
		{"extra keys allowed", `{"document_type":"Invoice","fields":{},"summary":["a"],"language":"en"}`, false},
		{"missing summary", `{"document_type":"Invoice","fields":{}}`, true},
		{"fields not an object", `{"document_type":"Invoice","fields":[],"summary":["a"]}`, true},
		{"too many bullets", `{"document_type":"X","fields":{},"summary":["1","2","3","4","5","6"]}`, true},
		{"empty summary", `{"document_type":"X","fields":{},"summary":[]}`, true},
		{"non-string bullet", `{"document_type":"X","fields":{},"summary":[1]}`, true},
		{"empty document type", `{"document_type":"","fields":{},"summary":["a"]}`, true},
		{"not json", `{`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := analysis.CheckShape([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

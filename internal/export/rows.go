// Package export renders an AnalysisResult as a spreadsheet.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"docanalyzer/internal/domain"
)

// Row is one key/value line of an exported analysis. Value is a string,
// json.Number or bool; numbers keep the model's exact digits.
type Row struct {
	Key   string
	Value any
}

// Rows flattens result into key/value rows. A successful analysis yields
// "Document Type", one row per field sorted by key, then "Summary 1".."Summary n",
// then any other top-level keys sorted by key. A failure yields "Error",
// "Raw Response" and "Cleaned Attempt".
func Rows(result *domain.AnalysisResult) ([]Row, error) {
	if result == nil {
		return nil, fmt.Errorf("nil analysis result")
	}
	if !result.Succeeded() {
		return []Row{
			{Key: "Error", Value: result.Failure.Error},
			{Key: "Raw Response", Value: result.Failure.RawResponse},
			{Key: "Cleaned Attempt", Value: result.Failure.CleanedAttempt},
		}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(result.Document))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding analysis document: %w", err)
	}

	var rows []Row
	if v, ok := doc["document_type"]; ok {
		rows = append(rows, Row{Key: "Document Type", Value: cellValue(v)})
	}

	switch fields := doc["fields"].(type) {
	case map[string]any:
		for _, k := range sortedKeys(fields) {
			rows = append(rows, Row{Key: k, Value: cellValue(fields[k])})
		}
	case nil:
	default:
		rows = append(rows, Row{Key: "Fields", Value: cellValue(fields)})
	}

	switch summary := doc["summary"].(type) {
	case []any:
		for i, item := range summary {
			rows = append(rows, Row{Key: "Summary " + strconv.Itoa(i+1), Value: cellValue(item)})
		}
	case nil:
	default:
		rows = append(rows, Row{Key: "Summary 1", Value: cellValue(summary)})
	}

	for _, k := range sortedKeys(doc) {
		switch k {
		case "document_type", "fields", "summary":
			continue
		}
		rows = append(rows, Row{Key: k, Value: cellValue(doc[k])})
	}
	return rows, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cellValue converts a decoded JSON value to something a spreadsheet cell holds.
// Objects and arrays are written as compact JSON text.
func cellValue(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case string, bool:
		return t
	case json.Number:
		return t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// cellText renders a Row value as text.
func cellText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprint(t)
	}
}

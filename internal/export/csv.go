package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"docanalyzer/internal/domain"
)

// CSVContentType is the MIME type of output written by WriteCSV.
const CSVContentType = "text/csv; charset=utf-8"

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes result as BOM-prefixed Key,Value CSV to w.
func WriteCSV(w io.Writer, result *domain.AnalysisResult) error {
	rows, err := Rows(result)
	if err != nil {
		return err
	}

	if _, err := w.Write(BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Key", "Value"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Key, cellText(row.Value)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an uploaded file's base name for use in
// Content-Disposition. The extension is dropped, characters other than
// alphanumerics, '-' and '_' become '_', and the result is capped at 100 chars.
func SanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	s := nonAlphanumeric.ReplaceAllString(base, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "analysis"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(uploadName, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(uploadName), now.Format("2006-01-02"), ext)
}

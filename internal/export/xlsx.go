package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"docanalyzer/internal/domain"
)

// SheetName is the worksheet holding the analysis.
const SheetName = "Analysis"

// XLSXContentType is the MIME type of a workbook written by WriteXLSX.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes result as a two-column workbook to w.
func WriteXLSX(w io.Writer, result *domain.AnalysisResult) error {
	rows, err := Rows(result)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &[]interface{}{"Key", "Value"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &[]interface{}{row.Key, xlsxValue(row.Value)}); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "B", 80); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// xlsxValue writes numbers as numeric cells only when float64 holds them
// exactly; anything else, such as 17-digit account numbers, stays text.
func xlsxValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	f, err := n.Float64()
	if err != nil || strconv.FormatFloat(f, 'f', -1, 64) != n.String() {
		return n.String()
	}
	return f
}

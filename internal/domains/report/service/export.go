package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"trustboard-backend/internal/domains/report"
)

// tableFromData extracts the column order and rows from a report document.
// Data read back from JSONB decodes into []interface{}, so both native and
// decoded shapes are accepted.
func tableFromData(data map[string]interface{}) (columns []string, rows []map[string]interface{}) {
	switch cols := data["columns"].(type) {
	case []string:
		columns = cols
	case []interface{}:
		for _, c := range cols {
			if s, ok := c.(string); ok {
				columns = append(columns, s)
			}
		}
	}

	switch raw := data["rows"].(type) {
	case []map[string]interface{}:
		rows = raw
	case []interface{}:
		for _, r := range raw {
			if m, ok := r.(map[string]interface{}); ok {
				rows = append(rows, m)
			}
		}
	}

	return columns, rows
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func renderCSV(data map[string]interface{}) ([]byte, error) {
	columns, rows := tableFromData(data)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, 0, len(columns))
		for _, col := range columns {
			record = append(record, cellString(row[col]))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(data map[string]interface{}) ([]byte, error) {
	columns, rows := tableFromData(data)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for colIdx, col := range columns {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, fmt.Errorf("set header cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header cell: %w", err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("data cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, row[col]); err != nil {
				return nil, fmt.Errorf("set data cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// renderPDF emits a minimal single-page text PDF: a title line followed by
// one line per row. Good enough for dashboard downloads; no layout engine.
func renderPDF(reportType string, data map[string]interface{}) ([]byte, error) {
	columns, rows := tableFromData(data)

	lines := []string{fmt.Sprintf("Report: %s", reportType), strings.Join(columns, " | ")}
	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, cellString(row[col]))
		}
		lines = append(lines, strings.Join(cells, " | "))
	}

	return buildSimplePDF(lines), nil
}

func pdfEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	return s
}

// buildSimplePDF assembles a valid one-page PDF by hand, tracking object
// offsets for the xref table.
func buildSimplePDF(lines []string) []byte {
	var content bytes.Buffer
	content.WriteString("BT /F1 10 Tf 40 800 Td 14 TL\n")
	for _, line := range lines {
		fmt.Fprintf(&content, "(%s) Tj T*\n", pdfEscape(line))
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefStart)

	return buf.Bytes()
}

func renderExport(r *report.Report, format string) (*report.ExportResult, error) {
	switch format {
	case report.FormatCSV:
		content, err := renderCSV(r.Data)
		if err != nil {
			return nil, err
		}
		return &report.ExportResult{
			Filename:    fmt.Sprintf("report-%s.csv", r.ID),
			ContentType: "text/csv",
			Content:     content,
		}, nil

	case report.FormatXLSX:
		content, err := renderXLSX(r.Data)
		if err != nil {
			return nil, err
		}
		return &report.ExportResult{
			Filename:    fmt.Sprintf("report-%s.xlsx", r.ID),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil

	case report.FormatPDF:
		content, err := renderPDF(r.Type, r.Data)
		if err != nil {
			return nil, err
		}
		return &report.ExportResult{
			Filename:    fmt.Sprintf("report-%s.pdf", r.ID),
			ContentType: "application/pdf",
			Content:     content,
		}, nil

	default:
		return nil, report.ErrInvalidFormat
	}
}

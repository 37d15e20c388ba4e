package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Roster"

// XLSXExporter renders Dataset records into an Excel workbook with a single sheet.
type XLSXExporter struct{}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ContentType implements Renderer.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements Renderer.
func (e *XLSXExporter) Extension() string { return "xlsx" }

// Render writes a bold header row followed by the dataset rows. The title is stored in the
// workbook properties.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("xlsx"); err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close() //nolint:errcheck

	if err := file.SetSheetName(file.GetSheetName(0), xlsxSheet); err != nil {
		return nil, fmt.Errorf("name xlsx sheet: %w", err)
	}
	if err := file.SetDocProps(&excelize.DocProperties{Title: data.Title, Creator: "student-roster"}); err != nil {
		return nil, fmt.Errorf("set xlsx properties: %w", err)
	}
	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create xlsx header style: %w", err)
	}

	stream, err := file.NewStreamWriter(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("open xlsx stream: %w", err)
	}
	for i, n := range longestCells(data) {
		if err := stream.SetColWidth(i+1, i+1, xlsxColumnWidth(n)); err != nil {
			return nil, fmt.Errorf("size xlsx column %d: %w", i+1, err)
		}
	}

	if err := stream.SetRow("A1", toCells(data.Headers), excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return nil, fmt.Errorf("write xlsx headers: %w", err)
	}
	for i, row := range data.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := stream.SetRow(cell, toCells(row)); err != nil {
			return nil, fmt.Errorf("write xlsx row %d: %w", i, err)
		}
	}
	if err := stream.Flush(); err != nil {
		return nil, fmt.Errorf("flush xlsx stream: %w", err)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func xlsxColumnWidth(runes int) float64 {
	width := float64(runes + 2)
	if width > 60 {
		return 60
	}
	return width
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

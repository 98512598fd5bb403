// Package export writes the resume history as a spreadsheet.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/intelliresume/internal/types"
	"github.com/xuri/excelize/v2"
)

// HistorySheet is the name of the worksheet listing history entries.
const HistorySheet = "History"

// TimestampLayout formats entry timestamps in the sheet.
const TimestampLayout = "2006-01-02 15:04:05"

// ContentType is the MIME type of the workbook written by WriteHistory.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var historyColumns = []struct {
	header string
	width  float64
	value  func(e types.HistoryEntry) interface{}
}{
	{"Name", 25, func(e types.HistoryEntry) interface{} { return e.Name }},
	{"Created (UTC)", 20, func(e types.HistoryEntry) interface{} { return e.Timestamp.UTC().Format(TimestampLayout) }},
	{"Email", 28, func(e types.HistoryEntry) interface{} { return e.Resume.Contact.Email }},
	{"Phone", 16, func(e types.HistoryEntry) interface{} { return e.Resume.Contact.Phone }},
	{"Positions", 10, func(e types.HistoryEntry) interface{} { return len(e.Resume.Experience) }},
	{"Education", 10, func(e types.HistoryEntry) interface{} { return len(e.Resume.Education) }},
	{"Skills", 40, func(e types.HistoryEntry) interface{} { return strings.Join(e.Resume.Skills, ", ") }},
	{"Summary", 60, func(e types.HistoryEntry) interface{} { return e.Resume.Summary }},
	{"ID", 38, func(e types.HistoryEntry) interface{} { return e.ID }},
}

// HistoryWorkbook builds a workbook with one row per entry, newest first.
func HistoryWorkbook(entries []types.HistoryEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range historyColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		_ = f.SetColWidth(HistorySheet, name, name, col.width)
		_ = f.SetCellValue(HistorySheet, name+"1", col.header)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(historyColumns))
	_ = f.SetCellStyle(HistorySheet, "A1", lastCol+"1", headerStyle)

	for r, e := range entries {
		for c, col := range historyColumns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				_ = f.Close()
				return nil, err
			}
			if err := f.SetCellValue(HistorySheet, cell, col.value(e)); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
	}

	return f, nil
}

// WriteHistory writes the history workbook to w.
func WriteHistory(w io.Writer, entries []types.HistoryEntry) error {
	f, err := HistoryWorkbook(entries)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// HistoryBytes returns the history workbook as XLSX bytes.
func HistoryBytes(entries []types.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHistory(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package roster

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidWorkbook marks an upload that cannot be read as a workbook at
// all. Any error wrapping it is fatal to the whole import.
var ErrInvalidWorkbook = errors.New("invalid workbook")

// CellKind tags the loose value types a spreadsheet cell can carry.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellRichText
	CellScalar
)

// CellValue is a raw cell value before normalization. Text holds plain
// text or the textual form of a scalar; Fragments holds rich text runs.
type CellValue struct {
	Kind      CellKind
	Text      string
	Fragments []string
}

// Worksheet wraps the first sheet of an uploaded workbook with 1-based
// row/column addressing.
type Worksheet struct {
	file     *excelize.File
	name     string
	rowCount int
}

// OpenWorksheet parses an in-memory workbook and positions on its first
// worksheet.
func OpenWorksheet(buf []byte) (*Worksheet, error) {
	file, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		file.Close()
		return nil, fmt.Errorf("%w: workbook has no worksheets", ErrInvalidWorkbook)
	}
	name := sheets[0]

	rows, err := file.GetRows(name)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}

	return &Worksheet{file: file, name: name, rowCount: len(rows)}, nil
}

// RowCount reports the last populated row of the worksheet.
func (ws *Worksheet) RowCount() int {
	return ws.rowCount
}

// Cell reads the raw value at the given 1-based row and column. String
// cells with multiple styled runs come back as rich text fragments;
// numbers, booleans and formula results come back as scalars.
func (ws *Worksheet) Cell(row, col int) CellValue {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return CellValue{Kind: CellEmpty}
	}

	cellType, err := ws.file.GetCellType(ws.name, axis)
	if err != nil {
		return CellValue{Kind: CellEmpty}
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		runs, err := ws.file.GetCellRichText(ws.name, axis)
		if err == nil && len(runs) > 1 {
			fragments := make([]string, len(runs))
			for i, run := range runs {
				fragments[i] = run.Text
			}
			return CellValue{Kind: CellRichText, Fragments: fragments}
		}
		text, _ := ws.file.GetCellValue(ws.name, axis)
		return CellValue{Kind: CellText, Text: text}
	case excelize.CellTypeUnset:
		// Unset covers blank cells and cells stored without a type
		// attribute; the latter are numbers and dates, not strings.
		text, _ := ws.file.GetCellValue(ws.name, axis)
		if text == "" {
			return CellValue{Kind: CellEmpty}
		}
		return CellValue{Kind: CellScalar, Text: text}
	default:
		text, _ := ws.file.GetCellValue(ws.name, axis)
		if text == "" {
			return CellValue{Kind: CellEmpty}
		}
		return CellValue{Kind: CellScalar, Text: text}
	}
}

func (ws *Worksheet) Close() error {
	return ws.file.Close()
}

// NormalizeCell reduces a raw cell value to a trimmed plain string:
// absent cells become "", rich text runs are concatenated before
// trimming, anything else is trimmed as text. Downstream validation and
// deduplication depend on this being total and consistent.
func NormalizeCell(v CellValue) string {
	switch v.Kind {
	case CellEmpty:
		return ""
	case CellRichText:
		return strings.TrimSpace(strings.Join(v.Fragments, ""))
	default:
		return strings.TrimSpace(v.Text)
	}
}

package sheets

import (
	"fmt"
	"strings"
)

// Grid is a snapshot of a sheet's cell contents as text. Rows may be
// ragged: a row can be shorter than the header row when trailing cells
// are empty. Row 0 is the header row.
type Grid [][]string

// Gateway is the read/write contract against a remote workbook.
type Gateway interface {
	ReadRange(spreadsheetID, rangeExpr string) (Grid, error)
	WriteCell(spreadsheetID, cellAddress, value string) error
	ListSheetNames(spreadsheetID string) ([]string, error)
}

// SheetRange returns a range expression covering an entire sheet.
func SheetRange(sheetName string) string {
	return quoteSheet(sheetName)
}

// CellRef returns the A1 address of a single cell, e.g. "Scores!C5".
// Rows are 1-indexed to match the remote addressing convention.
func CellRef(sheetName, columnLetter string, row int) string {
	return fmt.Sprintf("%s!%s%d", quoteSheet(sheetName), columnLetter, row)
}

func quoteSheet(sheetName string) string {
	if strings.ContainsAny(sheetName, " !'") {
		return "'" + strings.ReplaceAll(sheetName, "'", "''") + "'"
	}
	return sheetName
}

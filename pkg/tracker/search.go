package tracker

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"tally/pkg/sheets"
)

// Location is a fully resolved target cell, with the raw value that was
// in the cell when the sheet snapshot was taken.
type Location struct {
	SheetName    string
	Row          int
	Column       int
	ColumnLetter string
	CellValue    string
}

type updateError struct {
	reason  Reason
	message string
}

func (e *updateError) Error() string { return e.message }

// searchSheets visits sheets in the given order and stops at the first
// one yielding both a name match and a resolvable field column. A sheet
// where the name matches but the field column does not resolve is not
// fatal: the name may appear in several sheets and only one may carry
// the relevant column.
func searchSheets(
	gw sheets.Gateway,
	spreadsheetID string,
	sheetNames []string,
	nameKey, nameSpec, fieldSpec string,
) (Location, *updateError) {
	nameFound := false
	nameColumnResolved := false
	sawGrid := false
	for _, sheetName := range sheetNames {
		grid, err := gw.ReadRange(spreadsheetID, sheets.SheetRange(sheetName))
		if err != nil {
			return Location{}, &updateError{
				reason:  ReasonRemoteFailure,
				message: fmt.Sprintf("reading sheet %q: %v", sheetName, err),
			}
		}
		if len(grid) == 0 {
			continue
		}
		sawGrid = true
		nameColumn, ok := ResolveColumn(grid[0], nameSpec)
		if !ok {
			log.Debugf("sheet %q: name column %q not resolvable, skipping", sheetName, nameSpec)
			continue
		}
		nameColumnResolved = true
		match, ok := FindRow(grid, nameKey, nameColumn)
		if !ok {
			log.Debugf("sheet %q: name %q not found", sheetName, nameKey)
			continue
		}
		nameFound = true
		fieldColumn, ok := ResolveColumn(grid[0], fieldSpec)
		if !ok {
			log.Debugf("sheet %q: name %q matched row %d but field %q not resolvable, continuing",
				sheetName, nameKey, match.Row, fieldSpec)
			continue
		}
		cell := ""
		if fieldColumn < len(match.Data) {
			cell = match.Data[fieldColumn]
		}
		return Location{
			SheetName:    sheetName,
			Row:          match.Row,
			Column:       fieldColumn,
			ColumnLetter: ColumnLetter(fieldColumn),
			CellValue:    cell,
		}, nil
	}
	if nameFound {
		return Location{}, &updateError{
			reason:  ReasonColumnNotFound,
			message: fmt.Sprintf("field %q could not be resolved in any sheet where %q appears", fieldSpec, nameKey),
		}
	}
	// A name column that never resolved against a populated sheet is a
	// column failure, not a missing name.
	if sawGrid && !nameColumnResolved {
		return Location{}, &updateError{
			reason:  ReasonColumnNotFound,
			message: fmt.Sprintf("name column %q could not be resolved in any sheet", nameSpec),
		}
	}
	return Location{}, &updateError{
		reason:  ReasonNameNotFound,
		message: fmt.Sprintf("name %q not found in any sheet", nameKey),
	}
}

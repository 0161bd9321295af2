package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"tally/pkg/sheets"
)

// fakeGateway is an in-memory workbook store. Writes are applied to the
// stored grids so a later read observes an earlier write, matching the
// remote store's behavior.
type fakeGateway struct {
	workbooks map[string]*fakeWorkbook

	readErr  error
	writeErr error
	listErr  error

	readCalls  []string
	writeCalls []fakeWrite
	listCalls  int
}

type fakeWorkbook struct {
	order []string
	grids map[string]sheets.Grid
}

type fakeWrite struct {
	spreadsheetID string
	cell          string
	value         string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{workbooks: map[string]*fakeWorkbook{}}
}

func (g *fakeGateway) addSheet(spreadsheetID, sheetName string, grid sheets.Grid) {
	wb, ok := g.workbooks[spreadsheetID]
	if !ok {
		wb = &fakeWorkbook{grids: map[string]sheets.Grid{}}
		g.workbooks[spreadsheetID] = wb
	}
	wb.order = append(wb.order, sheetName)
	wb.grids[sheetName] = grid
}

func (g *fakeGateway) totalCalls() int {
	return len(g.readCalls) + len(g.writeCalls) + g.listCalls
}

func (g *fakeGateway) ReadRange(spreadsheetID, rangeExpr string) (sheets.Grid, error) {
	g.readCalls = append(g.readCalls, rangeExpr)
	if g.readErr != nil {
		return nil, g.readErr
	}
	wb, ok := g.workbooks[spreadsheetID]
	if !ok {
		return nil, fmt.Errorf("unknown spreadsheet %q", spreadsheetID)
	}
	sheetName := strings.Trim(strings.SplitN(rangeExpr, "!", 2)[0], "'")
	grid, ok := wb.grids[sheetName]
	if !ok {
		return nil, fmt.Errorf("unknown sheet %q", sheetName)
	}
	// Snapshot so callers never see later writes through the same slice.
	snapshot := make(sheets.Grid, len(grid))
	for i, row := range grid {
		snapshot[i] = append([]string(nil), row...)
	}
	return snapshot, nil
}

func (g *fakeGateway) WriteCell(spreadsheetID, cellAddress, value string) error {
	g.writeCalls = append(g.writeCalls, fakeWrite{spreadsheetID, cellAddress, value})
	if g.writeErr != nil {
		return g.writeErr
	}
	wb, ok := g.workbooks[spreadsheetID]
	if !ok {
		return fmt.Errorf("unknown spreadsheet %q", spreadsheetID)
	}
	sheetName, col, row, err := parseCellAddress(cellAddress)
	if err != nil {
		return err
	}
	grid, ok := wb.grids[sheetName]
	if !ok {
		return fmt.Errorf("unknown sheet %q", sheetName)
	}
	for len(grid) < row {
		grid = append(grid, []string{})
	}
	for len(grid[row-1]) <= col {
		grid[row-1] = append(grid[row-1], "")
	}
	grid[row-1][col] = value
	wb.grids[sheetName] = grid
	return nil
}

func (g *fakeGateway) ListSheetNames(spreadsheetID string) ([]string, error) {
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	wb, ok := g.workbooks[spreadsheetID]
	if !ok {
		return nil, nil
	}
	return wb.order, nil
}

func parseCellAddress(addr string) (sheetName string, col, row int, err error) {
	sheetName, cell, ok := strings.Cut(addr, "!")
	if !ok {
		return "", 0, 0, fmt.Errorf("malformed cell address %q", addr)
	}
	sheetName = strings.Trim(sheetName, "'")
	i := 0
	for i < len(cell) && cell[i] >= 'A' && cell[i] <= 'Z' {
		col = col*26 + int(cell[i]-'A') + 1
		i++
	}
	row, err = strconv.Atoi(cell[i:])
	if err != nil || col == 0 {
		return "", 0, 0, fmt.Errorf("malformed cell address %q", addr)
	}
	return sheetName, col - 1, row, nil
}

package tracker

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"tally/pkg/sheets"
)

// Orchestrator applies counter updates against remote workbooks. Each
// request performs its own fresh read, so a later request in the same
// batch targeting the same cell sees the effect of an earlier write.
type Orchestrator struct {
	gateway     sheets.Gateway
	departments map[string]Department
}

func New(gw sheets.Gateway, departments map[string]Department) *Orchestrator {
	return &Orchestrator{
		gateway:     gw,
		departments: departments,
	}
}

// ApplyBatch processes requests strictly in input order, one at a time.
// A failure in one request never affects the rest: the output always
// has the same length and order as the input.
func (o *Orchestrator) ApplyBatch(requests []UpdateRequest) []UpdateResult {
	results := make([]UpdateResult, len(requests))
	for i, req := range requests {
		results[i] = o.ApplyOne(req)
	}
	return results
}

// ApplyOne resolves the target cell for a single request, increments it
// and writes it back. All failures are converted to a failed result;
// nothing propagates past this boundary.
func (o *Orchestrator) ApplyOne(req UpdateRequest) UpdateResult {
	result := UpdateResult{
		Name:       req.Name,
		Department: req.Department,
		Field:      req.Field,
	}
	fail := func(reason Reason, message string) UpdateResult {
		result.Reason = reason
		result.Message = message
		log.Debugf("update failed for %s/%s/%s: %s", req.Department, req.Name, req.Field, message)
		return result
	}

	if missing := missingFields(req); len(missing) > 0 {
		return fail(ReasonValidation, fmt.Sprintf("missing required field(s): %s", strings.Join(missing, ", ")))
	}

	dept, ok := o.departments[req.Department]
	if !ok {
		return fail(ReasonUnmappedDepartment, fmt.Sprintf("unknown department %q", req.Department))
	}

	sheetNames, uerr := o.sheetsToSearch(dept)
	if uerr != nil {
		return fail(uerr.reason, uerr.message)
	}

	nameColumn := dept.NameColumn
	if nameColumn == "" {
		nameColumn = "A"
	}
	loc, uerr := searchSheets(o.gateway, dept.SpreadsheetID, sheetNames, NameKey(req.Name), nameColumn, req.Field)
	if uerr != nil {
		return fail(uerr.reason, uerr.message)
	}

	previous, err := CoerceNumber(loc.CellValue)
	if err != nil {
		return fail(ReasonNonNumericValue, err.Error())
	}
	next := previous + req.Amount

	cell := sheets.CellRef(loc.SheetName, loc.ColumnLetter, loc.Row)
	if err := o.gateway.WriteCell(dept.SpreadsheetID, cell, FormatNumber(next)); err != nil {
		return fail(ReasonRemoteFailure, fmt.Sprintf("writing %s: %v", cell, err))
	}

	result.Success = true
	result.PreviousValue = FloatPtr(previous)
	result.NewValue = FloatPtr(next)
	result.Row = loc.Row
	result.Column = loc.Column
	result.ColumnLetter = loc.ColumnLetter
	result.SheetName = loc.SheetName
	log.Debugf("updated %s for %s: %s %s -> %s",
		req.Field, req.Name, cell, FormatNumber(previous), FormatNumber(next))
	return result
}

// sheetsToSearch returns the pinned sheet when the department names
// one, otherwise the workbook's sheets in workbook order.
func (o *Orchestrator) sheetsToSearch(dept Department) ([]string, *updateError) {
	if dept.Sheet != "" {
		return []string{dept.Sheet}, nil
	}
	names, err := o.gateway.ListSheetNames(dept.SpreadsheetID)
	if err != nil {
		return nil, &updateError{
			reason:  ReasonRemoteFailure,
			message: fmt.Sprintf("listing sheets: %v", err),
		}
	}
	if len(names) == 0 {
		return nil, &updateError{
			reason:  ReasonNameNotFound,
			message: "workbook has no sheets",
		}
	}
	return names, nil
}

func missingFields(req UpdateRequest) []string {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Department) == "" {
		missing = append(missing, "department")
	}
	if strings.TrimSpace(req.Field) == "" {
		missing = append(missing, "field")
	}
	return missing
}

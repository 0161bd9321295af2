package tracker

import "fmt"

// Reason classifies why an update failed. Every failure is recoverable
// at the per-request level; none aborts the batch.
type Reason string

const (
	ReasonValidation         Reason = "validation"
	ReasonUnmappedDepartment Reason = "unmapped_department"
	ReasonNameNotFound       Reason = "name_not_found"
	ReasonColumnNotFound     Reason = "column_not_found"
	ReasonNonNumericValue    Reason = "non_numeric_value"
	ReasonRemoteFailure      Reason = "remote_failure"
)

// UpdateRequest is one validated counter increment. Amount defaults to 1
// at the boundary before the request reaches the orchestrator.
type UpdateRequest struct {
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Field      string  `json:"field"`
	Amount     float64 `json:"amount"`
}

// UpdateResult records the outcome of one request. It is created once
// per request and never merged or retried.
type UpdateResult struct {
	Name          string   `json:"name"`
	Department    string   `json:"department"`
	Field         string   `json:"field"`
	Success       bool     `json:"success"`
	PreviousValue *float64 `json:"previousValue,omitempty"`
	NewValue      *float64 `json:"newValue,omitempty"`
	Row           int      `json:"row,omitempty"`
	Column        int      `json:"column,omitempty"`
	ColumnLetter  string   `json:"columnLetter,omitempty"`
	SheetName     string   `json:"sheetName,omitempty"`
	Reason        Reason   `json:"reason,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// Department maps a department name to its spreadsheet. An empty Sheet
// selects the all-sheets fallback search; a non-empty Sheet pins the
// search to that single sheet. NameColumn is a ColumnSpec (letter or
// header text) giving where player names live.
type Department struct {
	SpreadsheetID string
	Sheet         string
	NameColumn    string
}

// NonNumericError reports a cell whose existing content cannot be
// coerced to a number. The increment is refused rather than treating
// the cell as zero, which would mask bad data.
type NonNumericError struct {
	Value string
}

func (e *NonNumericError) Error() string {
	return fmt.Sprintf("cell value %q is not numeric", e.Value)
}

// FloatPtr returns a pointer to the given float value.
func FloatPtr(f float64) *float64 {
	return &f
}

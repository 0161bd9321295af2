package tracker

import (
	"errors"
	"strings"
	"testing"

	"tally/pkg/sheets"
)

func TestNameKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice", "alice"},
		{"  ALICE  ", "alice"},
		{"alice", "alice"},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		got := NameKey(tt.in)
		if got != tt.want {
			t.Errorf("NameKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveColumn(t *testing.T) {
	header := []string{"Name", "Kills", "Deaths", "Kills"}
	tests := []struct {
		spec   string
		want   int
		wantOK bool
	}{
		{"A", 0, true},
		{"Z", 25, true},
		{"a", 0, false}, // lowercase single char is a header lookup, not a letter address
		{"Kills", 1, true},   // first match wins over the duplicate at 3
		{"kills", 1, true},
		{" DEATHS ", 2, true},
		{"Assists", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ResolveColumn(header, tt.spec)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ResolveColumn(header, %q) = (%d, %v), want (%d, %v)",
				tt.spec, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolveColumnLetterIgnoresHeader(t *testing.T) {
	// A letter spec must resolve even against an empty header row.
	got, ok := ResolveColumn(nil, "C")
	if !ok || got != 2 {
		t.Errorf("ResolveColumn(nil, \"C\") = (%d, %v), want (2, true)", got, ok)
	}
}

func TestFindRow(t *testing.T) {
	grid := sheets.Grid{
		{"Name", "Kills"},
		{"Alice", "3"},
		{},
		{"BOB", "1"},
		{"bob", "9"},
	}
	tests := []struct {
		nameKey string
		wantRow int
		wantOK  bool
	}{
		{"alice", 2, true},
		{"bob", 4, true}, // first matching row wins; the duplicate at row 5 is never examined
		{"carol", 0, false},
	}
	for _, tt := range tests {
		match, ok := FindRow(grid, tt.nameKey, 0)
		if ok != tt.wantOK || (ok && match.Row != tt.wantRow) {
			t.Errorf("FindRow(grid, %q, 0) = (row %d, %v), want (row %d, %v)",
				tt.nameKey, match.Row, ok, tt.wantRow, tt.wantOK)
		}
	}
}

func TestFindRowSkipsShortRows(t *testing.T) {
	grid := sheets.Grid{
		{"ID", "Name"},
		{"1"},
		{"2", "alice"},
	}
	match, ok := FindRow(grid, "alice", 1)
	if !ok || match.Row != 3 {
		t.Errorf("FindRow = (row %d, %v), want (row 3, true)", match.Row, ok)
	}
}

func TestFindRowIsIdempotent(t *testing.T) {
	grid := sheets.Grid{
		{"Name"},
		{"alice"},
	}
	first, ok1 := FindRow(grid, "alice", 0)
	second, ok2 := FindRow(grid, "alice", 0)
	if ok1 != ok2 || first.Row != second.Row {
		t.Errorf("FindRow not idempotent: (%v, %v) vs (%v, %v)", first, ok1, second, ok2)
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"7", 7, false},
		{" 3.5 ", 3.5, false},
		{"-2", -2, false},
		{"N/A", 0, true},
		{"7 kills", 0, true},
	}
	for _, tt := range tests {
		got, err := CoerceNumber(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("CoerceNumber(%q) = (%v, %v), want (%v, err=%v)",
				tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestCoerceNumberErrorCarriesLiteral(t *testing.T) {
	_, err := CoerceNumber("N/A")
	if err == nil || !strings.Contains(err.Error(), "N/A") {
		t.Errorf("CoerceNumber(\"N/A\") error = %v, want message containing the literal", err)
	}
	var nonNumeric *NonNumericError
	if !errors.As(err, &nonNumeric) || nonNumeric.Value != "N/A" {
		t.Errorf("expected *NonNumericError carrying \"N/A\", got %#v", err)
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
	}
	for _, tt := range tests {
		got := ColumnLetter(tt.in)
		if got != tt.want {
			t.Errorf("ColumnLetter(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{0, "0"},
		{3.5, "3.5"},
		{-1, "-1"},
	}
	for _, tt := range tests {
		got := FormatNumber(tt.in)
		if got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

package tracker

import (
	"strconv"
	"strings"

	"tally/pkg/sheets"
)

// NameKey normalizes a raw name for row matching. Two raw names that
// normalize identically are indistinguishable to the locator.
func NameKey(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ResolveColumn maps a column spec to a zero-based index. A single
// uppercase letter addresses the column directly ("A" is 0) without
// consulting the header; anything else is matched case-insensitively
// against the header row, first match winning.
func ResolveColumn(headerRow []string, spec string) (int, bool) {
	trimmed := strings.TrimSpace(spec)
	if len(trimmed) == 1 && trimmed[0] >= 'A' && trimmed[0] <= 'Z' {
		return int(trimmed[0] - 'A'), true
	}
	want := strings.ToLower(trimmed)
	for i, cell := range headerRow {
		if strings.ToLower(strings.TrimSpace(cell)) == want {
			return i, true
		}
	}
	return 0, false
}

// RowMatch is a located data row. Row is 1-indexed to match the remote
// addressing convention (header row is row 1, first data row is row 2).
type RowMatch struct {
	Row  int
	Data []string
}

// FindRow returns the first data row whose name cell matches nameKey.
// Rows shorter than the name column are skipped. Duplicates are never
// examined: the earlier row always wins.
func FindRow(grid sheets.Grid, nameKey string, nameColumn int) (RowMatch, bool) {
	for i := 1; i < len(grid); i++ {
		row := grid[i]
		if len(row) <= nameColumn {
			continue
		}
		if NameKey(row[nameColumn]) == nameKey {
			return RowMatch{Row: i + 1, Data: row}, true
		}
	}
	return RowMatch{}, false
}

// CoerceNumber converts a cell's textual content to its numeric value.
// Empty or missing cells count as zero. Non-numeric content is a hard
// failure carrying the offending literal.
func CoerceNumber(cell string) (float64, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &NonNumericError{Value: cell}
	}
	return v, nil
}

// ColumnLetter converts a zero-based column index to its A1 letter,
// e.g. 0 -> "A", 26 -> "AA".
func ColumnLetter(index int) string {
	letter := ""
	for index >= 0 {
		letter = string(rune('A'+index%26)) + letter
		index = index/26 - 1
	}
	return letter
}

// FormatNumber renders a value the way it is written back to a cell:
// integers without a decimal point, everything else as the shortest
// round-trip representation.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package roster

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultColumn is the roster column holding student identifiers.
const DefaultColumn = "EYFID"

// Options controls how a roster is parsed.
type Options struct {
	// ColumnName is the header of the identifier column. Defaults to EYFID.
	ColumnName string
	// HeaderFallbackRows is how many additional rows to probe for the
	// header when the first row does not contain the column. Defaults to 1.
	HeaderFallbackRows int
}

func (o Options) withDefaults() Options {
	if o.ColumnName == "" {
		o.ColumnName = DefaultColumn
	}
	if o.HeaderFallbackRows == 0 {
		o.HeaderFallbackRows = 1
	}
	return o
}

// Extract reads student IDs from an Excel workbook. The identifier column is
// looked up on the first row, then on up to HeaderFallbackRows rows below it
// (roster exports often carry a title banner above the real header).
// Each ID is normalized to its canonical decimal form; duplicates fail the
// whole extraction.
func Extract(r io.Reader, opts Options) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("roster workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	return extractFromRows(rows, opts)
}

// ExtractCSV reads student IDs from a CSV roster using the same header
// lookup and normalization rules as Extract.
func ExtractCSV(r io.Reader, opts Options) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster CSV: %w", err)
	}

	return extractFromRows(rows, opts)
}

// ExtractList reads one identifier per line from a plain-text roster.
// IDs are normalized and checked for duplicates like the tabular readers.
func ExtractList(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		value := strings.TrimSpace(sc.Text())
		if value == "" {
			continue
		}
		id, ok := canonicalID(value)
		if !ok {
			return nil, &ParseError{Row: line, Value: value}
		}
		ids = append(ids, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster list: %w", err)
	}

	if dups := duplicates(ids); len(dups) > 0 {
		return nil, &DuplicateIDError{IDs: dups}
	}
	return ids, nil
}

// extractFromRows locates the identifier column and collects normalized IDs
// in row order.
func extractFromRows(rows [][]string, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	headerRow, col := -1, -1
	limit := opts.HeaderFallbackRows
	for i := 0; i <= limit && i < len(rows); i++ {
		if c := findColumn(rows[i], opts.ColumnName); c >= 0 {
			headerRow, col = i, c
			break
		}
	}
	if headerRow < 0 {
		return nil, &SchemaError{Column: opts.ColumnName}
	}

	var ids []string
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if col >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[col])
		if value == "" {
			continue
		}
		id, ok := canonicalID(value)
		if !ok {
			return nil, &ParseError{Row: i + 1, Value: value}
		}
		ids = append(ids, id)
	}

	if dups := duplicates(ids); len(dups) > 0 {
		return nil, &DuplicateIDError{IDs: dups}
	}

	return ids, nil
}

func findColumn(header []string, name string) int {
	for i, cell := range header {
		if strings.TrimSpace(cell) == name {
			return i
		}
	}
	return -1
}

// canonicalID coerces a cell value to its canonical decimal string form.
// Numeric-typed cells may surface as "1234.0"; the fractional formatting is
// discarded, as are leading zeros.
func canonicalID(value string) (string, bool) {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatInt(int64(f), 10), true
}

// duplicates returns each distinct value occurring more than once, in first
// occurrence order.
func duplicates(ids []string) []string {
	counts := make(map[string]int, len(ids))
	for _, id := range ids {
		counts[id]++
	}

	var dups []string
	seen := make(map[string]bool)
	for _, id := range ids {
		if counts[id] > 1 && !seen[id] {
			dups = append(dups, id)
			seen[id] = true
		}
	}
	return dups
}

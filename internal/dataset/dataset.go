package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a column once at construction time. Columns that are
// neither numeric nor text-like (datetimes, all-missing columns) are
// KindOther and are excluded from numeric and categorical analyses.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindOther       Kind = "other"
)

// Value is a single cell. Missing marks nulls; Num is populated for numeric
// columns, Str for everything else.
type Value struct {
	Num     float64
	Str     string
	Missing bool
}

// Column is a named, kind-tagged sequence of values.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// Dataset is an in-memory table of named, equal-length columns. Rows are
// positionally aligned; column order is significant for display.
type Dataset struct {
	Cols []Column
}

// New validates the columns and returns a dataset. Unequal column lengths
// or duplicate/empty names are construction-time errors; downstream
// operations assume a well-formed dataset and do not re-validate.
func New(cols []Column) (*Dataset, error) {
	seen := make(map[string]struct{}, len(cols))
	rows := -1
	for _, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("dataset: column with empty name")
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("dataset: duplicate column name %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if rows == -1 {
			rows = len(c.Values)
		} else if len(c.Values) != rows {
			return nil, fmt.Errorf("dataset: column %q has %d rows, want %d", c.Name, len(c.Values), rows)
		}
	}
	return &Dataset{Cols: cols}, nil
}

// FromRecords builds a dataset from a string header and row records, the
// shape produced by CSV and spreadsheet readers. Short rows are padded with
// missing cells; long rows are a construction-time error. Column kinds are
// inferred here and never re-inferred afterwards.
func FromRecords(header []string, rows [][]string) (*Dataset, error) {
	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{Name: strings.TrimSpace(name), Values: make([]Value, len(rows))}
	}
	for r, rec := range rows {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("dataset: row %d has %d fields, header has %d", r+1, len(rec), len(header))
		}
		for c := range cols {
			raw := ""
			if c < len(rec) {
				raw = strings.TrimSpace(rec[c])
			}
			if isMissingToken(raw) {
				cols[c].Values[r] = Value{Missing: true}
			} else {
				cols[c].Values[r] = Value{Str: raw}
			}
		}
	}
	for i := range cols {
		inferKind(&cols[i])
	}
	return New(cols)
}

// inferKind tags the column and, for numeric columns, parses every cell
// into Num. A column is numeric only if every non-missing cell parses as a
// number; all-datetime and all-missing columns are KindOther.
func inferKind(c *Column) {
	numCnt, dtCnt, nonMissing := 0, 0, 0
	nums := make([]float64, len(c.Values))
	for i, v := range c.Values {
		if v.Missing {
			continue
		}
		nonMissing++
		if x, ok := parseNumeric(v.Str); ok {
			numCnt++
			nums[i] = x
			continue
		}
		if parseTimeMaybe(v.Str) {
			dtCnt++
		}
	}
	switch {
	case nonMissing == 0:
		c.Kind = KindOther
	case numCnt == nonMissing:
		c.Kind = KindNumeric
		for i := range c.Values {
			if !c.Values[i].Missing {
				c.Values[i].Num = nums[i]
				c.Values[i].Str = ""
			}
		}
	case dtCnt == nonMissing:
		c.Kind = KindOther
	default:
		c.Kind = KindCategorical
	}
}

// Rows returns the row count. A dataset with zero columns has zero rows.
func (d *Dataset) Rows() int {
	if len(d.Cols) == 0 {
		return 0
	}
	return len(d.Cols[0].Values)
}

// ColumnNames returns names in display order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Cols))
	for i, c := range d.Cols {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	for i := range d.Cols {
		if d.Cols[i].Name == name {
			return &d.Cols[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy. Transformations operate on copies so callers
// never observe mutation of their input.
func (d *Dataset) Clone() *Dataset {
	cols := make([]Column, len(d.Cols))
	for i, c := range d.Cols {
		vals := make([]Value, len(c.Values))
		copy(vals, c.Values)
		cols[i] = Column{Name: c.Name, Kind: c.Kind, Values: vals}
	}
	return &Dataset{Cols: cols}
}

// MissingCount returns the number of missing cells in the column.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.Missing {
			n++
		}
	}
	return n
}

// Floats returns the non-missing numeric values in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.Missing {
			out = append(out, v.Num)
		}
	}
	return out
}

var missingTokens = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {},
}

func isMissingToken(s string) bool {
	_, ok := missingTokens[strings.ToLower(s)]
	return ok
}

// parseNumeric accepts plain and percent-suffixed numbers, tolerating
// thousands commas ("1,234.5").
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if raw == "" {
		return 0, false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, true
	}
	if strings.Contains(raw, ",") && strings.Contains(raw, ".") {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func parseTimeMaybe(s string) bool {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05",
	}
	for _, l := range layouts {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	return false
}

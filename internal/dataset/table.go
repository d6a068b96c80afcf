package dataset

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row maps a column name to one of: string, int64, float64, bool, time.Time or nil.
type Row map[string]any

// Table is a materialized query result. Columns keep the order reported by the driver.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a table from positional values. Each value slice must have one entry
// per column.
func NewTable(columns []string, values ...[]any) *Table {
	t := &Table{Columns: columns, Rows: make([]Row, 0, len(values))}
	for _, vals := range values {
		row := make(Row, len(columns))
		for i, c := range columns {
			if i < len(vals) {
				row[c] = normalize(vals[i])
			} else {
				row[c] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FromRows drains rows into a Table. The caller still owns rows and must close it.
func FromRows(rows *sql.Rows) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	t := &Table{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(t.Rows)+1, err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = normalize(vals[i])
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return t, nil
}

func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) Has(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Require returns a SchemaMismatchError for the first column that is not present.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if !t.Has(c) {
			return &SchemaMismatchError{Column: c, Available: t.Columns}
		}
	}
	return nil
}

// Floats reads a column as numbers. NULL becomes NaN; numeric strings (DECIMAL columns
// from mysql and sqlserver arrive as text) are parsed.
func (t *Table) Floats(column string) ([]float64, error) {
	if err := t.Require(column); err != nil {
		return nil, err
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		f, ok := toFloat(row[column])
		if !ok {
			return nil, &SchemaMismatchError{
				Column: column,
				Reason: fmt.Sprintf("row %d holds non-numeric value %v", i+1, row[column]),
			}
		}
		out[i] = f
	}
	return out, nil
}

// Labels reads a column as display strings.
func (t *Table) Labels(column string) ([]string, error) {
	if err := t.Require(column); err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = FormatValue(row[column])
	}
	return out, nil
}

// FormatValue renders a scalar the way it appears on chart ticks and legends.
// Integral floats print without a fraction so years read as 1999, not 1999.0.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}

func normalize(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return math.NaN(), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Kind is the declared type of a table column.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindTime:
		return "timestamp"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column describes one column of a table.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Value is a single typed cell. A Value with Valid == false is absent: aggregations
// exclude it instead of treating it as zero or an empty string.
type Value struct {
	Kind  Kind
	Str   string
	Num   float64
	Time  time.Time
	Valid bool
}

// Absent returns the absent marker for a column of the given kind.
func Absent(kind Kind) Value { return Value{Kind: kind} }

func StringValue(s string) Value { return Value{Kind: KindString, Str: s, Valid: true} }

func NumberValue(f float64) Value { return Value{Kind: KindNumber, Num: f, Valid: true} }

func TimeValue(t time.Time) Value { return Value{Kind: KindTime, Time: t, Valid: true} }

// String renders the value for labels and previews. Absent values render as "".
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindTime:
		return v.Time.Format("2006-01-02 15:04:05")
	default:
		return v.Str
	}
}

// Table is an immutable, ordered collection of rows sharing a column schema.
type Table struct {
	name    string
	columns []Column
	index   map[string]int
	rows    [][]Value
}

// NewTable builds a table. Column names must be unique and every row must have one
// value per column. The inputs are copied, so later changes by the caller are not seen.
func NewTable(name string, columns []Column, rows [][]Value) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q in table %q", c.Name, name)
		}
		index[c.Name] = i
	}

	copied := make([][]Value, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d of table %q has %d values, want %d", i, name, len(row), len(columns))
		}
		copied[i] = append([]Value(nil), row...)
	}

	return &Table{
		name:    name,
		columns: append([]Column(nil), columns...),
		index:   index,
		rows:    copied,
	}, nil
}

func (t *Table) Name() string { return t.name }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns a copy of the column schema.
func (t *Table) Columns() []Column { return append([]Column(nil), t.columns...) }

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Values returns a copy of all values of the named column in row order.
func (t *Table) Values(name string) ([]Value, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &ColumnError{Table: t.name, Column: name, Err: ErrColumnNotFound}
	}
	out := make([]Value, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out, nil
}

// Row returns a copy of the row at position r.
func (t *Table) Row(r int) []Value {
	return append([]Value(nil), t.rows[r]...)
}

// Head renders the first n rows as strings.
func (t *Table) Head(n int) *Preview {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	p := &Preview{Columns: make([]string, len(t.columns))}
	for i, c := range t.columns {
		p.Columns[i] = c.Name
	}
	for _, row := range t.rows[:n] {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		p.Rows = append(p.Rows, cells)
	}
	return p
}

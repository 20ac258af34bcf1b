package export

import (
	"sort"
)

// RowKind distinguishes data rows from derived rows in a table body
type RowKind string

const (
	RowData       RowKind = "data"
	RowSubtotal   RowKind = "subtotal"
	RowGrandTotal RowKind = "grand_total"
	RowBlank      RowKind = "blank"
	RowSummary    RowKind = "summary"
)

// Row is one body line of a table
type Row struct {
	Kind  RowKind
	Cells []string
}

// Table is a header plus body rows of string cells
type Table struct {
	Header []string
	Rows   []Row
}

// DataRows counts the rows of kind RowData
func (t Table) DataRows() int {
	n := 0
	for _, r := range t.Rows {
		if r.Kind == RowData {
			n++
		}
	}
	return n
}

// RowsOfKind returns the rows of one kind in order
func (t Table) RowsOfKind(kind RowKind) []Row {
	var rows []Row
	for _, r := range t.Rows {
		if r.Kind == kind {
			rows = append(rows, r)
		}
	}
	return rows
}

// Column extracts one cell from a record
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Definition describes a tabular report over records of type T.
// Filter, GroupBy, Subtotal and Trailer are optional.
type Definition[T any] struct {
	Columns []Column[T]
	Filter  func(T) bool
	// GroupBy groups kept records; groups are emitted in ascending key order
	// and records keep their input order within a group.
	GroupBy  func(T) string
	Subtotal func(key string, members []T) Row
	// Trailer appends rows after the body; it sees every kept record.
	Trailer func(kept []T) []Row
}

// Build runs the definition over records
func (d Definition[T]) Build(records []T) Table {
	table := Table{Header: make([]string, len(d.Columns))}
	for i, c := range d.Columns {
		table.Header[i] = c.Header
	}

	kept := make([]T, 0, len(records))
	for _, r := range records {
		if d.Filter == nil || d.Filter(r) {
			kept = append(kept, r)
		}
	}

	if d.GroupBy == nil {
		for _, r := range kept {
			table.Rows = append(table.Rows, d.dataRow(r))
		}
	} else {
		groups := make(map[string][]T)
		var keys []string
		for _, r := range kept {
			key := d.GroupBy(r)
			if _, ok := groups[key]; !ok {
				keys = append(keys, key)
			}
			groups[key] = append(groups[key], r)
		}
		sort.Strings(keys)

		for _, key := range keys {
			for _, r := range groups[key] {
				table.Rows = append(table.Rows, d.dataRow(r))
			}
			if d.Subtotal != nil {
				table.Rows = append(table.Rows, d.Subtotal(key, groups[key]))
			}
		}
	}

	if d.Trailer != nil {
		table.Rows = append(table.Rows, d.Trailer(kept)...)
	}

	return table
}

func (d Definition[T]) dataRow(r T) Row {
	cells := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		cells[i] = c.Value(r)
	}
	return Row{Kind: RowData, Cells: cells}
}

// sparseRow builds a row of width cells with only the given positions filled
func sparseRow(kind RowKind, width int, cells map[int]string) Row {
	row := Row{Kind: kind, Cells: make([]string, width)}
	for i, v := range cells {
		row.Cells[i] = v
	}
	return row
}

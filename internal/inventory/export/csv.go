package export

import (
	"strings"
)

const (
	fieldDelimiter = ","
	lineDelimiter  = "\n"
)

// EscapeField quotes a cell containing the delimiter, a quote or a line break,
// doubling internal quotes. Other values pass through unchanged.
func EscapeField(v string) string {
	if !strings.ContainsAny(v, fieldDelimiter+"\"\r\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// SerializeRow joins escaped cells with the field delimiter
func SerializeRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = EscapeField(c)
	}
	return strings.Join(escaped, fieldDelimiter)
}

// Serialize renders a table, with the header line iff includeHeaders
func Serialize(t Table, includeHeaders bool) string {
	lines := make([]string, 0, len(t.Rows)+1)
	if includeHeaders {
		lines = append(lines, SerializeRow(t.Header))
	}
	for _, r := range t.Rows {
		lines = append(lines, SerializeRow(r.Cells))
	}
	return strings.Join(lines, lineDelimiter)
}

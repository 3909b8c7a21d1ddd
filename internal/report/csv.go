// Package report reshapes orders, products, reviews and bookings into
// tabular exports (CSV and XLSX).
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const ContentTypeCSV = "text/csv;charset=utf-8"

// FormatValue renders a resolved value as CSV cell text. Absent values are empty.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.RFC3339)
	case *time.Time:
		if x == nil {
			return ""
		}
		return FormatValue(*x)
	case decimal.Decimal:
		return x.String()
	case []string:
		return strings.Join(x, ", ")
	case fmt.Stringer:
		return x.String()
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

// Escape quotes s when it holds a delimiter, a quote or a line break.
func Escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

type Table struct {
	Headers []string
	Rows    [][]string
}

// BuildTable resolves one row per record. A header with no entry in fields
// yields an empty column.
func BuildTable[T any](records []T, headers []string, fields map[string]Field[T]) Table {
	t := Table{Headers: append([]string(nil), headers...), Rows: make([][]string, 0, len(records))}
	for _, rec := range records {
		row := make([]string, len(headers))
		for i, h := range headers {
			f, ok := fields[h]
			if !ok {
				continue
			}
			row[i] = FormatValue(Resolve(rec, f))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// CSV renders the header line followed by one line per row, each newline terminated.
func (t Table) CSV() string {
	var b strings.Builder
	writeLine(&b, t.Headers)
	for _, row := range t.Rows {
		writeLine(&b, row)
	}
	return b.String()
}

func writeLine(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Escape(c))
	}
	b.WriteByte('\n')
}

func ConvertToCSV[T any](records []T, headers []string, fields map[string]Field[T]) string {
	return BuildTable(records, headers, fields).CSV()
}

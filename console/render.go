package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Konsultn-Engineering/dbconsole/statement"
)

// NullText is printed for SQL NULL values.
const NullText = "NULL"

// Render writes a read result as an aligned table followed by the summary
// line, or just the summary line for writes.
func Render(w io.Writer, res *statement.Result) error {
	if res.Kind == statement.KindRead && res.Rows != nil && len(res.Rows.Columns) > 0 {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

		rules := make([]string, len(res.Rows.Columns))
		for i, c := range res.Rows.Columns {
			rules[i] = strings.Repeat("-", max(len(c), 1))
		}
		fmt.Fprintln(tw, strings.Join(res.Rows.Columns, "\t"))
		fmt.Fprintln(tw, strings.Join(rules, "\t"))

		cells := make([]string, len(res.Rows.Columns))
		for _, row := range res.Rows.Rows {
			for i := range cells {
				cells[i] = ""
				if i < len(row) {
					cells[i] = FormatValue(row[i])
				}
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, res.Summary())
	return err
}

// FormatValue renders one column value.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return NullText
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

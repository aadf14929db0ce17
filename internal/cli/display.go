package cli

import (
	"fmt"
	"strings"

	"github.com/bwaklog/codd/pkg/ral"
)

// displayResult renders a statement result: the message for DDL/inserts,
// an aligned column table for queries.
func (r *REPL) displayResult(result *ral.Result) {
	if result.Columns == nil {
		if result.Message != "" {
			fmt.Fprintln(r.out, result.Message)
		}
		return
	}

	if len(result.Columns) == 0 {
		fmt.Fprintln(r.out, "(no columns)")
		return
	}

	maxWidth := r.config.Display.MaxColWidth

	widths := make([]int, len(result.Columns))
	for i, col := range result.Columns {
		widths[i] = len(col)
	}
	for _, row := range result.Rows {
		for i, val := range row {
			if n := len(val.String()); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > maxWidth {
			widths[i] = maxWidth
		}
	}

	fmt.Fprint(r.out, "\n")
	for i, col := range result.Columns {
		fmt.Fprintf(r.out, " %-*s ", widths[i], truncate(col, widths[i]))
		if i < len(result.Columns)-1 {
			fmt.Fprint(r.out, "│")
		}
	}
	fmt.Fprintln(r.out)

	for i := range result.Columns {
		fmt.Fprint(r.out, strings.Repeat("─", widths[i]+2))
		if i < len(result.Columns)-1 {
			fmt.Fprint(r.out, "┼")
		}
	}
	fmt.Fprintln(r.out)

	for _, row := range result.Rows {
		for i, val := range row {
			fmt.Fprintf(r.out, " %-*s ", widths[i], truncate(val.String(), widths[i]))
			if i < len(row)-1 {
				fmt.Fprint(r.out, "│")
			}
		}
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "\n(%d row(s))\n", len(result.Rows))
}

// truncate limits a string to maxLen characters, with an ellipsis when
// there is room for one.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

package cli

import (
	"fmt"
	"strings"
)

// ExecuteScript runs every statement in src against the session, in order,
// stopping at the first failure. Statements are separated by semicolons;
// line comments start with --.
func (r *REPL) ExecuteScript(src string) error {
	for i, stmt := range splitStatements(src) {
		if res := r.runStatement(stmt + ";"); res == commandError {
			return fmt.Errorf("script failed at statement %d: %s", i+1, stmt)
		} else if res == commandExit {
			return nil
		}
	}
	return nil
}

// splitStatements splits a script on semicolons, ignoring semicolons
// inside single-quoted strings, and strips -- line comments.
func splitStatements(src string) []string {
	var stmts []string
	var cur strings.Builder
	inString := false

	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case inString:
			cur.WriteByte(ch)
			if ch == '\'' {
				inString = false
			}
		case ch == '\'':
			cur.WriteByte(ch)
			inString = true
		case ch == '-' && i+1 < len(src) && src[i+1] == '-':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			cur.WriteByte('\n')
		case ch == ';':
			if s := strings.TrimSpace(cur.String()); s != "" {
				stmts = append(stmts, s)
			}
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}

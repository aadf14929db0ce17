package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bwaklog/codd/internal/config"
	"github.com/bwaklog/codd/internal/logger"
)

func newTestREPL(t *testing.T) (*REPL, *bytes.Buffer) {
	t.Helper()
	r := NewREPL(config.DefaultConfig(), logger.NewNop())
	var out bytes.Buffer
	r.SetOutput(&out)
	return r, &out
}

func TestSplitStatements(t *testing.T) {
	src := `
-- set up the relation
CREATE RELATION users (id INT PRIMARY KEY, name STR);
INSERT INTO users VALUES (1, 'semi;colon'); -- trailing comment
PROJECT name FROM users
`
	stmts := splitStatements(src)
	if len(stmts) != 3 {
		t.Fatalf("Expected 3 statements, got %d: %q", len(stmts), stmts)
	}
	if !strings.HasPrefix(stmts[0], "CREATE RELATION") {
		t.Errorf("Unexpected first statement: %q", stmts[0])
	}
	if !strings.Contains(stmts[1], "semi;colon") {
		t.Errorf("Semicolon inside string split the statement: %q", stmts[1])
	}
	if !strings.HasPrefix(stmts[2], "PROJECT") {
		t.Errorf("Unexpected last statement: %q", stmts[2])
	}
}

func TestExecuteScriptEndToEnd(t *testing.T) {
	r, out := newTestREPL(t)

	script := `
CREATE RELATION users (id INT PRIMARY KEY, name STR, phone INT);
INSERT INTO users VALUES (100, 'bob', 9999999999), (101, 'alice', 6666666666);
PROJECT phone FROM (PROJECT name, phone FROM users);
`
	if err := r.ExecuteScript(script); err != nil {
		t.Fatalf("ExecuteScript failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "CREATE RELATION users") {
		t.Errorf("Missing create message in output:\n%s", got)
	}
	if !strings.Contains(got, "INSERT 2") {
		t.Errorf("Missing insert message in output:\n%s", got)
	}
	if !strings.Contains(got, "9999999999") || !strings.Contains(got, "6666666666") {
		t.Errorf("Missing projected phones in output:\n%s", got)
	}
	if !strings.Contains(got, "(2 row(s))") {
		t.Errorf("Missing row count in output:\n%s", got)
	}
}

func TestExecuteScriptStopsOnError(t *testing.T) {
	r, _ := newTestREPL(t)

	script := `
CREATE RELATION t (a INT PRIMARY KEY);
PROJECT missing FROM t;
INSERT INTO t VALUES (1);
`
	if err := r.ExecuteScript(script); err == nil {
		t.Fatal("Expected script error")
	}
	// The statement after the failure must not have run
	res := r.runStatement("SHOW RELATIONS;")
	if res != commandOK {
		t.Fatal("SHOW RELATIONS failed")
	}
	if got, _ := r.cat.Get("t"); got.Cardinality() != 0 {
		t.Errorf("Statement after failure ran; cardinality = %d", got.Cardinality())
	}
}

func TestRunStatementSyntaxError(t *testing.T) {
	r, out := newTestREPL(t)

	if res := r.runStatement("PROJECT FROM;"); res != commandError {
		t.Errorf("Expected commandError, got %v", res)
	}
	if !strings.Contains(out.String(), "Syntax error") {
		t.Errorf("Expected syntax error message, got:\n%s", out.String())
	}
}

func TestRunStatementExit(t *testing.T) {
	r, _ := newTestREPL(t)
	if res := r.runStatement("EXIT;"); res != commandExit {
		t.Errorf("EXIT should return commandExit, got %v", res)
	}
	if res := r.runStatement("quit;"); res != commandExit {
		t.Errorf("quit should return commandExit, got %v", res)
	}
}

func TestBackslashCommands(t *testing.T) {
	r, out := newTestREPL(t)
	r.runStatement("CREATE RELATION users (id INT PRIMARY KEY, name STR);")

	out.Reset()
	if res := r.runBackslash("\\dr"); res != commandOK {
		t.Errorf("\\dr failed")
	}
	if !strings.Contains(out.String(), "users") {
		t.Errorf("\\dr output missing relation:\n%s", out.String())
	}

	out.Reset()
	if res := r.runBackslash("\\d users"); res != commandOK {
		t.Errorf("\\d users failed")
	}
	if !strings.Contains(out.String(), "PRIMARY KEY") {
		t.Errorf("\\d output missing key marker:\n%s", out.String())
	}

	out.Reset()
	if res := r.runBackslash("\\d"); res != commandError {
		t.Error("\\d without argument should fail")
	}

	if res := r.runBackslash("\\q"); res != commandExit {
		t.Error("\\q should exit")
	}

	out.Reset()
	if res := r.runBackslash("\\bogus"); res != commandError {
		t.Error("Unknown backslash command should fail")
	}
	if !strings.Contains(out.String(), "Unknown command") {
		t.Errorf("Missing unknown-command message:\n%s", out.String())
	}
}

func TestDisplayTruncatesWideValues(t *testing.T) {
	r, out := newTestREPL(t)
	r.config.Display.MaxColWidth = 10

	r.runStatement("CREATE RELATION t (id INT PRIMARY KEY, v STR);")
	r.runStatement("INSERT INTO t VALUES (1, 'a value much wider than ten characters');")
	out.Reset()
	if res := r.runStatement("PROJECT v FROM t;"); res != commandOK {
		t.Fatal("Projection failed")
	}

	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, "a value much wider") {
			t.Errorf("Value not truncated: %q", line)
		}
	}
	if !strings.Contains(out.String(), "...") {
		t.Errorf("Expected ellipsis in truncated output:\n%s", out.String())
	}
}

func TestPrintWelcomeShowsVersion(t *testing.T) {
	r, out := newTestREPL(t)
	r.printWelcome()
	if !strings.Contains(out.String(), Version) {
		t.Errorf("Welcome banner missing version %q:\n%s", Version, out.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short, 10) = %q", got)
	}
	if got := truncate("0123456789", 8); got != "01234..." {
		t.Errorf("truncate = %q, want 01234...", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("truncate = %q, want ab", got)
	}
}

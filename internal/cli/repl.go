// Package cli provides the interactive shell for codd.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bwaklog/codd/internal/config"
	"github.com/bwaklog/codd/internal/logger"
	"github.com/bwaklog/codd/pkg/catalog"
	"github.com/bwaklog/codd/pkg/ral"
	"github.com/chzyer/readline"
)

// Version of codd.
const Version = "0.1.0"

// REPL implements the interactive read-eval-print loop. Statements end
// with a semicolon and may span lines; backslash commands run immediately.
type REPL struct {
	config   *config.Config
	log      *logger.Logger
	out      io.Writer
	cat      *catalog.Catalog
	executor *ral.Executor
}

// NewREPL creates a REPL with a fresh catalog writing to stdout.
func NewREPL(cfg *config.Config, log *logger.Logger) *REPL {
	cat := catalog.NewCatalog()
	return &REPL{
		config:   cfg,
		log:      log.Named("repl"),
		out:      os.Stdout,
		cat:      cat,
		executor: ral.NewExecutor(cat),
	}
}

// SetOutput redirects result and message output, for scripts and tests.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Run starts the interactive loop and blocks until exit.
func (r *REPL) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.config.REPL.Prompt,
		HistoryFile:     r.config.REPL.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    newCompleter(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	r.printWelcome()

	continuePrompt := "-> "
	if pad := len(r.config.REPL.Prompt) - len(continuePrompt); pad > 0 {
		continuePrompt = strings.Repeat(" ", pad) + continuePrompt
	}
	var buffer strings.Builder

	for {
		if buffer.Len() > 0 {
			rl.SetPrompt(continuePrompt)
		} else {
			rl.SetPrompt(r.config.REPL.Prompt)
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if buffer.Len() > 0 {
				buffer.Reset()
				fmt.Fprintln(r.out, "^C")
			}
			continue
		} else if err == io.EOF {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Backslash commands run without a terminating semicolon
		if buffer.Len() == 0 && strings.HasPrefix(line, "\\") {
			if r.runBackslash(line) == commandExit {
				fmt.Fprintln(r.out, "Goodbye!")
				return nil
			}
			continue
		}

		if buffer.Len() > 0 {
			buffer.WriteString(" ")
		}
		buffer.WriteString(line)

		input := strings.TrimSpace(buffer.String())
		if !strings.HasSuffix(input, ";") {
			continue
		}
		buffer.Reset()

		if r.runStatement(input) == commandExit {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
}

type commandResult int

const (
	commandOK commandResult = iota
	commandExit
	commandError
)

// runStatement executes one complete RAL statement (or EXIT/QUIT/HELP).
func (r *REPL) runStatement(input string) commandResult {
	stmtText := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(input), ";"))
	if stmtText == "" {
		return commandOK
	}

	switch strings.ToUpper(stmtText) {
	case "EXIT", "QUIT":
		return commandExit
	case "HELP":
		r.printHelp()
		return commandOK
	}

	r.log.Debug("executing statement", "stmt", stmtText)

	stmt, err := ral.NewParser(stmtText).Parse()
	if err != nil {
		fmt.Fprintf(r.out, "Syntax error: %v\n", err)
		return commandError
	}
	result, err := r.executor.Execute(stmt)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return commandError
	}

	r.log.Debug("statement finished", "rows", len(result.Rows))
	r.displayResult(result)
	return commandOK
}

func (r *REPL) runBackslash(input string) commandResult {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return commandOK
	}

	switch strings.ToLower(parts[0]) {
	case "\\q", "\\quit", "\\exit":
		return commandExit

	case "\\?", "\\help":
		r.printHelp()
		return commandOK

	case "\\dr", "\\list":
		return r.runStatement("SHOW RELATIONS;")

	case "\\d", "\\describe":
		if len(parts) < 2 {
			fmt.Fprintln(r.out, "Usage: \\d <relation>")
			return commandError
		}
		return r.runStatement(fmt.Sprintf("DESCRIBE %s;", parts[1]))

	case "\\status":
		r.printStatus()
		return commandOK

	case "\\config":
		r.printConfig()
		return commandOK

	case "\\clear":
		fmt.Fprint(r.out, "\033[H\033[2J")
		return commandOK

	default:
		fmt.Fprintf(r.out, "Unknown command: %s\nType \\? for help\n", parts[0])
		return commandError
	}
}

func (r *REPL) printWelcome() {
	fmt.Fprintf(r.out, `codd %s — a relational algebra shell
Type HELP; or \? for available commands, \q to quit.

`, Version)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, `
RAL Statements (end with ;):
  CREATE RELATION name (attr TYPE [PRIMARY KEY], ...);
  DROP RELATION name;
  INSERT INTO name VALUES (v, ...), (v, ...);
  PROJECT * | attr, ... FROM input;
  RESTRICT input [WHERE cond {AND|OR cond}];
  SHOW RELATIONS;
  DESCRIBE name;

An input is a relation name or a parenthesized query:
  PROJECT phone FROM (PROJECT name, phone FROM users);

Types: INT (INTEGER), STR (STRING, TEXT)
Comparators: = != <> < <= > >=

Backslash Commands:
  \dr               List relations
  \d <relation>     Describe a relation
  \status           Show session status
  \config           Show configuration
  \clear            Clear screen
  \?, \help         Show this help
  \q, \quit         Exit`)
}

func (r *REPL) printStatus() {
	fmt.Fprintf(r.out, `
codd status
  Version:    %s
  Relations:  %d
  Log Level:  %s
`, Version, r.cat.Len(), r.config.Log.Level)
}

func (r *REPL) printConfig() {
	fmt.Fprintf(r.out, `
Current configuration
  log.level:              %s
  log.format:             %s
  log.output:             %s
  repl.history_file:      %s
  repl.prompt:            %q
  display.max_col_width:  %d
`, r.config.Log.Level, r.config.Log.Format, r.config.Log.Output,
		r.config.REPL.HistoryFile, r.config.REPL.Prompt, r.config.Display.MaxColWidth)
}

func newCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("CREATE",
			readline.PcItem("RELATION"),
		),
		readline.PcItem("DROP",
			readline.PcItem("RELATION"),
		),
		readline.PcItem("INSERT",
			readline.PcItem("INTO"),
		),
		readline.PcItem("PROJECT"),
		readline.PcItem("RESTRICT"),
		readline.PcItem("SHOW",
			readline.PcItem("RELATIONS"),
		),
		readline.PcItem("DESCRIBE"),
		readline.PcItem("HELP"),
		readline.PcItem("EXIT"),
		readline.PcItem("QUIT"),
		readline.PcItem("\\dr"),
		readline.PcItem("\\d"),
		readline.PcItem("\\status"),
		readline.PcItem("\\config"),
		readline.PcItem("\\clear"),
		readline.PcItem("\\help"),
		readline.PcItem("\\q"),
	)
}

package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"
)

type Options struct {
	Prompt     string
	History    *History
	HistoryMax int
	Stdin      io.ReadCloser // nil means the terminal
	Stdout     io.Writer     // nil means the terminal
}

const helpText = `commands:
  .dbinfo                  page size and catalog entry count
  .tables                  table names
  .schema                  tables with root page and SQL
  .page <n>                dump page n
  SELECT COUNT(*) FROM t   row count of t
  SELECT * FROM t          rows of t, '|' separated
  .history                 print history
  .help                    show help
  .quit | .exit            quit`

// Run reads commands until EOF or .quit and executes them against src.
// Command errors are printed and do not stop the loop.
func Run(src Source, opts Options) error {
	if opts.Prompt == "" {
		opts.Prompt = "novalite> "
	}
	if opts.History == nil {
		opts.History = NewHistory("")
	}
	if err := opts.History.Load(opts.HistoryMax); err != nil {
		slog.Warn("shell: load history", "err", err)
	}

	cfg := &readline.Config{
		Prompt:          opts.Prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
		Stdin:           opts.Stdin,
		Stdout:          opts.Stdout,
	}
	if opts.Stdin != nil {
		// piped input: leave the process terminal alone
		cfg.FuncIsTerminal = func() bool { return false }
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// preload history into readline so the up arrow works immediately
	for _, line := range opts.History.Lines() {
		_ = rl.SaveHistory(line)
	}

	out := rl.Stdout()
	exec := NewExecutor(src, out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			// EOF
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case ".quit", ".exit":
			return nil
		case ".help":
			fmt.Fprintln(out, helpText)
			continue
		case ".history":
			opts.History.Print(out, 50)
			continue
		}

		if err := opts.History.Append(line); err != nil {
			slog.Warn("shell: append history", "err", err)
		}
		if err := exec.Exec(line); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

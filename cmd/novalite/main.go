// Command novalite reads tables out of a SQLite-format database file.
//
//	novalite sample.db .dbinfo
//	novalite sample.db .tables
//	novalite sample.db "SELECT COUNT(*) FROM apples"
//	novalite sample.db            # interactive shell
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tuannm99/novalite"
	"github.com/tuannm99/novalite/internal"
	"github.com/tuannm99/novalite/internal/shell"
)

const version = "0.1.0"

var CLI struct {
	Config   string           `name:"config" short:"c" help:"YAML config file" type:"path"`
	LogLevel string           `name:"log-level" help:"Log level (debug, info, warn, error); overrides the config file"`
	Version  kong.VersionFlag `name:"version" help:"Print version and exit"`

	Path    string   `arg:"" help:"Database file" type:"existingfile"`
	Command []string `arg:"" optional:"" help:"Command to run (.dbinfo, .tables, .schema, .page N, SELECT ...). Starts a shell when omitted."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("novalite"),
		kong.Description("Read-only reader for SQLite-format database files."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		kctx.Exit(1)
	}
}

func run() error {
	cfg, err := internal.LoadConfig(CLI.Config)
	if err != nil {
		return err
	}
	if CLI.LogLevel != "" {
		cfg.Log.Level = CLI.LogLevel
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	db, err := novalite.Open(CLI.Path)
	if err != nil {
		return err
	}

	if len(CLI.Command) > 0 {
		return shell.NewExecutor(db, os.Stdout).Exec(strings.Join(CLI.Command, " "))
	}

	histPath := cfg.Shell.HistoryFile
	if histPath == "" {
		histPath = shell.DefaultHistoryPath()
	}
	fmt.Printf("%s %s: %s\n", cfg.AppName, version, CLI.Path)
	fmt.Println("type .help for help")
	return shell.Run(db, shell.Options{
		Prompt:     cfg.Shell.Prompt,
		History:    shell.NewHistory(histPath),
		HistoryMax: cfg.Shell.HistoryMax,
	})
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mgomes/circuit/circuit"
	"github.com/spf13/cobra"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	root := newRootCommand()
	root.SetArgs(args[1:])
	return root.Execute()
}

// app carries the state shared by every subcommand once flags and the config
// file have been resolved.
type app struct {
	configPath string
	lexMode    string
	logLevel   string
	noColor    bool

	level  *slog.LevelVar
	logger *slog.Logger
	engine *circuit.Engine
	color  bool
}

func newRootCommand() *cobra.Command {
	a := &app{level: new(slog.LevelVar)}

	root := &cobra.Command{
		Use:   "circuit",
		Short: "Lex, parse, and inspect Circuit scripts",
		Long: `circuit is the command line front end for the Circuit scripting language.

It tokenizes and parses scripts, reports lexical and grammar errors against
the source, and ships a REPL and a language server for editors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: ./"+defaultConfigName+" when present)")
	flags.StringVar(&a.lexMode, "lex-mode", "", "lexer mode: strict or permissive")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, or error")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newTokensCommand(a),
		newParseCommand(a),
		newCheckCommand(a),
		newAnalyzeCommand(a),
		newFmtCommand(a),
		newREPLCommand(a),
		newLSPCommand(a),
		newInitCommand(),
		newVersionCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.lexMode != "" {
		cfg.LexMode = a.lexMode
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.level.Set(level)
	a.logger = newLogger(cmd.ErrOrStderr(), a.level)

	mode, err := circuit.ParseLexMode(cfg.LexMode)
	if err != nil {
		return err
	}
	a.engine, err = circuit.NewEngine(circuit.Config{LexMode: mode, Logger: a.logger})
	if err != nil {
		return err
	}

	a.color = cfg.colorEnabled() && !a.noColor
	a.logger.Debug("configured", "config", cfg.source, "lex_mode", mode.String(), "log_level", level.String())
	return nil
}

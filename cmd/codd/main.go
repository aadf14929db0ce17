// codd - a relational algebra evaluation engine with an interactive shell.
package main

import (
	"fmt"
	"os"

	"github.com/bwaklog/codd/internal/cli"
	"github.com/bwaklog/codd/internal/config"
	"github.com/bwaklog/codd/internal/logger"
	"github.com/spf13/cobra"
)

var (
	buildDate = "dev"
	cfgFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "codd",
		Short: "codd - a relational algebra engine",
		Long: `codd is an in-memory relational algebra engine: typed relations,
projection and selection over them, and derived relations that can be
queried again.

Start the interactive shell:
  codd

Run a RAL script:
  codd run queries.ral`,
		RunE: runShell,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("codd %s (built %s)\n", cli.Version, buildDate)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "run <file>",
		Short: "Execute a RAL script",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	})

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	})
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSession() (*cli.REPL, *logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing logger: %w", err)
	}
	return cli.NewREPL(cfg, log), log, nil
}

func runShell(cmd *cobra.Command, args []string) error {
	repl, log, err := newSession()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting codd", "version", cli.Version)
	return repl.Run()
}

func runScript(cmd *cobra.Command, args []string) error {
	repl, log, err := newSession()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("error reading script: %w", err)
	}

	log.Info("running script", "file", args[0])
	return repl.ExecuteScript(string(src))
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "codd.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.WriteDefault(path); err != nil {
		return err
	}
	fmt.Printf("Created config file: %s\n", path)
	return nil
}

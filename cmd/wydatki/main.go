package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"wydatki/internal/cli"
	"wydatki/internal/config"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)

	env := &cli.Env{
		Open: func(ctx context.Context) (cli.Expenses, error) {
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cli.NewService(ctx, cfg, logger)
		},
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
		Logger: logger,
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, env)

	flag.Parse()
	ctx := context.Background()

	// No subcommand: behave like the interactive program.
	if flag.NArg() == 0 {
		os.Exit(int(cli.NewMenuCmd(env).Execute(ctx, flag.CommandLine)))
	}
	os.Exit(int(commander.Execute(ctx)))
}

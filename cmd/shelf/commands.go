package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/ASHISH26940/shelf/internal/config"
	"github.com/ASHISH26940/shelf/internal/journal"
	"github.com/ASHISH26940/shelf/internal/shell"
	"github.com/ASHISH26940/shelf/internal/store"
	"github.com/ASHISH26940/shelf/internal/vehicle"
)

func newRootCommand(in io.Reader, out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "shelf",
		Usage: "Manage an in-memory list of books from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.DefaultPath,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:  "journal",
				Usage: "Append applied commands to this file",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Do not print prompts",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShell(ctx, cmd, in, out, errOut)
		},
		Commands: []*cli.Command{
			{
				Name:  "vehicles",
				Usage: "Start the engines of the sample vehicle fleet",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "region",
						Usage: "Only vehicles built to this region's spec (US, EU)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return runVehicles(cmd, out)
				},
			},
			{
				Name:      "history",
				Usage:     "Print the commands recorded in a journal file",
				ArgsUsage: "<file>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return runHistory(cmd, out)
				},
			},
		},
	}
}

// loadConfig reads the config file. Only an explicitly requested file must exist.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.New()
	path := cmd.String("config")
	if err := cfg.Load(path); err != nil {
		if cmd.IsSet("config") || !os.IsNotExist(errors.Cause(err)) {
			return nil, err
		}
	}

	if cmd.Bool("debug") {
		cfg.LogLevel = "debug"
	}
	if cmd.IsSet("journal") {
		cfg.JournalPath = cmd.String("journal")
	}
	if cmd.Bool("quiet") {
		cfg.Quiet = true
	}
	return cfg, nil
}

func runShell(ctx context.Context, cmd *cli.Command, in io.Reader, out, errOut io.Writer) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	session := uuid.NewString()
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "shelf",
		Level:      cfg.Level(),
		JSONFormat: cfg.LogJSON,
		Output:     errOut,
	}).With("session", session)

	opts := []shell.Option{
		shell.WithLogger(logger),
		shell.WithSessionID(session),
		shell.WithQuiet(cfg.Quiet),
	}
	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			return err
		}
		defer j.Close()
		logger.Info("journaling commands", "path", cfg.JournalPath)
		opts = append(opts, shell.WithJournal(j))
	}

	return shell.New(store.NewInMemoryStore(), in, out, opts...).Run(ctx)
}

func runVehicles(cmd *cli.Command, out io.Writer) error {
	fleet := vehicle.Demo()
	if cmd.IsSet("region") {
		region, err := vehicle.ParseRegion(cmd.String("region"))
		if err != nil {
			return err
		}
		fleet = vehicle.InRegion(fleet, region)
	}
	for _, v := range fleet {
		fmt.Fprintln(out, v.StartEngine())
	}
	return nil
}

func runHistory(cmd *cli.Command, out io.Writer) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("usage: shelf history <file>")
	}

	n := 0
	err := journal.Read(path, func(e journal.Entry) error {
		n++
		_, err := fmt.Fprintln(out, e.String())
		return err
	})
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(out, "No commands recorded.")
	}
	return nil
}

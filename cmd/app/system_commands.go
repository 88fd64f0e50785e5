package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/allisson/orders/cmd/app/commands"
	"github.com/allisson/orders/internal/app"
	"github.com/allisson/orders/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the API server and the in-process outbox relay",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "consumer",
			Usage: "Start the notification consumer",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunConsumer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "relay-outbox",
			Usage: "Republish order events whose publication failed",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "once",
					Value: false,
					Usage: "Process a single batch and exit",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(context.Background()) }()

				relay, err := container.OutboxUseCase()
				if err != nil {
					return err
				}

				ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer cancel()

				return commands.RunRelayOutbox(ctx, relay, container.Logger(), cmd.Bool("once"))
			},
		},
	}
}

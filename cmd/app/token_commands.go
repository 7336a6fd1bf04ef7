package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secureid/cmd/app/commands"
	"github.com/allisson/secureid/internal/app"
	"github.com/allisson/secureid/internal/config"
)

func tokenFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "model",
			Aliases:  []string{"m"},
			Required: true,
			Usage:    "Record type the token is bound to (e.g., Order)",
		},
		&cli.StringFlag{
			Name:     "scope",
			Aliases:  []string{"s"},
			Required: true,
			Usage:    "Purpose the token is bound to (e.g., receipt)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "Output format: 'text' or 'json'",
		},
	}
}

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-token",
			Usage: "Issue a secure id token for a record",
			Flags: append(tokenFlags(),
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Record id (integers are encoded as numbers unless --string-id is set)",
				},
				&cli.BoolFlag{
					Name:  "string-id",
					Usage: "Treat --id as a string even when it is numeric",
				},
				&cli.DurationFlag{
					Name:  "ttl",
					Usage: "Token lifetime (e.g., 1h); zero issues a non-expiring token",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				uc, err := container.SecureIDUseCase()
				if err != nil {
					return err
				}

				return commands.RunGenerateToken(
					ctx,
					uc,
					commands.DefaultIO().Writer,
					cmd.String("model"),
					cmd.String("id"),
					cmd.Bool("string-id"),
					cmd.String("scope"),
					cmd.Duration("ttl"),
					cmd.String("format"),
					time.Now,
				)
			},
		},
		{
			Name:  "resolve-token",
			Usage: "Resolve a secure id token back to its record id",
			Flags: append(tokenFlags(),
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Token to resolve",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				uc, err := container.SecureIDUseCase()
				if err != nil {
					return err
				}

				return commands.RunResolveToken(
					ctx,
					uc,
					commands.DefaultIO().Writer,
					cmd.String("token"),
					cmd.String("model"),
					cmd.String("scope"),
					cmd.String("format"),
				)
			},
		},
	}
}

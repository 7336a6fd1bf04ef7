package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secureid/cmd/app/commands"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP and metrics servers (SIGHUP reloads the key ring)",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
	}
}

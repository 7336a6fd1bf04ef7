package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secureid/cmd/app/commands"
	"github.com/allisson/secureid/internal/config"
	cryptoService "github.com/allisson/secureid/internal/crypto/service"
)

func kmsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "kms-provider",
			Sources: cli.EnvVars("KMS_PROVIDER"),
			Usage:   "KMS provider wrapping the key (localsecrets, gcpkms, awskms, azurekeyvault, hashivault)",
		},
		&cli.StringFlag{
			Name:    "kms-key-uri",
			Sources: cli.EnvVars("KMS_KEY_URI"),
			Usage:   "KMS key URI (e.g., base64key://..., gcpkms://projects/.../cryptoKeys/...)",
		},
	}
}

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-key",
			Usage: "Generate the first secure id key and print the key ring settings",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Value: "1",
					Usage: "Key version embedded in every token sealed with this key",
				},
			}, kmsFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateKey(
					ctx,
					cryptoService.NewKMSService(),
					commands.DefaultIO().Writer,
					cmd.String("version"),
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "rotate-key",
			Usage: "Append a new key to SECURE_ID_KEYS and make it the primary version",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "New key version (defaults to the next integer version)",
				},
			}, kmsFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				return commands.RunRotateKey(
					ctx,
					cryptoService.NewKMSService(),
					commands.DefaultIO().Writer,
					cmd.String("version"),
					cmd.String("kms-provider"),
					cmd.String("kms-key-uri"),
					cfg.SecureIDKeys,
					cfg.SecureIDPrimaryKeyVersion,
				)
			},
		},
	}
}

package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/guardpost/cmd/app/commands"
	"github.com/allisson/guardpost/internal/app"
	"github.com/allisson/guardpost/internal/config"
)

func getIdentityCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-identity",
			Usage: "Create a new identity with authorization claims",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Unique username for the identity",
				},
				&cli.StringFlag{
					Name:    "display-name",
					Aliases: []string{"d"},
					Usage:   "Human-readable display name (defaults to username)",
				},
				&cli.StringFlag{
					Name:    "claims",
					Aliases: []string{"c"},
					Usage:   "JSON object of claims (omit for interactive mode)",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Value:   true,
					Usage:   "Whether the identity can authenticate immediately",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				identityUseCase, err := container.IdentityUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateIdentity(
					ctx,
					identityUseCase,
					container.Logger(),
					cmd.String("username"),
					cmd.String("display-name"),
					cmd.String("claims"),
					cmd.Bool("active"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			},
		},
	}
}

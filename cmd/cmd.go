package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

func devTokenFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "developer-token",
		Aliases: []string{"t"},
		Usage:   "MusicKit developer token (overrides config.toml)",
	}
}

func userTokenFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "user-token",
		Usage: "Music user token obtained out-of-band (skips the consent exchange)",
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize application configuration",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a config.toml file in the current directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Value:   "config.toml",
						Usage:   "Path for the config file",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.SetupConfig(cmd.String("path"))
				},
			},
		},
	}
}

func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize with Apple Music",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Run the MusicKit consent exchange via the local bridge",
				Flags: []cli.Flag{devTokenFlag(), userTokenFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.AuthLogin(ctx, cmd)
				},
			},
			{
				Name:  "browser",
				Usage: "Authorize via a browser consent page and local callback",
				Flags: []cli.Flag{devTokenFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.AuthBrowser(ctx, cmd)
				},
			},
			{
				Name:  "import",
				Usage: "Extract a music user token from a copied web player cURL command",
				Flags: []cli.Flag{
					devTokenFlag(),
					&cli.StringFlag{
						Name:    "curl-file",
						Aliases: []string{"f"},
						Usage:   "Path to a file containing the cURL command",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.AuthImport(ctx, cmd)
				},
			},
			{
				Name:  "status",
				Usage: "Show the current authorization stage and bridge availability",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.AuthStatus(ctx)
				},
			},
		},
	}
}

func replayCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "Fetch your Apple Music Replay data",
		Commands: []*cli.Command{
			{
				Name:  "summary",
				Usage: "Fetch the replay summary with top artists, albums and songs",
				Flags: []cli.Flag{
					devTokenFlag(),
					userTokenFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"F"},
						Usage:   "Export format: json, csv, markdown, text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the export to a file instead of stdout",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.ReplaySummary(ctx, cmd)
				},
			},
			{
				Name:  "history",
				Usage: "Fetch recently played tracks",
				Flags: []cli.Flag{
					devTokenFlag(),
					userTokenFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print JSON output"},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of tracks to fetch (overrides config)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.ReplayHistory(ctx, cmd)
				},
			},
		},
	}
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Browse your replay in an interactive terminal UI",
		Flags: []cli.Flag{devTokenFlag(), userTokenFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return r.TUI(ctx, cmd)
		},
	}
}

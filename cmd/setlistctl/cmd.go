package main

import "github.com/urfave/cli/v3"

// DefaultServerURL is where the HTTP commands look for the API.
const DefaultServerURL = "http://localhost:8000"

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setlistctl",
		Usage: "Operate the Project One setlist service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Base URL of the setlist API",
				Value:   DefaultServerURL,
				Sources: cli.EnvVars("SETLIST_URL"),
			},
		},
		Commands: r.register(),
	}
}

func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "List the setlist",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Songs,
	}
}

func toggleCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "toggle",
		Usage: "Flip a song between performed and not performed",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "title"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "Session token",
				Sources: cli.EnvVars("SETLIST_TOKEN"),
			},
		},
		Action: r.Toggle,
	}
}

func sessionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Session operations",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Issue a session token and share URL",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "role",
						Usage: "host or guest",
						Value: "host",
					},
				},
				Action: r.SessionCreate,
			},
		},
	}
}

func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show store diagnostics reported by the server",
		Action: r.Status,
	}
}

// adminCommand works on the configured store directly, without the server.
func adminCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Store maintenance using the server's configuration",
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Insert the default setlist if the store is empty",
				Action: r.AdminSeed,
			},
			{
				Name:  "add-song",
				Usage: "Append a song to the setlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Artist name (defaults to Project One)",
					},
					&cli.IntFlag{
						Name:  "year",
						Usage: "Release year, 0 for unknown",
					},
				},
				Action: r.AdminAddSong,
			},
			{
				Name:  "deactivate",
				Usage: "Revoke a session token",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "token"},
				},
				Action: r.AdminDeactivate,
			},
			{
				Name:  "activate",
				Usage: "Restore a revoked session token",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "token"},
				},
				Action: r.AdminActivate,
			},
		},
	}
}

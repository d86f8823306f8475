// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/hbnb/internal/formatter"
	"github.com/urfave/cli/v3"
)

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "state",
			Usage: "State ID to search in (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "city",
			Usage: "City ID to search in (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:    "amenity",
			Aliases: []string{"a"},
			Usage:   "Amenity ID every result must have (repeatable)",
		},
	}
}

func formatFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: " + strings.Join(formatter.Formats, ", "),
		Value:   value,
	}
}

func urlFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "url",
		Usage: "API root, e.g. http://localhost:5001/api/v1 (default: from [server] config)",
	}
}

func jsonFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output raw JSON",
	}
}

// setupCommand creates the config file and database schema.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml if missing and run database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
		},
		Action: r.SetupDatabase,
	}
}

// dbCommand handles migration bookkeeping.
func dbCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "db",
		Usage: "Database migration commands",
		Commands: []*cli.Command{
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.DBRollback,
			},
			{
				Name:   "status",
				Usage:  "Show applied and pending migrations",
				Action: r.DBStatus,
			},
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API and landing page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to bind (default: [server] host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (default: [server] port)",
			},
		},
		Action: r.Serve,
	}
}

func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load states, cities, amenities, users and places from a JSON fixture",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Fixture file",
				Required: true,
			},
		},
		Action: r.Seed,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write one place listing per state plus a manifest",
		Flags: []cli.Flag{
			formatFlag("json"),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: hbnb_export_<epoch>)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent writers",
				Value: 4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Maximum files written per second (0 for unlimited)",
			},
		},
		Action: r.Export,
	}
}

func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print every record of a kind (states, cities, amenities, places, users)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "kind"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Single-line JSON",
			},
		},
		Action: r.List,
	}
}

func getCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Print one record by kind and ID",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "kind"},
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Single-line JSON",
			},
		},
		Action: r.Get,
	}
}

func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "search",
		Usage:  "Filter places by states, cities and amenities against local storage",
		Flags:  append(filterFlags(), formatFlag("text")),
		Action: r.Search,
	}
}

// apiCommand calls a running server
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Call a running HBnB API",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "GET /status",
				Flags:  []cli.Flag{urlFlag(), jsonFlag()},
				Action: r.APIStatus,
			},
			{
				Name:   "stats",
				Usage:  "GET /stats",
				Flags:  []cli.Flag{urlFlag(), jsonFlag()},
				Action: r.APIStats,
			},
			{
				Name:   "search",
				Usage:  "POST /places_search",
				Flags:  append(filterFlags(), urlFlag(), jsonFlag()),
				Action: r.APISearch,
			},
			{
				Name:  "get",
				Usage: "Direct GET, prints the response body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					urlFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					urlFlag(),
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for browsing the catalog.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Browse states, cities and places interactively",
		Flags: []cli.Flag{
			formatFlag("json"),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Export directory for the e key",
			},
		},
		Action: r.TUI,
	}
}

// Package command provides CLI command definitions for estate-cli.
//
// It uses urfave/cli/v2 for command parsing. Every invocation shares a
// token file, so a login from one command authenticates the rest.
package command

import (
	"encoding/json"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nainaland/estate-go/internal/client"
	"github.com/nainaland/estate-go/internal/cli/output"
	"github.com/nainaland/estate-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "estate-cli",
		Usage:   "Nainaland estate service command-line tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			StatusCommand(),
			PropertyCommand(),
			BlogCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Server address (e.g., localhost:5000)",
			EnvVars: []string{"NAINALAND_SERVER"},
			Value:   "localhost:5000",
		},
		&cli.StringFlag{
			Name:    "token-file",
			Usage:   "Path to the session token file",
			EnvVars: []string{"NAINALAND_TOKEN_FILE"},
			Value:   client.DefaultTokenPath(),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json",
			Value:   "table",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout",
			Value: 30 * time.Second,
		},
	}
}

// newClient builds an API client from the global flags.
func newClient(c *cli.Context) (*client.Client, error) {
	return client.New(client.Config{
		Server:     c.String("server"),
		TokenStore: client.NewFileTokenStore(c.String("token-file")),
		Timeout:    c.Duration("timeout"),
	})
}

// render writes data in the selected output format.
func render(c *cli.Context, table *output.Table, data any) error {
	if c.String("output") == "json" {
		f := &output.JSONFormatter{}
		return f.Format(os.Stdout, data)
	}
	return table.Render(os.Stdout)
}

// renderJSON writes data as JSON regardless of the output flag.
func renderJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

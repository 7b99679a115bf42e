// Package main provides the entry point for estate-cli.
//
// estate-cli is the command-line tool for the Nainaland estate
// service: login once, then browse or manage listings and posts from
// the same shell.
package main

import (
	"fmt"
	"os"

	"github.com/nainaland/estate-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "modelctl",
		Usage:   "Inspect, try out and publish high value model artifacts",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Commands: []*cli.Command{
			inspectCommand(),
			scoreCommand(),
			migrateCommand(),
			publishCommand(),
		},
	}
}

package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/laast/output"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "laast",
		Usage: "language-agnostic syntax trees and structural similarity",
		Commands: []*cli.Command{
			statsCommand(),
			distanceCommand(),
			treeCommand(),
			encodeCommand(),
			languagesCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		output.WriteError(os.Stderr, err)
		os.Exit(1)
	}
}

// Package main provides the CLI for the Composer email layout engine.
package main

import (
	"os"

	"github.com/blockmail/composer/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

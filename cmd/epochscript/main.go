// Package main is the entry point for the epochscript CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/epochscript/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

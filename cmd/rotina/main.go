// Package main is the entry point for the rotina CLI.
package main

import (
	"os"

	"github.com/rotina/rotina/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

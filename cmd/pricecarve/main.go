// Package main is the entry point for the pricecarve CLI.
package main

import (
	"os"

	"github.com/pricecarve/pricecarve/cmd/pricecarve/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the rne-fetch CLI.
package main

import (
	"os"

	"github.com/ouestdata/rne-client/cmd/rne-fetch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

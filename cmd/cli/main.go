// Package main is the entry point for the connect-reports CLI.
package main

import (
	"os"

	"github.com/eklokova/connect-reports/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

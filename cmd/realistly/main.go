// Package main is the entry point for the realistly CLI.
package main

import (
	"fmt"
	"os"

	"github.com/anerudhh/realistly/internal/cli"
	"github.com/anerudhh/realistly/internal/config"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", err)
	}

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

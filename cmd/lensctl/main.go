// Package main is the entry point for the lensctl CLI tool.
package main

import (
	"os"

	"github.com/raja-kanniappa/agentlens/cmd/lensctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

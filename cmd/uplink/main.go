// Package main is the entry point for the uplink CLI.
package main

import (
	"os"

	"github.com/omaciel/uplink/cmd/uplink/app"
	"github.com/omaciel/uplink/pkg/logger"
)

func main() {
	// Initialize the logger
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/SscSPs/bookkeeping_core/internal/commands"
)

// @title Bookkeeping Core API
// @version 1.0
// @description Double-entry bookkeeping: chart of accounts, journal entries, general ledger and trial balance.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

/*
main.go - Application entry point

PURPOSE:
  The clasc binary serves the site and its calculators, and exposes the same
  calculators and the reference-data import on the command line.

COMMANDS:
  clasc serve                                   HTTP server
  clasc actuarial --start --end --salary        One actuarial estimate
  clasc liquidation --salary --aid --days       One labor settlement
  clasc rates seed [--db] [--file]              Import reference data into SQLite
  clasc rates export [--db] [--file]            Print the active rates document

CONFIGURATION:
  --config selects a YAML file; otherwise ./configs/config.yaml or
  ./config.yaml is used when present. CLASC_* environment variables and .env
  override it. See config/config.go.

SEE ALSO:
  - serve.go: Server startup and graceful shutdown
  - rates.go: Reference data source selection
*/
package main

import (
	"os"
	_ "time/tzdata"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

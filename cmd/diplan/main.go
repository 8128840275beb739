// Command diplan builds the webapp components listed in a YAML plan file and
// prints the handles it built.
//
// Usage:
//
//	diplan list
//	diplan run --plan plan.yaml [--serve :8080]
//
// Plan file:
//
//	build: [MySQL, Cache, WebServer]
//	rebuild: [Postgres]
//
// Settings come from an optional config file (--config), a .env file and
// DIPLAN_* environment variables, e.g. DIPLAN_LOG_LEVEL=debug or
// DIPLAN_TRACING_ENABLED=true.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"slices"

	"github.com/urfave/cli/v3"
)

// getCommands lists the runtime commands (server, consumer, migrate, relay-outbox)
// followed by the operator commands.
func getCommands(version string) []*cli.Command {
	return slices.Concat(getSystemCommands(version), getUserCommands())
}

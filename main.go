// Package main is the entry point for the mediathek CLI.
package main

import (
	"github.com/mediathek-cli/mediathek/cmd"
	"github.com/mediathek-cli/mediathek/config"
	"github.com/mediathek-cli/mediathek/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

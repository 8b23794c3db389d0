// Package main is the entry point for the mangasan application.
package main

import (
	"github.com/mangasan-cli/mangasan/cmd"
	"github.com/mangasan-cli/mangasan/config"
	"github.com/mangasan-cli/mangasan/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

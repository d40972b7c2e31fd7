// Package main is the kurasora entry point.
package main

import (
	"github.com/kurasora/kurasora/cmd"
	"github.com/kurasora/kurasora/config"
	"github.com/kurasora/kurasora/internal/cache"
	"github.com/kurasora/kurasora/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}

// Package main is the entry point for the buildvars application.
package main

import (
	"github.com/samber/lo"
	"github.com/tmessages/buildvars/cmd"
	"github.com/tmessages/buildvars/config"
	"github.com/tmessages/buildvars/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

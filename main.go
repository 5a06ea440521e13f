// Package main is the entry point of hostplay.
package main

import (
	"github.com/hostplay/hostplay/cmd"
	"github.com/hostplay/hostplay/config"
	"github.com/hostplay/hostplay/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

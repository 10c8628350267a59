package cmd

import (
	"github.com/shadercoder/Salty/log"
	"github.com/urfave/cli"
)

var logger = log.New("salty")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

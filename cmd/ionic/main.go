package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/reza1mahb/zano/internal/config"
)

func main() {
	if err := config.InitConfig(); err != nil {
		fatal(err)
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "ionic swap CLI"
	app.Usage = "Command line interface for negotiating ionic swaps"
	app.Commands = append(
		app.Commands,
		&inspect,
		&demo,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[ionic] %v\n", err)
	os.Exit(1)
}

package main

import (
	"github.com/uvzlabs/launchpad/cli"
	"github.com/uvzlabs/launchpad/logger"
)

func main() {
	logger.InitLogger()
	cli.Execute()
}

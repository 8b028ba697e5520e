package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/tabletalk-dev/tabletalk/cmd/cli"
)

func init() {
	// Configure log format without timestamps
	log.SetTimeFormat("")
	log.SetStyles(log.DefaultStyles())
	log.SetLevel(log.InfoLevel)
}

func main() {
	if err := cli.Execute(); err != nil {
		log.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

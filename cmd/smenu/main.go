package main

import (
	"os"

	"github.com/moasq/smenu/internal/commands"
	"github.com/moasq/smenu/internal/terminal"
)

func main() {
	if err := commands.Execute(); err != nil {
		terminal.Error(err.Error())
		os.Exit(1)
	}
}

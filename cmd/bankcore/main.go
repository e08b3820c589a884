package main

import (
	"os"

	"github.com/bankcore-dev/bankcore/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

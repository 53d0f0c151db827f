package main

import (
	"os"

	"github.com/penwyp/cydconf/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

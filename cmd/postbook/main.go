package main

import (
	"os"

	"github.com/postbook-dev/postbook/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/taxdesk-dev/taxdesk/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"e2ekeys/cmd/e2ekeys/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

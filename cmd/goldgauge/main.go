package main

import (
	"os"

	"goldgauge/cmd/goldgauge/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

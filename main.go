package main

import (
	"os"

	"github.com/lumenlabs/lumen-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

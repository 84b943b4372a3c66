package main

import (
	"os"

	"github.com/rustyeddy/cmegaps/cmd/cmegaps/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

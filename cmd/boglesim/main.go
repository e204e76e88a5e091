package main

import (
	"os"

	"github.com/bogleworks/boglesim/cmd/boglesim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

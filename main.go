package main

import (
	"os"

	"github.com/hydralabs/forge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

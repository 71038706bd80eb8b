package main

import (
	"os"

	"github.com/trknhr/ghosttext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/quantumrishi/rishi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

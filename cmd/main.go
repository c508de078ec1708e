package main

import (
	"os"

	"github.com/orgball2608/mention-pulse/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/mdgate/mdgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

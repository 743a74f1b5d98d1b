package main

import (
	"os"

	"github.com/kandasoft/salesdojo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

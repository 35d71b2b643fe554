package main

import (
	"os"

	"github.com/timekeep/timekeep/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

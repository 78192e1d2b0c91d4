package main

import (
	"os"

	"github.com/banna-commits/winnow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

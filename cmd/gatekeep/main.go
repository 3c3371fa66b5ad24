package main

import (
	"os"

	"gatekeep/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}

package main

import (
	"os"

	"github.com/rpupo63/projectblox-backend/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

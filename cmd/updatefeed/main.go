package main

import (
	"os"

	"github.com/updatefeed/updatefeed/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}

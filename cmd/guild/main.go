package main

import (
	"fmt"
	"os"

	"go.appointy.com/guild/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(cli.BuildInfo{Version: version, Commit: commit, Date: date}); err != nil {
		fmt.Fprintln(os.Stderr, "guild:", err)
		os.Exit(1)
	}
}

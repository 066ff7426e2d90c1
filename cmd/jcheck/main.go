package main

import (
	"fmt"
	"os"

	"github.com/roach88/jcheck/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "jcheck: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}

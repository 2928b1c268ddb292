package main

import (
	"fmt"
	"os"

	"github.com/MrEthical07/goHelper/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "helperctl:", err)
		os.Exit(cli.GetExitCode(err))
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/platinummonkey/advocates/pkg/cli"
)

func main() {
	if err := cli.NewViewCommand().Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"miniboard/cmd/cli/root"
)

func main() {
	if err := root.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

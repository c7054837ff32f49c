package main

import (
	"fmt"
	"os"

	"collectibles/cmd"
	"collectibles/internal/api"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, api.UserMessage(err))
		os.Exit(1)
	}
}

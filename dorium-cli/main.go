package main

import (
	"fmt"
	"os"

	"github.com/dorium/dorium-contracts/dorium-cli/cmd"
)

func main() {
	rootCmd := cmd.Cmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// main is the entry point for the repostats CLI.
package main

import (
	"os"

	"github.com/huangsam/repostats/cmd"
	"github.com/huangsam/repostats/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}

// main is the entry point for the weektrack CLI.
package main

import (
	"github.com/huangsam/weektrack/cmd"
	"github.com/huangsam/weektrack/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Error starting CLI", err)
	}
}

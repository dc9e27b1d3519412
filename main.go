package main

import (
	"os"

	"github.com/birmacher/econ-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

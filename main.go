package main

import (
	"os"

	"github.com/learnflix/learnflix/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

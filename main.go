package main

import (
	"os"

	"github.com/componentry/sfcsplit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

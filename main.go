package main

import (
	"os"

	"github.com/abhisek/quantpath/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/abhisek/cogtests/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

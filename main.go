package main

import (
	"os"

	"github.com/grovetools/iniedit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

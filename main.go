package main

import (
	"os"

	"github.com/smartenergy/aeos-ml/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/obraflow/obraflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

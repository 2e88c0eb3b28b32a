package main

import (
	"os"

	"github.com/gasparian/rp-lsh-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/EkalavyanS/Flashy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

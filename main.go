package main

import (
	"os"

	"github.com/gravitdam/gravitdam/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

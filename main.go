package main

import (
	"os"

	"sky-scheduling/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

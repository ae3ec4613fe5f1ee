package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "v0.1.0"

// VersionCmd prints the current version of sky-scheduling
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sky-scheduling",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sky-scheduling " + version)
	},
}

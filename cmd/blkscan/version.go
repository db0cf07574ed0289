package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags; defaults to "dev" otherwise.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the blkscan version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("blkscan version", version)
	},
}

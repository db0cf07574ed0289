// Package main implements the blkscan CLI: subcommands registered in
// init(), Execute() called once from main(). This tool reads one file
// and prints what it finds; all decoding lives under internal/.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "blkscan",
	Short: "blkscan decodes and verifies Bitcoin blk*.dat block files",
	Long: `blkscan parses raw blockchain storage files produced by a
Bitcoin-compatible full node, verifying each block's proof-of-work and
Merkle root against the values declared in its header.`,
}

// Execute runs the root command; called once from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(scanCmd)

	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
}

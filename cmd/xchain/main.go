// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/crosschain/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "xchain",
	Short: "Cross-chain message orchestrator CLI",
	Long: `xchain drives the cross-chain message orchestrator: it lists configured
chains, converts addresses between chain formats, decodes wire messages and
runs messages through the full send/receive pipeline over the in-process
loopback protocol.`,
	Version:       fmt.Sprintf("%s (built %s)", version, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String(config.ConfigFileKey, "", "path to a JSON config file (XCHAIN_CONFIG_FILE)")
	rootCmd.PersistentFlags().String(config.LogLevelKey, "", "log level override")

	rootCmd.AddCommand(chainsCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
}

// Package main provides the entry point for the solscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for solscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solscan",
		Short: "Privacy auditing tool for Solana addresses and transactions",
		Long: `solscan is a privacy auditing tool for Solana wallets, programs, and transactions.
It analyzes public on-chain activity and reports traceability risks:
behavioral fingerprints, timing patterns, links to exchanges and other
publicly labeled entities, and metadata leaks in memo fields.

solscan only reads public blockchain data. It never needs or touches keys.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package main provides the entry point for the solscan CLI.
//
// solscan is a privacy auditing tool for Solana addresses and transactions.
// It analyzes on-chain activity for traceability risks, behavioral
// fingerprints, and links to publicly known entities.
//
// Usage:
//
//	solscan scan <address>
//	solscan scan --type transaction <signature>
//
// See --help for all available options.
package main

// main is the entry point for solscan.
func main() {
	Execute()
}

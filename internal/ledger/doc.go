// Package ledger implements the data-access collaborator that fetches raw
// per-transaction records from a Solana RPC node.
//
// The package owns all network concerns: retries, backoff, and rate-limit
// handling. Its contract with the core pipeline is deliberately forgiving:
// Collect never fails on transient network errors. It returns a best-effort,
// possibly partial batch and records what went wrong as warnings, so the
// normalizer downstream only ever sees an empty or partial batch, never an
// error from this layer.
package ledger

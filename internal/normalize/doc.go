// Package normalize converts raw ledger records into the canonical scan
// context the detectors consume.
//
// Design decisions:
//   - Normalization never fails a whole scan. A transaction with missing
//     account keys, short balance arrays, or any other structural defect is
//     dropped with a warning and processing continues.
//   - Native transfer reconstruction pairs each account whose balance
//     increased with the first account, in declaration order, whose balance
//     decreased. Multiple senders in one transaction are paired
//     approximately.
//   - The output context is built once and never mutated afterwards.
package normalize

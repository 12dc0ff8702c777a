// Package heuristic runs privacy-risk detectors over a scan context.
//
// Design decisions:
//   - Detectors are pure: no side effects, deterministic for identical
//     input, and tolerant of absent protocol-specific fields. A detector
//     that has nothing to say returns an empty list.
//   - The engine isolates detector failures. A detector that returns an
//     error or panics contributes zero signals; the remaining detectors
//     still run. Evaluation itself never fails.
//   - The detector list is fixed at engine construction. Signals are
//     stable-sorted by severity, so detectors of equal severity appear in
//     registration order.
package heuristic

// Package model defines the core data structures shared across the scanner:
// severity levels, privacy signals with typed evidence, the normalized scan
// context that detectors consume, and the final privacy report.
//
// All types in this package are plain data. They are constructed once per
// scan and never mutated afterwards, which is what makes concurrent batch
// scanning safe without locking.
package model

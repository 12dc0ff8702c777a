// Package pipeline orchestrates a scan as an ordered sequence of steps:
// collect raw records, normalize them into a scan context, evaluate the
// detectors, and build the report.
//
// Each scan owns its own Scan state, so many scans can run concurrently
// without locking; BatchProcessor does exactly that for lists of targets.
package pipeline

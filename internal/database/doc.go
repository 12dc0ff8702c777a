// Package database provides SQLite-based storage for scan history.
//
// The core pipeline never touches storage; the CLI persists finished
// reports here so that scans can be compared over time.
package database

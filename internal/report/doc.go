// Package report assembles privacy reports and writes them in multiple
// output formats.
//
// The builder is pure assembly over an evaluated scan: it copies context
// fields, attaches the sorted signal list, and derives counts, mitigation
// advice, and the known-entities list. Writers render a finished report as
// JSON, Markdown, or plain text; MultiWriter fans one report out to several
// destinations.
package report

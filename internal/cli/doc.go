// Package cli implements the command-line interface for classdir.
//
// The cli package provides the Cobra-based CLI: it resolves configuration
// from defaults, an optional YAML file, and flags, wires the browser
// session, HTTP fetcher, and storage into the scraper, and formats the
// resulting catalog as text or JSON.
package cli

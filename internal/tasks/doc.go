// Package tasks orchestrates the replay retrieval pipeline.
//
// The core abstraction is [ReplayEngine], the surface the CLI and TUI call:
// configure, authorize, and fetch. Long operations emit progress updates via
// channels for non-blocking status reporting.
package tasks

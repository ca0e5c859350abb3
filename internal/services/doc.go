// Package services implements the Apple Music catalog API client.
//
// The client consumes two user-scoped endpoints: the yearly replay
// summary (music-summaries) and the recently played tracks resource,
// aggregated across offset pages. Raw response shapes live here together
// with the normalizer that flattens them into [models] records.
package services

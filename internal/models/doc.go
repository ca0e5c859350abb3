// Package models defines the UI-ready record shapes produced by the
// replay normalizer.
//
// Records are flat and total: every raw catalog item yields exactly one
// record, with absent display fields degraded to the Unknown/zero
// sentinels rather than omitted.
package models

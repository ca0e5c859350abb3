// Package musickit wraps the MusicKit SDK behind a narrow [Adapter]
// contract and drives the configure → authorize state machine.
//
// The adapter is a pass-through: it performs no retries and attaches no
// policy. All recovery behavior, including the side-channel token re-read
// after a reported authorize failure, lives in [Authorizer].
package musickit

// Package api is the typed facade over the backend REST API. A Client owns
// one session at a time (transport plus cancellation group) and exposes the
// backend's resources as typed methods: every synchronous result is decoded
// into an internal/schema type and validated before it reaches the caller,
// and every asynchronous variant returns the pending task untouched.
//
// Replacing the backend URL swaps the whole session atomically and cancels
// everything in flight on the old one; callers holding the Client never
// observe a half-replaced state.
package api

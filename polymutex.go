// Package polymutex is the module root; it exists to hold the single
// build-time switch every other package in this repository reads,
// Debug, so that debug-only bookkeeping (OSTrackMutex's freed/locked
// state, ownership assertions) compiles away entirely in release builds
// rather than branching on a runtime flag — the same compile-out
// discipline the source gets from ut_d/ut_ad.
//
// Build with -tags debug to turn assertions on:
//
//	go test -tags debug ./...
package polymutex

//go:build debug

package polymutex

// Debug is true when built with -tags debug. Every debug-only assertion
// in this module is gated behind it so a release build carries no
// tracking overhead.
const Debug = true

//go:build !debug

package polymutex

// Debug is false unless built with -tags debug.
const Debug = false

// Package nocopy provides the copy-disabling marker that ttasmutex.Mutex
// and ttaseventmutex.Mutex embed, standing in for the original's private copy
// constructors (C++ has no Go analogue for that, but go vet's
// copylocks check does the same job at build time): embedding a zero-
// size noCopy-implementing sync.Locker makes `go vet` flag any value
// (rather than pointer) copy of the surrounding struct.
package nocopy

// NoCopy is the marker type. It is identical in shape to the one
// sync.WaitGroup itself embeds in the standard library.
type NoCopy struct{}

func (*NoCopy) Lock()   {}
func (*NoCopy) Unlock() {}

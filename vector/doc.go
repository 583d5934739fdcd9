// Package vector implements Vector, a generic contiguous dynamic array
// with explicit capacity management.
//
// A Vector owns exactly Cap() slots obtained from a memory.Allocator.
// The first Len() slots hold live elements; the rest hold zero values.
// Growth doubles the capacity (starting at 1), which keeps PushBack
// amortized O(1). Every path that needs a different buffer (Reserve,
// ShrinkToFit, growth inside PushBack and Insert, Erase) goes through a
// single relocation routine that acquires the new buffer before touching
// the old one, so a failed allocation leaves the vector unchanged.
//
// Erase always reallocates to a buffer of exactly Len()-1 slots. Callers
// must not assume capacity survives an Erase.
//
// Any call that reallocates invalidates slices returned by Data and
// pointers returned by Ref. Treat both as valid only until the next
// mutating call.
//
// # Element lifecycle
//
// Values entering the vector (PushBack, Insert, Set, From, Clone, ResizeFill)
// pass through the copier configured with WithCopier; the default is plain
// assignment. Elements leaving it (PopBack, Erase, Clear, truncating
// Resize, Set, Release) are handed to the disposer configured with
// WithDisposer before their slot is zeroed.
//
// # Thread Safety
//
// Vector is NOT safe for concurrent use. Callers sharing one instance
// across goroutines must serialize access.
package vector

package pathfind

import "sync/atomic"

// ControlFlow is the progress callback's verdict:
// fn(nodes [](lon,lat)) -> ControlFlow{Continue, Cancel}.
type ControlFlow int

const (
	Continue ControlFlow = iota
	Cancel
)

// ProgressFunc is invoked synchronously in the search loop at each batch
// boundary. It is never called after FindSegment returns, and never
// called with an empty slice. The callee borrows nodes; it must copy the
// slice to retain it past the call, since the engine reuses the backing
// array for the next batch.
type ProgressFunc func(nodes []Point) ControlFlow

// Point is a bare (lon, lat) pair, the payload of an exploration batch.
type Point struct {
	Lon, Lat float64
}

// CancelToken is a shared, concurrency-safe abort flag a host can install
// and set from another goroutine, expressed directly rather than only
// through a callback return value.
type CancelToken struct {
	flag atomic.Bool
}

// Cancel marks the token as cancelled. Safe to call from any goroutine.
func (t *CancelToken) Cancel() { t.flag.Store(true) }

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.flag.Load()
}

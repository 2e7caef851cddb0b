package tutor

import "sync/atomic"

// Gate is a loading flag. While it is held, further submissions are
// rejected; the in-flight request is never cancelled.
type Gate struct {
	busy atomic.Bool
}

// TryAcquire takes the gate, returning false if a request is in flight.
func (g *Gate) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release clears the flag.
func (g *Gate) Release() {
	g.busy.Store(false)
}

// Busy reports whether a request is in flight.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}

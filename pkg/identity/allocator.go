// Package identity assigns entity identifiers.
package identity

import "sync"

// Allocator hands out strictly increasing int64 ids. Each store owns one
// allocator, so ids are unique within a collection and never reused even
// after the max-id strategy would have freed one up.
//
// The zero value is ready to use and starts issuing at 1.
type Allocator struct {
	mu   sync.Mutex
	last int64
}

// NextID returns an id strictly greater than any id previously issued by
// this allocator.
func (a *Allocator) NextID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last++
	return a.last
}

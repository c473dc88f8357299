// Package mempool provides attributed byte-buffer allocation for drivers that
// must place their buffers in specific memory regions (DMA-capable bounce
// buffers, fast/tightly-coupled RAM). On hosts the attribution is bookkeeping
// only; on targets a Pool can wrap region-specific allocators while keeping
// driver code portable.
package mempool

import (
	"errors"
	"sync"
)

// Kind selects the memory attribution for an allocation.
type Kind uint8

const (
	// KindDMA marks buffers handed to bus controllers for bulk transfers.
	KindDMA Kind = iota
	// KindFast marks hot-path working buffers.
	KindFast

	kindCount = 2
)

// ErrExhausted is returned by bounded pools when a budget would be exceeded.
var ErrExhausted = errors.New("mempool: pool exhausted")

// Pool hands out and reclaims attributed buffers. Free must be called exactly
// once per successful Alloc, with the same kind.
type Pool interface {
	Alloc(size int, kind Kind) ([]byte, error)
	Free(buf []byte, kind Kind)
}

// Heap is the default pool: plain heap allocation, no budgets.
type Heap struct{}

func (Heap) Alloc(size int, kind Kind) ([]byte, error) { return make([]byte, size), nil }
func (Heap) Free(buf []byte, kind Kind)                {}

// Bounded enforces a per-kind byte budget and tracks outstanding bytes.
type Bounded struct {
	mu    sync.Mutex
	limit [kindCount]int
	used  [kindCount]int
}

// NewBounded returns a pool with the given per-kind budgets in bytes.
// A zero budget means no allocation of that kind will succeed.
func NewBounded(dmaBytes, fastBytes int) *Bounded {
	b := &Bounded{}
	b.limit[KindDMA] = dmaBytes
	b.limit[KindFast] = fastBytes
	return b
}

func (b *Bounded) Alloc(size int, kind Kind) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.used[kind]+size > b.limit[kind] {
		return nil, ErrExhausted
	}
	b.used[kind] += size
	return make([]byte, size), nil
}

func (b *Bounded) Free(buf []byte, kind Kind) {
	if buf == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used[kind] -= len(buf)
	if b.used[kind] < 0 {
		b.used[kind] = 0
	}
}

// Outstanding reports bytes currently allocated for a kind.
func (b *Bounded) Outstanding(kind Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used[kind]
}

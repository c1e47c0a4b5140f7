// Package ringbuf is the fixed-capacity circular buffer backing a
// channel's message queue. It is adapted from container/ring.go's circular
// indexing idea — a ring has no beginning or end, just a position that
// advances — narrowed from ring.go's generic linked Value ring down to a
// slice-backed buffer of a single concrete type, indexed the way
// runtime/chan.go's hchan tracks sendx/recvx/qcount over a flat buf rather
// than a linked structure (a slice is cheaper to bounds-check and GC-scan
// than a ring of nodes for a fixed, known capacity).
package ringbuf

// Buffer is a bounded FIFO of uint64 messages.
type Buffer struct {
	data     []uint64
	head     int // index of the oldest unread element
	count    int // number of live elements
	capacity int
}

// New returns a Buffer with room for capacity elements. capacity must be
// strictly positive; corobus's Bus.Open (bus.go) enforces that before a
// channel, and with it a Buffer, is created.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]uint64, capacity), capacity: capacity}
}

// Len reports how many messages are currently queued.
func (b *Buffer) Len() int { return b.count }

// Cap reports the buffer's fixed capacity.
func (b *Buffer) Cap() int { return b.capacity }

// Full reports whether the buffer has no room for another message.
func (b *Buffer) Full() bool { return b.count == b.capacity }

// Empty reports whether the buffer holds no messages.
func (b *Buffer) Empty() bool { return b.count == 0 }

// PushBack appends m to the buffer. The caller must ensure Full() is false.
func (b *Buffer) PushBack(m uint64) {
	tail := (b.head + b.count) % b.capacity
	b.data[tail] = m
	b.count++
}

// PopFront removes and returns the oldest message. The caller must ensure
// Empty() is false.
func (b *Buffer) PopFront() uint64 {
	m := b.data[b.head]
	b.head = (b.head + 1) % b.capacity
	b.count--
	return m
}

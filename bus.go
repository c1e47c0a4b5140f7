package corobus

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/corobus/corobus/errno"
	"github.com/corobus/corobus/internal/fiber"
	"github.com/corobus/corobus/internal/waitq"
)

// Bus owns a channel table and one bus-level broadcast-waiter queue. All
// public operations are methods on *Bus. A Bus is not safe for concurrent
// use from more than one goroutine at a time — per spec, the bus is
// strictly single-threaded, and no locking is employed because none is
// needed. entered is a same-effect stand-in for runtime/chan.go's race
// detector hooks: it catches a caller violating that contract instead of
// silently corrupting state.
type Bus struct {
	id    uuid.UUID
	log   *slog.Logger
	table table

	broadcastWaiting waitq.Queue

	entered bool
}

// New creates an empty bus with no open channels.
func New() *Bus {
	id := uuid.New()
	return &Bus{
		id:  id,
		log: slog.Default().With("bus", id.String()[:8]),
	}
}

// enter/leave bracket every public Bus method, asserting single-threaded
// use. They replace a real mutex: the panic they raise is a programming
// error signal, not a synchronization mechanism.
func (b *Bus) enter(op string) {
	if b.entered {
		panic("corobus: concurrent access to Bus detected (bus is single-threaded by contract)")
	}
	b.entered = true
	b.log.Debug("enter", "op", op)
}

func (b *Bus) leave() {
	b.entered = false
}

// Open creates a channel with the given capacity and returns its
// descriptor. capacity must be strictly positive: unlike spec's source,
// which accepts zero and lets every send on it block forever until close,
// Open rejects it, setting errno.InvalidCapacity and returning -1 — the
// deadlock-preventing resolution spec.md §9 recommends over mirroring the
// permissive original.
func (b *Bus) Open(capacity int) int {
	b.enter("open")
	defer b.leave()
	if capacity <= 0 {
		errno.Set(errno.InvalidCapacity)
		return -1
	}
	desc := b.table.open(newChannel(capacity))
	errno.Set(errno.None)
	b.log.Debug("channel opened", "desc", desc, "capacity", capacity)
	return desc
}

// Close removes the channel at desc, waking every waiter parked on it
// before releasing the slot. Idempotent and tolerant of stale or
// out-of-range descriptors.
//
// Order is significant: waiters are drained from the queues before the
// channel object is dropped, and a single Yield follows so that woken
// waiters get a chance to re-observe the bus before this coroutine
// continues. This is spec's "destroy before yield" variant — safe because
// a woken waiter only ever re-enters through the bus by descriptor, never
// by a direct reference to the channel object.
func (b *Bus) Close(desc int) {
	b.enter("close")
	ch := b.table.get(desc)
	if ch == nil {
		b.leave()
		return
	}
	ch.sendWaiters.WakeAll()
	ch.recvWaiters.WakeAll()
	b.table.close(desc)
	b.log.Debug("channel closed", "desc", desc)
	b.leave()
	fiber.Yield(context.Background())
}

// Delete closes every still-open channel and discards the bus. A Bus must
// not be used after Delete.
func (b *Bus) Delete() {
	for desc, ch := range b.table.slots {
		if ch != nil {
			b.Close(desc)
		}
	}
}

func (b *Bus) setErr(code errno.Code) error {
	errno.Set(code)
	switch code {
	case errno.NoChannel:
		return errno.ErrNoChannel
	case errno.WouldBlock:
		return errno.ErrWouldBlock
	case errno.InvalidCapacity:
		return errno.ErrInvalidCapacity
	default:
		return errno.ErrNotImplemented
	}
}

package corobus

import (
	"context"

	"github.com/corobus/corobus/errno"
)

// TryBroadcast atomically enqueues m into every currently open channel, or
// fails with no side effects. It is all-or-nothing within a single
// cooperative turn: because the bus is single-threaded and this walk never
// suspends, no channel's state can change between the capacity check and
// the enqueue. Grounded on runtime/select.go's selectgo, which locks every
// candidate channel, scans for readiness, and only then commits — the same
// two-phase shape, without the locking select.go needs because Go's real
// channels are used from multiple threads and corobus's are not.
func (b *Bus) TryBroadcast(m Message) error {
	b.enter("try_broadcast")
	defer b.leave()
	return b.tryBroadcastLocked(m)
}

func (b *Bus) tryBroadcastLocked(m Message) error {
	any := false
	blocked := false
	b.table.each(func(_ int, ch *channel) {
		any = true
		if !ch.hasSpace() {
			blocked = true
		}
	})
	if blocked {
		return b.setErr(errno.WouldBlock)
	}
	if !any {
		return b.setErr(errno.NoChannel)
	}
	b.table.each(func(_ int, ch *channel) {
		ch.pushAndNotify(m)
	})
	errno.Set(errno.None)
	return nil
}

// Broadcast is the blocking broadcast: it loops around TryBroadcast,
// suspending into the bus-level broadcast-waiter queue on ErrWouldBlock,
// and returning ErrNoChannel unchanged (there is nothing to wait for when
// the bus has no open channels at all).
func (b *Bus) Broadcast(ctx context.Context, m Message) error {
	for {
		b.enter("broadcast")
		err := b.tryBroadcastLocked(m)
		switch errno.CodeOf(err) {
		case errno.None:
			b.leave()
			return nil
		case errno.NoChannel:
			b.leave()
			return err
		case errno.WouldBlock:
			b.leave()
			b.broadcastWaiting.PushAndSuspend(ctx)
			// Resumed: retry from the top.
		default:
			b.leave()
			return b.setErr(errno.NotImplemented)
		}
	}
}

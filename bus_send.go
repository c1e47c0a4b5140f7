package corobus

import (
	"context"

	"github.com/corobus/corobus/errno"
)

// TrySend is the non-blocking send: it either enqueues m and returns nil,
// or fails immediately with ErrNoChannel or ErrWouldBlock without
// suspending the caller. Grounded on runtime/chan.go's chansend fast path.
func (b *Bus) TrySend(desc int, m Message) error {
	b.enter("try_send")
	defer b.leave()
	return b.trySendLocked(desc, m)
}

func (b *Bus) trySendLocked(desc int, m Message) error {
	ch := b.table.get(desc)
	if ch == nil {
		return b.setErr(errno.NoChannel)
	}
	if !ch.hasSpace() {
		return b.setErr(errno.WouldBlock)
	}
	ch.pushAndNotify(m)
	errno.Set(errno.None)
	return nil
}

// Send is the blocking send: it loops around TrySend, suspending the
// calling coroutine into the channel's send-waiter queue whenever TrySend
// reports ErrWouldBlock, and returning as soon as TrySend succeeds or
// reports ErrNoChannel.
func (b *Bus) Send(ctx context.Context, desc int, m Message) error {
	for {
		b.enter("send")
		err := b.trySendLocked(desc, m)
		switch errno.CodeOf(err) {
		case errno.None:
			b.leave()
			return nil
		case errno.NoChannel:
			b.leave()
			return err
		case errno.WouldBlock:
			ch := b.table.get(desc)
			b.leave()
			ch.sendWaiters.PushAndSuspend(ctx)
			// Resumed: retry from the top.
		default:
			b.leave()
			return b.setErr(errno.NotImplemented)
		}
	}
}

package corobus

import (
	"context"

	"github.com/corobus/corobus/errno"
)

// TryRecv is the non-blocking receive: it either pops the head message and
// returns it, or fails immediately with ErrNoChannel or ErrWouldBlock.
// Grounded on runtime/chan.go's chanrecv fast path.
func (b *Bus) TryRecv(desc int) (Message, error) {
	b.enter("try_recv")
	defer b.leave()
	return b.tryRecvLocked(desc)
}

func (b *Bus) tryRecvLocked(desc int) (Message, error) {
	ch := b.table.get(desc)
	if ch == nil {
		return 0, b.setErr(errno.NoChannel)
	}
	if !ch.hasMessage() {
		return 0, b.setErr(errno.WouldBlock)
	}
	m := ch.popAndNotify(&b.broadcastWaiting)
	errno.Set(errno.None)
	return m, nil
}

// Recv is the blocking receive: symmetric to Send, suspending into the
// channel's recv-waiter queue on ErrWouldBlock.
func (b *Bus) Recv(ctx context.Context, desc int) (Message, error) {
	for {
		b.enter("recv")
		m, err := b.tryRecvLocked(desc)
		switch errno.CodeOf(err) {
		case errno.None:
			b.leave()
			return m, nil
		case errno.NoChannel:
			b.leave()
			return 0, err
		case errno.WouldBlock:
			ch := b.table.get(desc)
			b.leave()
			ch.recvWaiters.PushAndSuspend(ctx)
			// Resumed: retry from the top.
		default:
			b.leave()
			return 0, b.setErr(errno.NotImplemented)
		}
	}
}

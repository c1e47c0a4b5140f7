package corobus

import (
	"context"

	"github.com/corobus/corobus/errno"
)

// TrySendV pushes messages from data, in order, for as long as the channel
// has space, stopping after len(data) pushes. It returns the number
// pushed. An empty data slice returns (0, nil) with no error — treated as
// vacuously successful rather than ErrWouldBlock, since there is nothing
// to block on.
func (b *Bus) TrySendV(desc int, data []Message) (int, error) {
	b.enter("try_send_v")
	defer b.leave()
	return b.trySendVLocked(desc, data)
}

func (b *Bus) trySendVLocked(desc int, data []Message) (int, error) {
	ch := b.table.get(desc)
	if ch == nil {
		return 0, b.setErr(errno.NoChannel)
	}
	if len(data) == 0 {
		errno.Set(errno.None)
		return 0, nil
	}
	n := 0
	for n < len(data) && ch.hasSpace() {
		ch.pushAndNotify(data[n])
		n++
	}
	if n == 0 {
		return 0, b.setErr(errno.WouldBlock)
	}
	errno.Set(errno.None)
	return n, nil
}

// SendV is the blocking vectorised send: it loops around TrySendV,
// returning the positive count from the first successful try, suspending
// into the channel's send-waiter queue on ErrWouldBlock.
func (b *Bus) SendV(ctx context.Context, desc int, data []Message) (int, error) {
	for {
		b.enter("send_v")
		n, err := b.trySendVLocked(desc, data)
		switch errno.CodeOf(err) {
		case errno.None:
			b.leave()
			return n, nil
		case errno.NoChannel:
			b.leave()
			return 0, err
		case errno.WouldBlock:
			ch := b.table.get(desc)
			b.leave()
			ch.sendWaiters.PushAndSuspend(ctx)
		default:
			b.leave()
			return 0, b.setErr(errno.NotImplemented)
		}
	}
}

// TryRecvV pops messages into out, in order, for as long as the channel
// has a message, stopping after len(out) pops. It returns the number read.
// An empty out slice returns (0, nil) with no error, symmetric with
// TrySendV.
func (b *Bus) TryRecvV(desc int, out []Message) (int, error) {
	b.enter("try_recv_v")
	defer b.leave()
	return b.tryRecvVLocked(desc, out)
}

func (b *Bus) tryRecvVLocked(desc int, out []Message) (int, error) {
	ch := b.table.get(desc)
	if ch == nil {
		return 0, b.setErr(errno.NoChannel)
	}
	if len(out) == 0 {
		errno.Set(errno.None)
		return 0, nil
	}
	n := 0
	for n < len(out) && ch.hasMessage() {
		out[n] = ch.popAndNotify(&b.broadcastWaiting)
		n++
	}
	if n == 0 {
		return 0, b.setErr(errno.WouldBlock)
	}
	errno.Set(errno.None)
	return n, nil
}

// RecvV is the blocking vectorised receive: symmetric to SendV.
func (b *Bus) RecvV(ctx context.Context, desc int, out []Message) (int, error) {
	for {
		b.enter("recv_v")
		n, err := b.tryRecvVLocked(desc, out)
		switch errno.CodeOf(err) {
		case errno.None:
			b.leave()
			return n, nil
		case errno.NoChannel:
			b.leave()
			return 0, err
		case errno.WouldBlock:
			ch := b.table.get(desc)
			b.leave()
			ch.recvWaiters.PushAndSuspend(ctx)
		default:
			b.leave()
			return 0, b.setErr(errno.NotImplemented)
		}
	}
}

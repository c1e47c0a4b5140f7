package corobus

import (
	"github.com/corobus/corobus/internal/ringbuf"
	"github.com/corobus/corobus/internal/waitq"
)

// channel is a bounded FIFO of messages plus its send- and recv-waiter
// queues. Grounded on runtime/chan.go's hchan: qcount/dataqsiz/buf become a
// ringbuf.Buffer, and sendq/recvq become waitq.Queue.
//
// Invariants (checked implicitly by construction, not asserted at runtime
// since the bus is single-threaded, every message-queue mutation goes
// through pushAndNotify/popAndNotify, and the bus parks a waiter only
// after seeing hasSpace or hasMessage fail):
//   - sendWaiters non-empty implies messages was full at enqueue time.
//   - recvWaiters non-empty implies messages was empty at enqueue time.
type channel struct {
	buf         *ringbuf.Buffer
	sendWaiters waitq.Queue
	recvWaiters waitq.Queue
}

func newChannel(capacity int) *channel {
	return &channel{buf: ringbuf.New(capacity)}
}

// hasSpace reports whether a sender could push into c without blocking.
func (c *channel) hasSpace() bool { return !c.buf.Full() }

// hasMessage reports whether a receiver could pop from c without blocking.
func (c *channel) hasMessage() bool { return !c.buf.Empty() }

// pushAndNotify appends m to c's message queue and wakes one receiver, if
// any is waiting. Precondition: hasSpace() held at call time.
func (c *channel) pushAndNotify(m Message) {
	c.buf.PushBack(m)
	c.recvWaiters.WakeOne()
}

// popAndNotify removes and returns the head message, wakes one sender, and
// falls back to waking one broadcast waiter if no sender was waiting —
// only a pop frees space a blocked broadcaster might have been waiting on.
// Precondition: hasMessage() held at call time.
func (c *channel) popAndNotify(broadcastWaiters *waitq.Queue) Message {
	m := c.buf.PopFront()
	if !c.sendWaiters.WakeOne() {
		broadcastWaiters.WakeOne()
	}
	return m
}

// Package waitq is corobus's waiter queue: a strict FIFO of suspended
// coroutine handles with push-and-suspend, wake-one, and wake-all-and-drain.
// It is adapted from container/list.go's doubly linked list — the same
// sentinel-node ring trick, narrowed from a generic interface{}-valued list
// down to one that only ever holds *fiber.Handle, and narrowed from list.go's
// full surface (PushFront, InsertBefore, MoveToFront, ...) to exactly the
// three operations a channel's send/recv queues and a bus's broadcast queue
// need.
package waitq

import (
	"context"

	"github.com/corobus/corobus/internal/fiber"
)

type node struct {
	next, prev *node
	handle     *fiber.Handle
}

// Queue is a FIFO of suspended coroutine handles. The zero value is an
// empty, ready-to-use queue.
type Queue struct {
	root node // sentinel; root.next is the head, root.prev is the tail
	len  int
}

func (q *Queue) lazyInit() {
	if q.root.next == nil {
		q.root.next = &q.root
		q.root.prev = &q.root
	}
}

// Len reports the number of handles currently parked in q.
func (q *Queue) Len() int { return q.len }

func (q *Queue) pushBack(h *fiber.Handle) *node {
	q.lazyInit()
	n := &node{handle: h}
	at := q.root.prev
	n.prev = at
	n.next = &q.root
	at.next = n
	q.root.prev = n
	q.len++
	return n
}

func (q *Queue) remove(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.next = nil
	n.prev = nil
	q.len--
}

// PushAndSuspend appends the coroutine bound into ctx to the tail of q and
// suspends it. It returns only once some other operation calls WakeOne or
// WakeAll and reaches this entry.
func (q *Queue) PushAndSuspend(ctx context.Context) {
	h := fiber.MustCurrent(ctx)
	q.pushBack(h)
	fiber.Suspend(ctx)
}

// WakeOne pops the head of q, if any, and resumes it. It reports whether a
// waiter was woken.
func (q *Queue) WakeOne() bool {
	if q.len == 0 {
		return false
	}
	n := q.root.next
	q.remove(n)
	fiber.Resume(n.handle)
	return true
}

// WakeAll wakes every waiter currently in q, draining it. Used by close:
// every sender and receiver parked on the channel being closed is resumed
// so it can re-observe the channel as gone.
func (q *Queue) WakeAll() {
	for q.WakeOne() {
	}
}

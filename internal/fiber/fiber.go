// Package fiber is the coroutine runtime collaborator corobus depends on
// but does not implement itself: current-handle, suspend, resume, and
// yield, the same four primitives runtime/proc.go exposes to Go's own
// goroutine scheduler as gopark, goready and Gosched. corobus's bus package
// never reaches into a Handle's internals; it only ever passes one back to
// Resume, the same discipline runtime/chan.go uses with a sudog.
package fiber

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
)

type ctxKey struct{}

// Handle is the opaque coroutine identity a bus waiter queue stores while
// a coroutine is suspended. The zero value is not usable; obtain one
// through Spawn or Current.
type Handle struct {
	id     uint64
	resume chan struct{}
}

// ID returns a small integer unique within the process, useful only for
// logging.
func (h *Handle) ID() uint64 { return h.id }

func (h *Handle) String() string {
	return fmt.Sprintf("fiber(%d)", h.id)
}

var nextID uint64

func newHandle() *Handle {
	id := atomic.AddUint64(&nextID, 1)
	return &Handle{id: id, resume: make(chan struct{}, 1)}
}

// WithHandle returns a copy of ctx carrying h as the current coroutine's
// identity, mirroring context/context.go's WithValue: Go has no implicit
// goroutine-local storage, so the handle travels explicitly rather than
// through hidden thread-local state.
func WithHandle(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, ctxKey{}, h)
}

// Current is spec's current-handle: it reads the coroutine identity bound
// into ctx by Spawn or WithHandle.
func Current(ctx context.Context) (*Handle, bool) {
	h, ok := ctx.Value(ctxKey{}).(*Handle)
	return h, ok
}

// MustCurrent is Current, panicking if ctx carries no handle. Every bus
// blocking form calls this: a ctx with no bound handle is a programmer
// error, not a runtime condition the bus's error taxonomy covers.
func MustCurrent(ctx context.Context) *Handle {
	h, ok := Current(ctx)
	if !ok {
		panic("fiber: context carries no coroutine handle (did you forget fiber.Spawn?)")
	}
	return h
}

// Spawn launches fn on a new goroutine standing in for a coroutine, with a
// fresh Handle bound into the context fn receives. It returns immediately;
// it does not wait for fn to finish. Grounded on runtime/proc.go's newproc:
// creating a new schedulable unit, though here the real Go scheduler does
// the scheduling and Spawn only manufactures the identity.
func Spawn(parent context.Context, fn func(ctx context.Context)) *Handle {
	h := newHandle()
	ctx := WithHandle(parent, h)
	go fn(ctx)
	return h
}

// Suspend blocks the calling coroutine until Resume(h) is called, where h
// is the handle bound into ctx. Grounded on runtime/proc.go's gopark: the
// caller has already been pushed onto some waiter queue by the bus before
// calling Suspend, exactly as gopark is called only after the parking
// goroutine has been linked into a wait list.
func Suspend(ctx context.Context) {
	h := MustCurrent(ctx)
	<-h.resume
}

// Resume wakes the coroutine identified by h. The resume channel is
// buffered by one, so a Resume that arrives just before the matching
// Suspend is not lost — the same "wakeup can race the park" case
// runtime/proc.go's gopark/goready handle via g.param rather than losing
// the event.
func Resume(h *Handle) {
	select {
	case h.resume <- struct{}{}:
	default:
	}
}

// Yield offers a rescheduling point to the Go scheduler, corresponding to
// spec's yield and grounded directly on runtime/proc.go's Gosched. corobus
// calls this exactly once after draining a channel's waiter queues on
// close, so woken waiters get a chance to re-observe bus state before the
// closing coroutine proceeds.
func Yield(_ context.Context) {
	runtime.Gosched()
}

// Package corobus is an in-process, single-threaded multiplexer of bounded
// FIFO channels used by cooperatively scheduled coroutines to exchange
// unsigned-integer messages. It is the user-space equivalent of
// runtime/chan.go's channel implementation: the same invariant chain
// (bounded queue, send-waiters, recv-waiters, at-most-one wake per event)
// but expressed over explicit coroutine handles (internal/fiber) instead of
// the Go runtime's own goroutines.
//
// A Bus owns a dynamically sized table of channels. Every public operation
// comes in a try-form (non-suspending, returns ErrWouldBlock) and a
// blocking form (loops around the try-form, suspending the calling
// coroutine on ErrWouldBlock). The bus additionally supports broadcast,
// which atomically enqueues one message into every open channel, and
// vectorised send/receive, which drain or fill as much as possible in one
// call.
//
// A Bus is not safe for use from more than one goroutine at a time. The
// internal/fiber package stands in for the cooperative coroutine runtime
// the bus assumes; callers who need spec's strict "exactly one coroutine
// runs between any two suspension points" guarantee should run with
// runtime.GOMAXPROCS(1), the same way single-threaded cooperative Go
// programs predating the Go 1.5 scheduler did.
package corobus

// Message is the payload corobus channels carry: an unsigned integer of at
// least 32 bits, per spec. 64 bits is the concrete width chosen here,
// matching the widest integer type in common use across the corpus's own
// queue-like types.
type Message = uint64

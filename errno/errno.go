// Package errno is corobus's process-wide last-error slot: a single
// mutable value, set by every failing try-form and read by the caller
// immediately after a negative/error return. It exists because corobus is
// single-threaded by contract (see the Bus doc comment) — the same
// justification runtime/chan.go's debugChan global and sync's package-level
// state rely on — so a bare package variable needs no locking.
//
// Every failing bus operation also returns an ordinary Go error drawn from
// the sentinels below; errno is an additional, spec-mandated view onto the
// same failure, not the only one. Grounded on internal/poll/fd_unix.go's
// habit of keeping a raw OS errno and a wrapped Go error alive side by
// side.
package errno

import "errors"

// Code is the process-wide error taxonomy.
type Code int

const (
	// None means no error; its value is meaningless after a success.
	None Code = iota
	// NoChannel means the descriptor is negative, out of range, or the
	// slot is empty.
	NoChannel
	// WouldBlock means a try-form could not make progress right now.
	WouldBlock
	// InvalidCapacity means channel_open was asked for a non-positive
	// capacity.
	InvalidCapacity
	// NotImplemented is the catch-all for anything not otherwise
	// specified.
	NotImplemented
)

func (c Code) String() string {
	switch c {
	case None:
		return "NONE"
	case NoChannel:
		return "NO_CHANNEL"
	case WouldBlock:
		return "WOULD_BLOCK"
	case InvalidCapacity:
		return "INVALID_CAPACITY"
	case NotImplemented:
		return "NOT_IMPLEMENTED"
	default:
		return "UNKNOWN"
	}
}

// Sentinel errors, one per non-None Code. Compare with errors.Is.
var (
	ErrNoChannel       = errors.New("corobus: no such channel")
	ErrWouldBlock      = errors.New("corobus: would block")
	ErrInvalidCapacity = errors.New("corobus: capacity must be positive")
	ErrNotImplemented  = errors.New("corobus: not implemented")
)

var codeOf = map[error]Code{
	ErrNoChannel:       NoChannel,
	ErrWouldBlock:      WouldBlock,
	ErrInvalidCapacity: InvalidCapacity,
	ErrNotImplemented:  NotImplemented,
}

// CodeOf maps one of the sentinel errors above back to its numeric Code,
// for callers that want the spec-level contract rather than Go error
// handling. Unrecognized errors map to NotImplemented.
func CodeOf(err error) Code {
	if err == nil {
		return None
	}
	for sentinel, code := range codeOf {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return NotImplemented
}

// last is the process-wide slot. Not thread-safe by design: corobus is
// single-threaded, and callers must read it immediately after a failure,
// before invoking another bus operation.
var last Code

// Get returns the last error code set by a failing operation. Its value
// after a successful operation is unspecified.
func Get() Code { return last }

// Set records code as the last error. Called by every failing try-form.
func Set(code Code) { last = code }

// SetFromError sets the process-wide slot from a sentinel error, for
// callers that have an error in hand rather than a Code.
func SetFromError(err error) { last = CodeOf(err) }

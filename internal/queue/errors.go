package queue

import "errors"

// Sentinel errors returned by Engine and expected from bindings.Transport.
// The root package's WrapError translates these into its own taxonomy.
var (
	// ErrNoMessage is what a Transport.Recv implementation returns when
	// nothing is pending; Engine treats it as "nothing to do this tick",
	// never as a failure.
	ErrNoMessage = errors.New("queue: no message available")

	// ErrPoolExhausted is returned by PushRequest/PushResponse when the
	// pool has no free slot. Nothing is evicted to make room; a slot
	// frees only when its message resolves or is dropped.
	ErrPoolExhausted = errors.New("queue: message pool exhausted")

	// ErrNoLink is the send error the engine records when no Transport
	// was configured (handled like any other failed send: the message
	// backs off on wait, and Step itself does not return it), and is
	// reported through the event callback when a CallResult/CallError
	// arrives with a correlation id no wait-queue entry matches.
	ErrNoLink = errors.New("queue: no transport configured")

	// ErrBusy is returned by Step when a Call is already awaiting its
	// response: strict single-in-flight means nothing else sends until
	// that Call resolves or times out.
	ErrBusy = errors.New("queue: a call is already in flight")

	// ErrAlreadyHandled is returned by PushRequest for Heartbeat. The
	// engine synthesizes heartbeats itself on idle; a host pushing its
	// own would fight that schedule.
	ErrAlreadyHandled = errors.New("queue: heartbeat is sent by the engine itself")
)

// Package bindings declares the core's extension points. These are the
// narrow interfaces a host must supply; the core never reaches outside
// them for I/O, identity generation, locking, or observability.
package bindings

import "github.com/pazzk-labs/ocpp/internal/catalog"

// Transport is the wire-level collaborator. Encoding (JSON/OCPP-J framing)
// and the physical link (WebSocket/TLS) live entirely on the host side of
// this interface; the core only ever sees catalog.Envelope values, never
// raw bytes.
type Transport interface {
	// Send serializes and transmits msg. Returns nil on a full send.
	// The send phase holds the engine lock across this call, so
	// implementations must be non-blocking or short.
	Send(msg *catalog.Envelope) error

	// Recv deserializes one pending inbound frame into a fresh Envelope.
	// Returns (nil, ErrNoMessage) when nothing is pending. The engine
	// releases its lock across this call.
	Recv() (*catalog.Envelope, error)
}

// IDGenerator produces opaque, unique correlation ids for new Calls.
type IDGenerator interface {
	Generate() string
}

// Locker protects the engine's message pool, queues and timestamps.
// Implementations must not be reentrant; the engine never nests calls.
type Locker interface {
	Lock()
	Unlock()
}

// ConfigLocker protects the configuration value pool. Kept distinct from
// Locker because the two locks are never held nested.
type ConfigLocker interface {
	Lock()
	Unlock()
}

// EventFunc is the host's per-receive event callback. It fires after
// every receive that found a frame or failed trying — never for "nothing
// pending". err is nil for a successfully routed frame, the transport's
// own error when Recv failed (msg is nil then), or the engine's no-link
// error when a response matched no outstanding Call. The engine holds no
// locks while calling it, so the callback may call back into the engine.
type EventFunc func(err error, msg *catalog.Envelope)

// Logger is the optional structured logging sink. A nil Logger means
// "don't log" everywhere it's threaded through the core.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Observer receives engine and connector events for metrics collection.
// Implementations must be safe to call from Step().
type Observer interface {
	ObserveSend(msgType catalog.Type, attempt int, ok bool)
	ObserveDrop(msgType catalog.Type, attempts int)
	ObserveHeartbeat()
	ObserveQueueDepth(ready, wait, timer int)
	ObserveTransition(connectorID int, from, to int)
}

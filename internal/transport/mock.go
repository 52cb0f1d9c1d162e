package transport

import (
	"sync"

	"github.com/pazzk-labs/ocpp/internal/catalog"
	"github.com/pazzk-labs/ocpp/internal/queue"
)

// Loopback is an in-memory bindings.Transport: no network, no
// encoding, just enough state behind a mutex to exercise the engine in
// tests and in the chargepoint-sim CLI's demo mode.
type Loopback struct {
	mu      sync.Mutex
	sent    []*catalog.Envelope
	inbound []*catalog.Envelope
	failing bool
}

// NewLoopback returns an empty Loopback transport.
func NewLoopback() *Loopback {
	return &Loopback{}
}

// Send implements bindings.Transport by recording msg. A Loopback in the
// failing state rejects every send with queue.ErrNoLink, for driving the
// engine's retry paths.
func (l *Loopback) Send(msg *catalog.Envelope) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failing {
		return queue.ErrNoLink
	}
	l.sent = append(l.sent, msg)
	return nil
}

// Recv implements bindings.Transport by popping the oldest enqueued
// inbound frame.
func (l *Loopback) Recv() (*catalog.Envelope, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.inbound) == 0 {
		return nil, queue.ErrNoMessage
	}
	env := l.inbound[0]
	l.inbound = l.inbound[1:]
	return env, nil
}

// Deliver queues env as if it had just arrived from the central system,
// for tests and chargepoint-sim's simulated central system.
func (l *Loopback) Deliver(env *catalog.Envelope) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inbound = append(l.inbound, env)
}

// SetFailing toggles whether Send succeeds, for simulating a severed
// link without tearing down the Loopback.
func (l *Loopback) SetFailing(failing bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failing = failing
}

// Sent returns a snapshot of every Envelope handed to Send so far.
func (l *Loopback) Sent() []*catalog.Envelope {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*catalog.Envelope, len(l.sent))
	copy(out, l.sent)
	return out
}

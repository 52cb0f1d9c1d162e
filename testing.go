package ocpp

import "github.com/pazzk-labs/ocpp/internal/transport"

// MockTransport is an in-memory Transport for unit tests: Send records
// what would have gone over the wire, Deliver queues a frame as if it
// had just arrived from the central system.
type MockTransport = transport.Loopback

// NewMockTransport returns an empty MockTransport.
func NewMockTransport() *MockTransport {
	return transport.NewLoopback()
}

// MockIDGenerator is a uuid-backed IDGenerator, suitable for tests that
// don't care about predictable ids; use a closure over a counter instead
// when a test needs deterministic correlation ids.
type MockIDGenerator = transport.UUIDGenerator

package transport

import (
	"errors"
	"testing"

	"github.com/pazzk-labs/ocpp/internal/catalog"
	"github.com/pazzk-labs/ocpp/internal/queue"
)

func TestLoopbackSendRecordsEnvelope(t *testing.T) {
	l := NewLoopback()
	env := &catalog.Envelope{ID: "1", Role: catalog.RoleCall, Type: catalog.Heartbeat}

	if err := l.Send(env); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	sent := l.Sent()
	if len(sent) != 1 || sent[0] != env {
		t.Fatalf("Sent() = %v, want [env]", sent)
	}
}

func TestLoopbackSendFailsWhenFailing(t *testing.T) {
	l := NewLoopback()
	l.SetFailing(true)

	err := l.Send(&catalog.Envelope{ID: "1"})
	if !errors.Is(err, queue.ErrNoLink) {
		t.Fatalf("Send() error = %v, want ErrNoLink", err)
	}
}

func TestLoopbackRecvReturnsNoMessageWhenEmpty(t *testing.T) {
	l := NewLoopback()

	_, err := l.Recv()
	if !errors.Is(err, queue.ErrNoMessage) {
		t.Fatalf("Recv() error = %v, want ErrNoMessage", err)
	}
}

func TestLoopbackDeliverThenRecvFIFO(t *testing.T) {
	l := NewLoopback()
	first := &catalog.Envelope{ID: "1"}
	second := &catalog.Envelope{ID: "2"}
	l.Deliver(first)
	l.Deliver(second)

	got, err := l.Recv()
	if err != nil || got != first {
		t.Fatalf("Recv() = %v, %v, want first, nil", got, err)
	}
	got, err = l.Recv()
	if err != nil || got != second {
		t.Fatalf("Recv() = %v, %v, want second, nil", got, err)
	}
	if _, err := l.Recv(); !errors.Is(err, queue.ErrNoMessage) {
		t.Fatalf("Recv() after drain error = %v, want ErrNoMessage", err)
	}
}

func TestUUIDGeneratorProducesUniqueIDs(t *testing.T) {
	g := UUIDGenerator{}
	a := g.Generate()
	b := g.Generate()
	if a == "" || b == "" || a == b {
		t.Fatalf("Generate() = %q, %q, want distinct non-empty ids", a, b)
	}
}

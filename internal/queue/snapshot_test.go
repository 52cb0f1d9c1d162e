package queue

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/pazzk-labs/ocpp/internal/catalog"
)

func TestSnapshotRoundTripsReadyWaitAndBootAccepted(t *testing.T) {
	ft := &fakeTransport{}
	e := New(Config{PoolSize: 8, Transport: ft, Policy: DefaultPolicy()})

	if _, err := e.PushRequest(catalog.BootNotification, &catalog.BootNotificationReq{ChargePointVendor: "pazzk", ChargePointModel: "sim"}); err != nil {
		t.Fatalf("PushRequest() error = %v", err)
	}

	now := time.Now()
	if err := e.Step(now); err != nil { // sends BootNotification, moves it to wait
		t.Fatalf("Step() error = %v", err)
	}

	id2, err := e.PushRequest(catalog.DataTransfer, &catalog.DataTransferReq{VendorID: "pazzk", MessageID: "probe"})
	if err != nil {
		t.Fatalf("PushRequest() error = %v", err)
	}

	buf := e.SnapshotTo()

	restored := New(Config{PoolSize: 8, Transport: ft, Policy: DefaultPolicy()})
	if err := restored.SnapshotFrom(buf); err != nil {
		t.Fatalf("SnapshotFrom() error = %v", err)
	}

	ready, wait, _ := restored.QueueDepths()
	if ready != 1 {
		t.Fatalf("ready depth = %d, want 1 (the queued DataTransfer)", ready)
	}
	if wait != 1 {
		t.Fatalf("wait depth = %d, want 1 (the sent BootNotification awaiting reply)", wait)
	}

	typ, ok := restored.TypeFromIDStr(ft.sent[0].ID)
	if !ok || typ != catalog.BootNotification {
		t.Fatalf("TypeFromIDStr(%q) = %v, %v, want BootNotification, true", ft.sent[0].ID, typ, ok)
	}

	// The restored DataTransfer slot should decode back into a real
	// *catalog.DataTransferReq via catalog.ZeroPayload, not a bare map.
	readyIdx := restored.pool.ready.head
	if readyIdx == listEnd {
		t.Fatal("restored ready list is empty")
	}
	gotTransfer := restored.pool.slots[readyIdx].body
	if diff := cmp.Diff(&catalog.DataTransferReq{VendorID: "pazzk", MessageID: "probe"}, gotTransfer); diff != "" {
		t.Errorf("restored ready slot body (-want +got):\n%s", diff)
	}
	if restored.pool.slots[readyIdx].id != id2 {
		t.Errorf("restored ready slot id = %q, want %q", restored.pool.slots[readyIdx].id, id2)
	}

	// Likewise the in-flight BootNotification body should round-trip
	// byte-for-byte through the JSON encode/decode.
	waitIdx := restored.pool.wait.head
	if waitIdx == listEnd {
		t.Fatal("restored wait list is empty")
	}
	wantBoot := &catalog.BootNotificationReq{ChargePointVendor: "pazzk", ChargePointModel: "sim"}
	if diff := cmp.Diff(wantBoot, restored.pool.slots[waitIdx].body); diff != "" {
		t.Errorf("restored wait slot body (-want +got):\n%s", diff)
	}
}

func TestSnapshotRejectsWrongPoolCapacity(t *testing.T) {
	e := New(Config{PoolSize: 8, Transport: &fakeTransport{}})
	buf := e.SnapshotTo()

	mismatched := New(Config{PoolSize: 4, Transport: &fakeTransport{}})
	if err := mismatched.SnapshotFrom(buf); err == nil {
		t.Fatal("SnapshotFrom() error = nil, want capacity mismatch error")
	}
}

func TestSnapshotRejectsBadMagic(t *testing.T) {
	e := New(Config{PoolSize: 8, Transport: &fakeTransport{}})
	if err := e.SnapshotFrom([]byte("not a snapshot, too short and wrong")); err == nil {
		t.Fatal("SnapshotFrom() error = nil, want bad magic error")
	}
}

func TestSnapshotPreservesBootAccepted(t *testing.T) {
	ft := &fakeTransport{}
	e := New(Config{PoolSize: 8, Transport: ft, Policy: DefaultPolicy()})

	id, err := e.PushRequest(catalog.BootNotification, &catalog.BootNotificationReq{})
	if err != nil {
		t.Fatalf("PushRequest() error = %v", err)
	}
	now := time.Now()
	if err := e.Step(now); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	ft.recvQueue = append(ft.recvQueue, &catalog.Envelope{ID: id, Role: catalog.RoleCallResult, Type: catalog.BootNotification, Body: &catalog.BootNotificationConf{Status: catalog.BootAccepted}})
	if err := e.Step(now.Add(time.Second)); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if !e.BootAccepted() {
		t.Fatal("BootAccepted() = false before snapshot")
	}

	buf := e.SnapshotTo()
	restored := New(Config{PoolSize: 8, Transport: ft})
	if err := restored.SnapshotFrom(buf); err != nil {
		t.Fatalf("SnapshotFrom() error = %v", err)
	}
	if !restored.BootAccepted() {
		t.Fatal("BootAccepted() = false after restore, want true")
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	ocpp "github.com/pazzk-labs/ocpp"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.Connectors = 1
	s.PoolSize = 8
	return s
}

func TestAppBootQueuesBootNotification(t *testing.T) {
	app := NewApp(testSettings())
	if err := app.Boot(); err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	app.Tick()

	ready, wait, _ := app.engine.QueueDepths()
	if ready != 0 || wait != 1 {
		t.Fatalf("queue depths = (ready=%d, wait=%d), want (0, 1) after one Tick", ready, wait)
	}

	// The simulated central system answered after the first Tick; the
	// second Tick consumes its CallResult.
	app.Tick()
	if !app.engine.BootAccepted() {
		t.Fatal("BootAccepted() = false, want true after the simulated central system answers")
	}
}

func TestAppPlugRFIDStartsCharging(t *testing.T) {
	app := NewApp(testSettings())
	if err := app.Boot(); err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	app.Tick() // BootNotification sent; its CallResult is consumed next Tick

	app.SetSignal(1, ocpp.SignalB)
	app.Tick() // boot accepted, plugged in, now Occupied

	if got := app.engine.Connector(1).State; got != ocpp.StateOccupied {
		t.Fatalf("state after plug = %v, want Occupied", got)
	}

	app.SetRFID(1, "tag-1")
	app.Tick() // rfid tagged while occupied -> Charging

	if got := app.engine.Connector(1).State; got != ocpp.StateCharging {
		t.Fatalf("state after rfid = %v, want Charging", got)
	}
}

func TestAppRemoteStartRejectedWhileCharging(t *testing.T) {
	app := NewApp(testSettings())
	app.SetSignal(1, ocpp.SignalB)
	app.Tick()
	app.SetRFID(1, "tag-1")
	app.Tick()

	if app.engine.Connector(1).State != ocpp.StateCharging {
		t.Fatal("setup failed: connector did not reach Charging")
	}
	if app.RemoteStart(1, "tag-2") {
		t.Fatal("RemoteStart() = true while Charging, want false")
	}
}

func TestAppRemoteStopStopsChargingTransaction(t *testing.T) {
	app := NewApp(testSettings())
	app.SetSignal(1, ocpp.SignalB)
	app.Tick()
	app.SetRFID(1, "tag-1")
	app.Tick()

	c := app.engine.Connector(1)
	c.SetTransactionID(42)

	app.RemoteStop(42)
	app.Tick()

	if c.State != ocpp.StateOccupied {
		t.Fatalf("state after remote-stop = %v, want Occupied", c.State)
	}
}

func TestAppSnapshotRoundTrip(t *testing.T) {
	app := NewApp(testSettings())
	if err := app.Boot(); err != nil {
		t.Fatalf("Boot() error = %v", err)
	}
	app.Tick() // send BootNotification
	app.Tick() // consume the simulated central system's acceptance

	dir := t.TempDir()
	path := filepath.Join(dir, "snap.bin")
	if err := app.SaveSnapshot(path); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}

	restored := NewApp(testSettings())
	if err := restored.LoadSnapshot(path); err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if !restored.engine.BootAccepted() {
		t.Fatal("BootAccepted() = false after restore, want true")
	}
}

func TestAppApplyOverridesRejectsUnknownKey(t *testing.T) {
	app := NewApp(testSettings())
	err := app.ApplyOverrides(map[string]string{"NotARealKey": "1"})
	if err == nil {
		t.Fatal("ApplyOverrides() error = nil, want error for unknown key")
	}
}

package ocpp

import (
	"testing"
	"time"

	"github.com/pazzk-labs/ocpp/internal/catalog"
)

func TestEngineBootNotificationAcceptedRoundTrip(t *testing.T) {
	mt := NewMockTransport()
	eng := New(Params{Transport: mt, PoolSize: 4, Connectors: 1})

	id, err := eng.PushRequest(catalog.BootNotification, &catalog.BootNotificationReq{ChargePointVendor: "pazzk", ChargePointModel: "sim"})
	if err != nil {
		t.Fatalf("PushRequest() error = %v", err)
	}

	now := time.Now()
	if err := eng.Step(now, nil); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if len(mt.Sent()) != 1 {
		t.Fatalf("Sent() = %d, want 1", len(mt.Sent()))
	}
	if eng.BootAccepted() {
		t.Fatal("BootAccepted() = true before any CallResult arrived")
	}

	mt.Deliver(&Envelope{ID: id, Role: RoleCallResult, Type: catalog.BootNotification, Body: &catalog.BootNotificationConf{Status: catalog.BootAccepted, Interval: 60}})
	if err := eng.Step(now.Add(time.Second), nil); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if !eng.BootAccepted() {
		t.Fatal("BootAccepted() = false after accepting CallResult")
	}
}

func TestEngineDispatchesRemoteStartAndAnswersThroughTransport(t *testing.T) {
	mt := NewMockTransport()
	eng := New(Params{Transport: mt, PoolSize: 4, Connectors: 2})
	// Heartbeat synthesis off, so the reply is the only traffic.
	if err := eng.Configuration().Set("HeartbeatInterval", "0"); err != nil {
		t.Fatalf("Set(HeartbeatInterval) error = %v", err)
	}

	mt.Deliver(&Envelope{
		ID:   "central-1",
		Role: RoleCall,
		Type: catalog.RemoteStartTransaction,
		Body: &catalog.RemoteStartTransactionReq{ConnectorID: 1, IDTag: "tag-1"},
	})

	now := time.Now()
	if err := eng.Step(now, nil); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	// The dispatch reply goes onto the ready queue; a second Step sends it.
	if err := eng.Step(now.Add(time.Millisecond), nil); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	sent := mt.Sent()
	if len(sent) != 1 {
		t.Fatalf("Sent() = %d, want 1", len(sent))
	}
	conf, ok := sent[0].Body.(*catalog.RemoteStartTransactionConf)
	if !ok {
		t.Fatalf("Body = %T, want *RemoteStartTransactionConf", sent[0].Body)
	}
	if conf.Status != catalog.RemoteAccepted {
		t.Fatalf("Status = %v, want RemoteAccepted", conf.Status)
	}
}

func TestEngineAdvancesConnectorsWithSuppliedSignals(t *testing.T) {
	mt := NewMockTransport()
	eng := New(Params{Transport: mt, PoolSize: 4, Connectors: 1})

	now := time.Now()
	if err := eng.Step(now, map[int]ConnectorCtx{1: {Signal: SignalB}}); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := eng.Connector(1).State; got != StateOccupied {
		t.Fatalf("Connector(1).State = %v, want StateOccupied", got)
	}

	if err := eng.Step(now.Add(time.Second), map[int]ConnectorCtx{1: {Signal: SignalC}}); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if got := eng.Connector(1).State; got != StateCharging {
		t.Fatalf("Connector(1).State = %v, want StateCharging", got)
	}
}

func TestEngineConnectorOutOfRangeReturnsNil(t *testing.T) {
	eng := New(Params{Transport: NewMockTransport(), Connectors: 1})
	if c := eng.Connector(99); c != nil {
		t.Fatalf("Connector(99) = %v, want nil", c)
	}
}

func TestEngineSynthesizesHeartbeatFromConfiguredInterval(t *testing.T) {
	mt := NewMockTransport()
	eng := New(Params{Transport: mt, PoolSize: 4, Connectors: 1})

	// Nothing pushed, nothing in flight: the first idle Step past the
	// configured interval sends a Heartbeat on its own.
	if err := eng.Step(time.Now(), nil); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	sent := mt.Sent()
	if len(sent) != 1 || sent[0].Type != catalog.Heartbeat {
		t.Fatalf("Sent() = %v, want one Heartbeat", sent)
	}

	// PushRequest never accepts Heartbeat from the host side.
	if _, err := eng.PushRequest(catalog.Heartbeat, nil); !IsCode(err, CodeAlreadyHandled) {
		t.Fatalf("PushRequest(Heartbeat) error = %v, want CodeAlreadyHandled", err)
	}
}

func TestEngineOnEventFiresForMatchedResponse(t *testing.T) {
	mt := NewMockTransport()
	var events []Type
	eng := New(Params{
		Transport:  mt,
		PoolSize:   4,
		Connectors: 1,
		OnEvent: func(err error, msg *Envelope) {
			if err == nil && msg != nil {
				events = append(events, msg.Type)
			}
		},
	})
	if err := eng.Configuration().Set("HeartbeatInterval", "0"); err != nil {
		t.Fatalf("Set(HeartbeatInterval) error = %v", err)
	}

	id, err := eng.PushRequest(catalog.DataTransfer, &catalog.DataTransferReq{VendorID: "pazzk"})
	if err != nil {
		t.Fatalf("PushRequest() error = %v", err)
	}
	now := time.Now()
	if err := eng.Step(now, nil); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	mt.Deliver(&Envelope{ID: id, Role: RoleCallResult, Type: catalog.DataTransfer, Body: &catalog.DataTransferConf{}})
	if err := eng.Step(now.Add(time.Second), nil); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	if len(events) != 1 || events[0] != catalog.DataTransfer {
		t.Fatalf("events = %v, want [DataTransfer]", events)
	}
}

func TestEngineConfigurationChangeViaCentralDispatch(t *testing.T) {
	mt := NewMockTransport()
	eng := New(Params{Transport: mt, PoolSize: 4, Connectors: 1})

	mt.Deliver(&Envelope{
		ID:   "central-1",
		Role: RoleCall,
		Type: catalog.ChangeConfiguration,
		Body: &catalog.ChangeConfigurationReq{Key: "HeartbeatInterval", Value: "120"},
	})

	now := time.Now()
	if err := eng.Step(now, nil); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	got, err := eng.Configuration().Get("HeartbeatInterval")
	if err != nil || got != "120" {
		t.Fatalf("Configuration().Get(HeartbeatInterval) = %q, %v, want 120, nil", got, err)
	}
}

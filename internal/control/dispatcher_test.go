package control

import (
	"testing"

	"github.com/pazzk-labs/ocpp/internal/catalog"
	"github.com/pazzk-labs/ocpp/internal/config"
	"github.com/pazzk-labs/ocpp/internal/fsm"
)

type fakeResponder struct {
	responses []struct {
		id   string
		typ  catalog.Type
		role catalog.Role
		body interface{}
	}
}

func (f *fakeResponder) PushResponse(id string, typ catalog.Type, role catalog.Role, body interface{}) error {
	f.responses = append(f.responses, struct {
		id   string
		typ  catalog.Type
		role catalog.Role
		body interface{}
	}{id, typ, role, body})
	return nil
}

type noopRequester struct{}

func (noopRequester) PushRequest(typ catalog.Type, body interface{}) (string, error) { return "id", nil }

func newTestDispatcher() (*Dispatcher, *fakeResponder, *config.Store, []*fsm.Connector) {
	store := config.New(nil)
	connectors := []*fsm.Connector{
		fsm.New(1, store, noopRequester{}, nil, nil),
	}
	resp := &fakeResponder{}
	return New(store, connectors, resp, nil), resp, store, connectors
}

func TestDispatchRemoteStartAcceptedWhileReady(t *testing.T) {
	d, resp, _, _ := newTestDispatcher()

	d.Dispatch(&catalog.Envelope{
		ID:   "call-1",
		Role: catalog.RoleCall,
		Type: catalog.RemoteStartTransaction,
		Body: &catalog.RemoteStartTransactionReq{ConnectorID: 1, IDTag: "tag-1"},
	})

	if len(resp.responses) != 1 {
		t.Fatalf("responses = %d, want 1", len(resp.responses))
	}
	conf, ok := resp.responses[0].body.(*catalog.RemoteStartTransactionConf)
	if !ok {
		t.Fatalf("body = %T, want *RemoteStartTransactionConf", resp.responses[0].body)
	}
	if conf.Status != catalog.RemoteAccepted {
		t.Fatalf("Status = %v, want RemoteAccepted", conf.Status)
	}
}

func TestDispatchRemoteStartRejectedForUnknownConnector(t *testing.T) {
	d, resp, _, _ := newTestDispatcher()

	d.Dispatch(&catalog.Envelope{
		ID:   "call-1",
		Role: catalog.RoleCall,
		Type: catalog.RemoteStartTransaction,
		Body: &catalog.RemoteStartTransactionReq{ConnectorID: 99, IDTag: "tag-1"},
	})

	conf := resp.responses[0].body.(*catalog.RemoteStartTransactionConf)
	if conf.Status != catalog.RemoteRejected {
		t.Fatalf("Status = %v, want RemoteRejected", conf.Status)
	}
}

func TestDispatchChangeConfigurationAccepted(t *testing.T) {
	d, resp, store, _ := newTestDispatcher()

	d.Dispatch(&catalog.Envelope{
		ID:   "call-1",
		Role: catalog.RoleCall,
		Type: catalog.ChangeConfiguration,
		Body: &catalog.ChangeConfigurationReq{Key: "HeartbeatInterval", Value: "120"},
	})

	conf := resp.responses[0].body.(*catalog.ChangeConfigurationConf)
	if conf.Status != catalog.ConfigurationAccepted {
		t.Fatalf("Status = %v, want ConfigurationAccepted", conf.Status)
	}
	got, err := store.Get("HeartbeatInterval")
	if err != nil || got != "120" {
		t.Fatalf("store.Get(HeartbeatInterval) = %q, %v, want 120, nil", got, err)
	}
}

func TestDispatchChangeConfigurationRejectsReadOnlyKey(t *testing.T) {
	d, resp, _, _ := newTestDispatcher()

	d.Dispatch(&catalog.Envelope{
		ID:   "call-1",
		Role: catalog.RoleCall,
		Type: catalog.ChangeConfiguration,
		Body: &catalog.ChangeConfigurationReq{Key: "NumberOfConnectors", Value: "2"},
	})

	conf := resp.responses[0].body.(*catalog.ChangeConfigurationConf)
	if conf.Status != catalog.ConfigurationRejected {
		t.Fatalf("Status = %v, want ConfigurationRejected", conf.Status)
	}
}

func TestDispatchChangeConfigurationUnknownKey(t *testing.T) {
	d, resp, _, _ := newTestDispatcher()

	d.Dispatch(&catalog.Envelope{
		ID:   "call-1",
		Role: catalog.RoleCall,
		Type: catalog.ChangeConfiguration,
		Body: &catalog.ChangeConfigurationReq{Key: "AnyKey", Value: "x"},
	})

	conf := resp.responses[0].body.(*catalog.ChangeConfigurationConf)
	if conf.Status != catalog.ConfigurationNotSupported {
		t.Fatalf("Status = %v, want ConfigurationNotSupported", conf.Status)
	}
}

func TestDispatchGetConfigurationRoundTrip(t *testing.T) {
	d, resp, store, _ := newTestDispatcher()
	if err := store.Set("HeartbeatInterval", "300"); err != nil {
		t.Fatalf("store.Set = %v", err)
	}

	d.Dispatch(&catalog.Envelope{
		ID:   "call-1",
		Role: catalog.RoleCall,
		Type: catalog.GetConfiguration,
		Body: &catalog.GetConfigurationReq{Key: "HeartbeatInterval"},
	})

	conf := resp.responses[0].body.(*catalog.GetConfigurationConf)
	if conf.ConfigurationKey.Value != "300" {
		t.Fatalf("ConfigurationKey.Value = %q, want 300", conf.ConfigurationKey.Value)
	}
	if conf.UnknownKey != "" {
		t.Fatalf("UnknownKey = %q, want empty", conf.UnknownKey)
	}
}

func TestDispatchGetConfigurationUnknownKey(t *testing.T) {
	d, resp, _, _ := newTestDispatcher()

	d.Dispatch(&catalog.Envelope{
		ID:   "call-1",
		Role: catalog.RoleCall,
		Type: catalog.GetConfiguration,
		Body: &catalog.GetConfigurationReq{Key: "AnyKey"},
	})

	conf := resp.responses[0].body.(*catalog.GetConfigurationConf)
	if conf.UnknownKey != "AnyKey" {
		t.Fatalf("UnknownKey = %q, want AnyKey", conf.UnknownKey)
	}
}

func TestDispatchStubHandlersAlwaysReply(t *testing.T) {
	d, resp, _, _ := newTestDispatcher()

	stubbed := []catalog.Type{
		catalog.ChangeAvailability, catalog.ClearCache, catalog.Reset, catalog.UnlockConnector,
		catalog.GetDiagnostics, catalog.UpdateFirmware, catalog.GetLocalListVersion,
		catalog.SendLocalList, catalog.ReserveNow, catalog.CancelReservation,
		catalog.ClearChargingProfile, catalog.GetCompositeSchedule, catalog.SetChargingProfile,
		catalog.TriggerMessage, catalog.DataTransfer,
	}
	for _, typ := range stubbed {
		resp.responses = nil
		d.Dispatch(&catalog.Envelope{ID: "call-1", Role: catalog.RoleCall, Type: typ, Body: nil})
		if len(resp.responses) != 1 {
			t.Fatalf("type %v: responses = %d, want 1", typ, len(resp.responses))
		}
	}
}

func TestDispatchRemoteStopRoutesToChargingConnector(t *testing.T) {
	d, resp, _, connectors := newTestDispatcher()
	c := connectors[0]
	c.Step(fsm.Context{RFID: "tag-1"})
	c.Step(fsm.Context{Signal: fsm.SignalC})
	if c.State != fsm.Charging {
		t.Fatalf("precondition failed: State = %v, want Charging", c.State)
	}
	c.SetTransactionID(42)

	d.Dispatch(&catalog.Envelope{
		ID:   "call-1",
		Role: catalog.RoleCall,
		Type: catalog.RemoteStopTransaction,
		Body: &catalog.RemoteStopTransactionReq{TransactionID: 42},
	})

	conf := resp.responses[0].body.(*catalog.RemoteStopTransactionConf)
	if conf.Status != catalog.RemoteAccepted {
		t.Fatalf("Status = %v, want RemoteAccepted", conf.Status)
	}

	c.Step(fsm.Context{Signal: fsm.SignalC})
	if c.State != fsm.Occupied {
		t.Fatalf("State after remote stop applied = %v, want Occupied", c.State)
	}
}

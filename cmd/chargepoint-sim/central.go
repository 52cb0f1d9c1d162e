package main

import (
	"time"

	ocpp "github.com/pazzk-labs/ocpp"
	"github.com/pazzk-labs/ocpp/internal/catalog"
)

// CentralSim stands in for the real OCPP central system this demo has
// no network path to. It watches everything the engine hands to a
// ocpp.MockTransport and delivers back a plausible CallResult for each,
// the way a permissive test central system would, so chargepoint-sim can
// drive the full engine/FSM loop with nothing but the REPL behind it,
// polling internal/transport.Loopback's Deliver/Sent pair from a loop
// instead of a table of expectations.
type CentralSim struct {
	transport *ocpp.MockTransport
	processed int
	nextTxID  int
}

func NewCentralSim(transport *ocpp.MockTransport) *CentralSim {
	return &CentralSim{transport: transport, nextTxID: 1}
}

// Poll replies to every envelope sent since the last call, in order.
func (c *CentralSim) Poll(now time.Time) {
	sent := c.transport.Sent()
	for _, env := range sent[c.processed:] {
		c.respond(env, now)
	}
	c.processed = len(sent)
}

func (c *CentralSim) respond(env *ocpp.Envelope, now time.Time) {
	if env.Role != ocpp.RoleCall {
		return
	}
	var body interface{}
	switch env.Type {
	case ocpp.BootNotification:
		body = &catalog.BootNotificationConf{Status: catalog.BootAccepted, CurrentTime: now, Interval: 300}
	case ocpp.Authorize:
		body = &catalog.AuthorizeConf{IDTagInfo: catalog.IDTagInfo{Status: catalog.AuthorizationAccepted}}
	case ocpp.Heartbeat:
		body = &catalog.HeartbeatConf{CurrentTime: now}
	case ocpp.StartTransaction:
		body = &catalog.StartTransactionConf{IDTagInfo: catalog.IDTagInfo{Status: catalog.AuthorizationAccepted}, TransactionID: c.nextTxID}
		c.nextTxID++
	case ocpp.StopTransaction:
		body = &catalog.StopTransactionConf{IDTagInfo: catalog.IDTagInfo{Status: catalog.AuthorizationAccepted}}
	case ocpp.StatusNotification:
		body = &catalog.StatusNotificationConf{}
	case ocpp.MeterValues:
		body = &catalog.MeterValuesConf{}
	case ocpp.DiagnosticsStatusNotification:
		body = &catalog.DiagnosticsStatusNotificationConf{}
	case ocpp.FirmwareStatusNotification:
		body = &catalog.FirmwareStatusNotificationConf{}
	default:
		return
	}
	c.transport.Deliver(&ocpp.Envelope{ID: env.ID, Role: ocpp.RoleCallResult, Type: env.Type, Body: body})
}

package ocpp

import (
	"github.com/pazzk-labs/ocpp/internal/config"
	"github.com/pazzk-labs/ocpp/internal/fsm"
)

// Aliases for the connector FSM and configuration store types, so a host
// in this module can drive a Connector or read/write configuration
// without importing internal/fsm or internal/config directly.
type (
	Connector      = fsm.Connector
	ConnectorState = fsm.State
	ConnectorCtx   = fsm.Context
	CPSignal       = fsm.CPSignal

	ConfigStore = config.Store
)

const (
	StateReady       = fsm.Ready
	StateOccupied    = fsm.Occupied
	StateCharging    = fsm.Charging
	StateUnavailable = fsm.Unavailable

	SignalA = fsm.SignalA
	SignalB = fsm.SignalB
	SignalC = fsm.SignalC
)

// Connectors returns every connector this Engine manages, indexed from 0
// (Connectors()[0] is OCPP ConnectorID 1).
func (e *Engine) Connectors() []*Connector {
	return e.connectors
}

// Connector returns the connector with the given OCPP ConnectorID (1-based),
// or nil if id is out of range.
func (e *Engine) Connector(connectorID int) *Connector {
	idx := connectorID - 1
	if idx < 0 || idx >= len(e.connectors) {
		return nil
	}
	return e.connectors[idx]
}

// Configuration returns the engine's live configuration store.
func (e *Engine) Configuration() *ConfigStore {
	return e.cfg
}

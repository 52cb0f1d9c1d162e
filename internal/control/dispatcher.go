// Package control gives the central system's requests a dispatch path:
// a switch keyed by catalog.Type, two handlers with real business logic
// (ChangeConfiguration, GetConfiguration), two that arbitrate into the
// connector FSM (RemoteStartTransaction, RemoteStopTransaction), and
// the rest wired up as documented stubs answering with each operation's
// conservative default status.
package control

import (
	"errors"

	"github.com/pazzk-labs/ocpp/internal/bindings"
	"github.com/pazzk-labs/ocpp/internal/catalog"
	"github.com/pazzk-labs/ocpp/internal/config"
	"github.com/pazzk-labs/ocpp/internal/fsm"
)

// responder is the slice of internal/queue.Engine a dispatched Call needs
// to reply through — PushResponse only, same narrow-interface approach
// internal/fsm takes with requester.
type responder interface {
	PushResponse(id string, typ catalog.Type, role catalog.Role, body interface{}) error
}

// Dispatcher routes inbound Calls, drained from Engine.PopInbound, to a
// per-Type handler and replies with the result.
type Dispatcher struct {
	cfg        *config.Store
	connectors []*fsm.Connector
	resp       responder
	logger     bindings.Logger
}

// New builds a Dispatcher over the given connectors, indexed by their
// position — ConnectorID 0 conventionally means "the charge point itself"
// in several OCPP operations (GetConfiguration, Reset), so connectors[0]
// corresponds to ConnectorID 1 the way OCPP numbers outlets from 1.
func New(cfg *config.Store, connectors []*fsm.Connector, resp responder, logger bindings.Logger) *Dispatcher {
	return &Dispatcher{cfg: cfg, connectors: connectors, resp: resp, logger: logger}
}

// Dispatch handles exactly one inbound Call and sends its CallResult.
// Errors constructing a response are logged, not returned: a malformed
// reply must never wedge the dispatch loop, per the same
// never-block-the-core principle the queue engine follows.
func (d *Dispatcher) Dispatch(env *catalog.Envelope) {
	if env == nil || env.Role != catalog.RoleCall {
		return
	}
	switch env.Type {
	case catalog.RemoteStartTransaction:
		d.handleRemoteStart(env)
	case catalog.RemoteStopTransaction:
		d.handleRemoteStop(env)
	case catalog.ChangeConfiguration:
		d.handleChangeConfiguration(env)
	case catalog.GetConfiguration:
		d.handleGetConfiguration(env)
	default:
		d.handleStub(env)
	}
}

func (d *Dispatcher) reply(id string, typ catalog.Type, body interface{}) {
	if d.resp == nil {
		return
	}
	if err := d.resp.PushResponse(id, typ, catalog.RoleCallResult, body); err != nil && d.logger != nil {
		d.logger.Warn("failed to queue response", "id", id, "type", catalog.Stringify(typ), "err", err)
	}
}

func (d *Dispatcher) connector(connectorID int) *fsm.Connector {
	idx := connectorID - 1
	if idx < 0 || idx >= len(d.connectors) {
		return nil
	}
	return d.connectors[idx]
}

// handleRemoteStart arbitrates a RemoteStartTransaction: accepted only
// while the target connector is Ready, or Occupied with no vehicle
// plugged in yet.
func (d *Dispatcher) handleRemoteStart(env *catalog.Envelope) {
	req, ok := env.Body.(*catalog.RemoteStartTransactionReq)
	status := catalog.RemoteRejected
	if ok {
		if c := d.connector(req.ConnectorID); c != nil && c.ArbitrateRemoteStart(req.IDTag) {
			status = catalog.RemoteAccepted
		}
	}
	d.reply(env.ID, catalog.RemoteStartTransaction, &catalog.RemoteStartTransactionConf{Status: status})
}

// handleRemoteStop looks up the connector currently holding the given
// transaction id and arms its next Step with ctx.RemoteStop — the
// Dispatcher itself never mutates FSM state directly, it only sets the
// intent the host's Step loop will apply through Context.
func (d *Dispatcher) handleRemoteStop(env *catalog.Envelope) {
	req, ok := env.Body.(*catalog.RemoteStopTransactionReq)
	status := catalog.RemoteRejected
	if ok {
		for _, c := range d.connectors {
			if c.State == fsm.Charging && c.Session.TransactionID == req.TransactionID {
				c.RequestRemoteStop()
				status = catalog.RemoteAccepted
				break
			}
		}
	}
	d.reply(env.ID, catalog.RemoteStopTransaction, &catalog.RemoteStopTransactionConf{Status: status})
}

// handleChangeConfiguration maps directly onto the configuration
// store's Set — one of the two handlers here with real business logic
// rather than a stubbed status.
func (d *Dispatcher) handleChangeConfiguration(env *catalog.Envelope) {
	req, ok := env.Body.(*catalog.ChangeConfigurationReq)
	if !ok {
		d.reply(env.ID, catalog.ChangeConfiguration, &catalog.ChangeConfigurationConf{Status: catalog.ConfigurationRejected})
		return
	}
	status := catalog.ConfigurationAccepted
	if err := d.cfg.Set(req.Key, req.Value); err != nil {
		switch {
		case errors.Is(err, config.ErrUnknownKey):
			status = catalog.ConfigurationNotSupported
		default:
			status = catalog.ConfigurationRejected
		}
	}
	d.reply(env.ID, catalog.ChangeConfiguration, &catalog.ChangeConfigurationConf{Status: status})
}

// handleGetConfiguration maps directly onto the configuration store's
// Get. An empty Key in the request would mean "all keys" in full OCPP;
// this dispatcher does not enumerate keys (Store.GetByIndex is not called
// here) and only answers the single-key form the catalog's
// GetConfigurationConf shape supports, so an empty Key goes to Get like
// any other name.
func (d *Dispatcher) handleGetConfiguration(env *catalog.Envelope) {
	req, ok := env.Body.(*catalog.GetConfigurationReq)
	if !ok {
		d.reply(env.ID, catalog.GetConfiguration, &catalog.GetConfigurationConf{})
		return
	}
	value, err := d.cfg.Get(req.Key)
	if err != nil {
		d.reply(env.ID, catalog.GetConfiguration, &catalog.GetConfigurationConf{UnknownKey: req.Key})
		return
	}
	d.reply(env.ID, catalog.GetConfiguration, &catalog.GetConfigurationConf{
		ConfigurationKey: catalog.KeyValue{
			Key:      req.Key,
			Readonly: !d.cfg.IsWritable(req.Key),
			Value:    value,
		},
	})
}

// handleStub acknowledges every operation this core carries no
// business logic for with a conservative default: NotSupported/Rejected
// where OCPP 1.6 defines such a status. Firmware management, local list
// storage and reservations belong to layers the host builds on top.
func (d *Dispatcher) handleStub(env *catalog.Envelope) {
	switch env.Type {
	case catalog.ChangeAvailability:
		d.reply(env.ID, env.Type, &catalog.ChangeAvailabilityConf{Status: catalog.AvailabilityRejected})
	case catalog.ClearCache:
		d.reply(env.ID, env.Type, &catalog.ClearCacheConf{Status: catalog.RemoteRejected})
	case catalog.Reset:
		d.reply(env.ID, env.Type, &catalog.ResetConf{Status: catalog.RemoteRejected})
	case catalog.UnlockConnector:
		d.reply(env.ID, env.Type, &catalog.UnlockConnectorConf{Status: catalog.UnlockNotSupported})
	case catalog.GetDiagnostics:
		d.reply(env.ID, env.Type, &catalog.GetDiagnosticsConf{})
	case catalog.UpdateFirmware:
		d.reply(env.ID, env.Type, &catalog.UpdateFirmwareConf{})
	case catalog.GetLocalListVersion:
		d.reply(env.ID, env.Type, &catalog.GetLocalListVersionConf{ListVersion: -1})
	case catalog.SendLocalList:
		d.reply(env.ID, env.Type, &catalog.SendLocalListConf{Status: catalog.UpdateNotSupported})
	case catalog.ReserveNow:
		d.reply(env.ID, env.Type, &catalog.ReserveNowConf{Status: catalog.ReservationRejected})
	case catalog.CancelReservation:
		d.reply(env.ID, env.Type, &catalog.CancelReservationConf{Status: catalog.ReservationRejected})
	case catalog.ClearChargingProfile:
		d.reply(env.ID, env.Type, &catalog.ClearChargingProfileConf{Status: catalog.ClearChargingProfileUnknown})
	case catalog.GetCompositeSchedule:
		d.reply(env.ID, env.Type, &catalog.GetCompositeScheduleConf{Status: catalog.GetCompositeScheduleRejected})
	case catalog.SetChargingProfile:
		d.reply(env.ID, env.Type, &catalog.SetChargingProfileConf{Status: catalog.ChargingProfileNotSupported})
	case catalog.TriggerMessage:
		d.reply(env.ID, env.Type, &catalog.TriggerMessageConf{Status: catalog.TriggerNotImplemented})
	case catalog.DataTransfer:
		d.reply(env.ID, env.Type, &catalog.DataTransferConf{Status: catalog.DataTransferUnknownVendorID})
	default:
		// Authorize and the *StatusNotification family are outbound-only
		// from the charge point's side and never arrive as inbound Calls;
		// anything else unrecognized is dropped silently rather than
		// guessing at a response shape.
	}
}

// Package fsm implements the per-connector charging-session state
// machine: a table of guard/action/next-state rows evaluated in
// declaration order each tick, with every input a guard needs — the
// clock included — threaded in through an explicit Context.
package fsm

import (
	"time"

	"github.com/pazzk-labs/ocpp/internal/bindings"
	"github.com/pazzk-labs/ocpp/internal/catalog"
	"github.com/pazzk-labs/ocpp/internal/config"
)

// State is one of the four connector states the transition table moves
// between.
type State int

const (
	Ready State = iota
	Occupied
	Charging
	Unavailable
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Occupied:
		return "Occupied"
	case Charging:
		return "Charging"
	case Unavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}

// CPSignal mirrors the IEC 61851 control-pilot states the hardware
// extension point reports: A is no vehicle connected, B is connected but
// not drawing current, C is connected and charging.
type CPSignal int

const (
	SignalA CPSignal = iota
	SignalB
	SignalC
)

const anonymousIDTag = "ANONYMOUS"

// Session is the per-charging-attempt record. Cleared on every return
// to Ready: a connector that is not occupied or charging holds no
// session state.
type Session struct {
	UserID          string
	ParentID        string
	TransactionID   int
	RemotelyStarted bool
	TmpID           string
}

func (s *Session) reset() { *s = Session{} }

// Meter tracks the last time each of the two independent metering
// schedules fired, so doMetering can tell whether an interval has
// elapsed without storing the interval itself (that lives in
// internal/config).
type Meter struct {
	LastClockAligned time.Time
	LastSample       time.Time
}

// requester is the slice of internal/queue.Engine the FSM needs to emit
// StatusNotification/MeterValues/StopTransaction Calls. Declared locally
// instead of importing internal/queue so the FSM has no compile-time
// dependency on the message engine's internals — only on the one method
// it actually calls.
type requester interface {
	PushRequest(typ catalog.Type, body interface{}) (string, error)
}

// Context carries everything a guard needs to evaluate one Step — the
// clock included, so guards never reach for ambient state. The host
// builds one of these per tick from its hardware/RFID-reader extension
// points and passes it down; none of these fields are read outside of
// Step.
type Context struct {
	Now time.Time

	// Signal is this tick's control-pilot reading. Connector compares it
	// against the previous tick's reading to derive plugged_in/plugged_out.
	Signal CPSignal

	// RFID is the tag presented this tick, or "" if none was presented.
	RFID string

	// HardwareError and HardwareRecovered report fault conditions from
	// the relay/CP hardware extension point.
	HardwareError     bool
	HardwareRecovered bool

	// SuspendedByEV and ResumedFromSuspended report EV-initiated pauses
	// (the vehicle's own charge controller backing off, not a CS command).
	SuspendedByEV         bool
	ResumedFromSuspended bool

	// RemoteStop is set for exactly the tick internal/control dispatches
	// a RemoteStopTransaction targeting this connector's active
	// transaction id.
	RemoteStop bool
}

// Connector is one physical outlet's FSM, metering state, and session
// record.
type Connector struct {
	ID         int
	State      State
	prevSignal CPSignal
	occupiedAt time.Time

	Session Session
	Meter   Meter

	cfg      *config.Store
	req      requester
	logger   bindings.Logger
	observer bindings.Observer

	pendingRemoteStop bool
}

// New builds a Connector in the Ready state. cfg supplies ConnectionTimeOut,
// ClockAlignedDataInterval, and MeterValueSampleInterval; req is where
// StatusNotification/MeterValues/StopTransaction Calls go.
func New(id int, cfg *config.Store, req requester, logger bindings.Logger, observer bindings.Observer) *Connector {
	return &Connector{
		ID:         id,
		State:      Ready,
		prevSignal: SignalA,
		cfg:        cfg,
		req:        req,
		logger:     logger,
		observer:   observer,
	}
}

// ArbitrateRemoteStart implements the RemoteStart arbitration rule:
// accepted only while the connector is Ready, or Occupied with no
// vehicle plugged in yet; rejected otherwise. On acceptance the idTag is
// stashed in Session.TmpID and RemotelyStarted is set so the next Step
// picks it up as an ordinary remotely_started guard.
func (c *Connector) ArbitrateRemoteStart(idTag string) bool {
	if c.State == Ready || (c.State == Occupied && c.prevSignal == SignalA) {
		c.Session.TmpID = idTag
		c.Session.RemotelyStarted = true
		return true
	}
	return false
}

// SetTransactionID records the transaction id the central system
// assigned in a StartTransactionConf. Nothing in this package initiates
// that exchange; this setter just gives whoever completes it (the host,
// once StartTransactionConf arrives) a place to stash the id
// RemoteStopTransaction matching depends on.
func (c *Connector) SetTransactionID(id int) {
	c.Session.TransactionID = id
}

// RequestRemoteStop arms this connector's next Step with the
// remotely_stopped guard. internal/control calls this instead of
// mutating FSM state directly — only Step, driven by the host's
// Context, is allowed to change State.
func (c *Connector) RequestRemoteStop() {
	c.pendingRemoteStop = true
}

// Step re-evaluates this connector's transition table in declaration
// order and fires the first guard that is true, exactly once per call —
// one transition per tick.
func (c *Connector) Step(ctx Context) {
	if c.pendingRemoteStop {
		ctx.RemoteStop = true
		c.pendingRemoteStop = false
	}
	from := c.State
	switch c.State {
	case Ready:
		c.stepReady(ctx)
	case Occupied:
		c.stepOccupied(ctx)
	case Charging:
		c.stepCharging(ctx)
	case Unavailable:
		c.stepUnavailable(ctx)
	}
	c.prevSignal = ctx.Signal
	if c.State != from && c.observer != nil {
		c.observer.ObserveTransition(c.ID, int(from), int(c.State))
	}
}

func (c *Connector) pluggedIn(ctx Context) bool  { return c.prevSignal == SignalA && ctx.Signal != SignalA }
func (c *Connector) pluggedOut(ctx Context) bool { return c.prevSignal != SignalA && ctx.Signal == SignalA }
func (c *Connector) rfidTagged(ctx Context) bool { return ctx.RFID != "" }
func (c *Connector) remotelyStarted() bool       { return c.Session.RemotelyStarted }

func (c *Connector) stepReady(ctx Context) {
	switch {
	case c.pluggedIn(ctx):
		c.prepareToCharge(ctx, "")
	case c.rfidTagged(ctx):
		c.prepareToCharge(ctx, ctx.RFID)
	case c.remotelyStarted():
		c.prepareToCharge(ctx, c.Session.TmpID)
	case ctx.HardwareError:
		c.State = Unavailable
	}
}

func (c *Connector) stepOccupied(ctx Context) {
	switch {
	case c.readyToDrawCurrent(ctx):
		c.startCharging(ctx)
	case c.rfidTagged(ctx):
		c.startCharging(ctx)
	case c.remotelyStarted():
		c.startCharging(ctx)
	case c.connectionTimedOut(ctx):
		c.cleanSession(Ready)
	case c.pluggedOut(ctx):
		c.cleanSession(Ready)
	case ctx.HardwareError:
		c.cleanSession(Unavailable)
	}
}

func (c *Connector) stepCharging(ctx Context) {
	switch {
	case c.rfidTagged(ctx) && c.rfidMatchesSession(ctx.RFID):
		c.stopCharging(ctx, catalog.StopReasonLocal)
		c.State = Occupied
	case ctx.RemoteStop:
		c.stopCharging(ctx, catalog.StopReasonRemote)
		c.State = Occupied
	case c.pluggedOut(ctx):
		c.stopCharging(ctx, catalog.StopReasonEVDisconnected)
		c.State = Ready
	case ctx.SuspendedByEV:
		c.suspendCharging()
	case ctx.ResumedFromSuspended:
		c.resumeCharging()
	case ctx.HardwareError:
		c.stopCharging(ctx, catalog.StopReasonOther)
		c.State = Unavailable
	default:
		c.doMetering(ctx)
	}
}

func (c *Connector) stepUnavailable(ctx Context) {
	if ctx.HardwareRecovered {
		c.State = Ready
	}
}

// readyToDrawCurrent distinguishes Occupied's plug guard (the CP
// signal reaching C, vehicle ready to draw current) from Ready's (the
// signal merely leaving A, cable connected). Conflating the two would
// jump a connector straight from Ready to Charging on one signal
// change.
func (c *Connector) readyToDrawCurrent(ctx Context) bool {
	return ctx.Signal == SignalC
}

// connectionTimedOut fires only in Occupied: the user authenticated
// but the vehicle never actually connected within ConnectionTimeOut
// seconds of entering Occupied.
func (c *Connector) connectionTimedOut(ctx Context) bool {
	if c.occupiedAt.IsZero() || ctx.Signal != SignalA {
		return false
	}
	timeout := c.cfg.Int(config.KeyConnectionTimeOut)
	return ctx.Now.Sub(c.occupiedAt) >= time.Duration(timeout)*time.Second
}

// rfidMatchesSession gates stopping by RFID: the newly-presented uid
// must equal the session's own tag or its parent tag, anything else is
// ignored.
func (c *Connector) rfidMatchesSession(uid string) bool {
	return uid == c.Session.UserID || uid == c.Session.ParentID
}

// prepareToCharge records the occupancy timestamp and emits
// StatusNotification(Preparing). idTag, when non-empty,
// becomes the session's provisional identity; a bare plug-through with
// no RFID or remote start is only assigned the anonymous tag when
// AllowOfflineTxForUnknownId permits it, and may otherwise leave
// Session.UserID empty here — the invariant only binds once Charging is
// entered (see startCharging's fallback).
func (c *Connector) prepareToCharge(ctx Context, idTag string) {
	c.occupiedAt = ctx.Now
	if idTag == "" {
		if c.cfg.Bool(config.KeyAllowOfflineTxForUnknownId) {
			idTag = anonymousIDTag
		}
	}
	c.Session.UserID = idTag
	c.Session.RemotelyStarted = false
	c.State = Occupied
	c.notifyStatus(ctx, catalog.StatusPreparing)
}

// startCharging moves to Charging and reports StatusNotification(Charging).
// It does not actuate a relay: this package has no relay hook. The invariant that Charging implies a non-empty
// session.user_id is enforced right here, unconditionally, since this is
// the one place every path into Charging passes through.
func (c *Connector) startCharging(ctx Context) {
	if c.Session.UserID == "" {
		c.Session.UserID = anonymousIDTag
	}
	c.State = Charging
	c.notifyStatus(ctx, catalog.StatusCharging)
}

// cleanSession clears the session record and moves to `to`, matching the
// invariant that leaving Charging or Occupied back toward Ready (or into
// Unavailable on a hardware fault) always wipes the session.
func (c *Connector) cleanSession(to State) {
	c.Session.reset()
	c.occupiedAt = time.Time{}
	c.State = to
}

// stopCharging clears the session; like startCharging it does not
// actuate a relay. The meter-stop
// reading a complete StopTransaction wants comes from metering hardware
// this package has no access to, so one is pushed only when a
// transaction id is actually present, with the session-side bookkeeping
// done either way.
func (c *Connector) stopCharging(ctx Context, reason catalog.StopReason) {
	txID := c.Session.TransactionID
	idTag := c.Session.UserID
	c.Session.reset()
	c.occupiedAt = time.Time{}

	if c.req != nil && txID != 0 {
		c.req.PushRequest(catalog.StopTransaction, &catalog.StopTransactionReq{
			IDTag:         idTag,
			Timestamp:     ctx.Now,
			TransactionID: txID,
			Reason:        reason,
		})
	}
}

func (c *Connector) suspendCharging() {}
func (c *Connector) resumeCharging()  {}

// doMetering emits MeterValues on each of the two independent schedules
// — clock-aligned and sampled — whenever their configured interval has
// elapsed; interval==0 disables that schedule entirely.
func (c *Connector) doMetering(ctx Context) {
	clockInterval := c.cfg.Int(config.KeyClockAlignedDataInterval)
	sampleInterval := c.cfg.Int(config.KeyMeterValueSampleInterval)

	if c.dueFor(c.Meter.LastClockAligned, clockInterval, ctx.Now) {
		c.sendMeterValue(ctx)
		c.Meter.LastClockAligned = ctx.Now
	}
	if c.dueFor(c.Meter.LastSample, sampleInterval, ctx.Now) {
		c.sendMeterValue(ctx)
		c.Meter.LastSample = ctx.Now
	}
}

func (c *Connector) dueFor(last time.Time, intervalSec int, now time.Time) bool {
	if intervalSec <= 0 {
		return false
	}
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= time.Duration(intervalSec)*time.Second
}

func (c *Connector) sendMeterValue(ctx Context) {
	if c.req == nil {
		return
	}
	c.req.PushRequest(catalog.MeterValues, &catalog.MeterValuesReq{
		ConnectorID:   c.ID,
		TransactionID: c.Session.TransactionID,
		MeterValue: []catalog.MeterValue{{
			Timestamp: ctx.Now,
		}},
	})
}

func (c *Connector) notifyStatus(ctx Context, status catalog.ConnectorStatus) {
	if c.req == nil {
		return
	}
	c.req.PushRequest(catalog.StatusNotification, &catalog.StatusNotificationReq{
		ConnectorID: c.ID,
		ErrorCode:   catalog.ErrorNoError,
		Status:      status,
		Timestamp:   ctx.Now,
	})
}

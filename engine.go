// Package ocpp is the public API for an embedded OCPP 1.6 Charge-Point
// core: a message engine, a configuration store, and a connector state
// machine. Transport, persistent storage, the clock, locking and
// identity generation are all injected through the narrow interfaces in
// bindings.go — the core itself never touches a socket, a file, or
// time.Now.
package ocpp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/pazzk-labs/ocpp/internal/config"
	"github.com/pazzk-labs/ocpp/internal/constants"
	"github.com/pazzk-labs/ocpp/internal/control"
	"github.com/pazzk-labs/ocpp/internal/fsm"
	"github.com/pazzk-labs/ocpp/internal/queue"
)

// Params collects Engine's constructor arguments. Transport is the
// only field a host must supply to get useful behavior; everything else
// has a workable default.
type Params struct {
	Transport    Transport
	IDGen        IDGenerator
	Locker       Locker
	ConfigLocker ConfigLocker
	Observer     Observer
	Logger       Logger

	// OnEvent, when non-nil, fires after every receive that found a
	// frame or failed trying; see EventFunc for the contract.
	OnEvent EventFunc

	PoolSize   int // message pool slots, default internal/constants.DefaultPoolLen
	Connectors int // number of connectors, default internal/constants.DefaultConnectorCount

	// Policy supplies the static scheduling knobs (TimeoutSec, Retries);
	// the zero value falls back to queue.DefaultPolicy(). The
	// configuration-backed knobs — HeartbeatInterval,
	// TransactionMessageAttempts, TransactionMessageRetryInterval — are
	// read live from the store on every Step and override whatever this
	// carries for them.
	Policy queue.Policy
}

// Engine wires the message engine, configuration store, connector FSMs
// and central-request dispatcher into the single poll-driven core a
// host advances by calling Step.
type Engine struct {
	mq         *queue.Engine
	cfg        *config.Store
	connectors []*Connector
	dispatch   *control.Dispatcher
	logger     Logger
	base       queue.Policy
}

// New builds an Engine. A nil Params.Transport makes every send attempt
// fail (and back off and retry or drop like any failed send) rather than
// panic; Step does not report it. Tests that want Transport-less
// behavior should pass a MockTransport with SetFailing(true) instead.
func New(p Params) *Engine {
	policy := p.Policy
	if policy == (queue.Policy{}) {
		policy = queue.DefaultPolicy()
	}

	cfg := config.New(p.ConfigLocker)

	mq := queue.New(queue.Config{
		PoolSize:  p.PoolSize,
		Transport: p.Transport,
		IDGen:     p.IDGen,
		Locker:    p.Locker,
		Observer:  p.Observer,
		Logger:    p.Logger,
		Callback:  p.OnEvent,
		Policy:    policy,
	})

	n := p.Connectors
	if n <= 0 {
		n = constants.DefaultConnectorCount
	}
	connectors := make([]*Connector, n)
	for i := 0; i < n; i++ {
		connectors[i] = fsm.New(i+1, cfg, mq, p.Logger, p.Observer)
	}

	dispatch := control.New(cfg, connectors, mq, p.Logger)

	e := &Engine{mq: mq, cfg: cfg, connectors: connectors, dispatch: dispatch, logger: p.Logger, base: policy}
	e.syncPolicy()
	return e
}

// syncPolicy refreshes the message engine's scheduling knobs from the
// configuration store, so a ChangeConfiguration applied mid-session
// takes effect on the very next tick.
func (e *Engine) syncPolicy() {
	p := e.base
	p.HeartbeatIntervalSec = e.cfg.Int(config.KeyHeartbeatInterval)
	p.TransactionRetries = e.cfg.Int(config.KeyTransactionMessageAttempts)
	p.TransactionRetryIntervalSec = e.cfg.Int(config.KeyTransactionMessageRetryInterval)
	e.mq.SetPolicy(p)
}

// Step advances the entire core by one tick: drain one inbound frame
// and resolve any CallResult/CallError it carries, sweep timed-out
// waits, attempt one outbound send (synthesizing a Heartbeat first if
// idle long enough), promote due timer entries, dispatch every inbound
// Call drained this tick to internal/control, and finally advance every
// connector FSM. signals supplies the physical Context for each
// connector this tick, keyed by OCPP ConnectorID (1-based); a missing
// entry advances that connector with a zero Context (no signal change,
// no RFID, no faults) at the given time.
func (e *Engine) Step(now time.Time, signals map[int]ConnectorCtx) error {
	e.syncPolicy()

	// A Call awaiting its response is the normal case between ticks,
	// not a failure the host needs to handle; everything else the
	// message engine hits mid-step (transport trouble, timeouts) is
	// already surfaced through OnEvent and the retry machinery.
	if err := e.mq.Step(now); err != nil && !errors.Is(err, queue.ErrBusy) {
		return WrapError("Engine.Step", err)
	}

	for {
		env, ok := e.mq.PopInbound()
		if !ok {
			break
		}
		e.dispatch.Dispatch(env)
	}

	for _, c := range e.connectors {
		ctx := signals[c.ID]
		ctx.Now = now
		c.Step(ctx)
	}

	return nil
}

// PushRequest queues a new outbound Call (Authorize, BootNotification,
// StartTransaction, MeterValues, ...) to be sent on a future Step. Returns
// the correlation id to match against a later CallResult/CallError.
func (e *Engine) PushRequest(typ Type, body interface{}) (string, error) {
	id, err := e.mq.PushRequest(typ, body)
	if err != nil {
		return "", WrapError("Engine.PushRequest", err)
	}
	return id, nil
}

// PushRequestDefer queues a Call like PushRequest but holds it on the
// timer list until `at`, when a Step promotes it to ready. A zero `at`
// degenerates to PushRequest.
func (e *Engine) PushRequestDefer(typ Type, body interface{}, at time.Time) (string, error) {
	id, err := e.mq.PushRequestDefer(typ, body, at)
	if err != nil {
		return "", WrapError("Engine.PushRequestDefer", err)
	}
	return id, nil
}

// PushResponse queues a CallResult (or, with RoleCallError, a CallError)
// answering an inbound central-system Call. Most hosts never need this —
// internal/control replies to everything it dispatches — but a host
// handling DataTransfer or other vendor traffic in its own OnEvent
// callback answers through here.
func (e *Engine) PushResponse(id string, typ Type, role Role, body interface{}) error {
	if err := e.mq.PushResponse(id, typ, role, body); err != nil {
		return WrapError("Engine.PushResponse", err)
	}
	return nil
}

// TypeFromIDStr resolves the operation type of the outstanding Call with
// the given correlation id, so a host-side decoder knows which response
// shape to parse an incoming CallResult body into.
func (e *Engine) TypeFromIDStr(id string) (Type, bool) {
	return e.mq.TypeFromIDStr(id)
}

// QueueDepths reports the current length of the ready, wait and timer
// queues, for a host's own metrics or admission control.
func (e *Engine) QueueDepths() (ready, wait, timer int) {
	return e.mq.QueueDepths()
}

// BootAccepted reports whether the central system has answered this
// charge point's BootNotification with a CallResult yet. The reply's
// status is not inspected: a Rejected or Pending CallResult also counts.
func (e *Engine) BootAccepted() bool {
	return e.mq.BootAccepted()
}

// snapshotMagic/Version frame the two sub-snapshots (message engine,
// configuration store) that SnapshotTo concatenates, so a host persisting
// this blob to disk (cmd/chargepoint-sim does, via natefinch/atomic) gets
// one file with one header rather than juggling two.
const (
	snapshotMagic   uint32 = 0x4f435056 // "OCPV"
	snapshotVersion uint16 = 1
)

// SnapshotTo serializes the message engine's in-flight state and the
// configuration store's values into one buffer. Connector FSM state is
// deliberately excluded: it is driven by live physical signals
// (plugged-in, RFID, remote-start) that a restart re-observes from the
// host's own hardware collaborators rather than replays from disk.
func (e *Engine) SnapshotTo() []byte {
	mq := e.mq.SnapshotTo()
	cfg := e.cfg.SnapshotTo()

	header := make([]byte, 10)
	binary.BigEndian.PutUint32(header[0:4], snapshotMagic)
	binary.BigEndian.PutUint16(header[4:6], snapshotVersion)
	binary.BigEndian.PutUint32(header[6:10], uint32(len(mq)))

	buf := append(header, mq...)
	return append(buf, cfg...)
}

// SnapshotFrom restores both sub-snapshots from a buffer produced by
// SnapshotTo. It supplants construction-time defaults entirely: on
// success, the message engine and configuration store hold exactly the
// values captured at SnapshotTo time.
func (e *Engine) SnapshotFrom(buf []byte) error {
	if len(buf) < 10 {
		return NewError("Engine.SnapshotFrom", CodeInvalidArgument, fmt.Sprintf("snapshot too short (%d bytes)", len(buf)))
	}
	magic := binary.BigEndian.Uint32(buf[0:4])
	if magic != snapshotMagic {
		return NewError("Engine.SnapshotFrom", CodeInvalidArgument, fmt.Sprintf("bad snapshot magic %#x", magic))
	}
	version := binary.BigEndian.Uint16(buf[4:6])
	if version != snapshotVersion {
		return NewError("Engine.SnapshotFrom", CodeInvalidArgument, fmt.Sprintf("unsupported snapshot version %d", version))
	}
	mqLen := int(binary.BigEndian.Uint32(buf[6:10]))
	if 10+mqLen > len(buf) {
		return NewError("Engine.SnapshotFrom", CodeInvalidArgument, fmt.Sprintf("truncated snapshot, want %d queue bytes", mqLen))
	}

	mqBuf := buf[10 : 10+mqLen]
	cfgBuf := buf[10+mqLen:]

	if err := e.mq.SnapshotFrom(mqBuf); err != nil {
		return WrapError("Engine.SnapshotFrom", err)
	}
	if err := e.cfg.SnapshotFrom(cfgBuf); err != nil {
		return WrapError("Engine.SnapshotFrom", err)
	}
	return nil
}

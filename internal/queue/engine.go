package queue

import (
	"errors"
	"fmt"
	"time"

	"github.com/pazzk-labs/ocpp/internal/bindings"
	"github.com/pazzk-labs/ocpp/internal/catalog"
)

// Policy bundles the per-call knobs Engine needs from configuration.
// The root engine re-syncs a Policy from the store before every Step,
// so a ChangeConfiguration applied mid-session takes effect on the very
// next tick rather than waiting for a restart.
type Policy struct {
	// TimeoutSec is the response deadline for a message waiting on a
	// CallResult/CallError, save for Heartbeat and BootNotification
	// which wait a full HeartbeatIntervalSec instead. It is also the
	// unit of the linear send-failure back-off (TimeoutSec × attempts).
	TimeoutSec int

	// Retries is the attempt budget for non-transaction messages.
	// Transaction-related messages (StartTransaction, StopTransaction,
	// MeterValues) use TransactionRetries instead.
	Retries int

	// TransactionRetries and TransactionRetryIntervalSec govern
	// catalog.Type.IsTransactionRelated messages, mirroring
	// TransactionMessageAttempts/TransactionMessageRetryInterval.
	TransactionRetries          int
	TransactionRetryIntervalSec int

	// HeartbeatIntervalSec is the idle period after which Step
	// synthesizes a Heartbeat request. Zero disables heartbeat
	// synthesis entirely rather than scheduling a zero-delay
	// heartbeat storm.
	HeartbeatIntervalSec int
}

// DefaultPolicy returns the stock scheduling knobs: a 5s response
// timeout, one attempt for ordinary messages, and the OCPP defaults for
// the transaction retry budget.
func DefaultPolicy() Policy {
	return Policy{
		TimeoutSec:                  5,
		Retries:                     1,
		TransactionRetries:          3,
		TransactionRetryIntervalSec: 10,
		HeartbeatIntervalSec:        0,
	}
}

// Engine is the single-threaded, poll-driven message core: one fixed
// pool, three queues, one in-flight send at a time. All mutation happens
// inside Step or the Push* methods; nothing here spawns a goroutine.
// Step takes `now` explicitly so callers control the clock, and a failed
// send always moves its message to wait with a back-off deadline instead
// of leaving it on ready to be retried unthrottled every tick.
type Engine struct {
	pool      *Pool
	transport bindings.Transport
	idgen     bindings.IDGenerator
	locker    bindings.Locker
	observer  bindings.Observer
	logger    bindings.Logger
	callback  bindings.EventFunc
	policy    Policy

	lastSend     time.Time // last successful transmit; heartbeats key off this, never off receives
	bootAccepted bool
	inbox        []*catalog.Envelope // Calls received from the central system, awaiting dispatch
}

// Config collects Engine's constructor arguments. Transport is the only
// required field; everything else has a usable default (nil IDGenerator
// falls back to a monotonic counter, nil Locker means single-threaded).
type Config struct {
	PoolSize  int
	Transport bindings.Transport
	IDGen     bindings.IDGenerator
	Locker    bindings.Locker
	Observer  bindings.Observer
	Logger    bindings.Logger
	Callback  bindings.EventFunc
	Policy    Policy
}

type counterIDGen struct{ n int }

func (g *counterIDGen) Generate() string {
	g.n++
	return fmt.Sprintf("msg-%d", g.n)
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// New builds an Engine backed by a fresh Pool of cfg.PoolSize slots.
func New(cfg Config) *Engine {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 8
	}
	idgen := cfg.IDGen
	if idgen == nil {
		idgen = &counterIDGen{}
	}
	locker := cfg.Locker
	if locker == nil {
		locker = noopLocker{}
	}
	return &Engine{
		pool:      NewPool(poolSize),
		transport: cfg.Transport,
		idgen:     idgen,
		locker:    locker,
		observer:  cfg.Observer,
		logger:    cfg.Logger,
		callback:  cfg.Callback,
		policy:    cfg.Policy,
	}
}

// SetPolicy replaces the engine's scheduling knobs. The root engine
// calls this at the top of every Step with values read live from the
// configuration store.
func (e *Engine) SetPolicy(p Policy) {
	e.locker.Lock()
	defer e.locker.Unlock()
	e.policy = p
}

// PushRequest enqueues a new outbound Call, to be sent on the next Step
// that finds nothing in flight. Returns the correlation id the caller
// should remember to match a later TypeFromIDStr lookup, ErrAlreadyHandled
// for Heartbeat (the engine owns the heartbeat schedule), or
// ErrPoolExhausted when every slot is taken.
func (e *Engine) PushRequest(typ catalog.Type, body interface{}) (string, error) {
	if typ == catalog.Heartbeat {
		return "", ErrAlreadyHandled
	}
	e.locker.Lock()
	defer e.locker.Unlock()
	return e.pushRequestLocked(typ, body, time.Time{})
}

// PushRequestDefer schedules a Call to enter the ready queue at `at`
// rather than immediately, for a Call that needs a delay instead of
// firing on this tick. A zero `at` degenerates to PushRequest.
func (e *Engine) PushRequestDefer(typ catalog.Type, body interface{}, at time.Time) (string, error) {
	if typ == catalog.Heartbeat {
		return "", ErrAlreadyHandled
	}
	e.locker.Lock()
	defer e.locker.Unlock()
	return e.pushRequestLocked(typ, body, at)
}

func (e *Engine) pushRequestLocked(typ catalog.Type, body interface{}, at time.Time) (string, error) {
	id := e.idgen.Generate()
	idx := e.pool.alloc(id, catalog.RoleCall, typ, body)
	if idx == listEnd {
		return "", ErrPoolExhausted
	}
	if at.IsZero() {
		e.pool.slots[idx].state = slotReady
		e.pool.pushBack(&e.pool.ready, idx)
	} else {
		e.pool.slots[idx].deadline = at
		e.pool.slots[idx].state = slotTimer
		e.pool.pushBack(&e.pool.timer, idx)
	}
	return id, nil
}

// PushResponse enqueues the reply to a Call the host received from the
// central system (handled by internal/control and passed back here).
// role must be RoleCallResult or RoleCallError. The correlation id is
// carried over from the request in full; responses go straight to ready
// and are released after their one send succeeds.
func (e *Engine) PushResponse(id string, typ catalog.Type, role catalog.Role, body interface{}) error {
	if role != catalog.RoleCallResult && role != catalog.RoleCallError {
		return fmt.Errorf("queue: PushResponse role must be CallResult or CallError, got %s", role)
	}
	e.locker.Lock()
	defer e.locker.Unlock()

	idx := e.pool.alloc(id, role, typ, body)
	if idx == listEnd {
		return ErrPoolExhausted
	}
	e.pool.slots[idx].state = slotReady
	e.pool.pushBack(&e.pool.ready, idx)
	return nil
}

// TypeFromIDStr resolves the catalog.Type of the outstanding Call
// waiting on a response with the given correlation id, so the caller
// can decode an inbound CallResult/CallError payload correctly. This
// must live here rather than in internal/catalog because it searches
// the engine's own wait queue — catalog owns no state.
func (e *Engine) TypeFromIDStr(id string) (catalog.Type, bool) {
	e.locker.Lock()
	defer e.locker.Unlock()
	for idx := e.pool.wait.head; idx != listEnd; idx = e.pool.slots[idx].next {
		if e.pool.slots[idx].id == id {
			return e.pool.slots[idx].typ, true
		}
	}
	return 0, false
}

// dropMessage assumes the lock is held.
func (e *Engine) dropMessage(idx int) {
	m := &e.pool.slots[idx]
	e.pool.unlink(idx)
	if e.observer != nil {
		e.observer.ObserveDrop(m.typ, m.attempts)
	}
	if e.logger != nil {
		e.logger.Warn("dropping message", "id", m.id, "type", catalog.Stringify(m.typ), "attempts", m.attempts)
	}
	e.pool.release(idx)
}

// timeoutFor returns the response deadline for a just-sent message:
// transaction-related messages back off linearly on the transaction
// retry interval; BootNotification and Heartbeat wait a full heartbeat
// interval; everything else waits the flat TimeoutSec.
func (e *Engine) timeoutFor(typ catalog.Type, attempts int) time.Duration {
	switch {
	case typ.IsTransactionRelated():
		return time.Duration(e.policy.TransactionRetryIntervalSec*attempts) * time.Second
	case typ == catalog.BootNotification || typ == catalog.Heartbeat:
		if e.policy.HeartbeatIntervalSec > 0 {
			return time.Duration(e.policy.HeartbeatIntervalSec) * time.Second
		}
		return time.Duration(e.policy.TimeoutSec) * time.Second
	default:
		return time.Duration(e.policy.TimeoutSec) * time.Second
	}
}

// shouldRetryForever reports whether typ retries without limit rather
// than being dropped after its attempt budget. A charge point that was
// never accepted has no meaningful "give up" state, so BootNotification
// keeps going until the central system answers.
func (e *Engine) shouldRetryForever(typ catalog.Type) bool {
	return typ == catalog.BootNotification
}

func (e *Engine) maxAttempts(typ catalog.Type) int {
	if typ.IsTransactionRelated() {
		return e.policy.TransactionRetries
	}
	return e.policy.Retries
}

// Step advances the engine by one tick, in the scheduling order the
// step loop specifies: deliver one inbound frame, sweep expired waits
// back onto ready (or drop them), attempt one send unless a Call is
// already in flight, synthesize a Heartbeat if the link has been idle
// long enough (and send it in the same tick), and finally promote due
// timer entries to ready for the next tick. now is supplied explicitly
// so callers can drive the engine deterministically in tests. The only
// non-nil return in normal
// operation is ErrBusy; transport failures are surfaced through the
// event callback and the retry machinery, never to Step's caller.
func (e *Engine) Step(now time.Time) error {
	e.recvOnce()
	e.sweepWait(now)
	err := e.sendOnce(now)
	if e.maybeHeartbeat(now) {
		err = e.sendOnce(now)
	}
	e.sweepTimer(now)
	return err
}

// recvOnce drains exactly one inbound frame per tick; a transport with
// a deep backlog drains over several ticks instead of starving the send
// phase in a single call. No lock is held across Recv or the event
// callback. The callback fires for every outcome except "nothing
// pending": a routed frame (err nil), an unmatched response (ErrNoLink),
// or a transport failure (the transport's own error, with a nil frame).
func (e *Engine) recvOnce() {
	if e.transport == nil {
		return
	}
	env, err := e.transport.Recv()
	if errors.Is(err, ErrNoMessage) {
		return
	}
	if err != nil {
		if e.logger != nil {
			e.logger.Warn("transport receive failed", "err", err)
		}
		if e.callback != nil {
			e.callback(err, nil)
		}
		return
	}
	if env == nil {
		return
	}

	var cbErr error
	e.locker.Lock()
	switch env.Role {
	case catalog.RoleCallResult, catalog.RoleCallError:
		if !e.resolveWaiting(env) {
			cbErr = ErrNoLink
		}
	case catalog.RoleCall:
		// Inbound Calls from the central system are queued for
		// internal/control to dispatch via PopInbound; Engine itself
		// only understands outbound Calls and their replies.
		e.inbox = append(e.inbox, env)
	}
	e.locker.Unlock()

	if e.callback != nil {
		e.callback(cbErr, env)
	}
}

// PopInbound removes and returns the oldest queued central-system Call,
// or (nil, false) if none is pending. internal/control drains this
// after each Step to dispatch requests into the configuration store and
// connector FSM.
func (e *Engine) PopInbound() (*catalog.Envelope, bool) {
	e.locker.Lock()
	defer e.locker.Unlock()
	if len(e.inbox) == 0 {
		return nil, false
	}
	env := e.inbox[0]
	e.inbox = e.inbox[1:]
	return env, true
}

// resolveWaiting matches an inbound CallResult/CallError against the
// wait queue by correlation id and frees the slot. Assumes the lock is
// held. Returns false when no wait entry carries env.ID.
func (e *Engine) resolveWaiting(env *catalog.Envelope) bool {
	for idx := e.pool.wait.head; idx != listEnd; idx = e.pool.slots[idx].next {
		if e.pool.slots[idx].id != env.ID {
			continue
		}
		typ := e.pool.slots[idx].typ
		if typ == catalog.BootNotification && env.Role == catalog.RoleCallResult {
			e.bootAccepted = true
		}
		e.pool.remove(&e.pool.wait, idx)
		e.pool.release(idx)
		return true
	}
	return false
}

// sweepWait moves every wait-queue entry whose deadline has passed to
// the front of ready for a retry — ahead of freshly pushed messages —
// or drops it if its attempt budget says otherwise.
func (e *Engine) sweepWait(now time.Time) {
	e.locker.Lock()
	defer e.locker.Unlock()

	idx := e.pool.wait.head
	for idx != listEnd {
		next := e.pool.slots[idx].next
		m := &e.pool.slots[idx]
		if now.Before(m.deadline) {
			idx = next
			continue
		}
		if !e.shouldRetryForever(m.typ) && m.attempts >= e.maxAttempts(m.typ) {
			e.dropMessage(idx)
		} else {
			e.pool.moveToFront(idx, &e.pool.ready, slotReady)
		}
		idx = next
	}
}

// sweepTimer moves deferred-send entries whose scheduled time has
// arrived onto ready. Runs as the last phase, so a just-promoted
// message is sent on the following tick.
func (e *Engine) sweepTimer(now time.Time) {
	e.locker.Lock()
	defer e.locker.Unlock()

	idx := e.pool.timer.head
	for idx != listEnd {
		next := e.pool.slots[idx].next
		m := &e.pool.slots[idx]
		if !now.Before(m.deadline) {
			e.pool.moveTo(idx, &e.pool.ready, slotReady)
		}
		idx = next
	}
}

// maybeHeartbeat enqueues a Heartbeat Call when nothing has been sent
// for a full heartbeat interval and both queues are empty, reporting
// whether it did so the caller can re-run the send phase immediately.
// A zero lastSend counts from the Unix epoch, so the first idle tick on
// a live clock sends a heartbeat straight away. A HeartbeatIntervalSec
// of zero disables synthesis.
func (e *Engine) maybeHeartbeat(now time.Time) bool {
	e.locker.Lock()
	if e.policy.HeartbeatIntervalSec <= 0 {
		e.locker.Unlock()
		return false
	}
	last := e.lastSend
	if last.IsZero() {
		last = time.Unix(0, 0)
	}
	idle := now.Sub(last) >= time.Duration(e.policy.HeartbeatIntervalSec)*time.Second
	if !idle || e.pool.wait.length > 0 || e.pool.ready.length > 0 {
		e.locker.Unlock()
		return false
	}
	_, err := e.pushRequestLocked(catalog.Heartbeat, &catalog.HeartbeatReq{}, time.Time{})
	e.locker.Unlock()

	if err != nil {
		if e.logger != nil {
			e.logger.Warn("failed to synthesize heartbeat", "err", err)
		}
		return false
	}
	if e.observer != nil {
		e.observer.ObserveHeartbeat()
	}
	return true
}

// sendOnce attempts to send the head of ready. While any Call waits on
// its response it returns ErrBusy without sending — strict
// single-in-flight. On transport failure the message always moves to
// wait with a linear back-off deadline (TimeoutSec times attempts) so
// the next sweep retries it; left on ready it would busy-loop
// transport.Send every tick instead of backing off. The engine lock is
// held across Send, so transport implementations must be non-blocking
// or short.
func (e *Engine) sendOnce(now time.Time) error {
	e.locker.Lock()
	defer e.locker.Unlock()

	if e.pool.wait.length > 0 {
		return ErrBusy
	}
	idx := e.pool.popFront(&e.pool.ready)
	if idx == listEnd {
		e.observeDepths()
		return nil
	}
	m := &e.pool.slots[idx]
	m.attempts++
	env := &catalog.Envelope{ID: m.id, Role: m.role, Type: m.typ, Body: m.body}

	var sendErr error
	if e.transport == nil {
		sendErr = ErrNoLink
	} else {
		sendErr = e.transport.Send(env)
	}

	if sendErr != nil {
		if e.logger != nil {
			e.logger.Warn("transport send failed", "id", m.id, "type", catalog.Stringify(m.typ), "attempts", m.attempts, "err", sendErr)
		}
		m.deadline = now.Add(time.Duration(e.policy.TimeoutSec*m.attempts) * time.Second)
		m.state = slotWait
		e.pool.pushBack(&e.pool.wait, idx)
		if e.observer != nil {
			e.observer.ObserveSend(m.typ, m.attempts, false)
		}
		e.observeDepths()
		return nil
	}

	e.lastSend = now

	if env.Role != catalog.RoleCall {
		// Responses are done once transmitted; there is nothing to
		// retry against a correlation id the central system owns.
		if e.observer != nil {
			e.observer.ObserveSend(m.typ, m.attempts, true)
		}
		e.pool.release(idx)
		e.observeDepths()
		return nil
	}

	m.deadline = now.Add(e.timeoutFor(m.typ, m.attempts))
	m.state = slotWait
	e.pool.pushBack(&e.pool.wait, idx)
	if e.observer != nil {
		e.observer.ObserveSend(m.typ, m.attempts, true)
	}
	e.observeDepths()
	return nil
}

// observeDepths assumes the lock is held.
func (e *Engine) observeDepths() {
	if e.observer != nil {
		e.observer.ObserveQueueDepth(e.pool.ready.length, e.pool.wait.length, e.pool.timer.length)
	}
}

// QueueDepths reports the current length of each queue, for Observer
// wiring that wants a point-in-time read outside of Step.
func (e *Engine) QueueDepths() (ready, wait, timer int) {
	e.locker.Lock()
	defer e.locker.Unlock()
	return e.pool.ready.length, e.pool.wait.length, e.pool.timer.length
}

// BootAccepted reports whether the engine has ever observed a BootNotification
// CallResult. The status carried in that CallResult's body is not
// inspected, so a Rejected or Pending reply also sets it.
func (e *Engine) BootAccepted() bool {
	e.locker.Lock()
	defer e.locker.Unlock()
	return e.bootAccepted
}

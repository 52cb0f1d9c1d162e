// Package queue is the fixed-capacity message arena and the step-driven
// send/receive/retry engine built on top of it. Every in-flight message
// lives in a fixed arena, and the three scheduling lists (ready, wait,
// timer) are threaded through slot indices rather than pointers: indices
// survive serialization, need no unsafe address pinning, and make queue
// membership a single small int per slot.
package queue

import (
	"time"

	"github.com/pazzk-labs/ocpp/internal/catalog"
)

// slotState tracks which list (if any) currently owns a slot. A slot
// moves exactly one step per transition: free -> ready -> wait -> ready
// (retry) -> ... -> free (done or dropped); a deferred send
// (PushRequestDefer) starts as free -> timer -> ready and then follows
// the same path.
type slotState int

const (
	slotFree slotState = iota
	slotReady
	slotWait
	slotTimer
)

// message is one arena slot. Body carries the catalog payload struct
// (e.g. *catalog.BootNotificationReq); the pool never interprets it.
type message struct {
	state slotState
	next  int // index-threaded list link; -1 terminates

	id   string
	role catalog.Role
	typ  catalog.Type
	body interface{}

	attempts int
	deadline time.Time // when this slot next becomes actionable
}

const listEnd = -1

// list is a singly-linked, index-threaded queue header. Exactly one of
// Pool's four lists (free/ready/wait/timer) owns a given slot's next
// field at a time.
type list struct {
	head, tail int
	length     int
}

func newList() list {
	return list{head: listEnd, tail: listEnd}
}

// Pool is the fixed-size arena backing one queue.Engine. Capacity is
// fixed at construction: the engine never grows the pool, a push against
// a full one fails with ErrPoolExhausted and the caller retries after a
// drop frees a slot.
type Pool struct {
	slots []message
	free  list
	ready list
	wait  list
	timer list
}

// NewPool allocates a pool with cap slots, all initially free.
func NewPool(cap int) *Pool {
	p := &Pool{
		slots: make([]message, cap),
		free:  newList(),
		ready: newList(),
		wait:  newList(),
		timer: newList(),
	}
	for i := cap - 1; i >= 0; i-- {
		p.slots[i].next = listEnd
		p.pushFront(&p.free, i)
	}
	return p
}

// Cap returns the fixed number of slots.
func (p *Pool) Cap() int { return len(p.slots) }

// ReadyLen, WaitLen, TimerLen report current queue depths, used by
// bindings.Observer.ObserveQueueDepth.
func (p *Pool) ReadyLen() int { return p.ready.length }
func (p *Pool) WaitLen() int  { return p.wait.length }
func (p *Pool) TimerLen() int { return p.timer.length }
func (p *Pool) FreeLen() int  { return p.free.length }

func (p *Pool) pushFront(l *list, idx int) {
	p.slots[idx].next = l.head
	l.head = idx
	if l.tail == listEnd {
		l.tail = idx
	}
	l.length++
}

func (p *Pool) pushBack(l *list, idx int) {
	p.slots[idx].next = listEnd
	if l.tail == listEnd {
		l.head = idx
	} else {
		p.slots[l.tail].next = idx
	}
	l.tail = idx
	l.length++
}

// popFront removes and returns the head of l, or listEnd if empty.
func (p *Pool) popFront(l *list) int {
	idx := l.head
	if idx == listEnd {
		return listEnd
	}
	l.head = p.slots[idx].next
	if l.head == listEnd {
		l.tail = listEnd
	}
	p.slots[idx].next = listEnd
	l.length--
	return idx
}

// remove deletes idx from l by linear scan, for callers that take a
// specific slot out of a list rather than popping its head (the engine
// does this when a response resolves a wait-queue entry).
func (p *Pool) remove(l *list, idx int) bool {
	if l.head == listEnd {
		return false
	}
	if l.head == idx {
		p.popFront(l)
		return true
	}
	prev := l.head
	for cur := p.slots[prev].next; cur != listEnd; prev, cur = cur, p.slots[cur].next {
		if cur == idx {
			p.slots[prev].next = p.slots[cur].next
			if l.tail == idx {
				l.tail = prev
			}
			p.slots[idx].next = listEnd
			l.length--
			return true
		}
	}
	return false
}

// alloc pulls one slot from free, initializing its message fields.
// Returns listEnd if the pool is exhausted.
func (p *Pool) alloc(id string, role catalog.Role, typ catalog.Type, body interface{}) int {
	idx := p.popFront(&p.free)
	if idx == listEnd {
		return listEnd
	}
	p.slots[idx] = message{
		state: slotFree,
		next:  listEnd,
		id:    id,
		role:  role,
		typ:   typ,
		body:  body,
	}
	return idx
}

// release returns idx to the free list. The caller must have already
// removed idx from whichever of ready/wait/timer currently owns it.
func (p *Pool) release(idx int) {
	p.slots[idx] = message{next: listEnd}
	p.pushBack(&p.free, idx)
}

// moveTo transfers idx from its current list (identified by the
// message's own state field) to dst, updating state as it goes.
func (p *Pool) moveTo(idx int, dst *list, dstState slotState) {
	p.unlink(idx)
	p.slots[idx].state = dstState
	p.pushBack(dst, idx)
}

// moveToFront is moveTo with head insertion. Timed-out retries go to the
// front of ready so they precede freshly pushed messages.
func (p *Pool) moveToFront(idx int, dst *list, dstState slotState) {
	p.unlink(idx)
	p.slots[idx].state = dstState
	p.pushFront(dst, idx)
}

func (p *Pool) unlink(idx int) {
	switch p.slots[idx].state {
	case slotReady:
		p.remove(&p.ready, idx)
	case slotWait:
		p.remove(&p.wait, idx)
	case slotTimer:
		p.remove(&p.timer, idx)
	}
}

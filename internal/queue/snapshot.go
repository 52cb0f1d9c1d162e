package queue

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pazzk-labs/ocpp/internal/catalog"
)

// Snapshot persistence mirrors internal/config's header-checked binary
// format (same magic-prefix-then-fields discipline) with its own magic,
// so a deployer can tell which blob is which by the first four bytes
// alone. This covers the message pool's in-flight state; internal/config
// covers the value-pool half.
const (
	snapshotMagic   uint32 = 0x4f435051 // "OCPQ"
	snapshotVersion uint16 = 1
)

type slotRecord struct {
	Role     catalog.Role
	Typ      catalog.Type
	ID       string
	Attempts int
	Deadline time.Time
	Body     interface{}
}

// SnapshotTo serializes the pool's capacity, the engine's boot/activity
// state, and every in-flight slot grouped by owning list (ready, wait,
// timer) in traversal order, so SnapshotFrom can replay them with
// pushBack and reproduce the exact same ordering. Body payloads are
// encoded with encoding/json: Body is an opaque interface{} by design
// (the pool never interprets it), and catalog.ZeroPayload supplies the
// concretely-typed target the decode side needs — gob would need the
// same registration with no benefit for these small, all-exported-field
// structs.
func (e *Engine) SnapshotTo() []byte {
	e.locker.Lock()
	defer e.locker.Unlock()

	header := make([]byte, 21)
	binary.BigEndian.PutUint32(header[0:4], snapshotMagic)
	binary.BigEndian.PutUint16(header[4:6], snapshotVersion)
	binary.BigEndian.PutUint32(header[6:10], uint32(e.pool.Cap()))
	binary.BigEndian.PutUint64(header[10:18], uint64(e.lastSend.UnixNano()))
	if e.bootAccepted {
		header[18] = 1
	}
	binary.BigEndian.PutUint16(header[19:21], 0) // reserved, kept for alignment with config's layout

	buf := header
	for _, l := range []*list{&e.pool.ready, &e.pool.wait, &e.pool.timer} {
		buf = appendListLen(buf, l.length)
		for idx := l.head; idx != listEnd; idx = e.pool.slots[idx].next {
			buf = appendSlot(buf, &e.pool.slots[idx])
		}
	}
	return buf
}

func appendListLen(buf []byte, n int) []byte {
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(n))
	return append(buf, lenBuf...)
}

func appendSlot(buf []byte, m *message) []byte {
	body, err := json.Marshal(m.body)
	if err != nil {
		// m.body is always one of catalog's exported payload structs;
		// a marshal failure here means a caller pushed something else,
		// which is a programming error this snapshot can't recover
		// from gracefully. Fall back to "null" so the slot round-trips
		// to a zero-value payload rather than corrupting the stream.
		body = []byte("null")
	}

	buf = append(buf, byte(m.role), byte(m.typ))
	buf = appendLenPrefixed(buf, []byte(m.id))

	attemptsBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(attemptsBuf, uint32(m.attempts))
	buf = append(buf, attemptsBuf...)

	deadlineBuf := make([]byte, 8)
	binary.BigEndian.PutUint64(deadlineBuf, uint64(m.deadline.UnixNano()))
	buf = append(buf, deadlineBuf...)

	buf = appendLenPrefixed(buf, body)
	return buf
}

func appendLenPrefixed(buf, data []byte) []byte {
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(data)))
	buf = append(buf, lenBuf...)
	return append(buf, data...)
}

// SnapshotFrom restores the pool and engine state from a buffer produced
// by SnapshotTo. The pool is rebuilt from scratch (a fresh NewPool-sized
// arena) and every recorded slot is re-allocated and re-queued in its
// original list and order; slot indices themselves are not preserved,
// only each message's identity, type, attempts, deadline and body, which
// is all any caller (transport, control dispatcher) ever keys on.
func (e *Engine) SnapshotFrom(buf []byte) error {
	if len(buf) < 21 {
		return fmt.Errorf("queue: snapshot too short (%d bytes)", len(buf))
	}
	magic := binary.BigEndian.Uint32(buf[0:4])
	if magic != snapshotMagic {
		return fmt.Errorf("queue: bad snapshot magic %#x", magic)
	}
	version := binary.BigEndian.Uint16(buf[4:6])
	if version != snapshotVersion {
		return fmt.Errorf("queue: unsupported snapshot version %d", version)
	}
	poolCap := int(binary.BigEndian.Uint32(buf[6:10]))

	e.locker.Lock()
	defer e.locker.Unlock()

	if poolCap != e.pool.Cap() {
		return fmt.Errorf("queue: snapshot pool capacity %d does not match engine capacity %d", poolCap, e.pool.Cap())
	}

	lastSend := time.Unix(0, int64(binary.BigEndian.Uint64(buf[10:18])))
	bootAccepted := buf[18] != 0

	off := 21
	fresh := NewPool(poolCap)
	freshLists := []*list{&fresh.ready, &fresh.wait, &fresh.timer}
	states := []slotState{slotReady, slotWait, slotTimer}

	for li, l := range freshLists {
		if off+4 > len(buf) {
			return fmt.Errorf("queue: truncated snapshot reading list length")
		}
		n := int(binary.BigEndian.Uint32(buf[off : off+4]))
		off += 4
		for i := 0; i < n; i++ {
			rec, newOff, err := decodeSlot(buf, off)
			if err != nil {
				return err
			}
			off = newOff

			idx := fresh.alloc(rec.ID, rec.Role, rec.Typ, rec.Body)
			if idx == listEnd {
				return fmt.Errorf("queue: snapshot has more in-flight messages than the pool can hold")
			}
			fresh.slots[idx].attempts = rec.Attempts
			fresh.slots[idx].deadline = rec.Deadline
			fresh.slots[idx].state = states[li]
			fresh.pushBack(l, idx)
		}
	}

	e.pool = fresh
	e.lastSend = lastSend
	e.bootAccepted = bootAccepted
	e.inbox = nil
	return nil
}

func decodeSlot(buf []byte, off int) (slotRecord, int, error) {
	if off+2 > len(buf) {
		return slotRecord{}, off, fmt.Errorf("queue: truncated snapshot reading slot header")
	}
	role := catalog.Role(buf[off])
	typ := catalog.Type(buf[off+1])
	off += 2

	id, off, err := readLenPrefixed(buf, off)
	if err != nil {
		return slotRecord{}, off, err
	}
	if off+12 > len(buf) {
		return slotRecord{}, off, fmt.Errorf("queue: truncated snapshot reading slot attempts/deadline")
	}
	attempts := int(binary.BigEndian.Uint32(buf[off : off+4]))
	deadline := time.Unix(0, int64(binary.BigEndian.Uint64(buf[off+4:off+12])))
	off += 12

	bodyBytes, off, err := readLenPrefixed(buf, off)
	if err != nil {
		return slotRecord{}, off, err
	}

	body := catalog.ZeroPayload(typ, role)
	if body != nil {
		if err := json.Unmarshal(bodyBytes, body); err != nil {
			return slotRecord{}, off, fmt.Errorf("queue: decoding body for type %s: %w", catalog.Stringify(typ), err)
		}
	}

	return slotRecord{
		Role:     role,
		Typ:      typ,
		ID:       string(id),
		Attempts: attempts,
		Deadline: deadline,
		Body:     body,
	}, off, nil
}

func readLenPrefixed(buf []byte, off int) ([]byte, int, error) {
	if off+4 > len(buf) {
		return nil, off, fmt.Errorf("queue: truncated snapshot reading length prefix")
	}
	n := int(binary.BigEndian.Uint32(buf[off : off+4]))
	off += 4
	if off+n > len(buf) {
		return nil, off, fmt.Errorf("queue: truncated snapshot reading %d bytes", n)
	}
	return buf[off : off+n], off + n, nil
}

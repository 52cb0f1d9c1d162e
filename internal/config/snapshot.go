package config

import (
	"encoding/binary"
	"fmt"
)

// Snapshot persistence uses a header-checked binary format so a host
// can persist the store across restarts; the magic+version prefix means
// corrupt or foreign blobs fail fast on load instead of silently
// mis-parsing.
const (
	snapshotMagic   uint32 = 0x4f435053 // "OCPS"
	snapshotVersion uint16 = 1
)

// SnapshotTo serializes the full live value set. Layout: magic(4) |
// version(2) | keyCount(2) | for each key in table order: dataType(1) |
// length-prefixed(2) payload bytes.
func (s *Store) SnapshotTo() []byte {
	s.locker.Lock()
	defer s.locker.Unlock()

	buf := make([]byte, 8)
	binary.BigEndian.PutUint32(buf[0:4], snapshotMagic)
	binary.BigEndian.PutUint16(buf[4:6], snapshotVersion)
	binary.BigEndian.PutUint16(buf[6:8], uint16(keyMax))

	for k := Key(0); k < keyMax; k++ {
		e := table[k]
		v := s.values[k]
		var payload []byte
		switch e.dataType {
		case TypeBool:
			if v.b {
				payload = []byte{1}
			} else {
				payload = []byte{0}
			}
		case TypeInt, TypeCSL:
			payload = make([]byte, 4)
			binary.BigEndian.PutUint32(payload, uint32(v.i))
		case TypeStr:
			payload = []byte(v.s)
		}
		buf = append(buf, byte(e.dataType))
		lenPrefix := make([]byte, 2)
		binary.BigEndian.PutUint16(lenPrefix, uint16(len(payload)))
		buf = append(buf, lenPrefix...)
		buf = append(buf, payload...)
	}
	return buf
}

// SnapshotFrom restores the store from a buffer produced by SnapshotTo.
// It rejects mismatched magic, a newer version than this build
// understands, and a key count that disagrees with the compiled table,
// so a snapshot from a different build (extra vendor keys, say) is
// refused rather than silently misapplied to the wrong keys.
func (s *Store) SnapshotFrom(buf []byte) error {
	if len(buf) < 8 {
		return fmt.Errorf("config: snapshot too short (%d bytes)", len(buf))
	}
	magic := binary.BigEndian.Uint32(buf[0:4])
	if magic != snapshotMagic {
		return fmt.Errorf("config: bad snapshot magic %#x", magic)
	}
	version := binary.BigEndian.Uint16(buf[4:6])
	if version != snapshotVersion {
		return fmt.Errorf("config: unsupported snapshot version %d", version)
	}
	count := binary.BigEndian.Uint16(buf[6:8])
	if int(count) != int(keyMax) {
		return fmt.Errorf("config: snapshot has %d keys, store has %d", count, keyMax)
	}

	s.locker.Lock()
	defer s.locker.Unlock()

	off := 8
	var parsed [keyMax]value
	for k := Key(0); k < keyMax; k++ {
		if off+3 > len(buf) {
			return fmt.Errorf("config: truncated snapshot at key %d", k)
		}
		dt := DataType(buf[off])
		n := int(binary.BigEndian.Uint16(buf[off+1 : off+3]))
		off += 3
		if off+n > len(buf) {
			return fmt.Errorf("config: truncated snapshot payload at key %d", k)
		}
		payload := buf[off : off+n]
		off += n

		if dt != table[k].dataType {
			return fmt.Errorf("config: key %d type mismatch: snapshot has %s, store expects %s", k, dt, table[k].dataType)
		}

		switch dt {
		case TypeBool:
			if n != 1 {
				return fmt.Errorf("config: key %d bad bool length %d", k, n)
			}
			parsed[k] = value{b: payload[0] != 0}
		case TypeInt, TypeCSL:
			if n != 4 {
				return fmt.Errorf("config: key %d bad int length %d", k, n)
			}
			parsed[k] = value{i: int(binary.BigEndian.Uint32(payload))}
		case TypeStr:
			if n > table[k].cap {
				return fmt.Errorf("config: key %d string exceeds capacity: %d > %d", k, n, table[k].cap)
			}
			parsed[k] = value{s: string(payload)}
		}
	}

	s.values = parsed
	return nil
}

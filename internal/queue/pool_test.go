package queue

import (
	"testing"

	"github.com/pazzk-labs/ocpp/internal/catalog"
)

func TestPoolAllocFreeRoundTrip(t *testing.T) {
	p := NewPool(4)
	if p.FreeLen() != 4 {
		t.Fatalf("FreeLen() = %d, want 4", p.FreeLen())
	}

	idx := p.alloc("id-1", catalog.RoleCall, catalog.Heartbeat, nil)
	if idx == listEnd {
		t.Fatal("alloc returned listEnd on a fresh pool")
	}
	if p.FreeLen() != 3 {
		t.Fatalf("FreeLen() after alloc = %d, want 3", p.FreeLen())
	}

	p.release(idx)
	if p.FreeLen() != 4 {
		t.Fatalf("FreeLen() after release = %d, want 4", p.FreeLen())
	}
}

func TestPoolAllocExhaustion(t *testing.T) {
	p := NewPool(2)
	if idx := p.alloc("a", catalog.RoleCall, catalog.Heartbeat, nil); idx == listEnd {
		t.Fatal("first alloc failed unexpectedly")
	}
	if idx := p.alloc("b", catalog.RoleCall, catalog.Heartbeat, nil); idx == listEnd {
		t.Fatal("second alloc failed unexpectedly")
	}
	if idx := p.alloc("c", catalog.RoleCall, catalog.Heartbeat, nil); idx != listEnd {
		t.Fatalf("third alloc on a 2-slot pool = %d, want listEnd", idx)
	}
}

func TestPoolReadyFIFOOrder(t *testing.T) {
	p := NewPool(4)
	var idxs []int
	for _, id := range []string{"a", "b", "c"} {
		idx := p.alloc(id, catalog.RoleCall, catalog.Heartbeat, nil)
		p.slots[idx].state = slotReady
		p.pushBack(&p.ready, idx)
		idxs = append(idxs, idx)
	}

	for _, want := range idxs {
		got := p.popFront(&p.ready)
		if got != want {
			t.Fatalf("popFront() = %d, want %d", got, want)
		}
	}
	if p.ready.length != 0 {
		t.Fatalf("ready.length = %d, want 0", p.ready.length)
	}
}

func TestPoolRemoveFromMiddle(t *testing.T) {
	p := NewPool(4)
	var idxs []int
	for _, id := range []string{"a", "b", "c"} {
		idx := p.alloc(id, catalog.RoleCall, catalog.Heartbeat, nil)
		p.slots[idx].state = slotWait
		p.pushBack(&p.wait, idx)
		idxs = append(idxs, idx)
	}

	if !p.remove(&p.wait, idxs[1]) {
		t.Fatal("remove(middle) returned false")
	}
	if p.wait.length != 2 {
		t.Fatalf("wait.length after remove = %d, want 2", p.wait.length)
	}

	got := p.popFront(&p.wait)
	if got != idxs[0] {
		t.Fatalf("first pop after removal = %d, want %d", got, idxs[0])
	}
	got = p.popFront(&p.wait)
	if got != idxs[2] {
		t.Fatalf("second pop after removal = %d, want %d", got, idxs[2])
	}
}

func TestPoolMoveToPreservesSlot(t *testing.T) {
	p := NewPool(2)
	idx := p.alloc("a", catalog.RoleCall, catalog.BootNotification, nil)
	p.slots[idx].state = slotReady
	p.pushBack(&p.ready, idx)

	p.moveTo(idx, &p.wait, slotWait)
	if p.ready.length != 0 {
		t.Fatalf("ready.length after moveTo = %d, want 0", p.ready.length)
	}
	if p.wait.length != 1 {
		t.Fatalf("wait.length after moveTo = %d, want 1", p.wait.length)
	}
	if p.slots[idx].id != "a" || p.slots[idx].typ != catalog.BootNotification {
		t.Fatalf("moveTo corrupted slot contents: %+v", p.slots[idx])
	}
}

/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package object

import (
	"testing"

	"mjvm/excnames"
	"mjvm/value"
)

func TestNewHeapNullSentinel(t *testing.T) {
	h := NewHeap()
	if h.Count() != 1 {
		t.Fatalf("Count() = %d; want 1 (null sentinel only)", h.Count())
	}
	if _, err := h.Get(0); !excnames.Is(err, excnames.NullReference) {
		t.Fatalf("Get(0) = %v; want NullReference", err)
	}
}

func TestAllocateArrayIdentity(t *testing.T) {
	// AllocateArray returns an id >= 1 equal to the prior object count,
	// allocated densely.
	h := NewHeap()
	id1, err := h.AllocateArray('I', 3)
	if err != nil {
		t.Fatalf("AllocateArray: %v", err)
	}
	if id1 != 1 {
		t.Fatalf("first AllocateArray id = %d; want 1", id1)
	}
	id2, err := h.AllocateArray('I', 2)
	if err != nil {
		t.Fatalf("AllocateArray: %v", err)
	}
	if id2 != 2 {
		t.Fatalf("second AllocateArray id = %d; want 2", id2)
	}
}

func TestAllocateArrayDefaultValues(t *testing.T) {
	h := NewHeap()
	id, err := h.AllocateArray('I', 3)
	if err != nil {
		t.Fatalf("AllocateArray: %v", err)
	}
	v, err := h.Load(id, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v.I32() != 0 {
		t.Fatalf("default element = %v; want int 0", v)
	}

	refID, err := h.AllocateArray('L', 2)
	if err != nil {
		t.Fatalf("AllocateArray: %v", err)
	}
	rv, err := h.Load(refID, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !rv.IsRef() || rv.RefID() != 0 {
		t.Fatalf("default reference element = %v; want null ref", rv)
	}
}

func TestAllocateArrayNegativeLength(t *testing.T) {
	h := NewHeap()
	if _, err := h.AllocateArray('I', -1); !excnames.Is(err, excnames.ArrayBounds) {
		t.Fatalf("AllocateArray(-1) = %v; want ArrayBounds", err)
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	h := NewHeap()
	id, _ := h.AllocateArray('I', 4)
	if err := h.Store(id, 2, value.Int(99)); err != nil {
		t.Fatalf("Store: %v", err)
	}
	v, err := h.Load(id, 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v.I32() != 99 {
		t.Fatalf("Load(2) = %d; want 99", v.I32())
	}
}

func TestOutOfBoundsAccess(t *testing.T) {
	h := NewHeap()
	id, _ := h.AllocateArray('I', 2)
	if _, err := h.Load(id, 5); !excnames.Is(err, excnames.ArrayBounds) {
		t.Fatalf("Load(5) = %v; want ArrayBounds", err)
	}
	if err := h.Store(id, -1, value.Int(0)); !excnames.Is(err, excnames.ArrayBounds) {
		t.Fatalf("Store(-1) = %v; want ArrayBounds", err)
	}
}

func TestNullDereference(t *testing.T) {
	h := NewHeap()
	if _, err := h.Load(0, 0); !excnames.Is(err, excnames.NullReference) {
		t.Fatalf("Load(0, 0) = %v; want NullReference", err)
	}
}

func TestAllocateObjectFields(t *testing.T) {
	h := NewHeap()
	id := h.AllocateObject("com/example/Point", 2)
	n, err := h.Length(id)
	if err != nil {
		t.Fatalf("Length: %v", err)
	}
	if n != 2 {
		t.Fatalf("Length() = %d; want 2", n)
	}
	obj, err := h.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if obj.ClassName != "com/example/Point" {
		t.Fatalf("ClassName = %q; want com/example/Point", obj.ClassName)
	}
}

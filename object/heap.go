/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package object implements the heap: an append-only arena of Objects
// addressed by a dense, non-zero identifier. There is no garbage
// collection and no reflection metadata; an Object is just (id, class
// name, mutable vector of value cells), which covers both arrays and
// plain instances.
package object

import (
	"mjvm/excnames"
	"mjvm/value"
)

// Object is one heap entry: either a class instance (Mem holds field
// values in declaration order) or an array (Mem holds elements,
// pre-sized to the array's length).
type Object struct {
	ID        int
	ClassName string
	Mem       []value.Value
}

// Heap is an append-only vector of Objects. Index 0 is pre-populated
// with a sentinel Null object so that 0 always denotes the null
// reference.
type Heap struct {
	objects []*Object
}

// NewHeap returns a Heap with the null sentinel already installed.
func NewHeap() *Heap {
	h := &Heap{objects: make([]*Object, 0, 16)}
	h.objects = append(h.objects, &Object{ID: 0, ClassName: "<null>"})
	return h
}

// Count returns the number of objects in the heap, including the null
// sentinel.
func (h *Heap) Count() int { return len(h.objects) }

// AllocateArray allocates a new array of the given element kind (a
// descriptor tag character) and length, returning its heap id (>= 1).
// Elements are initialized to the element kind's default value.
func (h *Heap) AllocateArray(elementKind byte, length int) (int, error) {
	if length < 0 {
		return 0, excnames.New(excnames.ArrayBounds, "negative array length")
	}
	mem := make([]value.Value, length)
	def := defaultFor(elementKind)
	for i := range mem {
		mem[i] = def
	}
	obj := &Object{
		ID:        len(h.objects),
		ClassName: arrayClassName(elementKind),
		Mem:       mem,
	}
	h.objects = append(h.objects, obj)
	return obj.ID, nil
}

// AllocateObject allocates a new class instance with the given number of
// fields, all defaulted to integer zero (callers that know field
// descriptors overwrite them with the proper default afterward).
func (h *Heap) AllocateObject(className string, numFields int) int {
	mem := make([]value.Value, numFields)
	for i := range mem {
		mem[i] = value.Default()
	}
	obj := &Object{ID: len(h.objects), ClassName: className, Mem: mem}
	h.objects = append(h.objects, obj)
	return obj.ID
}

// Get returns the object at id, erroring on null or an out-of-range id.
func (h *Heap) Get(id int) (*Object, error) {
	if id == 0 {
		return nil, excnames.New(excnames.NullReference, "dereference of null")
	}
	if id < 0 || id >= len(h.objects) {
		return nil, excnames.New(excnames.ArrayBounds, "invalid heap id")
	}
	return h.objects[id], nil
}

// Load returns the value cell at index i within the object/array at id.
func (h *Heap) Load(id, i int) (value.Value, error) {
	obj, err := h.Get(id)
	if err != nil {
		return value.Value{}, err
	}
	if i < 0 || i >= len(obj.Mem) {
		return value.Value{}, excnames.New(excnames.ArrayBounds, "index out of range")
	}
	return obj.Mem[i], nil
}

// Store writes v at index i within the object/array at id.
func (h *Heap) Store(id, i int, v value.Value) error {
	obj, err := h.Get(id)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(obj.Mem) {
		return excnames.New(excnames.ArrayBounds, "index out of range")
	}
	obj.Mem[i] = v
	return nil
}

// Length returns the number of elements/fields held by the object/array
// at id.
func (h *Heap) Length(id int) (int, error) {
	obj, err := h.Get(id)
	if err != nil {
		return 0, err
	}
	return len(obj.Mem), nil
}

func defaultFor(kind byte) value.Value {
	switch kind {
	case 'F':
		return value.Float(0)
	case 'D':
		return value.Double(0)
	case 'J':
		return value.Long(0)
	case 'Z':
		return value.Bool(false)
	case 'A', 'L', '[':
		return value.Null()
	default:
		return value.Int(0)
	}
}

func arrayClassName(elementKind byte) string {
	return "[" + string(elementKind)
}

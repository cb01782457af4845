/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package frames implements the per-invocation call frame (JVMS §2.6):
// a fixed-size local-variable array plus the bookkeeping the
// interpreter needs to recurse into a callee and to report a method
// signature in a fatal diagnostic. There is no separate <clinit> frame
// stack and no JSR/RET subroutine stack; one Frame per invocation is
// the whole model.
package frames

import (
	"mjvm/classloader"
	"mjvm/excnames"
	"mjvm/opstack"
	"mjvm/value"
)

// Locals is the fixed-size indexed slot array of JVMS §2.6.1. Long and
// double values occupy a single cell here; max_locals already accounts
// for the doubled slot count, so compiler-emitted indices stay valid
// even though nothing here actually consumes two cells per wide value.
type Locals struct {
	cells []value.Value
}

// NewLocals returns a Locals sized to maxLocal, every slot defaulted to
// integer zero.
func NewLocals(maxLocal int) *Locals {
	cells := make([]value.Value, maxLocal)
	for i := range cells {
		cells[i] = value.Default()
	}
	return &Locals{cells: cells}
}

// Load returns a copy of the value at index i. Out-of-range is
// LocalIndex.
func (l *Locals) Load(i int) (value.Value, error) {
	if i < 0 || i >= len(l.cells) {
		return value.Value{}, excnames.New(excnames.LocalIndex, "local variable index out of range")
	}
	return l.cells[i], nil
}

// Store overwrites the value at index i.
func (l *Locals) Store(i int, v value.Value) error {
	if i < 0 || i >= len(l.cells) {
		return excnames.New(excnames.LocalIndex, "local variable index out of range")
	}
	l.cells[i] = v
	return nil
}

// Iinc reads an int at i, adds the signed 8-bit k, and writes it back.
func (l *Locals) Iinc(i int, k int8) error {
	v, err := l.Load(i)
	if err != nil {
		return err
	}
	return l.Store(i, value.Int(v.I32()+int32(k)))
}

// Len returns the number of slots.
func (l *Locals) Len() int { return len(l.cells) }

// Frame is the per-invocation state: the code slice, a program counter,
// a fresh local-variable array, and a fresh operand stack, plus the
// class/method names carried purely for the method signature a fatal
// diagnostic reports.
type Frame struct {
	ClassName string
	MethName  string
	Descr     string

	Code   []byte
	PC     int
	Locals *Locals
	Stack  *opstack.Stack

	// CP is the constant pool of the class that owns this frame's code,
	// consulted by ldc/ldc_w/ldc2_w, new, and invokestatic. nil for
	// frames that can never reach a CP-indexed opcode (there are none in
	// practice, since only bytecode frames are ever created here).
	CP *classloader.CPool
}

// NewFrame allocates a Frame with its locals/stack sized per the
// method's Code attribute.
func NewFrame(className, methName, descr string, code []byte, maxStack, maxLocals int, cp *classloader.CPool) *Frame {
	return &Frame{
		ClassName: className,
		MethName:  methName,
		Descr:     descr,
		Code:      code,
		Locals:    NewLocals(maxLocals),
		Stack:     opstack.New(maxStack),
		CP:        cp,
	}
}

// Signature renders "class.method(descriptor)" for diagnostics.
func (f *Frame) Signature() string {
	return f.ClassName + "." + f.MethName + f.Descr
}

/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package jvm implements the fetch-decode-dispatch loop: the single
// component that drives the operand stack, local variables, and heap
// built by the sibling packages. Evaluation is strictly nested: one Go
// call recurses per JVM method invocation, and the explicit frame list
// exists only so a fatal diagnostic can name the active method.
package jvm

import (
	"container/list"
	"fmt"

	"mjvm/classloader"
	"mjvm/excnames"
	"mjvm/frames"
	"mjvm/globals"
	"mjvm/object"
	"mjvm/trace"
	"mjvm/value"
)

// Interpreter holds the two pieces of shared, process-wide state the
// evaluator touches: the class registry (read-only once boot finishes
// registering classes) and the heap (append-only). Both are passed in
// explicitly rather than reached via ambient globals.
type Interpreter struct {
	Registry *classloader.Registry
	Heap     *object.Heap
	Flags    *globals.Globals

	// callStack records "class.method(descriptor)" for every frame
	// currently being evaluated, used only to render the method
	// signature in a fatal diagnostic; it is not consulted by control
	// flow.
	callStack *list.List
}

// New returns an Interpreter over the given registry and heap.
func New(registry *classloader.Registry, heap *object.Heap, flags *globals.Globals) *Interpreter {
	if flags == nil {
		flags = globals.New("mjvm")
	}
	return &Interpreter{Registry: registry, Heap: heap, Flags: flags, callStack: list.New()}
}

// Boot resolves main with descriptor ([Ljava/lang/String;)J on
// mainClassName and evaluates it. args becomes the contents
// of a freshly allocated java/lang/String[] passed as the sole argument;
// each element is a heap string reference built the same way ldc builds
// one (see Value.Str's doc comment in package value).
func (it *Interpreter) Boot(mainClassName string, args []string) (*value.Value, error) {
	const mainDescriptor = "([Ljava/lang/String;)J"
	method, err := it.Registry.LookupMethod(mainClassName, "main", mainDescriptor)
	if err != nil {
		return nil, err
	}

	arrID, aerr := it.Heap.AllocateArray('A', len(args))
	if aerr != nil {
		return nil, aerr
	}
	for i, s := range args {
		strID := it.Heap.AllocateObject("java/lang/String", 0)
		v := value.Ref(int64(strID))
		v.Str = s
		if err := it.Heap.Store(arrID, i, v); err != nil {
			return nil, err
		}
	}

	return it.invoke(mainClassName, method, []value.Value{value.Ref(int64(arrID))})
}

// invoke dispatches to a method's native callable or its bytecode,
// placing argument n into local index n, with wide values spanning two
// indices for numbering purposes only.
func (it *Interpreter) invoke(className string, method *classloader.Method, args []value.Value) (*value.Value, error) {
	if method.Native != nil {
		return method.Native(args)
	}
	if method.Code == nil {
		return nil, excnames.New(excnames.InvalidFormat, "method has neither Code nor a native binding: "+className+"."+method.Name+method.Descriptor)
	}

	paramTags, err := parseParamTags(method.Descriptor)
	if err != nil {
		return nil, err
	}

	class, ok := it.Registry.Lookup(className)
	if !ok {
		return nil, fmt.Errorf("class not found: %s", className)
	}

	frame := frames.NewFrame(className, method.Name, method.Descriptor, method.Code.Code, method.Code.MaxStack, method.Code.MaxLocals, class.CP)
	slot := 0
	for i, tag := range paramTags {
		if i < len(args) {
			if err := frame.Locals.Store(slot, args[i]); err != nil {
				return nil, err
			}
		}
		if isCategory2(tag) {
			slot += 2
		} else {
			slot++
		}
	}

	it.callStack.PushBack(frame.Signature())
	defer it.callStack.Remove(it.callStack.Back())

	return it.run(frame)
}

// methodSignature renders the innermost frame's signature for a fatal
// diagnostic, or "" if no frame is active.
func (it *Interpreter) methodSignature() string {
	if it.callStack.Len() == 0 {
		return ""
	}
	return it.callStack.Back().Value.(string)
}

// fail wraps a raw error into a VMError carrying the opcode, offset,
// and method signature available at the point of failure.
func (it *Interpreter) fail(err error, opcode int, offset int) error {
	if err == nil {
		return nil
	}
	if ve, already := err.(*excnames.VMError); already {
		// A VMError bubbling up from a callee frame already carries its
		// own, more specific context; one raised by this frame's stack or
		// locals has none yet.
		if !ve.HasOff {
			if opcode >= 0 {
				ve = ve.WithOpcode(opcode)
			}
			ve = ve.WithOffset(offset)
			if sig := it.methodSignature(); sig != "" {
				ve = ve.WithMethod(sig)
			}
		}
		return ve
	}
	ve := excnames.New(err, "")
	if opcode >= 0 {
		ve = ve.WithOpcode(opcode)
	}
	ve = ve.WithOffset(offset)
	if sig := it.methodSignature(); sig != "" {
		ve = ve.WithMethod(sig)
	}
	return ve
}

// run is the fetch-decode-dispatch loop proper. It returns
// the value delivered by a *return opcode (nil for `return`), or a
// fatal error that aborts this frame and propagates to the caller.
func (it *Interpreter) run(f *frames.Frame) (*value.Value, error) {
	for {
		if f.PC >= len(f.Code) {
			return nil, it.fail(excnames.New(excnames.IllegalOpcode, "program counter ran off the end of the code array"), -1, f.PC)
		}
		opStart := f.PC
		op := int(f.Code[f.PC])
		f.PC++

		if it.Flags != nil && it.Flags.TraceInstructions {
			trace.Trace(fmt.Sprintf("%s pc=%d op=0x%02x", f.Signature(), opStart, op))
		}

		result, done, err := it.step(f, op, opStart)
		if err != nil {
			return nil, it.fail(err, op, opStart)
		}
		if done {
			return result, nil
		}
	}
}

// fetchU1/fetchU2/fetchS1/fetchS2 read an immediate operand starting at
// f.PC and advance f.PC past it. All multi-byte immediates are
// big-endian.
func fetchU1(f *frames.Frame) (byte, error) {
	if f.PC+1 > len(f.Code) {
		return 0, excnames.New(excnames.IoError, "truncated opcode immediate")
	}
	b := f.Code[f.PC]
	f.PC++
	return b, nil
}

func fetchU2(f *frames.Frame) (uint16, error) {
	if f.PC+2 > len(f.Code) {
		return 0, excnames.New(excnames.IoError, "truncated opcode immediate")
	}
	v := uint16(f.Code[f.PC])<<8 | uint16(f.Code[f.PC+1])
	f.PC += 2
	return v, nil
}

func fetchS1(f *frames.Frame) (int8, error) {
	b, err := fetchU1(f)
	return int8(b), err
}

func fetchS2(f *frames.Frame) (int16, error) {
	v, err := fetchU2(f)
	return int16(v), err
}

func fetchS4(f *frames.Frame) (int32, error) {
	if f.PC+4 > len(f.Code) {
		return 0, excnames.New(excnames.IoError, "truncated opcode immediate")
	}
	v := uint32(f.Code[f.PC])<<24 | uint32(f.Code[f.PC+1])<<16 | uint32(f.Code[f.PC+2])<<8 | uint32(f.Code[f.PC+3])
	f.PC += 4
	return int32(v), nil
}

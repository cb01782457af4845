/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"testing"

	"mjvm/classloader"
	"mjvm/excnames"
	"mjvm/gfunction"
	"mjvm/object"
)

// classBytesBuilder assembles a minimal class file byte stream by hand:
// a constant pool built from wire-encoded entries starting at index 1,
// and a single static `main` method holding code, so end-to-end tests
// need no .class files on disk.
type classBytesBuilder struct {
	buf      []byte
	cpCount  uint16
}

func newClassBytesBuilder() *classBytesBuilder { return &classBytesBuilder{cpCount: 1} }

func (b *classBytesBuilder) u1(v byte)        { b.buf = append(b.buf, v) }
func (b *classBytesBuilder) u2(v uint16)      { b.buf = append(b.buf, byte(v>>8), byte(v)) }
func (b *classBytesBuilder) u4(v uint32)      { b.buf = append(b.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
func (b *classBytesBuilder) raw(v []byte)     { b.buf = append(b.buf, v...) }

// utf8 appends a UTF8 constant and returns its 1-based index.
func (b *classBytesBuilder) utf8(s string) uint16 {
	b.u1(1) // TagUTF8
	b.u2(uint16(len(s)))
	b.raw([]byte(s))
	idx := b.cpCount
	b.cpCount++
	return idx
}

// class appends a Class constant (referencing a prior UTF8 index).
func (b *classBytesBuilder) class(nameIdx uint16) uint16 {
	b.u1(7) // TagClass
	b.u2(nameIdx)
	idx := b.cpCount
	b.cpCount++
	return idx
}

func (b *classBytesBuilder) nameAndType(nameIdx, descIdx uint16) uint16 {
	b.u1(12) // TagNameAndType
	b.u2(nameIdx)
	b.u2(descIdx)
	idx := b.cpCount
	b.cpCount++
	return idx
}

func (b *classBytesBuilder) methodRef(classIdx, natIdx uint16) uint16 {
	b.u1(10) // TagMethodRef
	b.u2(classIdx)
	b.u2(natIdx)
	idx := b.cpCount
	b.cpCount++
	return idx
}

// buildTestClass assembles a complete class file: thisName's CP entries
// are whatever the caller already wrote into cp via the builder methods
// above, followed by this_class/super_class/main/descriptor/"Code"
// entries, then the main method carrying code.
func buildTestClass(t *testing.T, thisName string, extraCP func(b *classBytesBuilder), code []byte, maxStack, maxLocals int) []byte {
	t.Helper()
	header := &classBytesBuilder{}
	header.u4(0xCAFEBABE)
	header.u2(0) // minor
	header.u2(52)

	cp := newClassBytesBuilder()
	if extraCP != nil {
		extraCP(cp)
	}
	thisNameIdx := cp.utf8(thisName)
	thisClassIdx := cp.class(thisNameIdx)
	superNameIdx := cp.utf8("java/lang/Object")
	superClassIdx := cp.class(superNameIdx)
	mainNameIdx := cp.utf8("main")
	mainDescIdx := cp.utf8("([Ljava/lang/String;)J")
	codeNameIdx := cp.utf8("Code")

	header.u2(cp.cpCount)
	header.raw(cp.buf)

	header.u2(0x0021) // access flags
	header.u2(thisClassIdx)
	header.u2(superClassIdx)
	header.u2(0) // interfaces

	header.u2(0) // fields

	header.u2(1) // methods
	header.u2(0x0009)
	header.u2(mainNameIdx)
	header.u2(mainDescIdx)
	header.u2(1) // attr count

	header.u2(codeNameIdx)
	codeAttr := &classBytesBuilder{}
	codeAttr.u2(uint16(maxStack))
	codeAttr.u2(uint16(maxLocals))
	codeAttr.u4(uint32(len(code)))
	codeAttr.raw(code)
	codeAttr.u2(0) // exception table
	codeAttr.u2(0) // nested attrs
	header.u4(uint32(len(codeAttr.buf)))
	header.raw(codeAttr.buf)

	header.u2(0) // top-level attrs

	return header.buf
}

// run parses, registers, boots, and returns the result of `main` for a
// hand-assembled code slice.
func run(t *testing.T, className string, extraCP func(b *classBytesBuilder), code []byte, maxStack, maxLocals int) (int64, bool, error) {
	t.Helper()
	raw := buildTestClass(t, className, extraCP, code, maxStack, maxLocals)
	class, err := classloader.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	registry := classloader.NewRegistry()
	if err := gfunction.Init(registry); err != nil {
		t.Fatalf("gfunction.Init: %v", err)
	}
	if err := registry.Register(class); err != nil {
		t.Fatalf("Register: %v", err)
	}
	interp := New(registry, object.NewHeap(), nil)
	result, err := interp.Boot(className, nil)
	if err != nil {
		return 0, false, err
	}
	if result == nil {
		return 0, false, nil
	}
	return result.I64(), true, nil
}

func TestScenarioEmptyReturn(t *testing.T) {
	_, hasResult, err := run(t, "EmptyReturn", nil, []byte{0xb1}, 1, 1)
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if hasResult {
		t.Fatal("return should deliver no value")
	}
}

func TestScenarioUnconditionalBranch(t *testing.T) {
	// goto +4 over a `return`, landing on iconst_1; ireturn.
	code := []byte{0xa7, 0x00, 0x04, 0xb1, 0x04, 0xac}
	v, hasResult, err := run(t, "Branch", nil, code, 2, 1)
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if !hasResult || v != 1 {
		t.Fatalf("Boot() = %d, %v; want 1, true", v, hasResult)
	}
}

func TestScenarioArithmetic(t *testing.T) {
	code := []byte{0x05, 0x08, 0x60, 0xac} // iconst_2; iconst_5; iadd; ireturn
	v, hasResult, err := run(t, "Arith", nil, code, 2, 1)
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if !hasResult || v != 7 {
		t.Fatalf("Boot() = %d, %v; want 7, true", v, hasResult)
	}
}

func TestScenarioArrayStoreLoad(t *testing.T) {
	code := []byte{
		0x06,       // iconst_3
		0xbc, 0x0a, // newarray T_INT
		0x59,       // dup
		0x03,       // iconst_0
		0x10, 0x2a, // bipush 42
		0x4f, // iastore
		0x03, // iconst_0
		0x2e, // iaload
		0xac, // ireturn
	}
	v, hasResult, err := run(t, "ArrayStore", nil, code, 4, 1)
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if !hasResult || v != 42 {
		t.Fatalf("Boot() = %d, %v; want 42, true", v, hasResult)
	}
}

func TestScenarioStaticCallOfNative(t *testing.T) {
	extraCP := func(b *classBytesBuilder) {
		mathNameIdx := b.utf8("java/lang/Math")
		mathClassIdx := b.class(mathNameIdx)
		sqrtNameIdx := b.utf8("sqrt")
		sqrtDescIdx := b.utf8("(D)D")
		natIdx := b.nameAndType(sqrtNameIdx, sqrtDescIdx)
		methodRefIdx := b.methodRef(mathClassIdx, natIdx)
		// stash the methodref index where the test can read it back via
		// a closure variable below.
		sqrtMethodRefIdx = methodRefIdx
	}
	code := []byte{
		0x0f, // dconst_1
		0xb8, 0x00, 0x00, // invokestatic <idx> (patched below)
		0xaf, // dreturn
	}
	raw := buildTestClass(t, "CallsSqrt", extraCP, code, 2, 1)
	// Patch the invokestatic operand now that we know the methodref index.
	patchInvokestatic(t, raw, sqrtMethodRefIdx)

	class, err := classloader.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	registry := classloader.NewRegistry()
	if err := gfunction.Init(registry); err != nil {
		t.Fatalf("gfunction.Init: %v", err)
	}
	if err := registry.Register(class); err != nil {
		t.Fatalf("Register: %v", err)
	}
	interp := New(registry, object.NewHeap(), nil)
	result, err := interp.Boot("CallsSqrt", nil)
	if err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if result == nil {
		t.Fatal("expected a double result from dreturn")
	}
	if result.F64() != 1.0 {
		t.Fatalf("sqrt(1.0) = %v; want 1.0", result.F64())
	}
}

// sqrtMethodRefIdx carries the methodref constant-pool index computed
// inside the extraCP closure above out to the caller, which needs it to
// patch the invokestatic operand (the index is only known once the
// constant pool has been assembled, but the code array is written
// before that).
var sqrtMethodRefIdx uint16

// patchInvokestatic finds the 0xb8 0x00 0x00 placeholder this test wrote
// into the Code array and overwrites the operand with idx.
func patchInvokestatic(t *testing.T, raw []byte, idx uint16) {
	t.Helper()
	for i := 0; i+2 < len(raw); i++ {
		if raw[i] == 0xb8 && raw[i+1] == 0x00 && raw[i+2] == 0x00 {
			raw[i+1] = byte(idx >> 8)
			raw[i+2] = byte(idx)
			return
		}
	}
	t.Fatal("invokestatic placeholder not found in generated class bytes")
}

func TestScenarioDivisionByZero(t *testing.T) {
	code := []byte{0x04, 0x03, 0x6c, 0xac} // iconst_1; iconst_0; idiv; ireturn
	_, _, err := run(t, "DivZero", nil, code, 2, 1)
	if !excnames.Is(err, excnames.ArithmeticError) {
		t.Fatalf("Boot() err = %v; want ArithmeticError", err)
	}
}

func TestIllegalOpcode(t *testing.T) {
	_, _, err := run(t, "Illegal", nil, []byte{0xff}, 1, 1)
	if !excnames.Is(err, excnames.IllegalOpcode) {
		t.Fatalf("Boot() err = %v; want IllegalOpcode", err)
	}
}

func TestUnimplementedOpcode(t *testing.T) {
	// invokevirtual is a recognized, known-but-unimplemented opcode.
	_, _, err := run(t, "Unimpl", nil, []byte{0xb6, 0x00, 0x01}, 1, 1)
	if !excnames.Is(err, excnames.Unimplemented) {
		t.Fatalf("Boot() err = %v; want Unimplemented", err)
	}
}

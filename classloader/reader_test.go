/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"testing"

	"mjvm/excnames"
)

// classBuilder assembles a class file byte stream by hand, so format
// tests need no real .class file on disk.
type classBuilder struct {
	buf []byte
}

func (b *classBuilder) u1(v byte)    { b.buf = append(b.buf, v) }
func (b *classBuilder) u2(v uint16)  { b.buf = append(b.buf, byte(v>>8), byte(v)) }
func (b *classBuilder) u4(v uint32)  { b.buf = append(b.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
func (b *classBuilder) bytes(v []byte) { b.buf = append(b.buf, v...) }

func (b *classBuilder) utf8Entry(s string) {
	b.u1(byte(TagUTF8))
	b.u2(uint16(len(s)))
	b.bytes([]byte(s))
}

func (b *classBuilder) classEntry(nameIdx uint16) {
	b.u1(byte(TagClass))
	b.u2(nameIdx)
}

// minimalClass builds a class named thisName (UTF8 at index 1, class at
// index 2) with super_class java/lang/Object (UTF8 index 3, class index
// 4), no interfaces, no fields, one method `main` with the given code
// bytes, and no top-level attributes.
func minimalClass(t *testing.T, thisName string, maxStack, maxLocals int, code []byte) []byte {
	t.Helper()
	b := &classBuilder{}
	b.u4(magic)
	b.u2(0)  // minor
	b.u2(52) // major

	// constant pool: 7 entries -> count = 8
	//  1: UTF8 thisName
	//  2: Class -> 1
	//  3: UTF8 java/lang/Object
	//  4: Class -> 3
	//  5: UTF8 "main"
	//  6: UTF8 "([Ljava/lang/String;)J"
	//  7: UTF8 "Code"
	b.u2(8)
	b.utf8Entry(thisName)
	b.classEntry(1)
	b.utf8Entry("java/lang/Object")
	b.classEntry(3)
	b.utf8Entry("main")
	b.utf8Entry("([Ljava/lang/String;)J")
	b.utf8Entry("Code")

	b.u2(0x0021) // access flags: public, super
	b.u2(2)      // this_class
	b.u2(4)      // super_class
	b.u2(0)      // interfaces count

	b.u2(0) // fields count

	b.u2(1) // methods count
	b.u2(0x0009) // public static
	b.u2(5)      // name index -> "main"
	b.u2(6)      // descriptor index
	b.u2(1)      // attributes count
	b.u2(7)      // attribute name index -> "Code"

	codeAttr := &classBuilder{}
	codeAttr.u2(uint16(maxStack))
	codeAttr.u2(uint16(maxLocals))
	codeAttr.u4(uint32(len(code)))
	codeAttr.bytes(code)
	codeAttr.u2(0) // exception table length
	codeAttr.u2(0) // nested attributes count

	b.u4(uint32(len(codeAttr.buf)))
	b.bytes(codeAttr.buf)

	b.u2(0) // top-level attributes count

	return b.buf
}

func TestParseMinimalClass(t *testing.T) {
	raw := minimalClass(t, "Test", 2, 1, []byte{0xb1}) // return
	class, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if class.ThisClass != "Test" {
		t.Fatalf("ThisClass = %q; want Test", class.ThisClass)
	}
	if class.SuperClass != "java/lang/Object" {
		t.Fatalf("SuperClass = %q; want java/lang/Object", class.SuperClass)
	}
	if len(class.Methods) != 1 {
		t.Fatalf("len(Methods) = %d; want 1", len(class.Methods))
	}
	m := class.Methods[0]
	if m.Name != "main" || m.Descriptor != "([Ljava/lang/String;)J" {
		t.Fatalf("method = %s%s; want main([Ljava/lang/String;)J", m.Name, m.Descriptor)
	}
	if m.Code == nil {
		t.Fatal("expected a Code attribute")
	}
	if m.Code.MaxStack != 2 || m.Code.MaxLocals != 1 {
		t.Fatalf("MaxStack/MaxLocals = %d/%d; want 2/1", m.Code.MaxStack, m.Code.MaxLocals)
	}
	if len(m.Code.Code) != 1 || m.Code.Code[0] != 0xb1 {
		t.Fatalf("Code bytes = %v; want [0xb1]", m.Code.Code)
	}
}

func TestParseBadMagic(t *testing.T) {
	raw := minimalClass(t, "Test", 1, 1, []byte{0xb1})
	raw[0] = 0x00 // corrupt the magic
	if _, err := Parse(raw); !excnames.Is(err, excnames.InvalidFormat) {
		t.Fatalf("Parse with bad magic = %v; want InvalidFormat", err)
	}
}

func TestParseTruncatedStream(t *testing.T) {
	raw := minimalClass(t, "Test", 1, 1, []byte{0xb1})
	if _, err := Parse(raw[:len(raw)-10]); !excnames.Is(err, excnames.IoError) {
		t.Fatalf("Parse truncated = %v; want IoError", err)
	}
}

func TestParseUnknownConstantPoolTag(t *testing.T) {
	b := &classBuilder{}
	b.u4(magic)
	b.u2(0)
	b.u2(52)
	b.u2(2) // one entry
	b.u1(0xEE)
	if _, err := Parse(b.buf); !excnames.Is(err, excnames.Unsupported) {
		t.Fatalf("Parse with unknown tag = %v; want Unsupported", err)
	}
}

func TestConstantPoolLongDoubleSlotDoubling(t *testing.T) {
	// A Long or Double entry reserves the following index.
	b := &classBuilder{}
	b.u2(4) // count: slots 1 (Long, reserves 2), 3 (UTF8)
	b.u1(byte(TagLong))
	b.u4(0)
	b.u4(42)
	b.u1(byte(TagUTF8))
	b.u2(1)
	b.bytes([]byte("x"))
	cp, err := readConstantPool(&reader{buf: b.buf})
	if err != nil {
		t.Fatalf("readConstantPool: %v", err)
	}
	v, err := cp.Long(1)
	if err != nil || v != 42 {
		t.Fatalf("Long(1) = %d, %v; want 42, nil", v, err)
	}
	if s, err := cp.Utf8(3); err != nil || s != "x" {
		t.Fatalf("Utf8(3) = %q, %v; want x, nil", s, err)
	}
}

func TestFieldRefResolution(t *testing.T) {
	b := &classBuilder{}
	// 1: UTF8 "pkg/Foo" 2: Class->1 3: UTF8 "count" 4: UTF8 "I"
	// 5: NameAndType(3,4) 6: FieldRef(2,5)
	b.u2(7)
	b.utf8Entry("pkg/Foo")
	b.classEntry(1)
	b.utf8Entry("count")
	b.utf8Entry("I")
	b.u1(byte(TagNameAndType))
	b.u2(3)
	b.u2(4)
	b.u1(byte(TagFieldRef))
	b.u2(2)
	b.u2(5)
	cp, err := readConstantPool(&reader{buf: b.buf})
	if err != nil {
		t.Fatalf("readConstantPool: %v", err)
	}
	class, name, desc, err := cp.FieldRef(6)
	if err != nil {
		t.Fatalf("FieldRef: %v", err)
	}
	if class != "pkg/Foo" || name != "count" || desc != "I" {
		t.Fatalf("FieldRef(6) = %s %s %s; want pkg/Foo count I", class, name, desc)
	}
}

func TestInvalidReferenceWrongKind(t *testing.T) {
	b := &classBuilder{}
	b.u2(2)
	b.utf8Entry("x")
	cp, err := readConstantPool(&reader{buf: b.buf})
	if err != nil {
		t.Fatalf("readConstantPool: %v", err)
	}
	if _, err := cp.Integer(1); !excnames.Is(err, excnames.InvalidReference) {
		t.Fatalf("Integer(1) on a UTF8 entry = %v; want InvalidReference", err)
	}
}

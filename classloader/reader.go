/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"encoding/binary"
	"fmt"

	"mjvm/excnames"
	"mjvm/trace"
)

const magic = 0xCAFEBABE

// reader is a single-pass, stateless-beyond-its-cursor big-endian byte
// cursor over a class file. It never mutates anything other than its
// own position.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) u1() (byte, error) {
	if r.pos+1 > len(r.buf) {
		return 0, excnames.New(excnames.IoError, "truncated stream reading u1")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) u2() (uint16, error) {
	if r.pos+2 > len(r.buf) {
		return 0, excnames.New(excnames.IoError, "truncated stream reading u2")
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) u4() (uint32, error) {
	if r.pos+4 > len(r.buf) {
		return 0, excnames.New(excnames.IoError, "truncated stream reading u4")
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, excnames.New(excnames.IoError, "truncated stream reading raw bytes")
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// Parse decodes a complete class file from raw bytes into a Class
// (JVMS §4.1). This is the only entry point into the reader.
func Parse(raw []byte) (*Class, error) {
	r := &reader{buf: raw}

	m, err := r.u4()
	if err != nil {
		return nil, err
	}
	if m != magic {
		return nil, excnames.New(excnames.InvalidFormat, fmt.Sprintf("bad magic 0x%08x", m))
	}

	minor, err := r.u2()
	if err != nil {
		return nil, err
	}
	major, err := r.u2()
	if err != nil {
		return nil, err
	}

	cp, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}

	accessFlags, err := r.u2()
	if err != nil {
		return nil, err
	}

	thisIdx, err := r.u2()
	if err != nil {
		return nil, err
	}
	thisClass, err := cp.ClassName(int(thisIdx))
	if err != nil {
		return nil, excnames.New(excnames.InvalidFormat, "this_class does not resolve to a class/UTF8 pair")
	}

	superIdx, err := r.u2()
	if err != nil {
		return nil, err
	}
	var superClass string
	if superIdx != 0 {
		superClass, err = cp.ClassName(int(superIdx))
		if err != nil {
			return nil, excnames.New(excnames.InvalidFormat, "super_class does not resolve to a class/UTF8 pair")
		}
	}

	ifaceCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	interfaces := make([]string, 0, ifaceCount)
	for i := 0; i < int(ifaceCount); i++ {
		idx, err := r.u2()
		if err != nil {
			return nil, err
		}
		name, err := cp.ClassName(int(idx))
		if err != nil {
			return nil, excnames.New(excnames.InvalidFormat, "interface entry does not resolve to a class/UTF8 pair")
		}
		interfaces = append(interfaces, name)
	}

	fieldCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	fields := make([]*Field, 0, fieldCount)
	for i := 0; i < int(fieldCount); i++ {
		f, err := readField(r, cp)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	methodCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	methods := make([]*Method, 0, methodCount)
	for i := 0; i < int(methodCount); i++ {
		m, err := readMethod(r, cp)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}

	// Top-level attributes are decoded into opaque blobs so a caller can
	// inspect SourceFile etc. via Class.Attributes without special-casing.
	attrCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	attrs, err := readAttributes(r, cp, int(attrCount))
	if err != nil {
		return nil, err
	}

	trace.Trace(fmt.Sprintf("classloader: parsed %s (major=%d minor=%d)", thisClass, major, minor))

	return &Class{
		MinorVersion: minor,
		MajorVersion: major,
		AccessFlags:  int(accessFlags),
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   attrs,
		CP:           cp,
	}, nil
}

func readField(r *reader, cp *CPool) (*Field, error) {
	accessFlags, err := r.u2()
	if err != nil {
		return nil, err
	}
	nameIdx, err := r.u2()
	if err != nil {
		return nil, err
	}
	name, err := cp.Utf8(int(nameIdx))
	if err != nil {
		return nil, excnames.New(excnames.InvalidFormat, "field name index is not UTF8")
	}
	descIdx, err := r.u2()
	if err != nil {
		return nil, err
	}
	desc, err := cp.Utf8(int(descIdx))
	if err != nil {
		return nil, excnames.New(excnames.InvalidFormat, "field descriptor index is not UTF8")
	}
	attrCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	attrs, err := readAttributes(r, cp, int(attrCount))
	if err != nil {
		return nil, err
	}
	return &Field{AccessFlags: int(accessFlags), Name: name, Descriptor: desc, Attributes: attrs}, nil
}

func readMethod(r *reader, cp *CPool) (*Method, error) {
	accessFlags, err := r.u2()
	if err != nil {
		return nil, err
	}
	nameIdx, err := r.u2()
	if err != nil {
		return nil, err
	}
	name, err := cp.Utf8(int(nameIdx))
	if err != nil {
		return nil, excnames.New(excnames.InvalidFormat, "method name index is not UTF8")
	}
	descIdx, err := r.u2()
	if err != nil {
		return nil, err
	}
	desc, err := cp.Utf8(int(descIdx))
	if err != nil {
		return nil, excnames.New(excnames.InvalidFormat, "method descriptor index is not UTF8")
	}
	attrCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	attrs, err := readAttributes(r, cp, int(attrCount))
	if err != nil {
		return nil, err
	}

	method := &Method{AccessFlags: int(accessFlags), Name: name, Descriptor: desc, Attributes: attrs}
	for i := range attrs {
		if attrs[i].Name == "Code" {
			code, err := decodeCodeAttribute(attrs[i].Raw, cp)
			if err != nil {
				return nil, err
			}
			method.Code = code
		}
	}
	return method, nil
}

// readAttributes reads `count` (name index u2, length u4, payload)
// attributes, dispatching on the UTF-8 name. Code and LineNumberTable
// are special-cased at the point of use (readMethod,
// decodeCodeAttribute); everything else is kept as an opaque blob.
func readAttributes(r *reader, cp *CPool, count int) ([]Attribute, error) {
	out := make([]Attribute, 0, count)
	for i := 0; i < count; i++ {
		nameIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		name, err := cp.Utf8(int(nameIdx))
		if err != nil {
			return nil, excnames.New(excnames.InvalidFormat, "attribute name index is not UTF8")
		}
		length, err := r.u4()
		if err != nil {
			return nil, err
		}
		payload, err := r.bytes(int(length))
		if err != nil {
			return nil, err
		}
		raw := make([]byte, len(payload))
		copy(raw, payload)
		out = append(out, Attribute{Name: name, Raw: raw})
	}
	return out, nil
}

// decodeCodeAttribute decodes a Code attribute's payload (JVMS §4.7.3):
// u2 max_stack, u2 max_locals, u4 code_length, code bytes, u2
// exception_table_length, that many 4*u2 records, then a nested
// attribute list.
func decodeCodeAttribute(payload []byte, cp *CPool) (*CodeAttribute, error) {
	cr := &reader{buf: payload}

	maxStack, err := cr.u2()
	if err != nil {
		return nil, err
	}
	maxLocals, err := cr.u2()
	if err != nil {
		return nil, err
	}
	codeLen, err := cr.u4()
	if err != nil {
		return nil, err
	}
	code, err := cr.bytes(int(codeLen))
	if err != nil {
		return nil, err
	}
	codeCopy := make([]byte, len(code))
	copy(codeCopy, code)

	excCount, err := cr.u2()
	if err != nil {
		return nil, err
	}
	excs := make([]ExceptionTableEntry, 0, excCount)
	for i := 0; i < int(excCount); i++ {
		startPC, err := cr.u2()
		if err != nil {
			return nil, err
		}
		endPC, err := cr.u2()
		if err != nil {
			return nil, err
		}
		handlerPC, err := cr.u2()
		if err != nil {
			return nil, err
		}
		catchType, err := cr.u2()
		if err != nil {
			return nil, err
		}
		excs = append(excs, ExceptionTableEntry{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType})
	}

	nestedCount, err := cr.u2()
	if err != nil {
		return nil, err
	}
	nested, err := readAttributes(cr, cp, int(nestedCount))
	if err != nil {
		return nil, err
	}

	var lines []LineNumberEntry
	for i := range nested {
		if nested[i].Name == "LineNumberTable" {
			lines, err = decodeLineNumberTable(nested[i].Raw)
			if err != nil {
				return nil, err
			}
		}
	}

	return &CodeAttribute{
		MaxStack:    int(maxStack),
		MaxLocals:   int(maxLocals),
		Code:        codeCopy,
		Exceptions:  excs,
		Attributes:  nested,
		LineNumbers: lines,
	}, nil
}

// decodeLineNumberTable decodes a LineNumberTable attribute's payload:
// u2 length, then that many (u2 start_pc, u2 line_number) records
// (JVMS §4.7.12).
func decodeLineNumberTable(payload []byte) ([]LineNumberEntry, error) {
	lr := &reader{buf: payload}
	count, err := lr.u2()
	if err != nil {
		return nil, err
	}
	out := make([]LineNumberEntry, 0, count)
	for i := 0; i < int(count); i++ {
		startPC, err := lr.u2()
		if err != nil {
			return nil, err
		}
		lineNumber, err := lr.u2()
		if err != nil {
			return nil, err
		}
		out = append(out, LineNumberEntry{StartPC: startPC, LineNumber: lineNumber})
	}
	return out, nil
}

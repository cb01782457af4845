/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"mjvm/types"
	"mjvm/value"
)

// Class is the in-memory representation of one parsed class file.
// There is no separate method area and no class hierarchy to walk, so a
// Class is both the parse result and the thing the registry stores.
type Class struct {
	MinorVersion uint16
	MajorVersion uint16

	AccessFlags int
	ThisClass   string // resolved UTF-8 name
	SuperClass  string // resolved UTF-8 name ("" for java/lang/Object)

	Interfaces []string
	Fields     []*Field
	Methods    []*Method
	Attributes []Attribute

	CP *CPool
}

func (c *Class) IsPublic() bool    { return c.AccessFlags&types.AccPublic != 0 }
func (c *Class) IsFinal() bool     { return c.AccessFlags&types.AccFinal != 0 }
func (c *Class) IsInterface() bool { return c.AccessFlags&types.AccInterface != 0 }
func (c *Class) IsAbstract() bool  { return c.AccessFlags&types.AccAbstract != 0 }

// Field is one field declared by a class.
type Field struct {
	AccessFlags int
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

func (f *Field) IsStatic() bool { return f.AccessFlags&types.AccStatic != 0 }

// Method is one method (or constructor) declared by a class.
type Method struct {
	AccessFlags int
	Name        string
	Descriptor  string
	Attributes  []Attribute

	Code *CodeAttribute // nil if the method is abstract/native with no Code attribute

	// Native, when non-nil, is a host callable that displaces bytecode
	// execution for this method. It is populated by the gfunction package
	// when a method is a registered built-in rather than parsed from a
	// class file.
	Native NativeCallable
}

func (m *Method) IsStatic() bool { return m.AccessFlags&types.AccStatic != 0 }

// NativeCallable is a host-language function reachable at a method name,
// replacing bytecode. It consumes the caller-prepared locals frame and
// returns an optional value cell; a nil return means the method is void.
type NativeCallable func(locals []value.Value) (*value.Value, error)

// Attribute is a tagged sum distinguished by the UTF-8 name its
// name index points to. Unrecognized attributes are preserved as opaque
// bytes in Raw.
type Attribute struct {
	Name string
	Raw  []byte // present for attributes that were not specially decoded
}

// CodeAttribute is the decoded form of the Code attribute (JVMS §4.7.3).
type CodeAttribute struct {
	MaxStack   int
	MaxLocals  int
	Code       []byte
	Exceptions []ExceptionTableEntry
	Attributes []Attribute

	// LineNumbers, if present, maps a Code offset to a source line
	// (decoded from a nested LineNumberTable attribute).
	LineNumbers []LineNumberEntry
}

// ExceptionTableEntry is one entry of a Code attribute's exception
// table. It is parsed but not consulted: a runtime error aborts the
// frame instead of unwinding to a handler.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16 // 0 means "catches everything"; otherwise a ClassRef CP index
}

// LineNumberEntry is one (start_pc, line_number) pair of a
// LineNumberTable attribute.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

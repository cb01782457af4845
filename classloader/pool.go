/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classloader decodes the class file format (JVMS §4) into a
// Class and serves it at runtime: the binary reader lives in reader.go,
// the constant pool in this file and poolreader.go, and the class
// registry in registry.go.
package classloader

import "mjvm/excnames"

// Tag is the wire-format constant-pool tag byte (JVMS §4.4), distinct
// from any in-memory discriminant.
type Tag byte

const (
	TagUTF8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldRef           Tag = 9
	TagMethodRef          Tag = 10
	TagInterfaceMethodRef Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagInvokeDynamic      Tag = 18
)

// cpEntry is one slot in the pool's index: the entry's tag plus the slot
// into the type-specific array that actually holds its data. After a
// Long or Double entry, the following index is reserved and carries the
// zero cpEntry.
type cpEntry struct {
	tag  Tag
	slot int
}

// FieldRefEntry / MethodRefEntry / InterfaceRefEntry: each a class index
// plus a name-and-type index, both themselves indices into cpIndex.
type FieldRefEntry struct{ ClassIndex, NameAndType uint16 }
type MethodRefEntry struct{ ClassIndex, NameAndType uint16 }
type InterfaceRefEntry struct{ ClassIndex, NameAndType uint16 }

// NameAndTypeEntry: a name index plus a descriptor index, both into
// cpIndex, both expected to resolve to UTF8 entries.
type NameAndTypeEntry struct{ NameIndex, DescIndex uint16 }

// MethodHandleEntry / InvokeDynamicEntry are recognized and stored but
// not resolved further: invokedynamic and reflective method handles are
// not executed by this VM.
type MethodHandleEntry struct {
	RefKind  uint8
	RefIndex uint16
}
type InvokeDynamicEntry struct {
	BootstrapIndex uint16
	NameAndType    uint16
}

// CPool is the 1-indexed, readonly constant pool. Index 0 is never
// populated (the dummy entry matching the null-reference convention of
// heap id 0).
type CPool struct {
	cpIndex []cpEntry

	utf8         []string
	intConsts    []int32
	floats       []float32
	longConsts   []int64
	doubles      []float64
	classNames   []uint16 // index into cpIndex, expected to resolve to UTF8
	stringUtf8   []uint16 // index into cpIndex, expected to resolve to UTF8
	fieldRefs    []FieldRefEntry
	methodRefs   []MethodRefEntry
	ifaceRefs    []InterfaceRefEntry
	nameAndType  []NameAndTypeEntry
	methodHandle []MethodHandleEntry
	methodType   []uint16
	invokeDyn    []InvokeDynamicEntry
}

// Count returns the number of 1-indexed slots (including the reserved
// slot after a Long/Double), i.e. the class file's constant_pool_count.
func (cp *CPool) Count() int { return len(cp.cpIndex) }

func (cp *CPool) inRange(i int) bool {
	return i >= 1 && i < len(cp.cpIndex)
}

// Utf8 returns the UTF-8 string at index i, or InvalidReference if i
// does not resolve to a UTF8 entry.
func (cp *CPool) Utf8(i int) (string, error) {
	if !cp.inRange(i) || cp.cpIndex[i].tag != TagUTF8 {
		return "", excnames.New(excnames.InvalidReference, "expected UTF8 entry")
	}
	return cp.utf8[cp.cpIndex[i].slot], nil
}

// ClassName follows a Class entry's name-index to its UTF-8 string.
func (cp *CPool) ClassName(i int) (string, error) {
	if !cp.inRange(i) || cp.cpIndex[i].tag != TagClass {
		return "", excnames.New(excnames.InvalidReference, "expected Class entry")
	}
	nameIdx := cp.classNames[cp.cpIndex[i].slot]
	return cp.Utf8(int(nameIdx))
}

// StringConst follows a String entry's string-index to its UTF-8 value.
func (cp *CPool) StringConst(i int) (string, error) {
	if !cp.inRange(i) || cp.cpIndex[i].tag != TagString {
		return "", excnames.New(excnames.InvalidReference, "expected String entry")
	}
	utf8Idx := cp.stringUtf8[cp.cpIndex[i].slot]
	return cp.Utf8(int(utf8Idx))
}

func (cp *CPool) Integer(i int) (int32, error) {
	if !cp.inRange(i) || cp.cpIndex[i].tag != TagInteger {
		return 0, excnames.New(excnames.InvalidReference, "expected Integer entry")
	}
	return cp.intConsts[cp.cpIndex[i].slot], nil
}

func (cp *CPool) Float(i int) (float32, error) {
	if !cp.inRange(i) || cp.cpIndex[i].tag != TagFloat {
		return 0, excnames.New(excnames.InvalidReference, "expected Float entry")
	}
	return cp.floats[cp.cpIndex[i].slot], nil
}

func (cp *CPool) Long(i int) (int64, error) {
	if !cp.inRange(i) || cp.cpIndex[i].tag != TagLong {
		return 0, excnames.New(excnames.InvalidReference, "expected Long entry")
	}
	return cp.longConsts[cp.cpIndex[i].slot], nil
}

func (cp *CPool) Double(i int) (float64, error) {
	if !cp.inRange(i) || cp.cpIndex[i].tag != TagDouble {
		return 0, excnames.New(excnames.InvalidReference, "expected Double entry")
	}
	return cp.doubles[cp.cpIndex[i].slot], nil
}

func (cp *CPool) nameAndTypeStrings(natIdx uint16) (name, desc string, err error) {
	if !cp.inRange(int(natIdx)) || cp.cpIndex[natIdx].tag != TagNameAndType {
		return "", "", excnames.New(excnames.InvalidReference, "expected NameAndType entry")
	}
	nat := cp.nameAndType[cp.cpIndex[natIdx].slot]
	name, err = cp.Utf8(int(nat.NameIndex))
	if err != nil {
		return "", "", err
	}
	desc, err = cp.Utf8(int(nat.DescIndex))
	if err != nil {
		return "", "", err
	}
	return name, desc, nil
}

// FieldRef resolves a FieldRef entry to (class name, field name, descriptor).
func (cp *CPool) FieldRef(i int) (class, name, desc string, err error) {
	if !cp.inRange(i) || cp.cpIndex[i].tag != TagFieldRef {
		return "", "", "", excnames.New(excnames.InvalidReference, "expected FieldRef entry")
	}
	fr := cp.fieldRefs[cp.cpIndex[i].slot]
	class, err = cp.ClassName(int(fr.ClassIndex))
	if err != nil {
		return "", "", "", err
	}
	name, desc, err = cp.nameAndTypeStrings(fr.NameAndType)
	return class, name, desc, err
}

// MethodRef resolves a MethodRef (or InterfaceMethodRef, which shares the
// same layout) entry to (class name, method name, descriptor).
func (cp *CPool) MethodRef(i int) (class, name, desc string, err error) {
	if !cp.inRange(i) {
		return "", "", "", excnames.New(excnames.InvalidReference, "index out of range")
	}
	entry := cp.cpIndex[i]
	var classIndex, natIndex uint16
	switch entry.tag {
	case TagMethodRef:
		mr := cp.methodRefs[entry.slot]
		classIndex, natIndex = mr.ClassIndex, mr.NameAndType
	case TagInterfaceMethodRef:
		ir := cp.ifaceRefs[entry.slot]
		classIndex, natIndex = ir.ClassIndex, ir.NameAndType
	default:
		return "", "", "", excnames.New(excnames.InvalidReference, "expected MethodRef entry")
	}
	class, err = cp.ClassName(int(classIndex))
	if err != nil {
		return "", "", "", err
	}
	name, desc, err = cp.nameAndTypeStrings(natIndex)
	return class, name, desc, err
}

// LoadableAt returns the Value-producing constant for an ldc/ldc_w/ldc2_w
// index: an int, float, long, double, class name, or UTF-8 string.
// Category2 reports whether the constant is long/double (ldc2_w only).
func (cp *CPool) LoadableAt(i int) (tag Tag, iv int64, fv float64, sv string, category2 bool, err error) {
	if !cp.inRange(i) {
		return 0, 0, 0, "", false, excnames.New(excnames.InvalidReference, "index out of range")
	}
	switch cp.cpIndex[i].tag {
	case TagInteger:
		v, e := cp.Integer(i)
		return TagInteger, int64(v), 0, "", false, e
	case TagFloat:
		v, e := cp.Float(i)
		return TagFloat, 0, float64(v), "", false, e
	case TagLong:
		v, e := cp.Long(i)
		return TagLong, v, 0, "", true, e
	case TagDouble:
		v, e := cp.Double(i)
		return TagDouble, 0, v, "", true, e
	case TagString:
		v, e := cp.StringConst(i)
		return TagString, 0, 0, v, false, e
	case TagClass:
		v, e := cp.ClassName(i)
		return TagClass, 0, 0, v, false, e
	default:
		return 0, 0, 0, "", false, excnames.New(excnames.InvalidReference, "not a loadable constant")
	}
}

/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"fmt"
	"math"

	"mjvm/excnames"
)

// readConstantPool decodes constant_pool_count - 1 entries, 1-indexed,
// where a Long/Double entry consumes two slot numbers but only one
// stream entry (JVMS §4.4.5).
func readConstantPool(r *reader) (*CPool, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}

	cp := &CPool{
		cpIndex: make([]cpEntry, count), // index 0 unused, matches constant_pool_count
	}

	for i := 1; i < int(count); i++ {
		tagByte, err := r.u1()
		if err != nil {
			return nil, err
		}

		switch Tag(tagByte) {
		case TagUTF8:
			length, err := r.u2()
			if err != nil {
				return nil, err
			}
			raw, err := r.bytes(int(length))
			if err != nil {
				return nil, err
			}
			slot := len(cp.utf8)
			cp.utf8 = append(cp.utf8, string(raw))
			cp.cpIndex[i] = cpEntry{tag: TagUTF8, slot: slot}

		case TagInteger:
			v, err := r.u4()
			if err != nil {
				return nil, err
			}
			slot := len(cp.intConsts)
			cp.intConsts = append(cp.intConsts, int32(v))
			cp.cpIndex[i] = cpEntry{tag: TagInteger, slot: slot}

		case TagFloat:
			v, err := r.u4()
			if err != nil {
				return nil, err
			}
			slot := len(cp.floats)
			cp.floats = append(cp.floats, math.Float32frombits(v))
			cp.cpIndex[i] = cpEntry{tag: TagFloat, slot: slot}

		case TagLong:
			hi, err := r.u4()
			if err != nil {
				return nil, err
			}
			lo, err := r.u4()
			if err != nil {
				return nil, err
			}
			slot := len(cp.longConsts)
			cp.longConsts = append(cp.longConsts, int64(uint64(hi)<<32|uint64(lo)))
			cp.cpIndex[i] = cpEntry{tag: TagLong, slot: slot}
			i++ // the next index is reserved/unused

		case TagDouble:
			hi, err := r.u4()
			if err != nil {
				return nil, err
			}
			lo, err := r.u4()
			if err != nil {
				return nil, err
			}
			slot := len(cp.doubles)
			cp.doubles = append(cp.doubles, math.Float64frombits(uint64(hi)<<32|uint64(lo)))
			cp.cpIndex[i] = cpEntry{tag: TagDouble, slot: slot}
			i++ // reserved slot after a Double, as after a Long

		case TagClass:
			nameIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			slot := len(cp.classNames)
			cp.classNames = append(cp.classNames, nameIdx)
			cp.cpIndex[i] = cpEntry{tag: TagClass, slot: slot}

		case TagString:
			utf8Idx, err := r.u2()
			if err != nil {
				return nil, err
			}
			slot := len(cp.stringUtf8)
			cp.stringUtf8 = append(cp.stringUtf8, utf8Idx)
			cp.cpIndex[i] = cpEntry{tag: TagString, slot: slot}

		case TagFieldRef:
			classIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			natIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			slot := len(cp.fieldRefs)
			cp.fieldRefs = append(cp.fieldRefs, FieldRefEntry{ClassIndex: classIdx, NameAndType: natIdx})
			cp.cpIndex[i] = cpEntry{tag: TagFieldRef, slot: slot}

		case TagMethodRef:
			classIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			natIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			slot := len(cp.methodRefs)
			cp.methodRefs = append(cp.methodRefs, MethodRefEntry{ClassIndex: classIdx, NameAndType: natIdx})
			cp.cpIndex[i] = cpEntry{tag: TagMethodRef, slot: slot}

		case TagInterfaceMethodRef:
			classIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			natIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			slot := len(cp.ifaceRefs)
			cp.ifaceRefs = append(cp.ifaceRefs, InterfaceRefEntry{ClassIndex: classIdx, NameAndType: natIdx})
			cp.cpIndex[i] = cpEntry{tag: TagInterfaceMethodRef, slot: slot}

		case TagNameAndType:
			nameIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			descIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			slot := len(cp.nameAndType)
			cp.nameAndType = append(cp.nameAndType, NameAndTypeEntry{NameIndex: nameIdx, DescIndex: descIdx})
			cp.cpIndex[i] = cpEntry{tag: TagNameAndType, slot: slot}

		case TagMethodHandle:
			refKind, err := r.u1()
			if err != nil {
				return nil, err
			}
			refIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			slot := len(cp.methodHandle)
			cp.methodHandle = append(cp.methodHandle, MethodHandleEntry{RefKind: refKind, RefIndex: refIdx})
			cp.cpIndex[i] = cpEntry{tag: TagMethodHandle, slot: slot}

		case TagMethodType:
			descIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			slot := len(cp.methodType)
			cp.methodType = append(cp.methodType, descIdx)
			cp.cpIndex[i] = cpEntry{tag: TagMethodType, slot: slot}

		case TagInvokeDynamic:
			bootstrapIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			natIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			slot := len(cp.invokeDyn)
			cp.invokeDyn = append(cp.invokeDyn, InvokeDynamicEntry{BootstrapIndex: bootstrapIdx, NameAndType: natIdx})
			cp.cpIndex[i] = cpEntry{tag: TagInvokeDynamic, slot: slot}

		default:
			return nil, excnames.New(excnames.Unsupported, fmt.Sprintf("unknown constant-pool tag %d at index %d", tagByte, i))
		}
	}

	return cp, nil
}

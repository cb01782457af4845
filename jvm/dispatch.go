/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package jvm

import (
	"mjvm/classloader"
	"mjvm/excnames"
	"mjvm/frames"
	"mjvm/value"
)

// step decodes and executes the single opcode at f.Code[opStart] (f.PC
// already points past the opcode byte). It returns (result, true, nil)
// when the instruction ended the frame, (nil, false, nil) to keep
// looping, or a non-nil error that aborts the frame.
func (it *Interpreter) step(f *frames.Frame, op int, opStart int) (*value.Value, bool, error) {
	s := f.Stack

	switch op {
	case OpNop:
		// does nothing

	// ---- constant pushes ----
	case OpAconstNull:
		return nil, false, s.AconstNull()
	case OpIconstM1:
		return nil, false, s.Iconst(-1)
	case OpIconst0:
		return nil, false, s.Iconst(0)
	case OpIconst1:
		return nil, false, s.Iconst(1)
	case OpIconst2:
		return nil, false, s.Iconst(2)
	case OpIconst3:
		return nil, false, s.Iconst(3)
	case OpIconst4:
		return nil, false, s.Iconst(4)
	case OpIconst5:
		return nil, false, s.Iconst(5)
	case OpLconst0:
		return nil, false, s.Lconst(0)
	case OpLconst1:
		return nil, false, s.Lconst(1)
	case OpFconst0:
		return nil, false, s.Fconst(0)
	case OpFconst1:
		return nil, false, s.Fconst(1)
	case OpFconst2:
		return nil, false, s.Fconst(2)
	case OpDconst0:
		return nil, false, s.Dconst(0)
	case OpDconst1:
		return nil, false, s.Dconst(1)

	case OpBipush:
		v, err := fetchS1(f)
		if err != nil {
			return nil, false, err
		}
		return nil, false, s.Iconst(int32(v))
	case OpSipush:
		v, err := fetchS2(f)
		if err != nil {
			return nil, false, err
		}
		return nil, false, s.Iconst(int32(v))

	case OpLdc:
		idx, err := fetchU1(f)
		if err != nil {
			return nil, false, err
		}
		return nil, false, it.execLdc(f, int(idx))
	case OpLdcW, OpLdc2W:
		idx, err := fetchU2(f)
		if err != nil {
			return nil, false, err
		}
		return nil, false, it.execLdc(f, int(idx))

	// ---- loads ----
	case OpIload, OpLload, OpFload, OpDload, OpAload:
		idx, err := fetchU1(f)
		if err != nil {
			return nil, false, err
		}
		return nil, false, loadLocal(f, int(idx))
	case OpIload0, OpLload0, OpFload0, OpDload0, OpAload0:
		return nil, false, loadLocal(f, 0)
	case OpIload1, OpLload1, OpFload1, OpDload1, OpAload1:
		return nil, false, loadLocal(f, 1)
	case OpIload2, OpLload2, OpFload2, OpDload2, OpAload2:
		return nil, false, loadLocal(f, 2)
	case OpIload3, OpLload3, OpFload3, OpDload3, OpAload3:
		return nil, false, loadLocal(f, 3)

	// ---- array loads ----
	case OpIaload, OpLaload, OpFaload, OpDaload, OpAaload, OpBaload, OpCaload, OpSaload:
		return nil, false, it.execArrayLoad(f)

	// ---- stores ----
	case OpIstore, OpLstore, OpFstore, OpDstore, OpAstore:
		idx, err := fetchU1(f)
		if err != nil {
			return nil, false, err
		}
		return nil, false, storeLocal(f, int(idx))
	case OpIstore0, OpLstore0, OpFstore0, OpDstore0, OpAstore0:
		return nil, false, storeLocal(f, 0)
	case OpIstore1, OpLstore1, OpFstore1, OpDstore1, OpAstore1:
		return nil, false, storeLocal(f, 1)
	case OpIstore2, OpLstore2, OpFstore2, OpDstore2, OpAstore2:
		return nil, false, storeLocal(f, 2)
	case OpIstore3, OpLstore3, OpFstore3, OpDstore3, OpAstore3:
		return nil, false, storeLocal(f, 3)

	// ---- array stores ----
	case OpIastore, OpLastore, OpFastore, OpDastore, OpAastore, OpBastore, OpCastore, OpSastore:
		return nil, false, it.execArrayStore(f)

	// ---- stack shape ----
	case OpPop:
		return nil, false, s.PopOp()
	case OpPop2:
		return nil, false, s.Pop2()
	case OpDup:
		return nil, false, s.Dup()
	case OpDupX1:
		return nil, false, s.DupX1()
	case OpDupX2:
		return nil, false, s.DupX2()
	case OpDup2:
		return nil, false, s.Dup2()
	case OpDup2X1:
		return nil, false, s.Dup2X1()
	case OpDup2X2:
		return nil, false, s.Dup2X2()
	case OpSwap:
		return nil, false, s.Swap()

	// ---- integer/long/float/double arithmetic ----
	case OpIadd:
		return nil, false, s.Iadd()
	case OpIsub:
		return nil, false, s.Isub()
	case OpImul:
		return nil, false, s.Imul()
	case OpIdiv:
		return nil, false, s.Idiv()
	case OpIrem:
		return nil, false, s.Irem()
	case OpIneg:
		return nil, false, s.Ineg()
	case OpIand:
		return nil, false, s.Iand()
	case OpIor:
		return nil, false, s.Ior()
	case OpIxor:
		return nil, false, s.Ixor()
	case OpIshl:
		return nil, false, s.Ishl()
	case OpIshr:
		return nil, false, s.Ishr()
	case OpIushr:
		return nil, false, s.Iushr()

	case OpLadd:
		return nil, false, s.Ladd()
	case OpLsub:
		return nil, false, s.Lsub()
	case OpLmul:
		return nil, false, s.Lmul()
	case OpLdiv:
		return nil, false, s.Ldiv()
	case OpLrem:
		return nil, false, s.Lrem()
	case OpLneg:
		return nil, false, s.Lneg()
	case OpLand:
		return nil, false, s.Land()
	case OpLor:
		return nil, false, s.Lor()
	case OpLxor:
		return nil, false, s.Lxor()
	case OpLshl:
		return nil, false, s.Lshl()
	case OpLshr:
		return nil, false, s.Lshr()
	case OpLushr:
		return nil, false, s.Lushr()

	case OpFadd:
		return nil, false, s.Fadd()
	case OpFsub:
		return nil, false, s.Fsub()
	case OpFmul:
		return nil, false, s.Fmul()
	case OpFdiv:
		return nil, false, s.Fdiv()
	case OpFrem:
		return nil, false, s.Frem()
	case OpFneg:
		return nil, false, s.Fneg()

	case OpDadd:
		return nil, false, s.Dadd()
	case OpDsub:
		return nil, false, s.Dsub()
	case OpDmul:
		return nil, false, s.Dmul()
	case OpDdiv:
		return nil, false, s.Ddiv()
	case OpDrem:
		return nil, false, s.Drem()
	case OpDneg:
		return nil, false, s.Dneg()

	case OpIinc:
		idx, err := fetchU1(f)
		if err != nil {
			return nil, false, err
		}
		k, err := fetchS1(f)
		if err != nil {
			return nil, false, err
		}
		return nil, false, f.Locals.Iinc(int(idx), k)

	// ---- conversions ----
	case OpI2l:
		return nil, false, s.I2l()
	case OpI2f:
		return nil, false, s.I2f()
	case OpI2d:
		return nil, false, s.I2d()
	case OpL2i:
		return nil, false, s.L2i()
	case OpL2f:
		return nil, false, s.L2f()
	case OpL2d:
		return nil, false, s.L2d()
	case OpF2i:
		return nil, false, s.F2i()
	case OpF2l:
		return nil, false, s.F2l()
	case OpF2d:
		return nil, false, s.F2d()
	case OpD2i:
		return nil, false, s.D2i()
	case OpD2l:
		return nil, false, s.D2l()
	case OpD2f:
		return nil, false, s.D2f()
	case OpI2b:
		return nil, false, s.I2b()
	case OpI2c:
		return nil, false, s.I2c()
	case OpI2s:
		return nil, false, s.I2s()

	// ---- comparisons ----
	case OpLcmp:
		return nil, false, s.Lcmp()
	case OpFcmpl:
		return nil, false, s.Fcmpl()
	case OpFcmpg:
		return nil, false, s.Fcmpg()
	case OpDcmpl:
		return nil, false, s.Dcmpl()
	case OpDcmpg:
		return nil, false, s.Dcmpg()

	// ---- branches ----
	case OpIfeq, OpIfne, OpIflt, OpIfge, OpIfgt, OpIfle:
		return nil, false, it.execIfCond(f, op, opStart)
	case OpIfIcmpeq, OpIfIcmpne, OpIfIcmplt, OpIfIcmpge, OpIfIcmpgt, OpIfIcmple:
		return nil, false, it.execIfICmp(f, op, opStart)
	case OpIfAcmpeq, OpIfAcmpne:
		return nil, false, it.execIfACmp(f, op, opStart)
	case OpIfnull, OpIfnonnull:
		return nil, false, it.execIfNull(f, op, opStart)
	case OpGoto:
		off, err := fetchS2(f)
		if err != nil {
			return nil, false, err
		}
		f.PC = opStart + int(off)
		return nil, false, nil
	case OpGotoW:
		off, err := fetchS4(f)
		if err != nil {
			return nil, false, err
		}
		f.PC = opStart + int(off)
		return nil, false, nil

	// ---- returns ----
	case OpReturn:
		return nil, true, nil
	case OpIreturn, OpLreturn, OpFreturn, OpDreturn, OpAreturn:
		v, err := s.Pop()
		if err != nil {
			return nil, false, err
		}
		return &v, true, nil

	// ---- invocation ----
	case OpInvokestat:
		v, err := it.execInvokeStatic(f)
		return v, false, err
	case OpInvokevirt, OpInvokespec:
		if _, err := fetchU2(f); err != nil {
			return nil, false, err
		}
		return nil, false, excnames.Unimplemented
	case OpInvokeiface:
		if _, err := fetchU2(f); err != nil {
			return nil, false, err
		}
		if _, err := fetchU1(f); err != nil { // count
			return nil, false, err
		}
		if _, err := fetchU1(f); err != nil { // reserved 0
			return nil, false, err
		}
		return nil, false, excnames.Unimplemented
	case OpInvokedyn:
		if _, err := fetchU2(f); err != nil {
			return nil, false, err
		}
		if _, err := fetchU1(f); err != nil {
			return nil, false, err
		}
		if _, err := fetchU1(f); err != nil {
			return nil, false, err
		}
		return nil, false, excnames.Unimplemented

	// ---- array/object allocation ----
	case OpNewarray:
		return nil, false, it.execNewarray(f)
	case OpAnewarray:
		if _, err := fetchU2(f); err != nil {
			return nil, false, err
		}
		length, err := s.Pop()
		if err != nil {
			return nil, false, err
		}
		id, err := it.Heap.AllocateArray('A', int(length.I32()))
		if err != nil {
			return nil, false, err
		}
		return nil, false, s.Push(value.Ref(int64(id)))
	case OpArraylength:
		ref, err := s.Pop()
		if err != nil {
			return nil, false, err
		}
		n, err := it.Heap.Length(int(ref.RefID()))
		if err != nil {
			return nil, false, err
		}
		return nil, false, s.Push(value.Int(int32(n)))
	case OpNew:
		return nil, false, it.execNew(f)

	// monitorenter/monitorexit pop their operand and do nothing else;
	// there is no thread scheduler to contend with
	case OpMonitorent, OpMonitorexit:
		_, err := s.Pop()
		return nil, false, err

	default:
		if op < 0 || op > OpJsrW {
			return nil, false, excnames.IllegalOpcode
		}
		return nil, false, excnames.Unimplemented
	}

	return nil, false, nil
}

func loadLocal(f *frames.Frame, idx int) error {
	v, err := f.Locals.Load(idx)
	if err != nil {
		return err
	}
	return f.Stack.Push(v)
}

func storeLocal(f *frames.Frame, idx int) error {
	v, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	return f.Locals.Store(idx, v)
}

// execIfCond handles ifeq/ifne/iflt/ifge/ifgt/ifle: pop one int,
// compare with zero.
func (it *Interpreter) execIfCond(f *frames.Frame, op, opStart int) error {
	off, err := fetchS2(f)
	if err != nil {
		return err
	}
	v, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	n := v.I32()
	var taken bool
	switch op {
	case OpIfeq:
		taken = n == 0
	case OpIfne:
		taken = n != 0
	case OpIflt:
		taken = n < 0
	case OpIfge:
		taken = n >= 0
	case OpIfgt:
		taken = n > 0
	case OpIfle:
		taken = n <= 0
	}
	if taken {
		f.PC = opStart + int(off)
	}
	return nil
}

// execIfICmp handles if_icmp<cond>: pop two ints.
func (it *Interpreter) execIfICmp(f *frames.Frame, op, opStart int) error {
	off, err := fetchS2(f)
	if err != nil {
		return err
	}
	b, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	x, y := a.I32(), b.I32()
	var taken bool
	switch op {
	case OpIfIcmpeq:
		taken = x == y
	case OpIfIcmpne:
		taken = x != y
	case OpIfIcmplt:
		taken = x < y
	case OpIfIcmpge:
		taken = x >= y
	case OpIfIcmpgt:
		taken = x > y
	case OpIfIcmple:
		taken = x <= y
	}
	if taken {
		f.PC = opStart + int(off)
	}
	return nil
}

// execIfACmp handles if_acmpeq/if_acmpne: pop two references.
func (it *Interpreter) execIfACmp(f *frames.Frame, op, opStart int) error {
	off, err := fetchS2(f)
	if err != nil {
		return err
	}
	b, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	eq := a.RefID() == b.RefID()
	taken := eq
	if op == OpIfAcmpne {
		taken = !eq
	}
	if taken {
		f.PC = opStart + int(off)
	}
	return nil
}

// execIfNull handles ifnull/ifnonnull: pop one reference.
func (it *Interpreter) execIfNull(f *frames.Frame, op, opStart int) error {
	off, err := fetchS2(f)
	if err != nil {
		return err
	}
	v, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	isNull := v.RefID() == 0
	taken := isNull
	if op == OpIfnonnull {
		taken = !isNull
	}
	if taken {
		f.PC = opStart + int(off)
	}
	return nil
}

// execLdc handles ldc/ldc_w/ldc2_w: push the int/float/long/double/class
// name/string constant at a constant-pool index.
func (it *Interpreter) execLdc(f *frames.Frame, idx int) error {
	if f.CP == nil {
		return excnames.New(excnames.InvalidReference, "ldc outside a class's constant pool")
	}
	tag, iv, fv, sv, _, err := f.CP.LoadableAt(idx)
	if err != nil {
		return err
	}
	switch tag {
	case classloader.TagInteger:
		return f.Stack.Push(value.Int(int32(iv)))
	case classloader.TagFloat:
		return f.Stack.Push(value.Float(float32(fv)))
	case classloader.TagLong:
		return f.Stack.Push(value.Long(iv))
	case classloader.TagDouble:
		return f.Stack.Push(value.Double(fv))
	case classloader.TagClass, classloader.TagString:
		id := it.Heap.AllocateObject("java/lang/String", 0)
		v := value.Ref(int64(id))
		v.Str = sv
		return f.Stack.Push(v)
	default:
		return excnames.New(excnames.InvalidReference, "not a loadable constant")
	}
}

// execArrayLoad handles the iaload/laload/faload/daload/aaload/baload/
// caload/saload family: pop an int index, pop an array reference, push
// the element.
func (it *Interpreter) execArrayLoad(f *frames.Frame) error {
	index, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	arr, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	v, err := it.Heap.Load(int(arr.RefID()), int(index.I32()))
	if err != nil {
		return err
	}
	return f.Stack.Push(v)
}

// execArrayStore handles the iastore/lastore/fastore/dastore/aastore/
// bastore/castore/sastore family.
func (it *Interpreter) execArrayStore(f *frames.Frame) error {
	v, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	index, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	arr, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	return it.Heap.Store(int(arr.RefID()), int(index.I32()), v)
}

// execNewarray handles newarray(atype): pop a length, allocate on the
// heap, push the reference.
func (it *Interpreter) execNewarray(f *frames.Frame) error {
	atype, err := fetchU1(f)
	if err != nil {
		return err
	}
	length, err := f.Stack.Pop()
	if err != nil {
		return err
	}
	id, err := it.Heap.AllocateArray(atypeDescriptor(atype), int(length.I32()))
	if err != nil {
		return err
	}
	return f.Stack.Push(value.Ref(int64(id)))
}

// execNew handles new: resolve the class index, allocate an instance
// with one slot per declared field, push the reference.
func (it *Interpreter) execNew(f *frames.Frame) error {
	idx, err := fetchU2(f)
	if err != nil {
		return err
	}
	if f.CP == nil {
		return excnames.New(excnames.InvalidReference, "new outside a class's constant pool")
	}
	className, err := f.CP.ClassName(int(idx))
	if err != nil {
		return err
	}
	numFields := 0
	if class, ok := it.Registry.Lookup(className); ok {
		numFields = len(class.Fields)
	}
	id := it.Heap.AllocateObject(className, numFields)
	return f.Stack.Push(value.Ref(int64(id)))
}

// execInvokeStatic handles invokestatic: resolve the
// method-ref, pop arguments in reverse declaration order, execute the
// callee, and push its result if non-void.
func (it *Interpreter) execInvokeStatic(f *frames.Frame) (*value.Value, error) {
	idx, err := fetchU2(f)
	if err != nil {
		return nil, err
	}
	if f.CP == nil {
		return nil, excnames.New(excnames.InvalidReference, "invokestatic outside a class's constant pool")
	}
	className, name, desc, err := f.CP.MethodRef(int(idx))
	if err != nil {
		return nil, err
	}
	method, err := it.Registry.LookupMethod(className, name, desc)
	if err != nil {
		return nil, err
	}
	paramTags, err := parseParamTags(desc)
	if err != nil {
		return nil, err
	}
	args := make([]value.Value, len(paramTags))
	for i := len(paramTags) - 1; i >= 0; i-- {
		v, err := f.Stack.Pop()
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	result, err := it.invoke(className, method, args)
	if err != nil {
		return nil, err
	}

	ret, err := returnTag(desc)
	if err != nil {
		return nil, err
	}
	if ret != 'V' {
		if result == nil {
			return nil, excnames.New(excnames.InvalidFormat, "non-void method returned nothing: "+className+"."+name+desc)
		}
		if err := f.Stack.Push(*result); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

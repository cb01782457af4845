/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import "mjvm/jvm"

// opcodeNames renders a byte as its mnemonic for the inspect command's
// method disassembly view.
var opcodeNames = map[int]string{
	jvm.OpNop: "nop", jvm.OpAconstNull: "aconst_null",
	jvm.OpIconstM1: "iconst_m1", jvm.OpIconst0: "iconst_0", jvm.OpIconst1: "iconst_1",
	jvm.OpIconst2: "iconst_2", jvm.OpIconst3: "iconst_3", jvm.OpIconst4: "iconst_4", jvm.OpIconst5: "iconst_5",
	jvm.OpLconst0: "lconst_0", jvm.OpLconst1: "lconst_1",
	jvm.OpFconst0: "fconst_0", jvm.OpFconst1: "fconst_1", jvm.OpFconst2: "fconst_2",
	jvm.OpDconst0: "dconst_0", jvm.OpDconst1: "dconst_1",
	jvm.OpBipush: "bipush", jvm.OpSipush: "sipush",
	jvm.OpLdc: "ldc", jvm.OpLdcW: "ldc_w", jvm.OpLdc2W: "ldc2_w",
	jvm.OpIload: "iload", jvm.OpLload: "lload", jvm.OpFload: "fload", jvm.OpDload: "dload", jvm.OpAload: "aload",
	jvm.OpIload0: "iload_0", jvm.OpIload1: "iload_1", jvm.OpIload2: "iload_2", jvm.OpIload3: "iload_3",
	jvm.OpLload0: "lload_0", jvm.OpLload1: "lload_1", jvm.OpLload2: "lload_2", jvm.OpLload3: "lload_3",
	jvm.OpFload0: "fload_0", jvm.OpFload1: "fload_1", jvm.OpFload2: "fload_2", jvm.OpFload3: "fload_3",
	jvm.OpDload0: "dload_0", jvm.OpDload1: "dload_1", jvm.OpDload2: "dload_2", jvm.OpDload3: "dload_3",
	jvm.OpAload0: "aload_0", jvm.OpAload1: "aload_1", jvm.OpAload2: "aload_2", jvm.OpAload3: "aload_3",
	jvm.OpIaload: "iaload", jvm.OpLaload: "laload", jvm.OpFaload: "faload", jvm.OpDaload: "daload",
	jvm.OpAaload: "aaload", jvm.OpBaload: "baload", jvm.OpCaload: "caload", jvm.OpSaload: "saload",
	jvm.OpIstore: "istore", jvm.OpLstore: "lstore", jvm.OpFstore: "fstore", jvm.OpDstore: "dstore", jvm.OpAstore: "astore",
	jvm.OpIstore0: "istore_0", jvm.OpIstore1: "istore_1", jvm.OpIstore2: "istore_2", jvm.OpIstore3: "istore_3",
	jvm.OpLstore0: "lstore_0", jvm.OpLstore1: "lstore_1", jvm.OpLstore2: "lstore_2", jvm.OpLstore3: "lstore_3",
	jvm.OpFstore0: "fstore_0", jvm.OpFstore1: "fstore_1", jvm.OpFstore2: "fstore_2", jvm.OpFstore3: "fstore_3",
	jvm.OpDstore0: "dstore_0", jvm.OpDstore1: "dstore_1", jvm.OpDstore2: "dstore_2", jvm.OpDstore3: "dstore_3",
	jvm.OpAstore0: "astore_0", jvm.OpAstore1: "astore_1", jvm.OpAstore2: "astore_2", jvm.OpAstore3: "astore_3",
	jvm.OpIastore: "iastore", jvm.OpLastore: "lastore", jvm.OpFastore: "fastore", jvm.OpDastore: "dastore",
	jvm.OpAastore: "aastore", jvm.OpBastore: "bastore", jvm.OpCastore: "castore", jvm.OpSastore: "sastore",
	jvm.OpPop: "pop", jvm.OpPop2: "pop2", jvm.OpDup: "dup", jvm.OpDupX1: "dup_x1", jvm.OpDupX2: "dup_x2",
	jvm.OpDup2: "dup2", jvm.OpDup2X1: "dup2_x1", jvm.OpDup2X2: "dup2_x2", jvm.OpSwap: "swap",
	jvm.OpIadd: "iadd", jvm.OpLadd: "ladd", jvm.OpFadd: "fadd", jvm.OpDadd: "dadd",
	jvm.OpIsub: "isub", jvm.OpLsub: "lsub", jvm.OpFsub: "fsub", jvm.OpDsub: "dsub",
	jvm.OpImul: "imul", jvm.OpLmul: "lmul", jvm.OpFmul: "fmul", jvm.OpDmul: "dmul",
	jvm.OpIdiv: "idiv", jvm.OpLdiv: "ldiv", jvm.OpFdiv: "fdiv", jvm.OpDdiv: "ddiv",
	jvm.OpIrem: "irem", jvm.OpLrem: "lrem", jvm.OpFrem: "frem", jvm.OpDrem: "drem",
	jvm.OpIneg: "ineg", jvm.OpLneg: "lneg", jvm.OpFneg: "fneg", jvm.OpDneg: "dneg",
	jvm.OpIshl: "ishl", jvm.OpLshl: "lshl", jvm.OpIshr: "ishr", jvm.OpLshr: "lshr",
	jvm.OpIushr: "iushr", jvm.OpLushr: "lushr",
	jvm.OpIand: "iand", jvm.OpLand: "land", jvm.OpIor: "ior", jvm.OpLor: "lor", jvm.OpIxor: "ixor", jvm.OpLxor: "lxor",
	jvm.OpIinc: "iinc",
	jvm.OpI2l:  "i2l", jvm.OpI2f: "i2f", jvm.OpI2d: "i2d", jvm.OpL2i: "l2i", jvm.OpL2f: "l2f", jvm.OpL2d: "l2d",
	jvm.OpF2i: "f2i", jvm.OpF2l: "f2l", jvm.OpF2d: "f2d", jvm.OpD2i: "d2i", jvm.OpD2l: "d2l", jvm.OpD2f: "d2f",
	jvm.OpI2b: "i2b", jvm.OpI2c: "i2c", jvm.OpI2s: "i2s",
	jvm.OpLcmp: "lcmp", jvm.OpFcmpl: "fcmpl", jvm.OpFcmpg: "fcmpg", jvm.OpDcmpl: "dcmpl", jvm.OpDcmpg: "dcmpg",
	jvm.OpIfeq: "ifeq", jvm.OpIfne: "ifne", jvm.OpIflt: "iflt", jvm.OpIfge: "ifge", jvm.OpIfgt: "ifgt", jvm.OpIfle: "ifle",
	jvm.OpIfIcmpeq: "if_icmpeq", jvm.OpIfIcmpne: "if_icmpne", jvm.OpIfIcmplt: "if_icmplt",
	jvm.OpIfIcmpge: "if_icmpge", jvm.OpIfIcmpgt: "if_icmpgt", jvm.OpIfIcmple: "if_icmple",
	jvm.OpIfAcmpeq: "if_acmpeq", jvm.OpIfAcmpne: "if_acmpne",
	jvm.OpGoto: "goto", jvm.OpJsr: "jsr", jvm.OpRet: "ret",
	jvm.OpTableswitch: "tableswitch", jvm.OpLookupswtch: "lookupswitch",
	jvm.OpIreturn: "ireturn", jvm.OpLreturn: "lreturn", jvm.OpFreturn: "freturn", jvm.OpDreturn: "dreturn",
	jvm.OpAreturn: "areturn", jvm.OpReturn: "return",
	jvm.OpGetstatic: "getstatic", jvm.OpPutstatic: "putstatic", jvm.OpGetfield: "getfield", jvm.OpPutfield: "putfield",
	jvm.OpInvokevirt: "invokevirtual", jvm.OpInvokespec: "invokespecial", jvm.OpInvokestat: "invokestatic",
	jvm.OpInvokeiface: "invokeinterface", jvm.OpInvokedyn: "invokedynamic",
	jvm.OpNew: "new", jvm.OpNewarray: "newarray", jvm.OpAnewarray: "anewarray", jvm.OpArraylength: "arraylength",
	jvm.OpAthrow: "athrow", jvm.OpCheckcast: "checkcast", jvm.OpInstanceof: "instanceof",
	jvm.OpMonitorent: "monitorenter", jvm.OpMonitorexit: "monitorexit",
	jvm.OpWide: "wide", jvm.OpMultianew: "multianewarray",
	jvm.OpIfnull: "ifnull", jvm.OpIfnonnull: "ifnonnull", jvm.OpGotoW: "goto_w", jvm.OpJsrW: "jsr_w",
}

func opcodeName(op byte) string {
	if name, ok := opcodeNames[int(op)]; ok {
		return name
	}
	return "unknown"
}

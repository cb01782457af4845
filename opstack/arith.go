/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package opstack

import (
	"math"

	"mjvm/excnames"
	"mjvm/value"
)

func (s *Stack) popPair() (value.Value, value.Value, error) {
	vals, err := s.popN(2)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	return vals[0], vals[1], nil
}

// ---- integer arithmetic ----

func (s *Stack) binInt(f func(a, b int32) (int32, error)) error {
	a, b, err := s.popPair()
	if err != nil {
		return err
	}
	r, err := f(a.I32(), b.I32())
	if err != nil {
		return err
	}
	return s.Push(value.Int(r))
}

func (s *Stack) Iadd() error { return s.binInt(func(a, b int32) (int32, error) { return a + b, nil }) }
func (s *Stack) Isub() error { return s.binInt(func(a, b int32) (int32, error) { return a - b, nil }) }
func (s *Stack) Imul() error { return s.binInt(func(a, b int32) (int32, error) { return a * b, nil }) }

func (s *Stack) Idiv() error {
	return s.binInt(func(a, b int32) (int32, error) {
		if b == 0 {
			return 0, excnames.New(excnames.ArithmeticError, "division by zero")
		}
		return a / b, nil
	})
}

func (s *Stack) Irem() error {
	return s.binInt(func(a, b int32) (int32, error) {
		if b == 0 {
			return 0, excnames.New(excnames.ArithmeticError, "division by zero")
		}
		return a % b, nil
	})
}

func (s *Stack) Ineg() error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	return s.Push(value.Int(-v.I32()))
}

func (s *Stack) Iand() error { return s.binInt(func(a, b int32) (int32, error) { return a & b, nil }) }
func (s *Stack) Ior() error  { return s.binInt(func(a, b int32) (int32, error) { return a | b, nil }) }
func (s *Stack) Ixor() error { return s.binInt(func(a, b int32) (int32, error) { return a ^ b, nil }) }

func (s *Stack) Ishl() error {
	return s.binInt(func(a, b int32) (int32, error) { return a << (uint32(b) & 0x1f), nil })
}
func (s *Stack) Ishr() error {
	return s.binInt(func(a, b int32) (int32, error) { return a >> (uint32(b) & 0x1f), nil })
}
func (s *Stack) Iushr() error {
	return s.binInt(func(a, b int32) (int32, error) {
		return int32(uint32(a) >> (uint32(b) & 0x1f)), nil
	})
}

// ---- long arithmetic (shift mask = 6 bits) ----

func (s *Stack) binLong(f func(a, b int64) (int64, error)) error {
	a, b, err := s.popPair()
	if err != nil {
		return err
	}
	r, err := f(a.I64(), b.I64())
	if err != nil {
		return err
	}
	return s.Push(value.Long(r))
}

func (s *Stack) Ladd() error { return s.binLong(func(a, b int64) (int64, error) { return a + b, nil }) }
func (s *Stack) Lsub() error { return s.binLong(func(a, b int64) (int64, error) { return a - b, nil }) }
func (s *Stack) Lmul() error { return s.binLong(func(a, b int64) (int64, error) { return a * b, nil }) }

func (s *Stack) Ldiv() error {
	return s.binLong(func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, excnames.New(excnames.ArithmeticError, "division by zero")
		}
		return a / b, nil
	})
}

func (s *Stack) Lrem() error {
	return s.binLong(func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, excnames.New(excnames.ArithmeticError, "division by zero")
		}
		return a % b, nil
	})
}

func (s *Stack) Lneg() error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	return s.Push(value.Long(-v.I64()))
}

func (s *Stack) Land() error { return s.binLong(func(a, b int64) (int64, error) { return a & b, nil }) }
func (s *Stack) Lor() error  { return s.binLong(func(a, b int64) (int64, error) { return a | b, nil }) }
func (s *Stack) Lxor() error { return s.binLong(func(a, b int64) (int64, error) { return a ^ b, nil }) }

// Lshl/Lshr/Lushr take an int shift-count operand (not a long), per the
// class-file format: ..., value(long), shift(int) -> result(long).
func (s *Stack) lshift(f func(a int64, sh uint) int64) error {
	vals, err := s.popN(2)
	if err != nil {
		return err
	}
	a, sh := vals[0], vals[1]
	return s.Push(value.Long(f(a.I64(), uint(sh.I32())&0x3f)))
}

func (s *Stack) Lshl() error  { return s.lshift(func(a int64, sh uint) int64 { return a << sh }) }
func (s *Stack) Lshr() error  { return s.lshift(func(a int64, sh uint) int64 { return a >> sh }) }
func (s *Stack) Lushr() error {
	return s.lshift(func(a int64, sh uint) int64 { return int64(uint64(a) >> sh) })
}

// ---- float / double arithmetic: IEEE-754, no trap on division by zero ----

func (s *Stack) binFloat(f func(a, b float32) float32) error {
	a, b, err := s.popPair()
	if err != nil {
		return err
	}
	return s.Push(value.Float(f(a.F32(), b.F32())))
}

func (s *Stack) Fadd() error { return s.binFloat(func(a, b float32) float32 { return a + b }) }
func (s *Stack) Fsub() error { return s.binFloat(func(a, b float32) float32 { return a - b }) }
func (s *Stack) Fmul() error { return s.binFloat(func(a, b float32) float32 { return a * b }) }
func (s *Stack) Fdiv() error { return s.binFloat(func(a, b float32) float32 { return a / b }) }
func (s *Stack) Frem() error {
	return s.binFloat(func(a, b float32) float32 { return float32(math.Mod(float64(a), float64(b))) })
}
func (s *Stack) Fneg() error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	return s.Push(value.Float(-v.F32()))
}

func (s *Stack) binDouble(f func(a, b float64) float64) error {
	a, b, err := s.popPair()
	if err != nil {
		return err
	}
	return s.Push(value.Double(f(a.F64(), b.F64())))
}

func (s *Stack) Dadd() error { return s.binDouble(func(a, b float64) float64 { return a + b }) }
func (s *Stack) Dsub() error { return s.binDouble(func(a, b float64) float64 { return a - b }) }
func (s *Stack) Dmul() error { return s.binDouble(func(a, b float64) float64 { return a * b }) }
func (s *Stack) Ddiv() error { return s.binDouble(func(a, b float64) float64 { return a / b }) }
func (s *Stack) Drem() error {
	return s.binDouble(func(a, b float64) float64 { return math.Mod(a, b) })
}
func (s *Stack) Dneg() error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	return s.Push(value.Double(-v.F64()))
}

// ---- comparisons ----

// Lcmp pushes -1/0/1 for lhs < / = / > rhs.
func (s *Stack) Lcmp() error {
	a, b, err := s.popPair()
	if err != nil {
		return err
	}
	return s.Push(value.Int(threeWay(a.I64() < b.I64(), a.I64() == b.I64())))
}

func threeWay(less, equal bool) int32 {
	if less {
		return -1
	}
	if equal {
		return 0
	}
	return 1
}

// Fcmpl/Fcmpg/Dcmpl/Dcmpg: NaN compares as -1 for the "l" forms and +1
// for the "g" forms.
func (s *Stack) Fcmpl() error { return s.fcmp(false) }
func (s *Stack) Fcmpg() error { return s.fcmp(true) }

func (s *Stack) fcmp(nanIsGreater bool) error {
	a, b, err := s.popPair()
	if err != nil {
		return err
	}
	af, bf := a.F32(), b.F32()
	if math.IsNaN(float64(af)) || math.IsNaN(float64(bf)) {
		if nanIsGreater {
			return s.Push(value.Int(1))
		}
		return s.Push(value.Int(-1))
	}
	return s.Push(value.Int(threeWay(af < bf, af == bf)))
}

func (s *Stack) Dcmpl() error { return s.dcmp(false) }
func (s *Stack) Dcmpg() error { return s.dcmp(true) }

func (s *Stack) dcmp(nanIsGreater bool) error {
	a, b, err := s.popPair()
	if err != nil {
		return err
	}
	ad, bd := a.F64(), b.F64()
	if math.IsNaN(ad) || math.IsNaN(bd) {
		if nanIsGreater {
			return s.Push(value.Int(1))
		}
		return s.Push(value.Int(-1))
	}
	return s.Push(value.Int(threeWay(ad < bd, ad == bd)))
}

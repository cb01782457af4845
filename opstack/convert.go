/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package opstack

import (
	"math"

	"mjvm/value"
)

// Numeric conversions (JVMS §6.5, d2f through l2i). Narrowing of a
// floating value to an integer
// truncates toward zero; NaN maps to 0; out-of-range values saturate to
// the representable extremum.

func satF64ToI32(f float64) int32 {
	if math.IsNaN(f) {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	if f <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(f)
}

func satF64ToI64(f float64) int64 {
	if math.IsNaN(f) {
		return 0
	}
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(f)
}

func (s *Stack) unary(f func(value.Value) value.Value) error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	return s.Push(f(v))
}

func (s *Stack) D2f() error { return s.unary(func(v value.Value) value.Value { return value.Float(float32(v.F64())) }) }
func (s *Stack) D2i() error { return s.unary(func(v value.Value) value.Value { return value.Int(satF64ToI32(v.F64())) }) }
func (s *Stack) D2l() error { return s.unary(func(v value.Value) value.Value { return value.Long(satF64ToI64(v.F64())) }) }

func (s *Stack) F2d() error { return s.unary(func(v value.Value) value.Value { return value.Double(float64(v.F32())) }) }
func (s *Stack) F2i() error {
	return s.unary(func(v value.Value) value.Value { return value.Int(satF64ToI32(float64(v.F32()))) })
}
func (s *Stack) F2l() error {
	return s.unary(func(v value.Value) value.Value { return value.Long(satF64ToI64(float64(v.F32()))) })
}

func (s *Stack) I2b() error { return s.unary(func(v value.Value) value.Value { return value.Int(int32(int8(v.I32()))) }) }
func (s *Stack) I2c() error { return s.unary(func(v value.Value) value.Value { return value.Char(uint16(v.I32())) }) }
func (s *Stack) I2d() error { return s.unary(func(v value.Value) value.Value { return value.Double(float64(v.I32())) }) }
func (s *Stack) I2f() error { return s.unary(func(v value.Value) value.Value { return value.Float(float32(v.I32())) }) }
func (s *Stack) I2l() error { return s.unary(func(v value.Value) value.Value { return value.Long(int64(v.I32())) }) }
func (s *Stack) I2s() error { return s.unary(func(v value.Value) value.Value { return value.Int(int32(int16(v.I32()))) }) }

func (s *Stack) L2d() error { return s.unary(func(v value.Value) value.Value { return value.Double(float64(v.I64())) }) }
func (s *Stack) L2f() error { return s.unary(func(v value.Value) value.Value { return value.Float(float32(v.I64())) }) }
func (s *Stack) L2i() error { return s.unary(func(v value.Value) value.Value { return value.Int(int32(v.I64())) }) }

// ---- constant pushes ----

func (s *Stack) AconstNull() error { return s.Push(value.Null()) }
func (s *Stack) Iconst(n int32) error { return s.Push(value.Int(n)) }
func (s *Stack) Lconst(n int64) error { return s.Push(value.Long(n)) }
func (s *Stack) Fconst(n float32) error { return s.Push(value.Float(n)) }
func (s *Stack) Dconst(n float64) error { return s.Push(value.Double(n)) }

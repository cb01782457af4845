/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package opstack

import "mjvm/value"

// Stack shape operators (JVMS §6.5, dup through swap). A long or double
// is held in one cell here but counts as two logical slots, so the
// "form 2" variants of the dup2 family collapse to single-cell moves
// when the operand is a Category-2 value.

// Dup duplicates the top value.
func (s *Stack) Dup() error {
	v, err := s.Peek()
	if err != nil {
		return err
	}
	return s.Push(v)
}

// DupX1 duplicates the top value and inserts the copy two slots down:
// ..., v2, v1 -> ..., v1, v2, v1.
func (s *Stack) DupX1() error {
	vals, err := s.popN(2)
	if err != nil {
		return err
	}
	v2, v1 := vals[0], vals[1]
	return s.pushAll(v1, v2, v1)
}

// DupX2 duplicates the top value and inserts the copy three logical
// slots down: ..., v3, v2, v1 -> ..., v1, v3, v2, v1, where v2 may be a
// Category-2 value occupying both lower slots.
func (s *Stack) DupX2() error {
	vals, err := s.popN(2)
	if err != nil {
		return err
	}
	v2, v1 := vals[0], vals[1]
	if v2.IsCategory2() {
		return s.pushAll(v1, v2, v1)
	}
	v3, err := s.Pop()
	if err != nil {
		return err
	}
	return s.pushAll(v1, v3, v2, v1)
}

// Dup2 duplicates the top two logical slots: one Category-2 value, or
// two Category-1 values (..., v2, v1 -> ..., v2, v1, v2, v1).
func (s *Stack) Dup2() error {
	v1, err := s.Peek()
	if err != nil {
		return err
	}
	if v1.IsCategory2() {
		return s.Push(v1)
	}
	v2, err := s.PeekAt(1)
	if err != nil {
		return err
	}
	return s.pushAll(v2, v1)
}

// Dup2X1 duplicates the top two logical slots and inserts the copy
// below the next value: ..., v3, v2, v1 -> ..., v2, v1, v3, v2, v1.
func (s *Stack) Dup2X1() error {
	v1, err := s.Pop()
	if err != nil {
		return err
	}
	if v1.IsCategory2() {
		v2, err := s.Pop()
		if err != nil {
			return err
		}
		return s.pushAll(v1, v2, v1)
	}
	vals, err := s.popN(2)
	if err != nil {
		return err
	}
	v3, v2 := vals[0], vals[1]
	return s.pushAll(v2, v1, v3, v2, v1)
}

// Dup2X2 duplicates the top two logical slots and inserts the copy four
// logical slots down: ..., v4, v3, v2, v1 -> ..., v2, v1, v4, v3, v2, v1.
func (s *Stack) Dup2X2() error {
	v1, err := s.Pop()
	if err != nil {
		return err
	}
	if v1.IsCategory2() {
		// forms 2 and 4: a wide value on top, inserted below the next
		// one or two logical slots.
		v2, err := s.Pop()
		if err != nil {
			return err
		}
		if v2.IsCategory2() {
			return s.pushAll(v1, v2, v1)
		}
		v3, err := s.Pop()
		if err != nil {
			return err
		}
		return s.pushAll(v1, v3, v2, v1)
	}
	v2, err := s.Pop()
	if err != nil {
		return err
	}
	v3, err := s.Pop()
	if err != nil {
		return err
	}
	if v3.IsCategory2() {
		// form 3: a cat-1 pair above a wide value.
		return s.pushAll(v2, v1, v3, v2, v1)
	}
	v4, err := s.Pop()
	if err != nil {
		return err
	}
	return s.pushAll(v2, v1, v4, v3, v2, v1)
}

// PopOp discards the top value.
func (s *Stack) PopOp() error {
	_, err := s.Pop()
	return err
}

// Pop2 discards the top two logical slots: one Category-2 value or two
// Category-1 values.
func (s *Stack) Pop2() error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	if v.IsCategory2() {
		return nil
	}
	_, err = s.Pop()
	return err
}

// Swap exchanges the top two values.
func (s *Stack) Swap() error {
	vals, err := s.popN(2)
	if err != nil {
		return err
	}
	v2, v1 := vals[0], vals[1]
	return s.pushAll(v1, v2)
}

func (s *Stack) pushAll(vs ...value.Value) error {
	for _, v := range vs {
		if err := s.Push(v); err != nil {
			return err
		}
	}
	return nil
}

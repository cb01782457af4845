/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"math"

	"mjvm/excnames"
	"mjvm/value"
)

// loadLangMath registers java/lang/Math's native surface: sqrt and abs
// on doubles, and max and min on ints.
func loadLangMath() {
	MethodSignatures["java/lang/Math.sqrt(D)D"] = GMeth{
		ParamSlots: 1,
		GFunction:  mathSqrt,
	}
	MethodSignatures["java/lang/Math.abs(D)D"] = GMeth{
		ParamSlots: 1,
		GFunction:  mathAbs,
	}
	MethodSignatures["java/lang/Math.max(II)I"] = GMeth{
		ParamSlots: 2,
		GFunction:  mathMaxInt,
	}
	MethodSignatures["java/lang/Math.min(II)I"] = GMeth{
		ParamSlots: 2,
		GFunction:  mathMinInt,
	}
}

func mathSqrt(locals []value.Value) (*value.Value, error) {
	if len(locals) < 1 {
		return nil, excnames.New(excnames.InvalidFormat, "Math.sqrt requires one double argument")
	}
	v := value.Double(math.Sqrt(locals[0].F64()))
	return &v, nil
}

func mathAbs(locals []value.Value) (*value.Value, error) {
	if len(locals) < 1 {
		return nil, excnames.New(excnames.InvalidFormat, "Math.abs requires one double argument")
	}
	v := value.Double(math.Abs(locals[0].F64()))
	return &v, nil
}

func mathMaxInt(locals []value.Value) (*value.Value, error) {
	if len(locals) < 2 {
		return nil, excnames.New(excnames.InvalidFormat, "Math.max requires two int arguments")
	}
	a, b := locals[0].I32(), locals[1].I32()
	if a > b {
		v := value.Int(a)
		return &v, nil
	}
	v := value.Int(b)
	return &v, nil
}

func mathMinInt(locals []value.Value) (*value.Value, error) {
	if len(locals) < 2 {
		return nil, excnames.New(excnames.InvalidFormat, "Math.min requires two int arguments")
	}
	a, b := locals[0].I32(), locals[1].I32()
	if a < b {
		v := value.Int(a)
		return &v, nil
	}
	v := value.Int(b)
	return &v, nil
}

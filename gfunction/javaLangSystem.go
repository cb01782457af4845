/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"time"

	"mjvm/value"
)

// loadLangSystem registers java/lang/System's native surface: the
// handful of natives a running program actually calls.
func loadLangSystem() {
	MethodSignatures["java/lang/System.currentTimeMillis()J"] = GMeth{
		ParamSlots: 0,
		GFunction:  systemCurrentTimeMillis,
	}
	MethodSignatures["java/lang/System.nanoTime()J"] = GMeth{
		ParamSlots: 0,
		GFunction:  systemNanoTime,
	}
	MethodSignatures["java/lang/System.registerNatives()V"] = GMeth{
		ParamSlots: 0,
		GFunction:  justReturn,
	}
}

func systemCurrentTimeMillis(locals []value.Value) (*value.Value, error) {
	v := value.Long(time.Now().UnixMilli())
	return &v, nil
}

func systemNanoTime(locals []value.Value) (*value.Value, error) {
	v := value.Long(time.Now().UnixNano())
	return &v, nil
}

/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package gfunction

import (
	"time"

	"mjvm/excnames"
	"mjvm/value"
)

// loadLangThread registers java/lang/Thread's native surface. The core
// has no thread scheduler, so registerNatives is a no-op and sleep
// blocks the single Go goroutine running the interpreter for the
// requested duration rather than yielding to other JVM threads.
func loadLangThread() {
	MethodSignatures["java/lang/Thread.registerNatives()V"] = GMeth{
		ParamSlots: 0,
		GFunction:  justReturn,
	}
	MethodSignatures["java/lang/Thread.sleep(J)V"] = GMeth{
		ParamSlots: 1,
		GFunction:  threadSleep,
	}
}

func threadSleep(locals []value.Value) (*value.Value, error) {
	if len(locals) < 1 {
		return nil, excnames.New(excnames.InvalidFormat, "Thread.sleep requires one long argument")
	}
	millis := locals[0].I64()
	if millis < 0 {
		return nil, excnames.New(excnames.InvalidFormat, "Thread.sleep duration must not be negative")
	}
	time.Sleep(time.Duration(millis) * time.Millisecond)
	return nil, nil
}

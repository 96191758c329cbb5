package panicerr

import (
	"errors"
	"fmt"
)

// recoverExitError reports a runtime.Goexit called inside Recover's
// goroutine as an exitError sent on errch; EXIN's evaluator never calls
// runtime.Goexit itself, but a test helper (t.FailNow inside an agent) or a
// future instrumentation hook run through Recover could, and this keeps that
// case from silently hanging the channel read in Recover.
func recoverExitError(name string, errch chan<- error) {
	select {
	case errch <- exitError(name):
	default:
		// assumes that that the happy path does a (maybe nil) send
	}
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}

// Package panicerr turns a recovered panic or runtime.Goexit into a plain
// error, the boundary Interp.Run puts around one EXIN program's parse-check-
// eval pipeline: an unexpected Go panic anywhere in that pipeline surfaces
// to the caller as an error instead of crashing the host process.
package panicerr

// Recover runs f in a new goroutine wrapped in deferred recovery logic, so
// any abnormal exit or panic f triggers comes back as a non-nil error
// instead of propagating past Recover's caller.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExitError(name, errch)
		defer recoverPanicError(name, errch)
		errch <- f()
	}()
	return <-errch
}

// Package flushio provides a flush-able io.Writer, the thing cmd/exin wraps
// os.Stdout in; Interp.Run flushes it when a run ends, including on an
// evaluation error, so a `print` statement's bytes are visible even though
// cmd/exin then leaves through os.Exit without a natural close. It is also
// what internal/fixture's
// in-memory tests can use without any buffering surprises.
package flushio

import (
	"bufio"
	"io"
	"io/ioutil"
)

// WriteFlusher is a flush-able io.Writer.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

var discardWriteFlusher WriteFlusher = nopFlusher{ioutil.Discard}

// NewWriteFlusher wraps w for use as an EXIN program's stdout: ioutil.Discard
// and in-memory buffers (bytes.Buffer, strings.Builder) need no flushing and
// get a no-op Flush; anything else not already a WriteFlusher is wrapped in a
// bufio.Writer so print output is buffered the same way regardless of the
// destination (a file, a pipe, a tee).
func NewWriteFlusher(w io.Writer) WriteFlusher {
	if w == ioutil.Discard {
		return discardWriteFlusher
	}

	if wf, is := w.(WriteFlusher); is {
		return wf
	}

	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// WriteFlushers combines any number of WriteFlushers into one that writes to
// and flushes all of them, backing Interp's WithTee option (print output
// mirrored to a second destination alongside the primary one).
func WriteFlushers(wfs ...WriteFlusher) WriteFlusher {
	switch wfs := appendWriteFlusher(nil, wfs...); len(wfs) {
	case 0:
		return nil
	case 1:
		return wfs[0]
	default:
		return wfs
	}
}

type writeFlushers []WriteFlusher

func (wfs writeFlushers) Write(p []byte) (n int, err error) {
	for _, wf := range wfs {
		n, err = wf.Write(p)
		if err != nil {
			return n, err
		}
		if n != len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

func (wfs writeFlushers) Flush() (err error) {
	for _, wf := range wfs {
		if ferr := wf.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

func appendWriteFlusher(all writeFlushers, some ...WriteFlusher) writeFlushers {
	for _, one := range some {
		if many, ok := one.(writeFlushers); ok {
			all = append(all, many...)
		} else if one != nil {
			all = append(all, one)
		}
	}
	return all
}

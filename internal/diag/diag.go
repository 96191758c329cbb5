// Package diag implements EXIN's fatal error kinds.
//
// Every error the interpreter can raise carries a fixed numeric code that
// becomes the process exit status (spec.md §7). There is no recovery path:
// once any stage of the pipeline raises one of these, the process reports it
// to stderr and exits with its Code.
package diag

import "fmt"

// Kind names one of the ten fatal error kinds, whose numeric value is its
// process exit code.
type Kind int

const (
	_ Kind = iota
	NameError
	TypeError
	SyntaxError
	ValueError
	SystemError
	IndexError
	OutOfMemoryError
	ModNotAllowedError
	DivisionByZeroError
	DesignError
)

func (k Kind) String() string {
	switch k {
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case SyntaxError:
		return "SyntaxError"
	case ValueError:
		return "ValueError"
	case SystemError:
		return "SystemError"
	case IndexError:
		return "IndexError"
	case OutOfMemoryError:
		return "OutOfMemoryError"
	case ModNotAllowedError:
		return "ModNotAllowedError"
	case DivisionByZeroError:
		return "DivisionByZeroError"
	case DesignError:
		return "DesignError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Code returns the process exit status for k.
func (k Kind) Code() int { return int(k) }

// Pos locates an error within a module: a file name, 1-based line number and
// the byte offset at which that line began. cmd/exin uses Pos to print the "File <name>, line <n>" header and offending line
// from spec.md §7.
type Pos struct {
	Module string
	Line   int
	BOL    int
}

func (p Pos) String() string {
	if p.Module == "" {
		return ""
	}
	return fmt.Sprintf("File %s, line %d", p.Module, p.Line)
}

// Error is a fatal EXIN diagnostic: a Kind, the Pos it occurred at, and an
// optional explanation. It implements error and Unwrap so that
// errors.As/errors.Is work the way the teacher's vmHaltError/panicError do.
type Error struct {
	Kind Kind
	Pos  Pos
	Mess string
	Err  error
}

func New(kind Kind, pos Pos, format string, args ...interface{}) *Error {
	e := &Error{Kind: kind, Pos: pos}
	if format != "" {
		e.Mess = fmt.Sprintf(format, args...)
	}
	return e
}

func Wrap(kind Kind, pos Pos, err error) *Error {
	return &Error{Kind: kind, Pos: pos, Err: err}
}

func (e *Error) Error() string {
	head := e.Pos.String()
	switch {
	case head != "" && e.Mess != "":
		return fmt.Sprintf("%s\n%s: %s", head, e.Kind, e.Mess)
	case head != "" && e.Err != nil:
		return fmt.Sprintf("%s\n%s: %v", head, e.Kind, e.Err)
	case head != "":
		return fmt.Sprintf("%s\n%s", head, e.Kind)
	case e.Mess != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Mess)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code returns the process exit status for e, to mirror logio.Logger's
// ExitCode bookkeeping in the teacher.
func (e *Error) Code() int { return e.Kind.Code() }

// AsError reports whether err (or something it wraps) is a *Error, and
// returns it.
func AsError(err error) (*Error, bool) {
	for err != nil {
		if de, ok := err.(*Error); ok {
			return de, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

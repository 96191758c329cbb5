package object

import (
	"fmt"
	"io"
)

// Fprint writes o the way the `print` statement renders a value (spec.md
// §4.5 "PRINT"): CHAR and STR write their raw runes through writeANSIString
// so control bytes get the same classic 7-bit rendering EXIN's terminal
// output uses, numerics use Go's default formatting, and LIST is
// bracketed/comma-joined recursively.
func (o *Object) Fprint(w io.Writer) error {
	switch o.Kind {
	case CHAR:
		_, err := writeANSIRune(w, rune(o.CharVal))
		return err
	case STR:
		_, err := writeANSIString(w, string(o.StrVal))
		return err
	case INT:
		_, err := fmt.Fprintf(w, "%d", o.IntVal)
		return err
	case FLOAT:
		_, err := fmt.Fprintf(w, "%g", o.FloatVal)
		return err
	case NONE:
		_, err := io.WriteString(w, "none")
		return err
	case LIST:
		if _, err := io.WriteString(w, "["); err != nil {
			return err
		}
		for n := o.Head; n != nil; n = n.Next {
			if n != o.Head {
				if _, err := io.WriteString(w, ", "); err != nil {
					return err
				}
			}
			if err := n.Elem.Fprint(w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "]")
		return err
	case LISTNODE:
		return o.Elem.Fprint(w)
	default:
		return nil
	}
}

// writeANSIRune writes a single rune the way a CHAR or STR value's bytes
// reach the terminal: ASCII runes go out as-is, NEL becomes the more
// conventional "\r\n", the rest of the C1 control range is rewritten in its
// classic 7-bit form (e.g. 0x9b CSI becomes "\x1b\x5b"), and everything else
// is plain utf8. Keeps an EXIN program's `print` of a CHAR holding a raw
// control byte from corrupting whatever terminal it's piped into.
func writeANSIRune(w io.Writer, r rune) (n int, err error) {
	type runeWriter interface {
		WriteRune(r rune) (n int, err error)
	}
	if r < 0x80 {
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	}
	if r == 0x85 {
		return w.Write([]byte{'\r', '\n'})
	}
	if r <= 0x9f {
		return w.Write([]byte{0x1b, byte(r ^ 0xc0)})
	}
	if rw, ok := w.(runeWriter); ok {
		return rw.WriteRune(r)
	}
	if sw, ok := w.(io.StringWriter); ok {
		return sw.WriteString(string(r))
	}
	return w.Write([]byte(string(r)))
}

// writeANSIString writes s rune by rune through writeANSIRune.
func writeANSIString(w io.Writer, s string) (n int, err error) {
	for _, r := range s {
		m, err := writeANSIRune(w, r)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

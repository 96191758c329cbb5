package exin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/ioutil"
	"os"

	"exin/internal/check"
	"exin/internal/diag"
	"exin/internal/eval"
	"exin/internal/flushio"
	"exin/internal/object"
	"exin/internal/panicerr"
	"exin/internal/parser"
	"exin/internal/scanner"
	"exin/internal/scope"
	"exin/internal/source"
)

// osOpener opens modules from the OS filesystem; it is the default
// source.Opener an Interp uses unless overridden with WithOpener.
type osOpener struct{}

func (osOpener) Open(name string) (io.ReadCloser, error) { return os.Open(name) }

// Interp runs one EXIN program end to end.
type Interp struct {
	in      io.Reader
	out     flushio.WriteFlusher
	closers []io.Closer
	tabSize int
	open    source.Opener
	logfn   func(mess string, args ...interface{})
	reg     source.Registry
	ev      *eval.Eval
}

// New creates an Interp, applying opts over the default of discarded output,
// empty input, and the default scanner tab size.
func New(opts ...Option) *Interp {
	var it Interp
	defaultOptions.apply(&it)
	Options(opts...).apply(&it)
	return &it
}

// Registry returns the module registry Run populates, so a caller (e.g.
// cmd/exin) can render a *diag.Error's offending source line after Run
// returns.
func (it *Interp) Registry() *source.Registry { return &it.reg }

// Eval returns the evaluator from the most recent Run, or nil before any
// Run has completed its parse+check stages. cmd/exin uses this to dump the
// identifier table after Run returns (spec.md §6 "-d16"/"-d32").
func (it *Interp) Eval() *eval.Eval { return it.ev }

// Close releases any resources opts registered (e.g. an output file).
func (it *Interp) Close() error {
	var first error
	for _, c := range it.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Result is the outcome of running one program.
type Result struct {
	// Code is the process exit status spec.md §6 prescribes: 0 on success
	// unless the program's final top-level expression-statement evaluates
	// to a number, or a *diag.Error's Kind code on failure.
	Code int
}

// Run parses, checks and evaluates the module named modulePath. ctx is
// consulted once after checking completes and before evaluation begins, so
// a caller can bound how long parsing+checking is allowed to take; EXIN's
// evaluator has no internal cancellation points (spec.md names no
// long-running primitive operation).
func (it *Interp) Run(ctx context.Context, modulePath string) (Result, error) {
	var res Result
	err := panicerr.Recover("exin", func() error {
		return it.run(ctx, modulePath, &res)
	})
	if err != nil {
		if de, ok := diag.AsError(err); ok {
			res.Code = de.Code()
		} else if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			res.Code = diag.DesignError.Code()
		}
	}
	return res, err
}

func (it *Interp) run(ctx context.Context, modulePath string, res *Result) error {
	mod, err := it.reg.Import(it.open, modulePath)
	if err != nil {
		return diag.Wrap(diag.SystemError, diag.Pos{Module: modulePath}, err)
	}

	p := parser.New(mod, &it.reg, it.open, scanner.WithTabSize(it.tabSize))
	root, err := p.Parse()
	if err != nil {
		return err
	}

	if err := check.New(scope.New()).Check(root); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	it.ev = eval.New(it.out, it.in)
	final, err := it.ev.Run(root)
	if err != nil {
		if it.out != nil {
			it.out.Flush()
		}
		return err
	}
	if final != nil {
		u := object.Unwrap(final)
		if u.IsNumeric() {
			res.Code = u.AsInt() & 0xff
		}
		object.Release(final)
	}
	if it.out != nil {
		return it.out.Flush()
	}
	return nil
}

// Option configures an Interp at construction time.
type Option interface{ apply(*Interp) }

var defaultOptions = Options(
	withInput(bytes.NewReader(nil)),
	withOutput(ioutil.Discard),
	withTabSize(scanner.DefaultTabSize),
	withOpener(osOpener{}),
)

// Options flattens a list of Options into one, the way options.go's
// VMOptions does: nil and already-flattened Options are absorbed rather
// than nested.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*Interp) {}

type options []Option

func (opts options) apply(it *Interp) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(it)
		}
	}
}

// WithInput sets the reader `input` statements read from.
func WithInput(r io.Reader) Option { return withInput(r) }

// WithOutput sets the writer `print` statements write to.
func WithOutput(w io.Writer) Option { return withOutput(w) }

// WithTee additionally copies output to w, without replacing the primary
// output writer.
func WithTee(w io.Writer) Option { return withTee(w) }

// WithTabSize sets the scanner's tab stop width (spec.md §6 "-t[N]"); n < 1
// falls back to scanner.DefaultTabSize.
func WithTabSize(n int) Option { return withTabSize(n) }

// WithOpener sets the source.Opener used to load the named module and any
// modules it imports. The default opens files from the OS filesystem.
func WithOpener(o source.Opener) Option { return withOpener(o) }

// WithLogf stores a leveled log sink on the Interp; nil clears it. Run
// writes no messages to it.
func WithLogf(fn func(mess string, args ...interface{})) Option { return withLogfn(fn) }

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type tabSizeOption int
type openerOption struct{ source.Opener }
type logfnOption func(mess string, args ...interface{})

func withInput(r io.Reader) inputOption       { return inputOption{r} }
func withOutput(w io.Writer) outputOption     { return outputOption{w} }
func withTee(w io.Writer) teeOption           { return teeOption{w} }
func withTabSize(n int) tabSizeOption         { return tabSizeOption(n) }
func withOpener(o source.Opener) openerOption { return openerOption{o} }
func withLogfn(fn func(string, ...interface{})) logfnOption { return logfnOption(fn) }

func (i inputOption) apply(it *Interp) { it.in = i.Reader }

func (o outputOption) apply(it *Interp) {
	if it.out != nil {
		it.out.Flush()
	}
	it.out = flushio.NewWriteFlusher(o.Writer)
	if cl, ok := o.Writer.(io.Closer); ok {
		it.closers = append(it.closers, cl)
	}
}

func (o teeOption) apply(it *Interp) {
	it.out = flushio.WriteFlushers(it.out, flushio.NewWriteFlusher(o.Writer))
	if cl, ok := o.Writer.(io.Closer); ok {
		it.closers = append(it.closers, cl)
	}
}

func (n tabSizeOption) apply(it *Interp) { it.tabSize = int(n) }

func (o openerOption) apply(it *Interp) { it.open = o.Opener }

func (fn logfnOption) apply(it *Interp) { it.logfn = fn }

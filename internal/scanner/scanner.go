// Package scanner implements EXIN's indentation-sensitive lexer (spec.md
// §4.2): it consumes characters from a source.Module and emits a stream of
// token.Token, synthesizing INDENT/DEDENT from leading whitespace.
package scanner

import (
	"exin/internal/diag"
	"exin/internal/source"
	"exin/internal/token"
)

// MaxIndent bounds the indent stack depth (spec.md §4.2 default 132).
const MaxIndent = 132

// DefaultTabSize is used when no tab size is given or WithTabSize gets n < 1.
const DefaultTabSize = 4

// Option configures a Scanner at construction time, built with the
// Option/apply pattern the teacher uses for VMOption (options.go).
type Option interface{ apply(*Scanner) }

type tabSizeOption int

func (n tabSizeOption) apply(s *Scanner) {
	if int(n) < 1 {
		s.tabSize = DefaultTabSize
	} else {
		s.tabSize = int(n)
	}
}

// WithTabSize sets the tab stop width; n < 1 falls back to DefaultTabSize.
func WithTabSize(n int) Option { return tabSizeOption(n) }

// Scanner tokenises one source.Module. It supports one token of lookahead
// and a full Save/Load of its state so a parser can recursively scan an
// imported module and resume (spec.md §4.2 "Save/load/init").
type Scanner struct {
	mod     *source.Module
	tabSize int

	atBOL   bool
	indents []int // column stack; indents[0] == 0 always

	peeked *token.Token
}

// New creates a Scanner over mod.
func New(mod *source.Module, opts ...Option) *Scanner {
	s := &Scanner{mod: mod, tabSize: DefaultTabSize, atBOL: true, indents: []int{0}}
	for _, o := range opts {
		o.apply(s)
	}
	return s
}

// Module returns the scanner's current module.
func (s *Scanner) Module() *source.Module { return s.mod }

// IndentLevel returns the current indentation depth (number of INDENTs not
// yet matched by a DEDENT).
func (s *Scanner) IndentLevel() int { return len(s.indents) - 1 }

// State captures everything needed to resume scanning later, for nested
// import parses.
type State struct {
	mod     *source.Module
	pos     source.Pos
	tabSize int
	atBOL   bool
	indents []int
	peeked  *token.Token
}

// Save captures the scanner's state.
func (s *Scanner) Save() State {
	indents := make([]int, len(s.indents))
	copy(indents, s.indents)
	return State{s.mod, s.mod.Save(), s.tabSize, s.atBOL, indents, s.peeked}
}

// Load restores a previously Saved state, switching the scanner back to
// scanning st.mod from where it left off.
func (s *Scanner) Load(st State) {
	s.mod = st.mod
	s.mod.Restore(st.pos)
	s.tabSize = st.tabSize
	s.atBOL = st.atBOL
	s.indents = st.indents
	s.peeked = st.peeked
}

// SwitchTo points the scanner at a freshly loaded module, for `import`,
// preserving tab size but starting fresh indentation/line state. The caller
// is expected to Save the prior state first and Load it back after the
// nested parse completes.
func (s *Scanner) SwitchTo(mod *source.Module) {
	s.mod = mod
	s.atBOL = true
	s.indents = []int{0}
	s.peeked = nil
}

func (s *Scanner) pos() diag.Pos {
	return diag.Pos{Module: s.mod.Name, Line: s.mod.Line(), BOL: s.mod.BOL()}
}

func (s *Scanner) errf(kind diag.Kind, format string, args ...interface{}) error {
	return diag.New(kind, s.pos(), format, args...)
}

// Peek returns the next token without consuming it. A second Peek before any
// Next returns the same value.
func (s *Scanner) Peek() (token.Token, error) {
	if s.peeked != nil {
		return *s.peeked, nil
	}
	tok, err := s.scan()
	if err != nil {
		return token.Token{}, err
	}
	s.peeked = &tok
	return tok, nil
}

// Next consumes and returns the next token, first draining any peeked one.
func (s *Scanner) Next() (token.Token, error) {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok, nil
	}
	return s.scan()
}

func (s *Scanner) scan() (token.Token, error) {
	if s.atBOL {
		tok, done, err := s.scanIndent()
		if err != nil || done {
			return tok, err
		}
	}

	return s.scanToken()
}

// scanIndent measures leading whitespace on a fresh physical line and
// returns an INDENT/DEDENT if warranted. done is true when it produced a
// token; otherwise the caller falls through to scanToken for the line's
// first real token.
func (s *Scanner) scanIndent() (token.Token, bool, error) {
	for {
		col := 0
		for {
			c := s.mod.Peekch()
			if c == ' ' {
				s.mod.Nextch()
				col++
			} else if c == '\t' {
				s.mod.Nextch()
				col = (col/s.tabSize + 1) * s.tabSize
			} else {
				break
			}
		}

		c := s.mod.Peekch()
		if c == '#' {
			for c != '\n' && c != source.EOF {
				s.mod.Nextch()
				c = s.mod.Peekch()
			}
		}
		if c == '\n' {
			s.mod.Nextch()
			continue // blank/comment-only line: skip without emitting
		}
		if c == source.EOF {
			s.atBOL = false
			return token.Token{Kind: token.ENDMARKER, Line: s.mod.Line(), BOL: s.mod.BOL()}, true, nil
		}

		top := s.indents[len(s.indents)-1]
		switch {
		case col == top:
			s.atBOL = false
			return token.Token{}, false, nil
		case col > top:
			if len(s.indents) >= MaxIndent {
				return token.Token{}, true, s.errf(diag.SyntaxError, "indentation too deep")
			}
			s.indents = append(s.indents, col)
			s.atBOL = false
			return token.Token{Kind: token.INDENT, Line: s.mod.Line(), BOL: s.mod.BOL()}, true, nil
		default: // col < top
			s.indents = s.indents[:len(s.indents)-1]
			newTop := s.indents[len(s.indents)-1]
			switch {
			case col == newTop:
				s.atBOL = false
			case col > newTop:
				return token.Token{}, true, s.errf(diag.SyntaxError,
					"inconsistent use of TAB and space in indentation")
			default:
				// more levels to close: rewind so the next scan() call
				// re-measures this same physical line and emits another
				// DEDENT, one per level closed.
				s.rewindLine()
			}
			return token.Token{Kind: token.DEDENT, Line: s.mod.Line(), BOL: s.mod.BOL()}, true, nil
		}
	}
}

// rewindLine backs the reader up to the beginning of the current physical
// line, so the next scanIndent call re-measures it and emits another DEDENT
// — one per level closed, per spec.md §4.2.
func (s *Scanner) rewindLine() {
	s.mod.RewindToBOL()
}

package scanner

import (
	"strings"

	"exin/internal/diag"
	"exin/internal/source"
	"exin/internal/token"
)

// scanToken reads one token that is not INDENT/DEDENT/ENDMARKER, skipping
// inter-token spaces/tabs and trailing comments.
func (s *Scanner) scanToken() (token.Token, error) {
	for {
		c := s.mod.Peekch()
		switch {
		case c == ' ' || c == '\t':
			s.mod.Nextch()
			continue
		case c == '#':
			for c != '\n' && c != source.EOF {
				s.mod.Nextch()
				c = s.mod.Peekch()
			}
			continue
		case c == '\r':
			s.mod.Nextch()
			continue
		}
		break
	}

	line, bol := s.mod.Line(), s.mod.BOL()
	c := s.mod.Peekch()

	switch {
	case c == source.EOF:
		s.atBOL = false
		return token.Token{Kind: token.ENDMARKER, Line: line, BOL: bol}, nil
	case c == '\n':
		s.mod.Nextch()
		s.atBOL = true
		return token.Token{Kind: token.NEWLINE, Line: line, BOL: bol}, nil
	case isDigit(c):
		return s.scanNumber(line, bol)
	case c == '"':
		return s.scanString(line, bol)
	case c == '\'':
		return s.scanChar(line, bol)
	case isIdentStart(c):
		return s.scanIdentifier(line, bol)
	default:
		return s.scanPunct(line, bol)
	}
}

func isDigit(c rune) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c rune) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentCont(c rune) bool  { return isIdentStart(c) || isDigit(c) }

func (s *Scanner) scanNumber(line, bol int) (token.Token, error) {
	var b strings.Builder
	isFloat := false
	seenDot := false
	seenExp := false

	for {
		c := s.mod.Peekch()
		switch {
		case isDigit(c):
			b.WriteRune(c)
			s.mod.Nextch()
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
			isFloat = true
			b.WriteRune(c)
			s.mod.Nextch()
		case c == '.' && (seenDot || seenExp):
			return token.Token{}, s.errf(diag.ValueError, "malformed number literal: extra '.'")
		case (c == 'e' || c == 'E') && !seenExp:
			seenExp = true
			isFloat = true
			b.WriteRune(c)
			s.mod.Nextch()
			if sign := s.mod.Peekch(); sign == '+' || sign == '-' {
				b.WriteRune(sign)
				s.mod.Nextch()
			}
			if !isDigit(s.mod.Peekch()) {
				return token.Token{}, s.errf(diag.ValueError, "malformed number literal: missing exponent digits")
			}
		default:
			goto done
		}
	}
done:
	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	return token.Token{Kind: kind, Lexeme: b.String(), Line: line, BOL: bol}, nil
}

// escape table shared by string and char literal scanning (spec.md §4.2).
func decodeEscape(c rune) (rune, bool) {
	switch c {
	case '0':
		return 0, true
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	default:
		return c, false
	}
}

func (s *Scanner) scanString(line, bol int) (token.Token, error) {
	s.mod.Nextch() // opening quote
	var b strings.Builder
	for {
		c := s.mod.Nextch()
		switch c {
		case source.EOF, '\n':
			return token.Token{}, s.errf(diag.SyntaxError, "unterminated string literal")
		case '"':
			return token.Token{Kind: token.STR, Lexeme: b.String(), Line: line, BOL: bol}, nil
		case '\\':
			e := s.mod.Nextch()
			r, _ := decodeEscape(e)
			b.WriteByte(byte(r))
		default:
			b.WriteByte(byte(c))
		}
	}
}

func (s *Scanner) scanChar(line, bol int) (token.Token, error) {
	s.mod.Nextch() // opening quote
	c := s.mod.Nextch()
	var r rune
	switch c {
	case source.EOF, '\n', '\'':
		return token.Token{}, s.errf(diag.SyntaxError, "empty character literal")
	case '\\':
		e := s.mod.Nextch()
		var known bool
		r, known = decodeEscape(e)
		if !known && e != 'a' {
			return token.Token{}, s.errf(diag.ValueError, "unknown escape '\\%c' in character literal", e)
		}
	default:
		r = c
	}
	if s.mod.Peekch() != '\'' {
		return token.Token{}, s.errf(diag.SyntaxError, "multi-character constant")
	}
	s.mod.Nextch()
	return token.Token{Kind: token.CHAR, Lexeme: string(r), Line: line, BOL: bol}, nil
}

func (s *Scanner) scanIdentifier(line, bol int) (token.Token, error) {
	var b strings.Builder
	for isIdentCont(s.mod.Peekch()) {
		b.WriteRune(s.mod.Nextch())
	}
	name := b.String()
	if len(name)+1 > token.MaxLexeme {
		return token.Token{}, s.errf(diag.SyntaxError, "identifier %q exceeds maximum length", name)
	}
	if kind, ok := token.Lookup(name); ok {
		return token.Token{Kind: kind, Lexeme: name, Line: line, BOL: bol}, nil
	}
	return token.Token{Kind: token.IDENTIFIER, Lexeme: name, Line: line, BOL: bol}, nil
}

func (s *Scanner) scanPunct(line, bol int) (token.Token, error) {
	c := s.mod.Nextch()
	two := func(next rune, k2 token.Kind, k1 token.Kind) (token.Token, error) {
		if s.mod.Peekch() == next {
			s.mod.Nextch()
			return token.Token{Kind: k2, Line: line, BOL: bol}, nil
		}
		return token.Token{Kind: k1, Line: line, BOL: bol}, nil
	}
	switch c {
	case '(':
		return token.Token{Kind: token.LPAREN, Line: line, BOL: bol}, nil
	case ')':
		return token.Token{Kind: token.RPAREN, Line: line, BOL: bol}, nil
	case '[':
		return token.Token{Kind: token.LBRACKET, Line: line, BOL: bol}, nil
	case ']':
		return token.Token{Kind: token.RBRACKET, Line: line, BOL: bol}, nil
	case ',':
		return token.Token{Kind: token.COMMA, Line: line, BOL: bol}, nil
	case ':':
		return token.Token{Kind: token.COLON, Line: line, BOL: bol}, nil
	case '.':
		return token.Token{Kind: token.DOT, Line: line, BOL: bol}, nil
	case '=':
		return two('=', token.EQ, token.ASSIGN)
	case '!':
		return two('=', token.NE, token.BANG)
	case '<':
		if s.mod.Peekch() == '>' {
			s.mod.Nextch()
			return token.Token{Kind: token.NE, Line: line, BOL: bol}, nil
		}
		return two('=', token.LE, token.LT)
	case '>':
		return two('=', token.GE, token.GT)
	case '+':
		return two('=', token.ADD_ASSIGN, token.ADD)
	case '-':
		return two('=', token.SUB_ASSIGN, token.SUB)
	case '*':
		return two('=', token.MUL_ASSIGN, token.MUL)
	case '/':
		return two('=', token.DIV_ASSIGN, token.QUO)
	case '%':
		return two('=', token.MOD_ASSIGN, token.MOD)
	default:
		return token.Token{}, s.errf(diag.SyntaxError, "unexpected character %q", c)
	}
}

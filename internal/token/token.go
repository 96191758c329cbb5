// Package token defines EXIN's token kinds and keyword table (spec.md §3,
// §4.2).
package token

import "sort"

// Kind discriminates a token. The zero Kind is invalid; real tokens start at
// ENDMARKER.
type Kind int

const (
	ILLEGAL Kind = iota

	ENDMARKER
	NEWLINE
	INDENT
	DEDENT

	// literals and names
	CHAR
	INT
	FLOAT
	STR
	IDENTIFIER

	// keywords
	AND
	BREAK
	CHAR_T
	CONTINUE
	DEF
	DO
	ELSE
	FLOAT_T
	FOR
	IF
	IMPORT
	IN
	INPUT
	INT_T
	LIST_T
	NOT
	OR
	PASS
	PRINT
	RETURN
	STR_T
	WHILE

	// punctuation / operators
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	COMMA
	COLON
	DOT
	BANG

	ASSIGN    // =
	ADD_ASSIGN // +=
	SUB_ASSIGN // -=
	MUL_ASSIGN // *=
	DIV_ASSIGN // /=
	MOD_ASSIGN // %=

	ADD // +
	SUB // -
	MUL // *
	QUO // /
	MOD // %

	EQ // ==
	NE // != or <>
	LT // <
	LE // <=
	GT // >
	GE // >=
)

var names = map[Kind]string{
	ENDMARKER: "ENDMARKER", NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	CHAR: "CHAR", INT: "INT", FLOAT: "FLOAT", STR: "STR", IDENTIFIER: "IDENTIFIER",
	AND: "and", BREAK: "break", CHAR_T: "char", CONTINUE: "continue", DEF: "def",
	DO: "do", ELSE: "else", FLOAT_T: "float", FOR: "for", IF: "if", IMPORT: "import",
	IN: "in", INPUT: "input", INT_T: "int", LIST_T: "list", NOT: "not", OR: "or",
	PASS: "pass", PRINT: "print", RETURN: "return", STR_T: "str", WHILE: "while",
	LPAREN: "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]", COMMA: ",", COLON: ":",
	DOT: ".", BANG: "!",
	ASSIGN: "=", ADD_ASSIGN: "+=", SUB_ASSIGN: "-=", MUL_ASSIGN: "*=", DIV_ASSIGN: "/=", MOD_ASSIGN: "%=",
	ADD: "+", SUB: "-", MUL: "*", QUO: "/", MOD: "%",
	EQ: "==", NE: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "ILLEGAL"
}

// keyword pairs a lexeme with its Kind. The table is kept sorted by Name so
// Lookup can binary search it, per spec.md §4.2 ("recognises keywords via
// sorted table + binary search").
type keyword struct {
	Name string
	Kind Kind
}

var keywords = []keyword{
	{"and", AND},
	{"break", BREAK},
	{"char", CHAR_T},
	{"continue", CONTINUE},
	{"def", DEF},
	{"do", DO},
	{"else", ELSE},
	{"float", FLOAT_T},
	{"for", FOR},
	{"if", IF},
	{"import", IMPORT},
	{"in", IN},
	{"input", INPUT},
	{"int", INT_T},
	{"list", LIST_T},
	{"not", NOT},
	{"or", OR},
	{"pass", PASS},
	{"print", PRINT},
	{"return", RETURN},
	{"str", STR_T},
	{"while", WHILE},
}

func init() {
	sort.Slice(keywords, func(i, j int) bool { return keywords[i].Name < keywords[j].Name })
}

// Lookup returns (Kind, true) if name is a keyword, else (IDENTIFIER, false).
func Lookup(name string) (Kind, bool) {
	i := sort.Search(len(keywords), func(i int) bool { return keywords[i].Name >= name })
	if i < len(keywords) && keywords[i].Name == name {
		return keywords[i].Kind, true
	}
	return IDENTIFIER, false
}

// IsVarType reports whether k introduces a variable declaration (char, int,
// float, str, list).
func IsVarType(k Kind) bool {
	switch k {
	case CHAR_T, INT_T, FLOAT_T, STR_T, LIST_T:
		return true
	default:
		return false
	}
}

// MaxLexeme is the identifier/literal lexeme length cap, including the
// terminator (spec.md §3).
const MaxLexeme = 128

// Token is one scanned token. Lexeme is populated for CHAR, INT, FLOAT, STR
// and IDENTIFIER kinds.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	BOL    int
}

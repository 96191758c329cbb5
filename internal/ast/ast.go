// Package ast defines EXIN's abstract syntax tree (spec.md §3-§4).
//
// Per the design note "Visitor pattern", nodes are plain data: a Kind
// discriminant, positional info, an optional method-call trailer, and a
// kind-specific payload. internal/check and internal/eval each implement a
// single Visit(node) function that pattern-matches on concrete Go type
// instead of the C source's per-node function-pointer triple.
package ast

import "exin/internal/diag"

// MethodCall is the optional `.name(args)` trailer attached to a primary
// expression's outermost node (spec.md §3, §4.5 "Method suffix").
type MethodCall struct {
	Name string
	Args []Node
}

// Node is implemented by every AST node. It carries the module/line/bol the
// node originated at (for diagnostics) and its optional method trailer.
type Node interface {
	Pos() diag.Pos
	Trailer() *MethodCall
	SetTrailer(*MethodCall)
}

type base struct {
	P diag.Pos
	M *MethodCall
}

func (b *base) Pos() diag.Pos          { return b.P }
func (b *base) Trailer() *MethodCall   { return b.M }
func (b *base) SetTrailer(m *MethodCall) { b.M = m }

func newBase(pos diag.Pos) base { return base{P: pos} }

// Literal is a CHAR/INT/FLOAT/STR constant, carrying its unparsed lexeme;
// the checker parses it once (spec.md §4.4 "LITERAL") and caches the
// parsed value for the evaluator to reuse cheaply.
type Literal struct {
	base
	Type   LiteralType
	Lexeme string

	Parsed interface{} // filled in by internal/check
}

// LiteralType names which primitive a Literal denotes.
type LiteralType int

const (
	CharLit LiteralType = iota
	IntLit
	FloatLit
	StrLit
)

func NewLiteral(pos diag.Pos, typ LiteralType, lexeme string) *Literal {
	return &Literal{base: newBase(pos), Type: typ, Lexeme: lexeme}
}

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	Not UnaryOp = iota
	Neg
	Pos_
)

type Unary struct {
	base
	Op      UnaryOp
	Operand Node
}

func NewUnary(pos diag.Pos, op UnaryOp, operand Node) *Unary {
	return &Unary{base: newBase(pos), Op: op, Operand: operand}
}

// BinaryOp enumerates binary operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	And
	Or
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	In
)

type Binary struct {
	base
	Op          BinaryOp
	Left, Right Node
}

func NewBinary(pos diag.Pos, op BinaryOp, left, right Node) *Binary {
	return &Binary{base: newBase(pos), Op: op, Left: left, Right: right}
}

// AssignOp enumerates assignment operators.
type AssignOp int

const (
	Assign AssignOp = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModAssign
)

type Assignment struct {
	base
	Op         AssignOp
	Target     Node
	Expression Node
}

func NewAssignment(pos diag.Pos, op AssignOp, target, expr Node) *Assignment {
	return &Assignment{base: newBase(pos), Op: op, Target: target, Expression: expr}
}

type Index struct {
	base
	Sequence Node
	IndexExp Node
}

func NewIndex(pos diag.Pos, seq, idx Node) *Index {
	return &Index{base: newBase(pos), Sequence: seq, IndexExp: idx}
}

type Slice struct {
	base
	Sequence   Node
	Start, End Node
}

func NewSlice(pos diag.Pos, seq, start, end Node) *Slice {
	return &Slice{base: newBase(pos), Sequence: seq, Start: start, End: end}
}

type Reference struct {
	base
	Name string
}

func NewReference(pos diag.Pos, name string) *Reference {
	return &Reference{base: newBase(pos), Name: name}
}

type Call struct {
	base
	Name      string
	Args      []Node
	IsBuiltin bool
	Checked   bool
}

func NewCall(pos diag.Pos, name string, args []Node) *Call {
	return &Call{base: newBase(pos), Name: name, Args: args}
}

type FuncDecl struct {
	base
	Name      string
	Formals   []string
	Body      *Block
}

func NewFuncDecl(pos diag.Pos, name string, formals []string, body *Block) *FuncDecl {
	return &FuncDecl{base: newBase(pos), Name: name, Formals: formals, Body: body}
}

// VarType names the declared static type of a variable (spec.md grammar
// "type name").
type VarType int

const (
	CharVar VarType = iota
	IntVar
	FloatVar
	StrVar
	ListVar
)

type DefVar struct {
	base
	Type    VarType
	Name    string
	Initial Node // nil if absent
}

func NewDefVar(pos diag.Pos, typ VarType, name string, initial Node) *DefVar {
	return &DefVar{base: newBase(pos), Type: typ, Name: name, Initial: initial}
}

type VarDecl struct {
	base
	Vars []*DefVar
}

func NewVarDecl(pos diag.Pos, vars []*DefVar) *VarDecl {
	return &VarDecl{base: newBase(pos), Vars: vars}
}

type If struct {
	base
	Condition   Node
	Consequent  Node
	Alternative Node // nil if absent
}

func NewIf(pos diag.Pos, cond, cons, alt Node) *If {
	return &If{base: newBase(pos), Condition: cond, Consequent: cons, Alternative: alt}
}

type While struct {
	base
	Condition Node
	Body      Node
}

func NewWhile(pos diag.Pos, cond, body Node) *While {
	return &While{base: newBase(pos), Condition: cond, Body: body}
}

type Do struct {
	base
	Condition Node
	Body      Node
}

func NewDo(pos diag.Pos, cond, body Node) *Do {
	return &Do{base: newBase(pos), Condition: cond, Body: body}
}

type For struct {
	base
	Target   string
	Sequence Node
	Body     Node
}

func NewFor(pos diag.Pos, target string, seq, body Node) *For {
	return &For{base: newBase(pos), Target: target, Sequence: seq, Body: body}
}

type Block struct {
	base
	Statements []Node
}

func NewBlock(pos diag.Pos, stmts []Node) *Block {
	return &Block{base: newBase(pos), Statements: stmts}
}

type Print struct {
	base
	Raw         bool
	Expressions []Node
}

func NewPrint(pos diag.Pos, raw bool, exprs []Node) *Print {
	return &Print{base: newBase(pos), Raw: raw, Expressions: exprs}
}

type Input struct {
	base
	Prompts     []string // "" for an absent prompt
	Identifiers []string
}

func NewInput(pos diag.Pos, prompts, idents []string) *Input {
	return &Input{base: newBase(pos), Prompts: prompts, Identifiers: idents}
}

type Return struct {
	base
	Value Node // nil if absent
}

func NewReturn(pos diag.Pos, value Node) *Return {
	return &Return{base: newBase(pos), Value: value}
}

type Import struct {
	base
	Name string
	Sub  *Block
}

func NewImport(pos diag.Pos, name string, sub *Block) *Import {
	return &Import{base: newBase(pos), Name: name, Sub: sub}
}

type Pass struct{ base }

func NewPass(pos diag.Pos) *Pass { return &Pass{newBase(pos)} }

type Break struct{ base }

func NewBreak(pos diag.Pos) *Break { return &Break{newBase(pos)} }

type Continue struct{ base }

func NewContinue(pos diag.Pos) *Continue { return &Continue{newBase(pos)} }

// ArgList is a list-literal `[e0, e1, ...]` (spec.md §3, §4.3 "List
// literal").
type ArgList struct {
	base
	Elements []Node
}

func NewArgList(pos diag.Pos, elements []Node) *ArgList {
	return &ArgList{base: newBase(pos), Elements: elements}
}

// CommaExpr is the C-style comma operator: only its last sub-expression's
// value survives evaluation.
type CommaExpr struct {
	base
	Expressions []Node
}

func NewCommaExpr(pos diag.Pos, exprs []Node) *CommaExpr {
	return &CommaExpr{base: newBase(pos), Expressions: exprs}
}

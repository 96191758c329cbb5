// Package parser implements EXIN's recursive-descent, precedence-climbing
// parser (spec.md §4.3): it drives a scanner.Scanner and builds an
// internal/ast tree, verifying grammar as it goes.
package parser

import (
	"math"
	"strconv"

	"exin/internal/ast"
	"exin/internal/builtin"
	"exin/internal/diag"
	"exin/internal/scanner"
	"exin/internal/source"
	"exin/internal/token"
)

// Parser turns one module's token stream into an AST. It owns the
// source.Registry so that `import` statements can recursively parse another
// module, save the scanner's state first, and load it back afterwards
// (spec.md §4.2 "Save/load/init").
type Parser struct {
	reg *source.Registry
	open source.Opener
	sc  *scanner.Scanner
	tok token.Token
}

// New creates a Parser that will scan mod, using reg/open to resolve nested
// `import` statements.
func New(mod *source.Module, reg *source.Registry, open source.Opener, opts ...scanner.Option) *Parser {
	return &Parser{reg: reg, open: open, sc: scanner.New(mod, opts...)}
}

// Parse parses the Parser's module to a Block, from first token to
// ENDMARKER (spec.md §4.3 "a program is a BLOCK of statements read until
// ENDMARKER").
func (p *Parser) Parse() (*ast.Block, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.block()
}

func (p *Parser) pos() diag.Pos {
	return diag.Pos{Module: p.sc.Module().Name, Line: p.tok.Line, BOL: p.tok.BOL}
}

func (p *Parser) advance() error {
	tok, err := p.sc.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) peek() (token.Kind, error) {
	tok, err := p.sc.Peek()
	if err != nil {
		return token.ILLEGAL, err
	}
	return tok.Kind, nil
}

func (p *Parser) peekTok() (token.Token, error) { return p.sc.Peek() }

// accept consumes the current token and advances if it matches k.
func (p *Parser) accept(k token.Kind) (bool, error) {
	if p.tok.Kind != k {
		return false, nil
	}
	if err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// expect requires the current token to be k, raising SyntaxError otherwise.
func (p *Parser) expect(k token.Kind) error {
	ok, err := p.accept(k)
	if err != nil {
		return err
	}
	if !ok {
		return diag.New(diag.SyntaxError, p.pos(), "expected %v instead of %v", k, p.tok.Kind)
	}
	return nil
}

// block parses statement+ until DEDENT or ENDMARKER (spec.md §4.3 "Block
// syntax").
func (p *Parser) block() (*ast.Block, error) {
	pos := p.pos()
	var stmts []ast.Node
	for {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.tok.Kind == token.DEDENT || p.tok.Kind == token.ENDMARKER {
			break
		}
	}
	return ast.NewBlock(pos, stmts), nil
}

// indentedBlock parses NEWLINE INDENT block DEDENT.
func (p *Parser) indentedBlock() (*ast.Block, error) {
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	b, err := p.block()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return b, nil
}

// statement dispatches on the current token (spec.md §4.3 "Statement
// dispatch").
func (p *Parser) statement() (ast.Node, error) {
	switch p.tok.Kind {
	case token.CHAR_T:
		return p.varDecl(ast.CharVar)
	case token.INT_T:
		return p.varDecl(ast.IntVar)
	case token.FLOAT_T:
		return p.varDecl(ast.FloatVar)
	case token.STR_T:
		return p.varDecl(ast.StrVar)
	case token.LIST_T:
		return p.varDecl(ast.ListVar)
	case token.DEF:
		return p.funcDecl()
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.DO:
		return p.doStmt()
	case token.FOR:
		return p.forStmt()
	case token.PRINT:
		return p.printStmt()
	case token.RETURN:
		return p.returnStmt()
	case token.INPUT:
		return p.inputStmt()
	case token.IMPORT:
		return p.importStmt()
	case token.PASS:
		return p.simple(func(pos diag.Pos) ast.Node { return ast.NewPass(pos) })
	case token.BREAK:
		return p.simple(func(pos diag.Pos) ast.Node { return ast.NewBreak(pos) })
	case token.CONTINUE:
		return p.simple(func(pos diag.Pos) ast.Node { return ast.NewContinue(pos) })
	case token.ENDMARKER:
		return nil, nil
	default:
		return p.exprStmt()
	}
}

// simple parses `kw NEWLINE` for pass/break/continue.
func (p *Parser) simple(new func(diag.Pos) ast.Node) (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	return new(pos), nil
}

func (p *Parser) exprStmt() (ast.Node, error) {
	e, err := p.commaExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	return e, nil
}

// varDecl: `type name ('=' assignment_expr)? (',' name ('=' assignment_expr)?)* NEWLINE`.
func (p *Parser) varDecl(vt ast.VarType) (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // consume the type keyword
		return nil, err
	}
	var vars []*ast.DefVar
	for {
		if p.tok.Kind != token.IDENTIFIER {
			return nil, diag.New(diag.SyntaxError, p.pos(), "expected identifier instead of %v", p.tok.Kind)
		}
		dpos := p.pos()
		name := p.tok.Lexeme
		if err := p.advance(); err != nil {
			return nil, err
		}
		var initial ast.Node
		if ok, err := p.accept(token.ASSIGN); err != nil {
			return nil, err
		} else if ok {
			initial, err = p.assignmentExpr()
			if err != nil {
				return nil, err
			}
		}
		vars = append(vars, ast.NewDefVar(dpos, vt, name, initial))
		if ok, err := p.accept(token.NEWLINE); err != nil {
			return nil, err
		} else if ok {
			break
		}
		if err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
	}
	return ast.NewVarDecl(pos, vars), nil
}

// funcDecl: `def name '(' (name (',' name)*)? ')' block`.
func (p *Parser) funcDecl() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // consume 'def'
		return nil, err
	}
	if p.tok.Kind != token.IDENTIFIER {
		return nil, diag.New(diag.SyntaxError, p.pos(), "expected function name instead of %v", p.tok.Kind)
	}
	name := p.tok.Lexeme
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var formals []string
	if ok, err := p.accept(token.RPAREN); err != nil {
		return nil, err
	} else if !ok {
		for {
			if p.tok.Kind != token.IDENTIFIER {
				return nil, diag.New(diag.SyntaxError, p.pos(), "expected identifier instead of %v", p.tok.Kind)
			}
			formals = append(formals, p.tok.Lexeme)
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind == token.RPAREN {
				break
			}
			if err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	body, err := p.indentedBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFuncDecl(pos, name, formals, body), nil
}

// ifStmt: `if expr block ('else' block)?`. Condition uses the full
// comma-expression grammar, per the original grammar's if_stmnt.
func (p *Parser) ifStmt() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.commaExpr()
	if err != nil {
		return nil, err
	}
	cons, err := p.indentedBlock()
	if err != nil {
		return nil, err
	}
	var alt ast.Node
	if ok, err := p.accept(token.ELSE); err != nil {
		return nil, err
	} else if ok {
		altBlock, err := p.indentedBlock()
		if err != nil {
			return nil, err
		}
		alt = altBlock
	}
	return ast.NewIf(pos, cond, cons, alt), nil
}

func (p *Parser) whileStmt() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.commaExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.indentedBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(pos, cond, body), nil
}

// doStmt: `do block 'while' expr NEWLINE`.
func (p *Parser) doStmt() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, err := p.indentedBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.WHILE); err != nil {
		return nil, err
	}
	cond, err := p.commaExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	return ast.NewDo(pos, cond, body), nil
}

// forStmt: `for name 'in' expr block`.
func (p *Parser) forStmt() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Kind != token.IDENTIFIER {
		return nil, diag.New(diag.SyntaxError, p.pos(), "expected identifier instead of %v", p.tok.Kind)
	}
	target := p.tok.Lexeme
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(token.IN); err != nil {
		return nil, err
	}
	seq, err := p.commaExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.indentedBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(pos, target, seq, body), nil
}

// printStmt: `print '-raw'? (assignment_expr (',' assignment_expr)*)? NEWLINE`.
// `-raw` is lexed as SUB followed by the identifier "raw"; it is not a
// keyword, matching the original grammar.
func (p *Parser) printStmt() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	raw := false
	if p.tok.Kind == token.SUB {
		if next, err := p.peekTok(); err != nil {
			return nil, err
		} else if next.Kind == token.IDENTIFIER && next.Lexeme == "raw" {
			if err := p.advance(); err != nil { // consume '-'
				return nil, err
			}
			if err := p.advance(); err != nil { // consume 'raw'
				return nil, err
			}
			raw = true
		}
		// else: '-' starts an ordinary unary-minus expression below
	}
	var exprs []ast.Node
	for p.tok.Kind != token.NEWLINE {
		e, err := p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.tok.Kind == token.NEWLINE {
			break
		}
		if err := p.expect(token.COMMA); err != nil {
			return nil, err
		}
	}
	if err := p.advance(); err != nil { // consume NEWLINE
		return nil, err
	}
	return ast.NewPrint(pos, raw, exprs), nil
}

// returnStmt: `return expr? NEWLINE`.
func (p *Parser) returnStmt() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	var value ast.Node
	if p.tok.Kind != token.NEWLINE {
		v, err := p.commaExpr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	return ast.NewReturn(pos, value), nil
}

// inputStmt: `input string? identifier (',' string? identifier)* NEWLINE`.
func (p *Parser) inputStmt() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	var prompts, idents []string
	for {
		prompt := ""
		if p.tok.Kind == token.STR {
			prompt = p.tok.Lexeme
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.tok.Kind != token.IDENTIFIER {
			return nil, diag.New(diag.SyntaxError, p.pos(), "expected identifier instead of %v", p.tok.Kind)
		}
		ident := p.tok.Lexeme
		if err := p.advance(); err != nil {
			return nil, err
		}
		prompts = append(prompts, prompt)
		idents = append(idents, ident)
		if ok, err := p.accept(token.COMMA); err != nil {
			return nil, err
		} else if !ok {
			break
		}
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	return ast.NewInput(pos, prompts, idents), nil
}

// importStmt: `import string NEWLINE`. Parses the named module recursively
// right now, saving/loading the scanner state around the nested parse
// (spec.md §4.2 "Save/load/init").
func (p *Parser) importStmt() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Kind != token.STR {
		return nil, diag.New(diag.SyntaxError, p.pos(), "expected module name instead of %v", p.tok.Kind)
	}
	name := p.tok.Lexeme
	if p.reg.Search(name) != nil {
		return nil, diag.New(diag.SyntaxError, pos, "module %s already loaded", name)
	}
	mod, err := p.reg.Import(p.open, name)
	if err != nil {
		return nil, diag.Wrap(diag.SystemError, pos, err)
	}

	outerTok := p.tok // the STR token naming the module, not yet consumed
	saved := p.sc.Save()
	p.sc.SwitchTo(mod)
	if err := p.advance(); err != nil {
		return nil, err
	}
	sub, err := p.block()
	if err != nil {
		return nil, err
	}
	p.sc.Load(saved)
	p.tok = outerTok

	if err := p.expect(token.STR); err != nil {
		return nil, err
	}
	if err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	return ast.NewImport(pos, name, sub), nil
}

// --- expression grammar (spec.md §4.3, lowest precedence first) ---

func (p *Parser) commaExpr() (ast.Node, error) {
	pos := p.pos()
	first, err := p.assignmentExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != token.COMMA {
		return first, nil
	}
	exprs := []ast.Node{first}
	for p.tok.Kind == token.COMMA {
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.assignmentExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return ast.NewCommaExpr(pos, exprs), nil
}

var compoundAssignOps = map[token.Kind]ast.AssignOp{
	token.ADD_ASSIGN: ast.AddAssign,
	token.SUB_ASSIGN: ast.SubAssign,
	token.MUL_ASSIGN: ast.MulAssign,
	token.DIV_ASSIGN: ast.DivAssign,
	token.MOD_ASSIGN: ast.ModAssign,
}

func (p *Parser) assignmentExpr() (ast.Node, error) {
	pos := p.pos()
	left, err := p.logicalOrExpr()
	if err != nil {
		return nil, err
	}
	if ok, err := p.accept(token.ASSIGN); err != nil {
		return nil, err
	} else if ok {
		right, err := p.assignmentExpr() // right-associative
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(pos, ast.Assign, left, right), nil
	}
	if op, ok := compoundAssignOps[p.tok.Kind]; ok {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.logicalOrExpr() // left-associative, no chaining to assignmentExpr
		if err != nil {
			return nil, err
		}
		return ast.NewAssignment(pos, op, left, right), nil
	}
	return left, nil
}

func (p *Parser) logicalOrExpr() (ast.Node, error) {
	pos := p.pos()
	left, err := p.logicalAndExpr()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == token.OR {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.logicalAndExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, ast.Or, left, right)
	}
	return left, nil
}

func (p *Parser) logicalAndExpr() (ast.Node, error) {
	pos := p.pos()
	left, err := p.equalityExpr()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == token.AND {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.equalityExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, ast.And, left, right)
	}
	return left, nil
}

func (p *Parser) equalityExpr() (ast.Node, error) {
	pos := p.pos()
	left, err := p.relationalExpr()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.tok.Kind {
		case token.EQ:
			op = ast.Eq
		case token.NE:
			op = ast.Ne
		case token.IN:
			op = ast.In
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.relationalExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, op, left, right)
	}
}

func (p *Parser) relationalExpr() (ast.Node, error) {
	pos := p.pos()
	left, err := p.additiveExpr()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.tok.Kind {
		case token.LT:
			op = ast.Lt
		case token.LE:
			op = ast.Le
		case token.GT:
			op = ast.Gt
		case token.GE:
			op = ast.Ge
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.additiveExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, op, left, right)
	}
}

func (p *Parser) additiveExpr() (ast.Node, error) {
	pos := p.pos()
	left, err := p.multiplicativeExpr()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.tok.Kind {
		case token.ADD:
			op = ast.Add
		case token.SUB:
			op = ast.Sub
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.multiplicativeExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, op, left, right)
	}
}

func (p *Parser) multiplicativeExpr() (ast.Node, error) {
	pos := p.pos()
	left, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch p.tok.Kind {
		case token.MUL:
			op = ast.Mul
		case token.QUO:
			op = ast.Div
		case token.MOD:
			op = ast.Mod
		default:
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(pos, op, left, right)
	}
}

func (p *Parser) unaryExpr() (ast.Node, error) {
	pos := p.pos()
	switch p.tok.Kind {
	case token.BANG:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.primaryExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(pos, ast.Not, operand), nil
	case token.SUB:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.primaryExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(pos, ast.Neg, operand), nil
	case token.ADD:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.primaryExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(pos, ast.Pos_, operand), nil
	default:
		return p.primaryExpr()
	}
}

// primaryExpr: literal | identifier (call | reference) | list literal |
// '(' expr ')', followed by a trailer.
func (p *Parser) primaryExpr() (ast.Node, error) {
	pos := p.pos()
	var n ast.Node
	switch p.tok.Kind {
	case token.CHAR:
		n = ast.NewLiteral(pos, ast.CharLit, p.tok.Lexeme)
		if err := p.advance(); err != nil {
			return nil, err
		}
	case token.INT:
		n = ast.NewLiteral(pos, ast.IntLit, p.tok.Lexeme)
		if err := p.advance(); err != nil {
			return nil, err
		}
	case token.FLOAT:
		n = ast.NewLiteral(pos, ast.FloatLit, p.tok.Lexeme)
		if err := p.advance(); err != nil {
			return nil, err
		}
	case token.STR:
		n = ast.NewLiteral(pos, ast.StrLit, p.tok.Lexeme)
		if err := p.advance(); err != nil {
			return nil, err
		}
	case token.LBRACKET:
		list, err := p.argList(pos)
		if err != nil {
			return nil, err
		}
		n = list
	case token.IDENTIFIER:
		name := p.tok.Lexeme
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind == token.LPAREN {
			call, err := p.callArgs(pos, name)
			if err != nil {
				return nil, err
			}
			n = call
		} else {
			n = ast.NewReference(pos, name)
		}
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.commaExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		n = inner
	default:
		return nil, diag.New(diag.SyntaxError, pos, "expression expected, found %v", p.tok.Kind)
	}
	return p.trailer(n)
}

func (p *Parser) argList(pos diag.Pos) (ast.Node, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	var elems []ast.Node
	if ok, err := p.accept(token.RBRACKET); err != nil {
		return nil, err
	} else if !ok {
		for {
			e, err := p.assignmentExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.tok.Kind == token.RBRACKET {
				break
			}
			if err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		if err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
	}
	return ast.NewArgList(pos, elems), nil
}

func (p *Parser) callArgs(pos diag.Pos, name string) (ast.Node, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []ast.Node
	if ok, err := p.accept(token.RPAREN); err != nil {
		return nil, err
	} else if !ok {
		for {
			a, err := p.assignmentExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.tok.Kind == token.RPAREN {
				break
			}
			if err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	}
	call := ast.NewCall(pos, name, args)
	call.IsBuiltin = builtin.IsBuiltin(name)
	return call, nil
}

// trailer consumes zero or more `[...]` subscripts and an optional
// `.method(args)`, attaching the method to the outermost node (spec.md
// §4.3). Subscript and method-argument expressions parse at the
// logical-or level, not full assignment/comma, matching the original
// grammar's trailer().
func (p *Parser) trailer(n ast.Node) (ast.Node, error) {
	for p.tok.Kind == token.LBRACKET {
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		var start, end, index ast.Node
		isSlice := false
		if ok, err := p.accept(token.COLON); err != nil {
			return nil, err
		} else if ok {
			start = ast.NewLiteral(pos, ast.IntLit, "0")
			isSlice = true
		} else {
			e, err := p.logicalOrExpr()
			if err != nil {
				return nil, err
			}
			start, index = e, e
			if ok, err := p.accept(token.COLON); err != nil {
				return nil, err
			} else if ok {
				isSlice = true
			}
		}
		if ok, err := p.accept(token.RBRACKET); err != nil {
			return nil, err
		} else if ok {
			if isSlice {
				end = ast.NewLiteral(pos, ast.IntLit, strconv.Itoa(math.MaxInt))
			}
		} else {
			e, err := p.logicalOrExpr()
			if err != nil {
				return nil, err
			}
			end = e
			if err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
		}
		if isSlice {
			n = ast.NewSlice(pos, n, start, end)
		} else {
			n = ast.NewIndex(pos, n, index)
		}
	}

	if ok, err := p.accept(token.DOT); err != nil {
		return nil, err
	} else if ok {
		if p.tok.Kind != token.IDENTIFIER {
			return nil, diag.New(diag.SyntaxError, p.pos(), "expected method name instead of %v", p.tok.Kind)
		}
		name := p.tok.Lexeme
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		var args []ast.Node
		if ok, err := p.accept(token.RPAREN); err != nil {
			return nil, err
		} else if !ok {
			for {
				a, err := p.logicalOrExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.tok.Kind == token.RPAREN {
					break
				}
				if err := p.expect(token.COMMA); err != nil {
					return nil, err
				}
			}
			if err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
		}
		n.SetTrailer(&ast.MethodCall{Name: name, Args: args})
	}

	return n, nil
}

// parser.go: recursive-descent / Pratt parser producing evaluable AST nodes.
//
// The parser is the collaborator the runtime consumes polymorphically: it
// builds trees of Node values (ast_expressions.go, ast_statements.go) from
// the token stream. Precedence is handled by a table-driven binary loop;
// statements dispatch on the leading keyword. Semicolons terminate
// statements but a closing brace or EOF also ends one, so REPL one-liners do
// not need a trailing semicolon.
//
// The reserved words new, instanceof, debugger and scope (plus the <- and ->
// operators) are lexed but rejected here with a clear diagnostic: the
// dynamic-scope overlay is threaded through the embedding API (see
// Function.Call), not through syntax.
//
// While a function body is being parsed, every var name is also recorded in
// a collector so the finished FunctionLit knows its declared locals; nested
// function bodies collect into their own scope only.
package scope

import "fmt"

// Parser turns a token stream into a Program.
type Parser struct {
	toks []Token
	pos  int

	varStack []*[]string
	noIn     bool
}

// Parse scans and parses a complete source string.
func Parse(src string) (*Program, error) {
	lex := NewLexer(src)
	toks, err := lex.Scan()
	if err != nil {
		return nil, err
	}
	return NewParser(toks).ParseProgram()
}

// NewParser wraps an already-scanned token stream.
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() (prog *Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			prog, err = nil, pe
		}
	}()
	var body []Node
	for !p.check(EOF) {
		body = append(body, p.parseStatement())
	}
	return &Program{Body: body}, nil
}

// ---- token plumbing ---------------------------------------------------------

func (p *Parser) cur() Token { return p.toks[p.pos] }
func (p *Parser) peek() Token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if t.Type != EOF {
		p.pos++
	}
	return t
}

func (p *Parser) check(tt TokenType) bool { return p.cur().Type == tt }

func (p *Parser) accept(tt TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tt TokenType, what string) Token {
	if !p.check(tt) {
		p.fail("expected %s", what)
	}
	return p.advance()
}

func (p *Parser) fail(format string, args ...any) {
	t := p.cur()
	panic(&ParseError{
		Line:       t.Line,
		Col:        t.Col,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: t.Type == EOF,
	})
}

func (p *Parser) failReserved(t Token) {
	panic(&ParseError{Line: t.Line, Col: t.Col,
		Msg: fmt.Sprintf("%q is reserved and not supported", t.Lexeme)})
}

// declareVar records a var name in the innermost function body collector.
func (p *Parser) declareVar(name string) {
	if len(p.varStack) > 0 {
		top := p.varStack[len(p.varStack)-1]
		*top = append(*top, name)
	}
}

// endStatement consumes an optional semicolon; a closing brace or EOF also
// terminates the statement.
func (p *Parser) endStatement() {
	if p.accept(SEMI) {
		return
	}
	if p.check(RBRACE) || p.check(EOF) {
		return
	}
	p.fail("expected ';'")
}

// ---- statements --------------------------------------------------------------

func (p *Parser) parseStatement() Node {
	switch p.cur().Type {
	case LBRACE:
		return p.parseBlock()
	case SEMI:
		p.advance()
		return &EmptyStatement{}
	case VAR:
		decl := p.parseVarDecl()
		p.endStatement()
		return decl
	case FUNCTION:
		if p.peek().Type == IDENT {
			return p.parseFunctionDecl()
		}
		// anonymous function expression in statement position
		expr := p.parseExpression()
		p.endStatement()
		return &ExprStatement{Expr: expr}
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile("")
	case DO:
		return p.parseDoWhile("")
	case FOR:
		return p.parseFor("")
	case RETURN:
		p.advance()
		var v Node
		if !p.check(SEMI) && !p.check(RBRACE) && !p.check(EOF) {
			v = p.parseExpression()
		}
		p.endStatement()
		return &ReturnStatement{Value: v}
	case BREAK:
		p.advance()
		target := EmptyTarget
		if p.check(IDENT) {
			target = p.advance().Literal.(string)
		}
		p.endStatement()
		return &BreakStatement{Target: target}
	case CONTINUE:
		p.advance()
		target := EmptyTarget
		if p.check(IDENT) {
			target = p.advance().Literal.(string)
		}
		p.endStatement()
		return &ContinueStatement{Target: target}
	case IDENT:
		if p.peek().Type == COLON {
			return p.parseLabeled()
		}
	case NEW, INSTANCEOF, DEBUGGER, SCOPE, LARROW, RARROW:
		p.failReserved(p.cur())
	}
	expr := p.parseExpression()
	p.endStatement()
	return &ExprStatement{Expr: expr}
}

func (p *Parser) parseBlock() *Block {
	p.expect(LBRACE, "'{'")
	var body []Node
	for !p.check(RBRACE) && !p.check(EOF) {
		body = append(body, p.parseStatement())
	}
	p.expect(RBRACE, "'}'")
	return &Block{Body: body}
}

func (p *Parser) parseVarDecl() *VarDecl {
	p.expect(VAR, "'var'")
	decl := &VarDecl{}
	for {
		name := p.expect(IDENT, "variable name").Literal.(string)
		p.declareVar(name)
		var init Node
		if p.accept(ASSIGN) {
			init = p.parseAssignExpr()
		}
		decl.Names = append(decl.Names, name)
		decl.Inits = append(decl.Inits, init)
		if !p.accept(COMMA) {
			break
		}
	}
	return decl
}

func (p *Parser) parseFunctionDecl() Node {
	p.expect(FUNCTION, "'function'")
	name := p.expect(IDENT, "function name").Literal.(string)
	lit := p.parseFunctionRest(name)
	return &FunctionDecl{Name: name, Fn: lit}
}

// parseFunctionRest parses "(params) { body }" with a fresh var collector.
func (p *Parser) parseFunctionRest(name string) *FunctionLit {
	p.expect(LPAREN, "'('")
	var params []string
	for !p.check(RPAREN) {
		params = append(params, p.expect(IDENT, "parameter name").Literal.(string))
		if !p.accept(COMMA) {
			break
		}
	}
	p.expect(RPAREN, "')'")

	var declared []string
	p.varStack = append(p.varStack, &declared)
	body := p.parseBlock()
	p.varStack = p.varStack[:len(p.varStack)-1]

	return &FunctionLit{Name: name, Parameters: params, Body: body, DeclaredVars: declared}
}

func (p *Parser) parseIf() Node {
	p.expect(IF, "'if'")
	p.expect(LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(RPAREN, "')'")
	then := p.parseStatement()
	var els Node
	if p.accept(ELSE) {
		els = p.parseStatement()
	}
	return &If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseWhile(label string) Node {
	p.expect(WHILE, "'while'")
	p.expect(LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(RPAREN, "')'")
	body := p.parseStatement()
	return &While{Label: label, Cond: cond, Body: body}
}

func (p *Parser) parseDoWhile(label string) Node {
	p.expect(DO, "'do'")
	body := p.parseStatement()
	p.expect(WHILE, "'while'")
	p.expect(LPAREN, "'('")
	cond := p.parseExpression()
	p.expect(RPAREN, "')'")
	p.endStatement()
	return &DoWhile{Label: label, Body: body, Cond: cond}
}

func (p *Parser) parseFor(label string) Node {
	p.expect(FOR, "'for'")
	p.expect(LPAREN, "'('")

	// for (var x in e) / for (x in e)
	if p.check(VAR) && p.peek().Type == IDENT && p.toks[p.pos+2].Type == IN {
		p.advance()
		name := p.advance().Literal.(string)
		p.declareVar(name)
		p.advance() // in
		obj := p.parseExpression()
		p.expect(RPAREN, "')'")
		body := p.parseStatement()
		return &ForIn{Label: label, VarName: name, Declared: true, Object: obj, Body: body}
	}
	if p.check(IDENT) && p.peek().Type == IN {
		name := p.advance().Literal.(string)
		p.advance() // in
		obj := p.parseExpression()
		p.expect(RPAREN, "')'")
		body := p.parseStatement()
		return &ForIn{Label: label, VarName: name, Object: obj, Body: body}
	}

	// classic three-clause form
	var init Node
	switch {
	case p.accept(SEMI):
	case p.check(VAR):
		init = p.parseVarDecl()
		p.expect(SEMI, "';'")
	default:
		p.noIn = true
		expr := p.parseExpression()
		p.noIn = false
		init = &ExprStatement{Expr: expr}
		p.expect(SEMI, "';'")
	}

	var cond Node
	if !p.check(SEMI) {
		cond = p.parseExpression()
	}
	p.expect(SEMI, "';'")

	var post Node
	if !p.check(RPAREN) {
		post = p.parseExpression()
	}
	p.expect(RPAREN, "')'")
	body := p.parseStatement()
	return &ForLoop{Label: label, Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseLabeled() Node {
	label := p.expect(IDENT, "label").Literal.(string)
	p.expect(COLON, "':'")
	switch p.cur().Type {
	case WHILE:
		return p.parseWhile(label)
	case DO:
		return p.parseDoWhile(label)
	case FOR:
		return p.parseFor(label)
	default:
		return &Labeled{Label: label, Stmt: p.parseStatement()}
	}
}

// ---- expressions --------------------------------------------------------------

// binPrec maps binary operator tokens to (precedence, rendered op).
var binPrec = map[TokenType]struct {
	prec int
	op   string
}{
	LOR:     {1, "||"},
	LAND:    {2, "&&"},
	BITOR:   {3, "|"},
	BITXOR:  {4, "^"},
	BITAND:  {5, "&"},
	EQ:      {6, "=="},
	NEQ:     {6, "!="},
	SEQ:     {6, "==="},
	SNEQ:    {6, "!=="},
	LT:      {7, "<"},
	LE:      {7, "<="},
	GT:      {7, ">"},
	GE:      {7, ">="},
	IN:      {7, "in"},
	LSHIFT:  {8, "<<"},
	RSHIFT:  {8, ">>"},
	PLUS:    {9, "+"},
	MINUS:   {9, "-"},
	STAR:    {10, "*"},
	SLASH:   {10, "/"},
	PERCENT: {10, "%"},
}

// compoundOps maps compound-assignment tokens to their base operator.
var compoundOps = map[TokenType]string{
	PLUSASSIGN:    "+",
	MINUSASSIGN:   "-",
	STARASSIGN:    "*",
	SLASHASSIGN:   "/",
	PERCENTASSIGN: "%",
	LSHIFTASSIGN:  "<<",
	RSHIFTASSIGN:  ">>",
	ANDASSIGN:     "&",
	ORASSIGN:      "|",
	XORASSIGN:     "^",
}

func (p *Parser) parseExpression() Node { return p.parseAssignExpr() }

func (p *Parser) parseAssignExpr() Node {
	left := p.parseConditional()
	t := p.cur()
	if t.Type == ASSIGN {
		p.requireRef(left, t)
		p.advance()
		return &Assign{Target: left, Value: p.parseAssignExpr(), At: tokenPos(t)}
	}
	if base, ok := compoundOps[t.Type]; ok {
		p.requireRef(left, t)
		p.advance()
		return &Assign{Op: base, Target: left, Value: p.parseAssignExpr(), At: tokenPos(t)}
	}
	return left
}

func (p *Parser) requireRef(n Node, t Token) {
	if _, ok := n.(RefNode); !ok {
		panic(&ParseError{Line: t.Line, Col: t.Col, Msg: "invalid assignment target"})
	}
}

func (p *Parser) parseConditional() Node {
	cond := p.parseBinary(1)
	if !p.accept(QUESTION) {
		return cond
	}
	then := p.parseAssignExpr()
	p.expect(COLON, "':'")
	els := p.parseAssignExpr()
	return &Conditional{Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseBinary(minPrec int) Node {
	left := p.parseUnary()
	for {
		t := p.cur()
		switch t.Type {
		case INSTANCEOF, LARROW, RARROW:
			p.failReserved(t)
		}
		info, ok := binPrec[t.Type]
		if !ok || info.prec < minPrec {
			return left
		}
		if t.Type == IN && p.noIn {
			return left
		}
		p.advance()
		right := p.parseBinary(info.prec + 1)
		switch info.op {
		case "&&", "||":
			left = &Logical{Op: info.op, Left: left, Right: right}
		default:
			left = &Binary{Op: info.op, Left: left, Right: right, At: tokenPos(t)}
		}
	}
}

func (p *Parser) parseUnary() Node {
	t := p.cur()
	switch t.Type {
	case LNOT, BITNOT, MINUS, PLUS:
		p.advance()
		ops := map[TokenType]string{LNOT: "!", BITNOT: "~", MINUS: "-", PLUS: "+"}
		return &Unary{Op: ops[t.Type], Operand: p.parseUnary(), At: tokenPos(t)}
	case TYPEOF:
		p.advance()
		return &Unary{Op: "typeof", Operand: p.parseUnary(), At: tokenPos(t)}
	case VOID:
		p.advance()
		return &Unary{Op: "void", Operand: p.parseUnary(), At: tokenPos(t)}
	case DELETE:
		p.advance()
		return &Delete{Target: p.parseUnary(), At: tokenPos(t)}
	case INCR, DECR:
		p.advance()
		op := "++"
		if t.Type == DECR {
			op = "--"
		}
		return &Update{Op: op, Prefix: true, Target: p.parseUnary(), At: tokenPos(t)}
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() Node {
	expr := p.parseCallMember()
	t := p.cur()
	if t.Type == INCR || t.Type == DECR {
		p.advance()
		op := "++"
		if t.Type == DECR {
			op = "--"
		}
		return &Update{Op: op, Target: expr, At: tokenPos(t)}
	}
	return expr
}

func (p *Parser) parseCallMember() Node {
	expr := p.parsePrimary()
	for {
		t := p.cur()
		switch t.Type {
		case PERIOD:
			p.advance()
			name := p.expect(IDENT, "property name").Literal.(string)
			expr = &Member{Object: expr, Name: name, At: tokenPos(t)}
		case LBRACKET:
			p.advance()
			saved := p.noIn
			p.noIn = false
			key := p.parseExpression()
			p.noIn = saved
			p.expect(RBRACKET, "']'")
			expr = &Index{Object: expr, Key: key, At: tokenPos(t)}
		case LPAREN:
			p.advance()
			var args []Node
			saved := p.noIn
			p.noIn = false
			for !p.check(RPAREN) {
				args = append(args, p.parseAssignExpr())
				if !p.accept(COMMA) {
					break
				}
			}
			p.noIn = saved
			p.expect(RPAREN, "')'")
			expr = &Call{Callee: expr, Args: args, At: tokenPos(t)}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() Node {
	t := p.cur()
	switch t.Type {
	case NUMBER:
		p.advance()
		return &Literal{Value: Number(t.Literal.(float64))}
	case STRING:
		p.advance()
		return &Literal{Value: Str(t.Literal.(string))}
	case BOOLEAN:
		p.advance()
		return &Literal{Value: Boolean(t.Literal.(bool))}
	case NULL:
		p.advance()
		return &Literal{Value: Null}
	case IDENT:
		p.advance()
		return &Ident{Name: t.Literal.(string), At: tokenPos(t)}
	case THIS:
		p.advance()
		return &This{At: tokenPos(t)}
	case FUNCTION:
		p.advance()
		name := ""
		if p.check(IDENT) {
			name = p.advance().Literal.(string)
		}
		return p.parseFunctionRest(name)
	case LPAREN:
		p.advance()
		saved := p.noIn
		p.noIn = false
		expr := p.parseExpression()
		p.noIn = saved
		p.expect(RPAREN, "')'")
		return expr
	case LBRACKET:
		p.advance()
		lit := &ArrayLit{}
		for !p.check(RBRACKET) {
			lit.Elements = append(lit.Elements, p.parseAssignExpr())
			if !p.accept(COMMA) {
				break
			}
		}
		p.expect(RBRACKET, "']'")
		return lit
	case LBRACE:
		return p.parseObjectLit()
	case NEW, INSTANCEOF, DEBUGGER, SCOPE, LARROW, RARROW:
		p.failReserved(t)
		return nil
	default:
		p.fail("unexpected token %q", t.Lexeme)
		return nil
	}
}

func (p *Parser) parseObjectLit() Node {
	p.expect(LBRACE, "'{'")
	lit := &ObjectLit{}
	for !p.check(RBRACE) {
		var key string
		t := p.cur()
		switch t.Type {
		case IDENT:
			key = t.Literal.(string)
			p.advance()
		case STRING:
			key = t.Literal.(string)
			p.advance()
		case NUMBER:
			key = formatNumber(t.Literal.(float64))
			p.advance()
		default:
			p.fail("expected property key")
		}
		p.expect(COLON, "':'")
		lit.Keys = append(lit.Keys, key)
		lit.Values = append(lit.Values, p.parseAssignExpr())
		if !p.accept(COMMA) {
			break
		}
	}
	p.expect(RBRACE, "'}'")
	return lit
}

// Package parser implements a recursive-descent, precedence-climbing
// parser that turns a SaneQL token stream into the ast package's tree.
//
// Grammar (informal):
//
//	Query      := LetEntry* Expr
//	LetEntry   := "let" ident ( "(" Param ("," Param)* ")" )? ":=" Expr ";"
//	Param      := ident ( ":=" Expr )?
//	Expr       := Or
//	Or         := And ( "or" And )*
//	And        := Not ( "and" Not )*
//	Not        := "not" Not | Comparison
//	Comparison := Concat ( CompOp Concat )?
//	Concat     := Additive ( "||" Additive )*
//	Additive   := Multiplicative ( ("+"|"-") Multiplicative )*
//	Multiplicative := Power ( ("*"|"/"|"%") Power )*
//	Power      := Unary ( "^" Power )?
//	Unary      := ("+"|"-") Unary | Cast
//	Cast       := Postfix ( ":" Type )?
//	Postfix    := Primary ( "." ident ( "(" Args ")" )? )*
//	Primary    := literal | "(" Expr ")" | "{" List "}" | ident ( "(" Args ")" )?
//	Args       := ( Arg ("," Arg)* )?
//	Arg        := ( ident ":" )? Expr
//	List       := ( Arg ("," Arg)* )?
//	Type       := ident ( "(" number ("," number)* ")" )?
package parser

import (
	"fmt"

	"github.com/ravelin-sql/saneql/internal/ast"
	"github.com/ravelin-sql/saneql/internal/lexer"
)

// ParseError is a syntax error with source position.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Parse lexes and parses a complete SaneQL program.
func Parse(source string) (*ast.Query, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		if pe, ok := err.(*lexer.ParseError); ok {
			return nil, &ParseError{Message: pe.Message, Line: pe.Line, Column: pe.Column}
		}
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseQuery()
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) peek() lexer.Token  { return p.toks[p.pos] }
func (p *parser) at(t lexer.TokenType) bool { return p.peek().Type == t }

func (p *parser) next() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(format string, args ...interface{}) error {
	tok := p.peek()
	return &ParseError{Message: fmt.Sprintf(format, args...), Line: tok.Line, Column: tok.Column}
}

func (p *parser) expect(t lexer.TokenType) (lexer.Token, error) {
	if !p.at(t) {
		return lexer.Token{}, p.errorf("expected %s, got %s", t, p.describe(p.peek()))
	}
	return p.next(), nil
}

func (p *parser) describe(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Value)
}

func (p *parser) isKeyword(word string) bool {
	tok := p.peek()
	return tok.Type == lexer.Keyword && tok.Value == word
}

func pos(tok lexer.Token) ast.Pos { return ast.Pos{Line: tok.Line, Col: tok.Column} }

func (p *parser) parseQuery() (*ast.Query, error) {
	q := &ast.Query{}
	for p.isKeyword("let") {
		entry, err := p.parseLetEntry()
		if err != nil {
			return nil, err
		}
		q.Lets = append(q.Lets, entry)
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	q.Body = body
	if !p.at(lexer.EOF) {
		return nil, p.errorf("unexpected trailing input: %s", p.describe(p.peek()))
	}
	return q, nil
}

func (p *parser) parseLetEntry() (*ast.LetEntry, error) {
	start := p.next() // "let"
	name, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	entry := &ast.LetEntry{Pos_: pos(start), Name: name.Value}

	if p.at(lexer.LParen) {
		p.next()
		entry.Signature = []ast.LetParam{}
		if !p.at(lexer.RParen) {
			for {
				pname, err := p.expect(lexer.Ident)
				if err != nil {
					return nil, err
				}
				param := ast.LetParam{Name: pname.Value}
				if p.at(lexer.ColonEquals) {
					p.next()
					def, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					param.Default = def
				}
				entry.Signature = append(entry.Signature, param)
				if p.at(lexer.Comma) {
					p.next()
					continue
				}
				break
			}
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.ColonEquals); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	entry.Body = body
	if _, err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return entry, nil
}

func (p *parser) parseExpr() (ast.Expr, error) { return p.parseOr() }

func (p *parser) parseOr() (ast.Expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("or") {
		tok := p.next()
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpression{Pos_: pos(tok), Op: ast.OpOr, Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseAnd() (ast.Expr, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("and") {
		tok := p.next()
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpression{Pos_: pos(tok), Op: ast.OpAnd, Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseNot() (ast.Expr, error) {
	if p.isKeyword("not") {
		tok := p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Pos_: pos(tok), Op: ast.OpNot, Operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (ast.Expr, error) {
	lhs, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	if p.isKeyword("is") {
		tok := p.next()
		op := ast.OpIs
		if p.isKeyword("not") {
			p.next()
			op = ast.OpIsNot
		}
		rhs, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Pos_: pos(tok), Op: op, Lhs: lhs, Rhs: rhs}, nil
	}
	op, ok := p.peekCompOp()
	if !ok {
		return lhs, nil
	}
	tok := p.next()
	rhs, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpression{Pos_: pos(tok), Op: op, Lhs: lhs, Rhs: rhs}, nil
}

// peekCompOp recognizes a single-token comparison operator at the current
// position without consuming it; the caller consumes via p.next() once
// confirmed. "is"/"is not" are handled separately in parseComparison
// since they span two keywords.
func (p *parser) peekCompOp() (ast.BinaryOp, bool) {
	tok := p.peek()
	switch {
	case tok.Type == lexer.Operator:
		switch tok.Value {
		case "=":
			return ast.OpEq, true
		case "<>", "!=":
			return ast.OpNe, true
		case "<":
			return ast.OpLt, true
		case "<=":
			return ast.OpLe, true
		case ">":
			return ast.OpGt, true
		case ">=":
			return ast.OpGe, true
		}
	case tok.Type == lexer.Keyword && tok.Value == "like":
		return ast.OpLike, true
	}
	return 0, false
}

func (p *parser) parseConcat() (ast.Expr, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Operator) && p.peek().Value == "||" {
		tok := p.next()
		rhs, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		lhs = &ast.BinaryExpression{Pos_: pos(tok), Op: ast.OpConcat, Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseAdditive() (ast.Expr, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Operator) && (p.peek().Value == "+" || p.peek().Value == "-") {
		tok := p.next()
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		op := ast.OpAdd
		if tok.Value == "-" {
			op = ast.OpSub
		}
		lhs = &ast.BinaryExpression{Pos_: pos(tok), Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseMultiplicative() (ast.Expr, error) {
	lhs, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Operator) && (p.peek().Value == "*" || p.peek().Value == "/" || p.peek().Value == "%") {
		tok := p.next()
		rhs, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		var op ast.BinaryOp
		switch tok.Value {
		case "*":
			op = ast.OpMul
		case "/":
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		lhs = &ast.BinaryExpression{Pos_: pos(tok), Op: op, Lhs: lhs, Rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parsePower() (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.Operator) && p.peek().Value == "^" {
		tok := p.next()
		rhs, err := p.parsePower() // right-associative
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Pos_: pos(tok), Op: ast.OpPow, Lhs: lhs, Rhs: rhs}, nil
	}
	return lhs, nil
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if p.at(lexer.Operator) && (p.peek().Value == "+" || p.peek().Value == "-") {
		tok := p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := ast.OpPos
		if tok.Value == "-" {
			op = ast.OpNeg
		}
		return &ast.UnaryExpression{Pos_: pos(tok), Op: op, Operand: operand}, nil
	}
	return p.parseCast()
}

func (p *parser) parseCast() (ast.Expr, error) {
	e, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Colon) {
		tok := p.next()
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		e = &ast.Cast{Pos_: pos(tok), Expr: e, Type: typ}
	}
	return e, nil
}

func (p *parser) parseType() (*ast.Type, error) {
	name, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	t := &ast.Type{Pos_: pos(name), Name: name.Value}
	if p.at(lexer.LParen) {
		p.next()
		for {
			n, err := p.expect(lexer.Number)
			if err != nil {
				return nil, err
			}
			v, err := parseIntLiteral(n.Value)
			if err != nil {
				return nil, p.errorf("invalid type parameter %q", n.Value)
			}
			t.Args = append(t.Args, v)
			if p.at(lexer.Comma) {
				p.next()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(lexer.Dot) {
		dotTok := p.next()
		name, err := p.expect(lexer.Ident)
		if err != nil {
			return nil, err
		}
		if p.at(lexer.LParen) {
			p.next()
			args, err := p.parseArgs(lexer.RParen)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RParen); err != nil {
				return nil, err
			}
			e = &ast.Call{Pos_: pos(dotTok), Recv: e, Name: name.Value, Args: args}
		} else {
			e = &ast.Access{Pos_: pos(dotTok), Base: e, Field: name.Value}
		}
	}
	return e, nil
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.Number:
		p.next()
		kind := ast.LiteralInteger
		if tok.HasDot {
			kind = ast.LiteralDecimal
		}
		return &ast.Literal{Pos_: pos(tok), Kind: kind, Text: tok.Value}, nil
	case lexer.String:
		p.next()
		return &ast.Literal{Pos_: pos(tok), Kind: ast.LiteralString, Text: tok.Value}, nil
	case lexer.TypedString:
		p.next()
		kind := ast.LiteralDate
		if tok.Prefix == "interval" {
			kind = ast.LiteralInterval
		}
		return &ast.Literal{Pos_: pos(tok), Kind: kind, Text: tok.Value}, nil
	case lexer.Keyword:
		switch tok.Value {
		case "true", "false":
			p.next()
			return &ast.Literal{Pos_: pos(tok), Kind: ast.LiteralBool, Text: tok.Value}, nil
		case "null":
			p.next()
			return &ast.Literal{Pos_: pos(tok), Kind: ast.LiteralNull}, nil
		}
		return nil, p.errorf("unexpected keyword %q", tok.Value)
	case lexer.LParen:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.LBrace:
		p.next()
		args, err := p.parseArgs(lexer.RBrace)
		if err != nil {
			return nil, err
		}
		rb, err := p.expect(lexer.RBrace)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Pos_: pos(rb), Name: ast.ListMarker, Args: args}, nil
	case lexer.Ident:
		p.next()
		if p.at(lexer.LParen) {
			p.next()
			args, err := p.parseArgs(lexer.RParen)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RParen); err != nil {
				return nil, err
			}
			return &ast.Call{Pos_: pos(tok), Name: tok.Value, Args: args}, nil
		}
		return &ast.Ident{Pos_: pos(tok), Name: tok.Value}, nil
	default:
		return nil, p.errorf("unexpected token %s", p.describe(tok))
	}
}

// parseArgs parses a comma-separated argument list up to (but not
// consuming) close. Each argument may be preceded by "name:" to produce a
// named FuncArg; this same routine serves both call arguments and
// brace-list entries.
func (p *parser) parseArgs(closeTok lexer.TokenType) ([]ast.FuncArg, error) {
	var args []ast.FuncArg
	if p.at(closeTok) {
		return args, nil
	}
	for {
		var name string
		if p.at(lexer.Ident) && p.peekAheadIsColon() {
			name = p.next().Value
			p.next() // consume ":"
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.FuncArg{Name: name, Value: val})
		if p.at(lexer.Comma) {
			p.next()
			continue
		}
		break
	}
	return args, nil
}

// peekAheadIsColon reports whether the token after the current one is a
// ":" token, which disambiguates "name: expr" from a
// plain expression starting with an identifier.
func (p *parser) peekAheadIsColon() bool {
	if p.pos+1 >= len(p.toks) {
		return false
	}
	return p.toks[p.pos+1].Type == lexer.Colon
}

func parseIntLiteral(s string) (int, error) {
	n := 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("not a valid integer: %q", s)
		}
		n = n*10 + int(ch-'0')
	}
	return n, nil
}

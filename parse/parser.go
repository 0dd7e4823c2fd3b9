// Package parse is a hand-written recursive-descent parser from a token
// stream to an ast.Source. It never looks at source text directly — only
// at the token kinds and literals lex already produced.
package parse

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/wend-lang/wendc/ast"
	"github.com/wend-lang/wendc/token"
	"github.com/wend-lang/wendc/value"
	"github.com/wend-lang/wendc/wenderr"
)

// Parser consumes a fixed token slice. eof is the offset one past the last
// character of the source the tokens came from, used to place errors that
// occur after the last token has been consumed.
type Parser struct {
	tokens []token.Token
	pos    int
	eof    int
}

// New creates a Parser over tokens. eof should be len([]rune(source)).
func New(tokens []token.Token, eof int) *Parser {
	return &Parser{tokens: tokens, eof: eof}
}

// ParseSource parses the whole token stream as a source-level program.
func (p *Parser) ParseSource() (*ast.Source, error) {
	src := &ast.Source{}

	for p.peek("LIST") || p.peek("VAR") || p.peek("VAL") {
		g, err := p.parseGlobal()
		if err != nil {
			return nil, err
		}
		src.Globals = append(src.Globals, g)
	}
	for p.peek("FUN") {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		src.Functions = append(src.Functions, fn)
	}
	if p.pos != len(p.tokens) {
		return nil, p.errf("expected end of input")
	}
	return src, nil
}

// peek reports whether the upcoming tokens, one per pattern, match.
// A string pattern matches a token's Literal; a token.Kind pattern matches
// a token's Kind.
func (p *Parser) peek(patterns ...interface{}) bool {
	for i, pat := range patterns {
		if p.pos+i >= len(p.tokens) {
			return false
		}
		tok := p.tokens[p.pos+i]
		switch v := pat.(type) {
		case string:
			if tok.Literal != v {
				return false
			}
		case token.Kind:
			if tok.Kind != v {
				return false
			}
		default:
			panic("parse: peek pattern must be a string or a token.Kind")
		}
	}
	return true
}

// match is peek followed by advancing past every matched token on success.
func (p *Parser) match(patterns ...interface{}) bool {
	if !p.peek(patterns...) {
		return false
	}
	p.pos += len(patterns)
	return true
}

func (p *Parser) offset() int {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos].Offset
	}
	return p.eof
}

func (p *Parser) errf(format string, args ...interface{}) *wenderr.ParseError {
	return &wenderr.ParseError{Message: fmt.Sprintf(format, args...), Offset: p.offset()}
}

func (p *Parser) expectIdentifier() (string, error) {
	if !p.peek(token.Identifier) {
		return "", p.errf("expected an identifier")
	}
	lit := p.tokens[p.pos].Literal
	p.pos++
	return lit, nil
}

// --- globals ---

func (p *Parser) parseGlobal() (*ast.Global, error) {
	isList := false
	mutable := false
	switch {
	case p.match("LIST"):
		isList = true
		mutable = true
	case p.match("VAR"):
		mutable = true
	case p.match("VAL"):
		mutable = false
	default:
		return nil, p.errf("expected LIST, VAR, or VAL")
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if !p.match(":") {
		return nil, p.errf("expected ':' after %q", name)
	}
	typeName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	g := &ast.Global{Name: name, TypeName: typeName, Mutable: mutable}

	if isList {
		if !p.match("=") {
			return nil, p.errf("list global %q requires an initializer", name)
		}
		lit, err := p.parseListInitializer()
		if err != nil {
			return nil, err
		}
		g.Value = lit
	} else if p.match("=") {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		g.Value = v
	}

	if !p.match(";") {
		return nil, p.errf("expected ';' after global declaration")
	}
	return g, nil
}

func (p *Parser) parseListInitializer() (ast.Expression, error) {
	if !p.match("[") {
		return nil, p.errf("expected '[' to start a list initializer")
	}
	lit := &ast.ListLiteral{}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	lit.Values = append(lit.Values, first)
	for p.match(",") {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Values = append(lit.Values, v)
	}
	if !p.match("]") {
		return nil, p.errf("expected ']' to close a list initializer")
	}
	return lit, nil
}

// --- functions ---

func (p *Parser) parseFunction() (*ast.Function, error) {
	if !p.match("FUN") {
		return nil, p.errf("expected FUN")
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	fn := &ast.Function{Name: name}

	if !p.match("(") {
		return nil, p.errf("expected '(' after function name")
	}
	if !p.peek(")") {
		if err := p.parseParams(fn); err != nil {
			return nil, err
		}
	}
	if !p.match(")") {
		return nil, p.errf("expected ')' after parameter list")
	}
	if p.match(":") {
		rt, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		fn.ReturnTypeName = rt
	}
	if !p.match("DO") {
		return nil, p.errf("expected DO")
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = block
	if !p.match("END") {
		return nil, p.errf("expected END to close function %q", name)
	}
	return fn, nil
}

func (p *Parser) parseParams(fn *ast.Function) error {
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return err
		}
		if !p.match(":") {
			return p.errf("expected ':' after parameter %q", name)
		}
		typeName, err := p.expectIdentifier()
		if err != nil {
			return err
		}
		fn.Params = append(fn.Params, name)
		fn.ParamTypeNames = append(fn.ParamTypeNames, typeName)
		if !p.match(",") {
			return nil
		}
	}
}

// --- statements ---

func (p *Parser) atBlockEnd() bool {
	return p.pos >= len(p.tokens) || p.peek("END") || p.peek("ELSE") || p.peek("CASE") || p.peek("DEFAULT")
}

func (p *Parser) parseBlock() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.atBlockEnd() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// parseStatement dispatches on the leading keyword by peeking at it; it does
// not consume the keyword. Each parseX helper below matches its own leading
// keyword first.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch {
	case p.peek("LET"):
		return p.parseDeclaration()
	case p.peek("IF"):
		return p.parseIf()
	case p.peek("SWITCH"):
		return p.parseSwitch()
	case p.peek("WHILE"):
		return p.parseWhile()
	case p.peek("RETURN"):
		return p.parseReturn()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	p.match("LET")
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	d := &ast.Declaration{Name: name}
	if p.match(":") {
		tn, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		d.TypeName = tn
	}
	if p.match("=") {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		d.Value = v
	}
	if !p.match(";") {
		return nil, p.errf("expected ';' after let statement")
	}
	return d, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	p.match("IF")
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.match("DO") {
		return nil, p.errf("expected DO after if condition")
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &ast.If{Condition: cond, Then: then}
	if p.match("ELSE") {
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		n.Else = els
	}
	if !p.match("END") {
		return nil, p.errf("expected END to close if")
	}
	return n, nil
}

func (p *Parser) parseSwitch() (ast.Statement, error) {
	p.match("SWITCH")
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	sw := &ast.Switch{Condition: cond}
	for p.match("CASE") {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.match(":") {
			return nil, p.errf("expected ':' after case value")
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		sw.Cases = append(sw.Cases, &ast.Case{Value: val, Block: block})
	}
	if !p.match("DEFAULT") {
		return nil, p.errf("expected DEFAULT case")
	}
	defBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	sw.Cases = append(sw.Cases, &ast.Case{Block: defBlock})
	if !p.match("END") {
		return nil, p.errf("expected END to close switch")
	}
	return sw, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	p.match("WHILE")
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.match("DO") {
		return nil, p.errf("expected DO after while condition")
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if !p.match("END") {
		return nil, p.errf("expected END to close while")
	}
	return &ast.While{Condition: cond, Block: block}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	p.match("RETURN")
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.match(";") {
		return nil, p.errf("expected ';' after return statement")
	}
	return &ast.Return{Value: val}, nil
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.match("=") {
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.match(";") {
			return nil, p.errf("expected ';' after assignment")
		}
		return &ast.Assignment{Receiver: e, Value: val}, nil
	}
	if !p.match(";") {
		return nil, p.errf("expected ';' after expression statement")
	}
	return &ast.ExprStatement{Expr: e}, nil
}

// --- expressions ---

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseLogical()
}

func (p *Parser) parseLogical() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.peek("&&") || p.peek("||") {
		op := p.tokens[p.pos].Literal
		p.pos++
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.peek("<") || p.peek(">") || p.peek("==") || p.peek("!=") {
		op := p.tokens[p.pos].Literal
		p.pos++
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.peek("+") || p.peek("-") {
		op := p.tokens[p.pos].Literal
		p.pos++
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.peek("*") || p.peek("/") || p.peek("^") {
		op := p.tokens[p.pos].Literal
		p.pos++
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch {
	case p.match("NIL"):
		return &ast.Literal{Value: value.Nil()}, nil
	case p.match("TRUE"):
		return &ast.Literal{Value: value.Bool(true)}, nil
	case p.match("FALSE"):
		return &ast.Literal{Value: value.Bool(false)}, nil
	case p.peek(token.Integer):
		off := p.tokens[p.pos].Offset
		lit := p.tokens[p.pos].Literal
		p.pos++
		n, ok := new(big.Int).SetString(lit, 10)
		if !ok {
			return nil, &wenderr.ParseError{Message: fmt.Sprintf("invalid integer literal %q", lit), Offset: off}
		}
		return &ast.Literal{Value: value.Int(n)}, nil
	case p.peek(token.Decimal):
		off := p.tokens[p.pos].Offset
		lit := p.tokens[p.pos].Literal
		p.pos++
		d, err := decimal.NewFromString(lit)
		if err != nil {
			return nil, &wenderr.ParseError{Message: fmt.Sprintf("invalid decimal literal %q", lit), Offset: off}
		}
		return &ast.Literal{Value: value.Dec(d)}, nil
	case p.peek(token.Character):
		off := p.tokens[p.pos].Offset
		lit := p.tokens[p.pos].Literal
		p.pos++
		r, err := decodeCharLiteral(lit)
		if err != nil {
			return nil, &wenderr.ParseError{Message: err.Error(), Offset: off}
		}
		return &ast.Literal{Value: value.Char(r)}, nil
	case p.peek(token.String):
		off := p.tokens[p.pos].Offset
		lit := p.tokens[p.pos].Literal
		p.pos++
		s, err := decodeStringLiteral(lit)
		if err != nil {
			return nil, &wenderr.ParseError{Message: err.Error(), Offset: off}
		}
		return &ast.Literal{Value: value.Str(s)}, nil
	case p.match("("):
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.match(")") {
			return nil, p.errf("expected ')' to close a grouped expression")
		}
		return &ast.Group{Inner: inner}, nil
	case p.peek(token.Identifier):
		return p.parseIdentifierExpression()
	default:
		return nil, p.errf("expected an expression")
	}
}

// parseIdentifierExpression handles a bare Access, a Call, or an indexed
// Access; chaining (e.g. a call's result indexed again) is not part of the
// grammar, so this never loops.
func (p *Parser) parseIdentifierExpression() (ast.Expression, error) {
	name := p.tokens[p.pos].Literal
	p.pos++

	if p.match("(") {
		var args []ast.Expression
		if !p.peek(")") {
			for {
				a, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if !p.match(",") {
					break
				}
			}
		}
		if !p.match(")") {
			return nil, p.errf("expected ')' to close call to %q", name)
		}
		return &ast.Call{Name: name, Args: args}, nil
	}

	if p.match("[") {
		offset, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if !p.match("]") {
			return nil, p.errf("expected ']' to close index on %q", name)
		}
		return &ast.Access{Name: name, Offset: offset}, nil
	}

	return &ast.Access{Name: name}, nil
}

func decodeEscapes(s string) (string, error) {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			out = append(out, r)
			continue
		}
		i++
		if i >= len(runes) {
			return "", fmt.Errorf("unterminated escape sequence")
		}
		switch runes[i] {
		case 'b':
			out = append(out, '\b')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '\'':
			out = append(out, '\'')
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		default:
			return "", fmt.Errorf("invalid escape sequence \\%c", runes[i])
		}
	}
	return string(out), nil
}

func decodeCharLiteral(lit string) (rune, error) {
	decoded, err := decodeEscapes(lit[1 : len(lit)-1])
	if err != nil {
		return 0, err
	}
	runes := []rune(decoded)
	if len(runes) != 1 {
		return 0, fmt.Errorf("character literal %q does not decode to exactly one character", lit)
	}
	return runes[0], nil
}

func decodeStringLiteral(lit string) (string, error) {
	return decodeEscapes(lit[1 : len(lit)-1])
}

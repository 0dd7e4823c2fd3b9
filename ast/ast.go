// Package ast holds Wend's tagged-family AST. Statement and Expression are
// each a closed family of concrete node types; the isStatement()/
// isExpression() marker methods that seal those families live in
// ast_gen.go, generated from ast.def by astgen (see astgen/main.go).
//
// Every Expression carries a mutable Type annotation, filled in exactly
// once by analyze and read by interp and both emitters. Access and Call
// additionally carry a resolved *scope.Variable / *scope.Function pointer
// left by analyze for tooling (repr dumps, the emitters); interp itself
// re-resolves names dynamically against its own runtime scope chain rather
// than trusting these annotations, since a function's Body is only known
// once interp installs it.
package ast

import (
	"github.com/wend-lang/wendc/scope"
	"github.com/wend-lang/wendc/types"
	"github.com/wend-lang/wendc/value"
)

// Source is the root of a parsed (and, once analyze has run, analyzed)
// program: zero or more Globals followed by zero or more Functions.
type Source struct {
	Globals   []*Global
	Functions []*Function
}

// Global is a top-level VAR/VAL/LIST declaration.
type Global struct {
	Name     string
	TypeName string
	Mutable  bool
	Value    Expression // nil for VAR without an initializer
	Variable *scope.Variable
}

// Function is a top-level FUN declaration.
type Function struct {
	Name           string
	Params         []string
	ParamTypeNames []string
	ReturnTypeName string // "" means the function returns Nil
	Body           []Statement
	Function       *scope.Function
}

// exprAnn is embedded by every Expression variant to give it a mutable Type
// slot without repeating the getter/setter on each concrete type.
type exprAnn struct {
	typ types.Type
}

func (e *exprAnn) Type() types.Type      { return e.typ }
func (e *exprAnn) SetType(t types.Type)  { e.typ = t }

// Statement is the closed family of things that can appear in a block.
type Statement interface {
	isStatement()
}

// Expression is the closed family of things that can appear in expression
// position. Every variant embeds exprAnn.
type Expression interface {
	isExpression()
	Type() types.Type
	SetType(types.Type)
}

// ExprStatement is a bare expression used for its side effect (almost
// always a Call).
type ExprStatement struct {
	Expr Expression
}

// Declaration is a LET statement: `let name[: Type] [= value];`.
type Declaration struct {
	Name     string
	TypeName string // "" if omitted; then Value must be non-nil
	Value    Expression
	Variable *scope.Variable
}

// Assignment is `receiver = value;`. Receiver is always an *Access.
type Assignment struct {
	Receiver Expression
	Value    Expression
}

// If is an if/else statement. Else is nil (not empty) when there is no
// else-branch; Then must be non-empty.
type If struct {
	Condition Expression
	Then      []Statement
	Else      []Statement
}

// Case is one arm of a Switch. Value is nil for the default arm, which
// must be the last element of Switch.Cases.
type Case struct {
	Value Expression
	Block []Statement
}

// Switch is a switch statement over Condition, with exactly one default
// arm (Value == nil) as the last Case.
type Switch struct {
	Condition Expression
	Cases     []*Case
}

// While is a while loop.
type While struct {
	Condition Expression
	Block     []Statement
}

// Return is a return statement. Value is never nil: the parser requires an
// expression after RETURN, so a bare `RETURN;` is a parse error.
type Return struct {
	Value Expression
}

// Literal is a constant value baked in at parse time: nil, true/false, an
// Integer, a Decimal, a Character, or a String, with escapes already
// decoded.
type Literal struct {
	exprAnn
	Value value.Value
}

// Group is a parenthesized expression. The parser accepts any expression
// inside the parentheses; analyze rejects a Group whose Inner is not a
// Binary.
type Group struct {
	exprAnn
	Inner Expression
}

// Binary is a binary operator application. Op is one of
// && || < > == != + - * / ^.
type Binary struct {
	exprAnn
	Op          string
	Left, Right Expression
}

// Access is a variable or list-element reference. Offset is nil for a bare
// variable reference and non-nil for `name[offset]`.
type Access struct {
	exprAnn
	Name     string
	Offset   Expression
	Variable *scope.Variable
}

// Call is a function invocation.
type Call struct {
	exprAnn
	Name     string
	Args     []Expression
	Function *scope.Function
}

// ListLiteral is a `[ e1, e2, ... ]` expression. The grammar requires at
// least one element.
type ListLiteral struct {
	exprAnn
	Values []Expression
}

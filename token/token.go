// Package token defines the lexical units produced by lex and consumed by
// parse. A Token never loses information about its source text: Literal is
// always the exact substring that produced it.
package token

import "fmt"

// Kind classifies a Token. There are exactly six, matching the six lexical
// categories a Wend program can be built from.
type Kind int

const (
	Identifier Kind = iota
	Integer
	Decimal
	Character
	String
	Operator
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "IDENTIFIER"
	case Integer:
		return "INTEGER"
	case Decimal:
		return "DECIMAL"
	case Character:
		return "CHARACTER"
	case String:
		return "STRING"
	case Operator:
		return "OPERATOR"
	default:
		return "UNKNOWN"
	}
}

// Token is a single lexical unit. Literal is the raw source text (with
// quotes/escapes intact for Character and String); Offset is the index, in
// runes, of the token's first character in the original input.
type Token struct {
	Kind    Kind
	Literal string
	Offset  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Literal, t.Offset)
}

// Is reports whether the token has the given kind and, when literal is
// non-empty, that its Literal equals it exactly.
func (t Token) Is(kind Kind, literal string) bool {
	if t.Kind != kind {
		return false
	}
	return literal == "" || t.Literal == literal
}

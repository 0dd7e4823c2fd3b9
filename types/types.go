// Package types is the static type lattice shared by analyze (which assigns
// types to AST nodes) and interp/scope (which tag Variables and Functions
// with the types the analyzer already checked). It replaces the token-kind
// bookkeeping this package used to hold in the teacher project; that moved
// to package token, and this package now owns the language's own type
// system instead.
package types

// Type is one of the eight built-in type names a Wend program can name.
type Type int

const (
	Any Type = iota
	Nil
	Boolean
	Integer
	Decimal
	Character
	String
	Comparable
)

func (t Type) String() string {
	switch t {
	case Any:
		return "Any"
	case Nil:
		return "Nil"
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Decimal:
		return "Decimal"
	case Character:
		return "Character"
	case String:
		return "String"
	case Comparable:
		return "Comparable"
	default:
		return "?"
	}
}

var byName = map[string]Type{
	"Any":        Any,
	"Nil":        Nil,
	"Boolean":    Boolean,
	"Integer":    Integer,
	"Decimal":    Decimal,
	"Character":  Character,
	"String":     String,
	"Comparable": Comparable,
}

// Lookup resolves a type name as it appears in source (a Declaration's type
// annotation, a parameter type, a return type) to a Type.
func Lookup(name string) (Type, bool) {
	t, ok := byName[name]
	return t, ok
}

// AssignableTo implements the assignability lattice: src ≤ tgt iff they are
// the same type, tgt is Any, or tgt is Comparable and src is one of the
// four comparable primitives.
func AssignableTo(src, tgt Type) bool {
	if src == tgt {
		return true
	}
	if tgt == Any {
		return true
	}
	if tgt == Comparable {
		switch src {
		case Integer, Decimal, Character, String:
			return true
		}
	}
	return false
}

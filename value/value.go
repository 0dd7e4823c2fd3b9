// Package value is the runtime representation shared by the interpreter and
// (as literal payloads) the AST: a single tagged struct wide enough to hold
// every Wend runtime value, backed by math/big for exact-precision integers
// and shopspring/decimal for exact-precision, explicitly-rounded decimals.
package value

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags which field of a Value is meaningful.
type Kind int

const (
	NilKind Kind = iota
	BoolKind
	IntKind
	DecimalKind
	CharKind
	StringKind
	ListKind
)

// Value is a runtime Wend value. Only the field matching Kind is valid; the
// zero Value is the Nil value.
type Value struct {
	Kind Kind
	Bool bool
	Int  *big.Int
	Dec  decimal.Decimal
	Char rune
	Str  string
	List []Value
}

func Nil() Value                { return Value{Kind: NilKind} }
func Bool(b bool) Value         { return Value{Kind: BoolKind, Bool: b} }
func Int(n *big.Int) Value      { return Value{Kind: IntKind, Int: n} }
func Dec(d decimal.Decimal) Value { return Value{Kind: DecimalKind, Dec: d} }
func Char(r rune) Value         { return Value{Kind: CharKind, Char: r} }
func Str(s string) Value        { return Value{Kind: StringKind, Str: s} }
func List(vs []Value) Value     { return Value{Kind: ListKind, List: vs} }

// String renders a Value the way the print/1 builtin and the diagnostics
// layer both want it: no quoting of strings or characters, matching what a
// user typed.
func (v Value) String() string {
	switch v.Kind {
	case NilKind:
		return "nil"
	case BoolKind:
		if v.Bool {
			return "true"
		}
		return "false"
	case IntKind:
		return v.Int.String()
	case DecimalKind:
		return v.Dec.String()
	case CharKind:
		return string(v.Char)
	case StringKind:
		return v.Str
	case ListKind:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("<value kind %d>", v.Kind)
	}
}

// Equal is structural equality, used by == and != and by switch-case
// matching. Values of different Kind are never equal (in particular Nil
// only equals Nil; the analyzer's Comparable lattice is what keeps a
// well-typed program from ever asking this about mismatched kinds).
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case NilKind:
		return true
	case BoolKind:
		return v.Bool == other.Bool
	case IntKind:
		return v.Int.Cmp(other.Int) == 0
	case DecimalKind:
		return v.Dec.Equal(other.Dec)
	case CharKind:
		return v.Char == other.Char
	case StringKind:
		return v.Str == other.Str
	case ListKind:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Compare orders two comparable values (Integer, Decimal, Character,
// String) the way < and > need. It panics on incomparable kinds; the
// analyzer's Comparable-lattice check guarantees interp never calls it with
// anything else.
func (v Value) Compare(other Value) int {
	switch v.Kind {
	case IntKind:
		return v.Int.Cmp(other.Int)
	case DecimalKind:
		return v.Dec.Cmp(other.Dec)
	case CharKind:
		switch {
		case v.Char < other.Char:
			return -1
		case v.Char > other.Char:
			return 1
		default:
			return 0
		}
	case StringKind:
		return strings.Compare(v.Str, other.Str)
	default:
		panic(fmt.Sprintf("value: Compare called on non-comparable kind %d", v.Kind))
	}
}

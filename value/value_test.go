package value

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEqualAcrossKinds(t *testing.T) {
	n := Int(big.NewInt(3))
	s := Str("3")
	if n.Equal(s) {
		t.Errorf("Int(3).Equal(Str(\"3\")) = true, want false")
	}
	if !Nil().Equal(Nil()) {
		t.Errorf("Nil().Equal(Nil()) = false, want true")
	}
}

func TestCompareDecimal(t *testing.T) {
	a := Dec(decimal.RequireFromString("1.50"))
	b := Dec(decimal.RequireFromString("1.5"))
	if a.Compare(b) != 0 {
		t.Errorf("Compare(1.50, 1.5) = %d, want 0", a.Compare(b))
	}
	if !a.Equal(b) {
		t.Errorf("1.50 should Equal 1.5")
	}
}

func TestListEqual(t *testing.T) {
	a := List([]Value{Int(big.NewInt(1)), Int(big.NewInt(2))})
	b := List([]Value{Int(big.NewInt(1)), Int(big.NewInt(2))})
	c := List([]Value{Int(big.NewInt(1)), Int(big.NewInt(3))})
	if !a.Equal(b) {
		t.Errorf("equal lists compared unequal")
	}
	if a.Equal(c) {
		t.Errorf("unequal lists compared equal")
	}
}

func TestString(t *testing.T) {
	v := List([]Value{Bool(true), Str("hi")})
	if got, want := v.String(), "[true, hi]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

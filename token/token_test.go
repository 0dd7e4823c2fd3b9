package token

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Identifier, "IDENTIFIER"},
		{Integer, "INTEGER"},
		{Decimal, "DECIMAL"},
		{Character, "CHARACTER"},
		{String, "STRING"},
		{Operator, "OPERATOR"},
	}
	for _, test := range tests {
		if got := test.kind.String(); got != test.want {
			t.Errorf("Kind(%d).String() = %s, want %s", test.kind, got, test.want)
		}
	}
}

func TestTokenIs(t *testing.T) {
	tok := Token{Kind: Operator, Literal: "==", Offset: 4}

	if !tok.Is(Operator, "==") {
		t.Errorf("Is(Operator, \"==\") = false, want true")
	}
	if !tok.Is(Operator, "") {
		t.Errorf("Is(Operator, \"\") = false, want true")
	}
	if tok.Is(Operator, "!=") {
		t.Errorf("Is(Operator, \"!=\") = true, want false")
	}
	if tok.Is(Identifier, "") {
		t.Errorf("Is(Identifier, \"\") = true, want false")
	}
}

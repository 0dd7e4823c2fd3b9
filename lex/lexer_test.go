package lex

import (
	"testing"

	"github.com/wend-lang/wendc/token"
	"github.com/wend-lang/wendc/wenderr"
)

func TestHelloWorldTokens(t *testing.T) {
	toks, err := New(`print("Hello, World!");`).All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Token{
		{Kind: token.Identifier, Literal: "print", Offset: 0},
		{Kind: token.Operator, Literal: "(", Offset: 5},
		{Kind: token.String, Literal: `"Hello, World!"`, Offset: 6},
		{Kind: token.Operator, Literal: ")", Offset: 21},
		{Kind: token.Operator, Literal: ";", Offset: 22},
	}
	assertTokens(t, toks, want)
}

func TestArithmeticMix(t *testing.T) {
	toks, err := New("x + 1 == y / 2.0 - 3").All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Token{
		{Kind: token.Identifier, Literal: "x", Offset: 0},
		{Kind: token.Operator, Literal: "+", Offset: 2},
		{Kind: token.Integer, Literal: "1", Offset: 4},
		{Kind: token.Operator, Literal: "==", Offset: 6},
		{Kind: token.Identifier, Literal: "y", Offset: 9},
		{Kind: token.Operator, Literal: "/", Offset: 11},
		{Kind: token.Decimal, Literal: "2.0", Offset: 13},
		{Kind: token.Operator, Literal: "-", Offset: 17},
		{Kind: token.Integer, Literal: "3", Offset: 19},
	}
	assertTokens(t, toks, want)
}

func TestIdentifierBoundary(t *testing.T) {
	if _, err := New("@handle").All(); err != nil {
		t.Errorf("@handle should lex, got error: %v", err)
	}
	toks, err := New("_bad").All()
	if err == nil {
		t.Fatalf("leading underscore should not start an identifier, got %v", toks)
	}
	if perr, ok := err.(*wenderr.ParseError); !ok || perr.Offset != 0 {
		t.Errorf("expected a ParseError at offset 0 for _bad, got %v", err)
	}
}

func TestNegativeNumberVsOperator(t *testing.T) {
	toks, err := New("-1").All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.Integer || toks[0].Literal != "-1" {
		t.Fatalf("-1 should lex as a single Integer token, got %v", toks)
	}

	toks, err = New("- 1").All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 2 || toks[0].Kind != token.Operator || toks[1].Kind != token.Integer {
		t.Fatalf("- 1 should lex as Operator then Integer, got %v", toks)
	}
}

func TestLeadingZeroRejected(t *testing.T) {
	if _, err := New("007").All(); err == nil {
		t.Errorf("007 should be a lex error")
	}
}

func TestNegativeZeroRejected(t *testing.T) {
	if _, err := New("-0").All(); err == nil {
		t.Errorf("-0 should be a lex error")
	}
	if _, err := New("-0.0").All(); err != nil {
		t.Errorf("-0.0 should lex fine (has a fractional part): %v", err)
	}
}

func TestTrailingDotIsNotDecimal(t *testing.T) {
	toks, err := New("1.").All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Token{
		{Kind: token.Integer, Literal: "1", Offset: 0},
		{Kind: token.Operator, Literal: ".", Offset: 1},
	}
	assertTokens(t, toks, want)
}

func TestUnterminatedString(t *testing.T) {
	src := `"unterminated`
	_, err := New(src).All()
	if err == nil {
		t.Fatalf("expected a lex error")
	}
	perr, ok := err.(interface{ Error() string })
	_ = perr
	if !ok {
		t.Fatalf("expected an error implementing error")
	}
}

func TestOperatorGreediness(t *testing.T) {
	toks, err := New("!====").All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"!=", "==", "="}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Literal != w {
			t.Errorf("token %d = %q, want %q", i, toks[i].Literal, w)
		}
	}
}

func TestCharacterEscape(t *testing.T) {
	toks, err := New(`'\n'`).All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != token.Character || toks[0].Literal != `'\n'` {
		t.Fatalf("got %v", toks)
	}
}

func TestRoundTrip(t *testing.T) {
	src := `LET x: Integer = 42; print('\t'); "a\"b" y-z`
	toks, err := New(src).All()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runes := []rune(src)
	for _, tok := range toks {
		got := string(runes[tok.Offset : tok.Offset+len([]rune(tok.Literal))])
		if got != tok.Literal {
			t.Errorf("round-trip failed for %v: source substring %q", tok, got)
		}
	}
}

func assertTokens(t *testing.T, got, want []token.Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

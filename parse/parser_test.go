package parse

import (
	"testing"

	"github.com/wend-lang/wendc/ast"
	"github.com/wend-lang/wendc/lex"
)

func parseSource(t *testing.T, src string) *ast.Source {
	t.Helper()
	toks, err := lex.New(src).All()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	out, err := New(toks, len([]rune(src))).ParseSource()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return out
}

func TestParseHelloWorldStatement(t *testing.T) {
	toks, err := lex.New(`print("Hello, World!");`).All()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	p := New(toks, 23)
	stmt, err := p.parseStatement()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	es, ok := stmt.(*ast.ExprStatement)
	if !ok {
		t.Fatalf("expected *ast.ExprStatement, got %T", stmt)
	}
	call, ok := es.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %T", es.Expr)
	}
	if call.Name != "print" || len(call.Args) != 1 {
		t.Fatalf("unexpected call: %+v", call)
	}
}

func TestParseS4RunMain(t *testing.T) {
	src := `VAR x: Integer = 1; FUN main(): Integer DO RETURN x + 2; END`
	out := parseSource(t, src)
	if len(out.Globals) != 1 || len(out.Functions) != 1 {
		t.Fatalf("expected 1 global and 1 function, got %+v", out)
	}
	if out.Functions[0].Name != "main" {
		t.Errorf("expected function named main, got %s", out.Functions[0].Name)
	}
}

func TestParseS6SwitchDefault(t *testing.T) {
	src := `FUN main(): Integer DO
		SWITCH c
		CASE 1: print("one");
		CASE 2: print("two");
		DEFAULT print("other");
		END
		RETURN 0;
	END`
	out := parseSource(t, src)
	fn := out.Functions[0]
	sw, ok := fn.Body[0].(*ast.Switch)
	if !ok {
		t.Fatalf("expected *ast.Switch, got %T", fn.Body[0])
	}
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 cases (2 explicit + default), got %d", len(sw.Cases))
	}
	if sw.Cases[2].Value != nil {
		t.Errorf("expected default case (nil value) last")
	}
}

func TestListGlobalRequiresInitializer(t *testing.T) {
	toks, err := lex.New(`LIST xs: Integer;`).All()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = New(toks, 17).ParseSource()
	if err == nil {
		t.Errorf("expected an error for a LIST global with no initializer")
	}
}

func TestGroupMustWrapExpression(t *testing.T) {
	src := `FUN main(): Integer DO RETURN (1 + 2); END`
	out := parseSource(t, src)
	ret := out.Functions[0].Body[0].(*ast.Return)
	if _, ok := ret.Value.(*ast.Group); !ok {
		t.Fatalf("expected *ast.Group, got %T", ret.Value)
	}
}

func TestLeftAssociativity(t *testing.T) {
	src := `FUN main(): Integer DO RETURN 1 - 2 - 3; END`
	out := parseSource(t, src)
	ret := out.Functions[0].Body[0].(*ast.Return)
	top, ok := ret.Value.(*ast.Binary)
	if !ok || top.Op != "-" {
		t.Fatalf("expected top-level '-' binary, got %+v", ret.Value)
	}
	if _, ok := top.Left.(*ast.Binary); !ok {
		t.Fatalf("expected left-associative nesting on the left operand, got %T", top.Left)
	}
}

func TestParseErrorOffsetAtEOF(t *testing.T) {
	src := `FUN main(): Integer DO RETURN 1;`
	toks, err := lex.New(src).All()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	_, err = New(toks, len([]rune(src))).ParseSource()
	if err == nil {
		t.Fatalf("expected a parse error for a missing END")
	}
}

package analyze

import (
	"math/big"
	"testing"

	"github.com/wend-lang/wendc/ast"
	"github.com/wend-lang/wendc/lex"
	"github.com/wend-lang/wendc/parse"
	"github.com/wend-lang/wendc/scope"
	"github.com/wend-lang/wendc/types"
	"github.com/wend-lang/wendc/value"
)

func intLiteralValue(n int64) value.Value {
	return value.Int(big.NewInt(n))
}

func mustParse(t *testing.T, src string) *ast.Source {
	t.Helper()
	toks, err := lex.New(src).All()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	out, err := parse.New(toks, len([]rune(src))).ParseSource()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return out
}

func rootScope() *scope.Scope {
	root := scope.New(nil)
	InstallBuiltins(root)
	return root
}

func TestAnalyzeS4RunMain(t *testing.T) {
	src := `VAR x: Integer = 1; FUN main(): Integer DO RETURN x + 2; END`
	out := mustParse(t, src)
	if err := AnalyzeSource(rootScope(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ret := out.Functions[0].Body[0].(*ast.Return)
	if ret.Value.Type() != types.Integer {
		t.Errorf("return value type = %s, want Integer", ret.Value.Type())
	}
}

func TestMissingMainRejected(t *testing.T) {
	out := mustParse(t, `FUN f(): Integer DO RETURN 1; END`)
	if err := AnalyzeSource(rootScope(), out); err == nil {
		t.Errorf("expected an error for a program without main/0")
	}
}

func TestMainMustReturnInteger(t *testing.T) {
	out := mustParse(t, `FUN main(): Boolean DO RETURN TRUE; END`)
	if err := AnalyzeSource(rootScope(), out); err == nil {
		t.Errorf("expected an error for main/0 not returning Integer")
	}
}

func TestUndefinedVariableRejected(t *testing.T) {
	out := mustParse(t, `FUN main(): Integer DO RETURN y; END`)
	if err := AnalyzeSource(rootScope(), out); err == nil {
		t.Errorf("expected an error for an undefined variable")
	}
}

func TestIfConditionMustBeBoolean(t *testing.T) {
	out := mustParse(t, `FUN main(): Integer DO IF 1 DO RETURN 1; END RETURN 0; END`)
	if err := AnalyzeSource(rootScope(), out); err == nil {
		t.Errorf("expected an error for a non-Boolean if condition")
	}
}

func TestComparableMismatchRejected(t *testing.T) {
	out := mustParse(t, `FUN main(): Integer DO IF 1 == "a" DO RETURN 1; END RETURN 0; END`)
	if err := AnalyzeSource(rootScope(), out); err == nil {
		t.Errorf("expected an error comparing Integer to String")
	}
}

func TestGroupMustContainBinary(t *testing.T) {
	out := mustParse(t, `FUN main(): Integer DO RETURN (1); END`)
	if err := AnalyzeSource(rootScope(), out); err == nil {
		t.Errorf("expected an error for a group that doesn't wrap a Binary")
	}
}

func TestS5ClosureOverGlobal(t *testing.T) {
	src := `VAR x: Integer = 1; VAR y: Integer = 2; VAR z: Integer = 3;
	FUN f(z: Integer): Integer DO RETURN x + y + z; END
	FUN main(): Integer DO LET y = 4; RETURN f(5); END`
	out := mustParse(t, src)
	if err := AnalyzeSource(rootScope(), out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCallArityMismatchRejected(t *testing.T) {
	src := `FUN f(x: Integer): Integer DO RETURN x; END
	FUN main(): Integer DO RETURN f(1, 2); END`
	out := mustParse(t, src)
	if err := AnalyzeSource(rootScope(), out); err == nil {
		t.Errorf("expected an error calling f/1 with two arguments")
	}
}

func TestSwitchDefaultMustBeLastIsEnforcedByAnalyzer(t *testing.T) {
	sw := &ast.Switch{
		Condition: &ast.Literal{Value: intLiteralValue(1)},
		Cases: []*ast.Case{
			{Value: nil, Block: nil},
			{Value: &ast.Literal{Value: intLiteralValue(1)}, Block: nil},
		},
	}
	fn := &ast.Function{Name: "main", ReturnTypeName: "Integer", Body: []ast.Statement{
		sw, &ast.Return{Value: &ast.Literal{Value: intLiteralValue(0)}},
	}}
	src := &ast.Source{Functions: []*ast.Function{fn}}
	if err := AnalyzeSource(rootScope(), src); err == nil {
		t.Errorf("expected an error when the default case is not last")
	}
}

package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wend-lang/wendc/analyze"
	"github.com/wend-lang/wendc/lex"
	"github.com/wend-lang/wendc/parse"
	"github.com/wend-lang/wendc/scope"
)

func run(t *testing.T, src string) (result string, stdout string) {
	t.Helper()
	toks, err := lex.New(src).All()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	tree, err := parse.New(toks, len([]rune(src))).ParseSource()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	analyzerRoot := scope.New(nil)
	analyze.InstallBuiltins(analyzerRoot)
	if err := analyze.AnalyzeSource(analyzerRoot, tree); err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	var buf bytes.Buffer
	it := New(nil, &buf)
	v, err := it.Run(tree)
	if err != nil {
		t.Fatalf("interpret error: %v", err)
	}
	return v.String(), buf.String()
}

func TestS1HelloWorld(t *testing.T) {
	src := `FUN main(): Integer DO print("Hello, World!"); RETURN 0; END`
	_, stdout := run(t, src)
	if stdout != "Hello, World!\n" {
		t.Errorf("stdout = %q, want %q", stdout, "Hello, World!\n")
	}
}

func TestS4RunMain(t *testing.T) {
	src := `VAR x: Integer = 1; FUN main(): Integer DO RETURN x + 2; END`
	result, _ := run(t, src)
	if result != "3" {
		t.Errorf("result = %s, want 3", result)
	}
}

func TestS5ClosureOverGlobal(t *testing.T) {
	src := `VAR x: Integer = 1; VAR y: Integer = 2; VAR z: Integer = 3;
	FUN f(z: Integer): Integer DO RETURN x + y + z; END
	FUN main(): Integer DO LET y = 4; RETURN f(5); END`
	result, _ := run(t, src)
	if result != "8" {
		t.Errorf("result = %s, want 8", result)
	}
}

func TestSwitchCaseSelectsMatchingBranch(t *testing.T) {
	src := `FUN choose(c: Integer): Nil DO
		SWITCH c
		CASE 1: print("one");
		CASE 2: print("two");
		DEFAULT print("other");
		END
	END
	FUN main(): Integer DO choose(2); RETURN 0; END`
	_, stdout := run(t, src)
	if stdout != "two\n" {
		t.Errorf("stdout = %q, want %q", stdout, "two\n")
	}
}

func TestSwitchCaseFallsThroughToDefault(t *testing.T) {
	src := `FUN choose(c: Integer): Nil DO
		SWITCH c
		CASE 1: print("one");
		CASE 2: print("two");
		DEFAULT print("other");
		END
	END
	FUN main(): Integer DO choose(9); RETURN 0; END`
	_, stdout := run(t, src)
	if stdout != "other\n" {
		t.Errorf("stdout = %q, want %q", stdout, "other\n")
	}
}

func TestEqualityNilVsNonNil(t *testing.T) {
	src := `FUN main(): Integer DO
		IF NIL == NIL DO RETURN 1; END
		RETURN 0;
	END`
	result, _ := run(t, src)
	if result != "1" {
		t.Errorf("result = %s, want 1", result)
	}
}

func TestWhileLoopAccumulates(t *testing.T) {
	src := `FUN main(): Integer DO
		LET total = 0;
		LET i = 0;
		WHILE i < 5 DO
			total = total + i;
			i = i + 1;
		END
		RETURN total;
	END`
	result, _ := run(t, src)
	if result != "10" {
		t.Errorf("result = %s, want 10", result)
	}
}

func TestListIndexMutation(t *testing.T) {
	src := `LIST xs: Integer = [1, 2, 3];
	FUN main(): Integer DO
		xs[1] = 9;
		RETURN xs[1];
	END`
	result, _ := run(t, src)
	if result != "9" {
		t.Errorf("result = %s, want 9", result)
	}
}

func TestLogarithmBuiltin(t *testing.T) {
	src := `FUN main(): Integer DO
		print(logarithm(1.0));
		RETURN 0;
	END`
	_, stdout := run(t, src)
	if !strings.HasPrefix(stdout, "0") {
		t.Errorf("stdout = %q, want a log(1) result starting with 0", stdout)
	}
}

func TestConverterBuiltin(t *testing.T) {
	src := `FUN main(): Integer DO
		print(converter(255, 16));
		RETURN 0;
	END`
	_, stdout := run(t, src)
	if stdout != "ff\n" {
		t.Errorf("stdout = %q, want %q", stdout, "ff\n")
	}
}

func TestDivisionByZeroRejected(t *testing.T) {
	src := `FUN main(): Integer DO RETURN 1 / 0; END`
	toks, err := lex.New(src).All()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	tree, err := parse.New(toks, len([]rune(src))).ParseSource()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	analyzerRoot := scope.New(nil)
	analyze.InstallBuiltins(analyzerRoot)
	if err := analyze.AnalyzeSource(analyzerRoot, tree); err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	var buf bytes.Buffer
	it := New(nil, &buf)
	if _, err := it.Run(tree); err == nil {
		t.Errorf("expected a division-by-zero error")
	}
}

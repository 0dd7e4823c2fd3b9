package java

import (
	"strings"
	"testing"

	"github.com/wend-lang/wendc/analyze"
	"github.com/wend-lang/wendc/lex"
	"github.com/wend-lang/wendc/parse"
	"github.com/wend-lang/wendc/scope"
)

func TestGenerateS4(t *testing.T) {
	src := `VAR x: Integer = 1; FUN main(): Integer DO RETURN x + 2; END`
	toks, err := lex.New(src).All()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	tree, err := parse.New(toks, len([]rune(src))).ParseSource()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	root := scope.New(nil)
	analyze.InstallBuiltins(root)
	if err := analyze.AnalyzeSource(root, tree); err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	out := Generate(tree)
	if !strings.Contains(out, "public class Main") {
		t.Errorf("output missing class declaration:\n%s", out)
	}
	if !strings.Contains(out, "java.math.BigInteger x = 1") {
		t.Errorf("output missing global field:\n%s", out)
	}
	if !strings.Contains(out, "public java.math.BigInteger main()") {
		t.Errorf("output missing main method signature:\n%s", out)
	}
	if !strings.Contains(out, "System.exit(new Main().main());") {
		t.Errorf("output missing synthetic entry point:\n%s", out)
	}
}

func TestGeneratePrintCallsSystemOutPrintln(t *testing.T) {
	src := `FUN main(): Integer DO print("hi"); RETURN 0; END`
	toks, _ := lex.New(src).All()
	tree, err := parse.New(toks, len([]rune(src))).ParseSource()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	root := scope.New(nil)
	analyze.InstallBuiltins(root)
	if err := analyze.AnalyzeSource(root, tree); err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	out := Generate(tree)
	if !strings.Contains(out, `System.out.println("hi")`) {
		t.Errorf("output missing println call:\n%s", out)
	}
}

func TestGenerateListGlobalAsArray(t *testing.T) {
	src := `LIST xs: Integer = [1, 2, 3]; FUN main(): Integer DO RETURN xs[0]; END`
	toks, _ := lex.New(src).All()
	tree, err := parse.New(toks, len([]rune(src))).ParseSource()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	root := scope.New(nil)
	analyze.InstallBuiltins(root)
	if err := analyze.AnalyzeSource(root, tree); err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	out := Generate(tree)
	if !strings.Contains(out, "java.math.BigInteger[] xs = {1, 2, 3}") {
		t.Errorf("output missing array field:\n%s", out)
	}
}

// Package java pretty-prints an analyzed ast.Source as a single Java-like
// source file defining a class named Main. The contract is purely
// structural: globals become fields, functions become methods, and a
// synthetic public static void main bridges the host into the language's
// own main/0. There is no structural overlap with codegen.go's llir/llvm
// backend (see emit/llvmgen), which lowers the same tree to LLVM IR
// instead of source text.
package java

import (
	"fmt"
	"strings"

	"github.com/wend-lang/wendc/ast"
	"github.com/wend-lang/wendc/value"
)

// Generate renders src as a complete Java-like compilation unit.
func Generate(src *ast.Source) string {
	var b strings.Builder
	b.WriteString("public class Main {\n")

	for _, g := range src.Globals {
		writeField(&b, g)
	}
	if len(src.Globals) > 0 {
		b.WriteString("\n")
	}

	for _, fn := range src.Functions {
		writeMethod(&b, fn)
		b.WriteString("\n")
	}

	b.WriteString("    public static void main(String[] args) {\n")
	b.WriteString("        System.exit(new Main().main());\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

func writeField(b *strings.Builder, g *ast.Global) {
	qualifier := ""
	if !g.Mutable {
		qualifier = "final "
	}
	if g.Value != nil {
		if lit, ok := g.Value.(*ast.ListLiteral); ok {
			fmt.Fprintf(b, "    %s%s[] %s = %s;\n", qualifier, javaType(g.TypeName), g.Name, listInitializer(lit))
			return
		}
		fmt.Fprintf(b, "    %s%s %s = %s;\n", qualifier, javaType(g.TypeName), g.Name, exprText(g.Value))
		return
	}
	fmt.Fprintf(b, "    %s%s %s;\n", qualifier, javaType(g.TypeName), g.Name)
}

func listInitializer(lit *ast.ListLiteral) string {
	parts := make([]string, len(lit.Values))
	for i, v := range lit.Values {
		parts[i] = exprText(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func writeMethod(b *strings.Builder, fn *ast.Function) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s %s", javaType(fn.ParamTypeNames[i]), p)
	}
	ret := "void"
	if fn.ReturnTypeName != "" {
		ret = javaType(fn.ReturnTypeName)
	}
	fmt.Fprintf(b, "    public %s %s(%s) {\n", ret, fn.Name, strings.Join(params, ", "))
	writeBlock(b, fn.Body, "        ")
	b.WriteString("    }\n")
}

func writeBlock(b *strings.Builder, stmts []ast.Statement, indent string) {
	for _, s := range stmts {
		writeStatement(b, s, indent)
	}
}

func writeStatement(b *strings.Builder, s ast.Statement, indent string) {
	switch n := s.(type) {
	case *ast.ExprStatement:
		fmt.Fprintf(b, "%s%s;\n", indent, exprText(n.Expr))
	case *ast.Declaration:
		if n.Value != nil {
			fmt.Fprintf(b, "%svar %s = %s;\n", indent, n.Name, exprText(n.Value))
		} else {
			fmt.Fprintf(b, "%svar %s;\n", indent, n.Name)
		}
	case *ast.Assignment:
		fmt.Fprintf(b, "%s%s = %s;\n", indent, exprText(n.Receiver), exprText(n.Value))
	case *ast.If:
		fmt.Fprintf(b, "%sif (%s) {\n", indent, exprText(n.Condition))
		writeBlock(b, n.Then, indent+"    ")
		if len(n.Else) > 0 {
			fmt.Fprintf(b, "%s} else {\n", indent)
			writeBlock(b, n.Else, indent+"    ")
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *ast.Switch:
		fmt.Fprintf(b, "%sswitch (%s) {\n", indent, exprText(n.Condition))
		for _, c := range n.Cases {
			if c.Value == nil {
				fmt.Fprintf(b, "%sdefault:\n", indent+"    ")
			} else {
				fmt.Fprintf(b, "%scase %s:\n", indent+"    ", exprText(c.Value))
			}
			writeBlock(b, c.Block, indent+"        ")
			fmt.Fprintf(b, "%s    break;\n", indent)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *ast.While:
		fmt.Fprintf(b, "%swhile (%s) {\n", indent, exprText(n.Condition))
		writeBlock(b, n.Block, indent+"    ")
		fmt.Fprintf(b, "%s}\n", indent)
	case *ast.Return:
		fmt.Fprintf(b, "%sreturn %s;\n", indent, exprText(n.Value))
	}
}

func exprText(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Literal:
		return literalText(n)
	case *ast.Group:
		return "(" + exprText(n.Inner) + ")"
	case *ast.Binary:
		if n.Op == "^" {
			return fmt.Sprintf("pow(%s, %s)", exprText(n.Left), exprText(n.Right))
		}
		return fmt.Sprintf("%s %s %s", exprText(n.Left), n.Op, exprText(n.Right))
	case *ast.Access:
		if n.Offset != nil {
			return fmt.Sprintf("%s[%s]", n.Name, exprText(n.Offset))
		}
		return n.Name
	case *ast.Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = exprText(a)
		}
		return fmt.Sprintf("%s(%s)", javaCall(n.Name), strings.Join(args, ", "))
	case *ast.ListLiteral:
		return listInitializer(n)
	default:
		return ""
	}
}

func javaCall(name string) string {
	if name == "print" {
		return "System.out.println"
	}
	return name
}

// literalText re-inserts the escapes a Character/String literal's original
// source had before parse.decodeEscapes stripped them, matching the
// host source text a human author would have written.
func literalText(n *ast.Literal) string {
	v := n.Value
	switch v.Kind {
	case value.NilKind:
		return "null"
	case value.CharKind:
		return "'" + encodeEscapes(string(v.Char)) + "'"
	case value.StringKind:
		return "\"" + encodeEscapes(v.Str) + "\""
	default:
		return v.String()
	}
}

func encodeEscapes(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\b':
			b.WriteString(`\b`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func javaType(name string) string {
	switch name {
	case "Any":
		return "Object"
	case "Nil":
		return "void"
	case "Boolean":
		return "boolean"
	case "Integer":
		return "java.math.BigInteger"
	case "Decimal":
		return "java.math.BigDecimal"
	case "Character":
		return "char"
	case "String":
		return "String"
	case "Comparable":
		return "Comparable<?>"
	default:
		return name
	}
}

// astgen generates the is<Family>() marker method boilerplate that seals
// ast's Statement and Expression families, from a small DSL:
//
//	family Statement = ExprStatement, Declaration, ...;
//
// Run as: astgen ast.def ast_gen.go ast
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type Family struct {
	Name    string   `"family" @Ident "="`
	Members []string `@Ident ("," @Ident)* ";"`
}

type Grammar struct {
	Families []*Family `@@*`
}

func GenerateMarkers(pkgname string, g *Grammar) string {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by astgen from ast.def; DO NOT EDIT.")

	for _, fam := range g.Families {
		for _, member := range fam.Members {
			f.Func().Params(Op("*").Id(member)).Id("is" + fam.Name).Params().Block()
		}
	}

	return fmt.Sprintf("%#v", f)
}

func main() {
	parser := participle.MustBuild(&Grammar{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	g := Grammar{}
	if err := parser.ParseBytes(inData, &g); err != nil {
		panic(err)
	}

	if err := ioutil.WriteFile(out, []byte(GenerateMarkers(pkgname, &g)), os.ModePerm); err != nil {
		panic(err)
	}
}

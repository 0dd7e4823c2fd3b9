// Command wendc is the language's compiler/interpreter driver: tokens/ast
// dump commands, run (tree-walking interpretation), build (Java or LLVM IR
// emission), and init (wend.yaml scaffolding), modeled on the teacher's own
// urfave/cli/v2 app in main.go.
package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/wend-lang/wendc/analyze"
	"github.com/wend-lang/wendc/ast"
	"github.com/wend-lang/wendc/emit/java"
	"github.com/wend-lang/wendc/emit/llvmgen"
	"github.com/wend-lang/wendc/interp"
	"github.com/wend-lang/wendc/lex"
	"github.com/wend-lang/wendc/parse"
	"github.com/wend-lang/wendc/scope"
	"github.com/wend-lang/wendc/wendproj"
)

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

func readEntry(c *cli.Context) (string, []byte, error) {
	file := c.Args().First()
	if file == "" {
		m, err := wendproj.Read()
		if err != nil {
			return "", nil, fmt.Errorf("no file given and no %s in the current directory: %w", wendproj.ManifestFile, err)
		}
		file = m.Entry
	}
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return "", nil, err
	}
	return file, data, nil
}

func lexAndParse(src string) (*ast.Source, error) {
	toks, err := lex.New(src).All()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	tree, err := parse.New(toks, len([]rune(src))).ParseSource()
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return tree, nil
}

func lexParseAnalyze(src string) (*ast.Source, error) {
	tree, err := lexAndParse(src)
	if err != nil {
		return nil, err
	}
	root := scope.New(nil)
	analyze.InstallBuiltins(root)
	if err := analyze.AnalyzeSource(root, tree); err != nil {
		return nil, tracerr.Wrap(err)
	}
	return tree, nil
}

func printFatal(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
	if trace, ok := err.(tracerr.Error); ok {
		tracerr.PrintSourceColor(trace)
	}
	os.Exit(1)
}

func main() {
	app := &cli.App{
		Name:  "wendc",
		Usage: "Wend compiler and interpreter",
		ExitErrHandler: func(c *cli.Context, err error) {
			if err != nil {
				log.Fatalf("wendc: %v", err)
			}
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "scaffold a wend.yaml in the current directory",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return fmt.Errorf("init requires a package name")
					}
					return wendproj.Write(wendproj.New(name))
				},
			},
			{
				Name:  "tokens",
				Usage: "dump the lexed tokens of a file",
				Action: func(c *cli.Context) error {
					_, data, err := readEntry(c)
					if err != nil {
						printFatal(err)
					}
					toks, err := lex.New(string(data)).All()
					if err != nil {
						printFatal(tracerr.Wrap(err))
					}
					repr.Println(toks)
					return nil
				},
			},
			{
				Name:  "ast",
				Usage: "dump the analyzed AST of a file",
				Action: func(c *cli.Context) error {
					_, data, err := readEntry(c)
					if err != nil {
						printFatal(err)
					}
					tree, err := lexParseAnalyze(string(data))
					if err != nil {
						printFatal(err)
					}
					repr.Println(tree)
					return nil
				},
			},
			{
				Name:  "run",
				Usage: "interpret a file and exit with its main/0 result",
				Action: func(c *cli.Context) error {
					_, data, err := readEntry(c)
					if err != nil {
						printFatal(err)
					}
					tree, err := lexParseAnalyze(string(data))
					if err != nil {
						printFatal(err)
					}
					it := interp.New(nil, os.Stdout)
					result, err := it.Run(tree)
					if err != nil {
						printFatal(tracerr.Wrap(err))
					}
					os.Exit(int(result.Int.Int64()))
					return nil
				},
			},
			{
				Name:  "build",
				Usage: "emit a file to a target backend",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "target", Value: "java"},
					&cli.StringFlag{Name: "output"},
				},
				Action: func(c *cli.Context) error {
					_, data, err := readEntry(c)
					if err != nil {
						printFatal(err)
					}
					tree, err := lexParseAnalyze(string(data))
					if err != nil {
						printFatal(err)
					}

					var out string
					switch c.String("target") {
					case "java":
						out = java.Generate(tree)
					case "llvm":
						mod, err := llvmgen.Generate(tree)
						if err != nil {
							printFatal(tracerr.Wrap(err))
						}
						out = mod.String()
					default:
						return fmt.Errorf("unknown target %q (want java or llvm)", c.String("target"))
					}

					if output := c.String("output"); output != "" {
						return ioutil.WriteFile(output, []byte(out), 0o644)
					}
					fmt.Print(out)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		printFatal(err)
	}
}

// Package analyze performs the single top-down walk that resolves names,
// assigns a type to every expression, and checks assignability and the
// structural rules (exactly one main/0, switch default last, and so on).
package analyze

import (
	"github.com/wend-lang/wendc/ast"
	"github.com/wend-lang/wendc/scope"
	"github.com/wend-lang/wendc/types"
	"github.com/wend-lang/wendc/value"
	"github.com/wend-lang/wendc/wenderr"
)

// Analyzer walks a parsed Source and annotates it in place.
type Analyzer struct {
	scope      *scope.Scope
	returnType types.Type
}

// New creates an Analyzer rooted at a fresh scope that is a child of root
// (root typically holds the built-in function signatures interp also
// installs — see analyze.InstallBuiltins).
func New(root *scope.Scope) *Analyzer {
	return &Analyzer{scope: scope.New(root)}
}

// InstallBuiltins declares the signatures of the built-in functions interp
// preinstalls, so calls to them typecheck. It does not install a callable
// Body — only interp needs one.
func InstallBuiltins(s *scope.Scope) {
	s.DefineFunction(&scope.Function{Name: "print", ParamTypes: []types.Type{types.Any}, ReturnType: types.Nil})
	s.DefineFunction(&scope.Function{Name: "logarithm", ParamTypes: []types.Type{types.Decimal}, ReturnType: types.Decimal})
	s.DefineFunction(&scope.Function{Name: "converter", ParamTypes: []types.Type{types.Integer, types.Integer}, ReturnType: types.String})
}

// AnalyzeSource analyzes src in place and returns an error for the first
// problem found.
func AnalyzeSource(root *scope.Scope, src *ast.Source) error {
	a := New(root)

	for _, g := range src.Globals {
		if err := a.analyzeGlobal(g); err != nil {
			return err
		}
	}
	for _, fn := range src.Functions {
		if err := a.analyzeFunction(fn); err != nil {
			return err
		}
	}

	mains := 0
	for _, fn := range src.Functions {
		if fn.Name == "main" && len(fn.Params) == 0 {
			mains++
		}
	}
	if mains > 1 {
		return wenderr.Newf("program must define exactly one main/0 function, found %d", mains)
	}
	main, ok := a.scope.LookupFunction("main", 0)
	if !ok {
		return wenderr.Newf("program must define a main/0 function")
	}
	if main.ReturnType != types.Integer {
		return wenderr.Newf("main/0 must return Integer, not %s", main.ReturnType)
	}
	return nil
}

func (a *Analyzer) analyzeGlobal(g *ast.Global) error {
	declared, ok := types.Lookup(g.TypeName)
	if !ok {
		return wenderr.Newf("unknown type %q", g.TypeName)
	}
	if g.Value != nil {
		if err := a.analyzeExpression(g.Value); err != nil {
			return err
		}
		if !types.AssignableTo(g.Value.Type(), declared) {
			return wenderr.Newf("cannot assign %s to global %q of type %s", g.Value.Type(), g.Name, declared)
		}
	}
	v := &scope.Variable{Name: g.Name, Mutable: g.Mutable, Type: declared}
	g.Variable = v
	a.scope.DefineVariable(v)
	return nil
}

func (a *Analyzer) analyzeFunction(fn *ast.Function) error {
	paramTypes := make([]types.Type, len(fn.ParamTypeNames))
	for i, tn := range fn.ParamTypeNames {
		t, ok := types.Lookup(tn)
		if !ok {
			return wenderr.Newf("unknown parameter type %q", tn)
		}
		paramTypes[i] = t
	}
	returnType := types.Nil
	if fn.ReturnTypeName != "" {
		t, ok := types.Lookup(fn.ReturnTypeName)
		if !ok {
			return wenderr.Newf("unknown return type %q", fn.ReturnTypeName)
		}
		returnType = t
	}

	resolved := &scope.Function{Name: fn.Name, ParamTypes: paramTypes, ReturnType: returnType}
	a.scope.DefineFunction(resolved)
	fn.Function = resolved

	outerScope, outerReturn := a.scope, a.returnType
	a.scope = scope.New(outerScope)
	a.returnType = returnType
	for i, name := range fn.Params {
		a.scope.DefineVariable(&scope.Variable{Name: name, Mutable: true, Type: paramTypes[i]})
	}

	var err error
	for _, stmt := range fn.Body {
		if err = a.analyzeStatement(stmt); err != nil {
			break
		}
	}

	a.scope, a.returnType = outerScope, outerReturn
	return err
}

func (a *Analyzer) inBlock(fn func() error) error {
	outer := a.scope
	a.scope = scope.New(outer)
	err := fn()
	a.scope = outer
	return err
}

func (a *Analyzer) analyzeBlock(stmts []ast.Statement) error {
	return a.inBlock(func() error {
		for _, s := range stmts {
			if err := a.analyzeStatement(s); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *Analyzer) analyzeStatement(s ast.Statement) error {
	switch n := s.(type) {
	case *ast.ExprStatement:
		return a.analyzeExpression(n.Expr)
	case *ast.Declaration:
		return a.analyzeDeclaration(n)
	case *ast.Assignment:
		return a.analyzeAssignment(n)
	case *ast.If:
		return a.analyzeIf(n)
	case *ast.Switch:
		return a.analyzeSwitch(n)
	case *ast.While:
		return a.analyzeWhile(n)
	case *ast.Return:
		return a.analyzeReturn(n)
	default:
		return wenderr.Newf("analyze: unknown statement node %T", n)
	}
}

func (a *Analyzer) analyzeDeclaration(d *ast.Declaration) error {
	var declared types.Type
	haveDeclared := false
	if d.TypeName != "" {
		t, ok := types.Lookup(d.TypeName)
		if !ok {
			return wenderr.Newf("unknown type %q", d.TypeName)
		}
		declared, haveDeclared = t, true
	}

	if d.Value != nil {
		if err := a.analyzeExpression(d.Value); err != nil {
			return err
		}
		if haveDeclared {
			if !types.AssignableTo(d.Value.Type(), declared) {
				return wenderr.Newf("cannot assign %s to %q of type %s", d.Value.Type(), d.Name, declared)
			}
		} else {
			declared = d.Value.Type()
		}
	} else if !haveDeclared {
		return wenderr.Newf("declaration of %q needs a type annotation or an initializer", d.Name)
	}

	v := &scope.Variable{Name: d.Name, Mutable: true, Type: declared}
	d.Variable = v
	a.scope.DefineVariable(v)
	return nil
}

func (a *Analyzer) analyzeAssignment(as *ast.Assignment) error {
	access, ok := as.Receiver.(*ast.Access)
	if !ok {
		return wenderr.Newf("assignment target must be a variable or list element")
	}
	if err := a.analyzeExpression(access); err != nil {
		return err
	}
	if err := a.analyzeExpression(as.Value); err != nil {
		return err
	}
	if !types.AssignableTo(as.Value.Type(), access.Variable.Type) {
		return wenderr.Newf("cannot assign %s to %q of type %s", as.Value.Type(), access.Name, access.Variable.Type)
	}
	return nil
}

func (a *Analyzer) analyzeIf(n *ast.If) error {
	if err := a.analyzeExpression(n.Condition); err != nil {
		return err
	}
	if n.Condition.Type() != types.Boolean {
		return wenderr.Newf("if condition must be Boolean, got %s", n.Condition.Type())
	}
	if len(n.Then) == 0 {
		return wenderr.Newf("if's then-block must not be empty")
	}
	if err := a.analyzeBlock(n.Then); err != nil {
		return err
	}
	return a.analyzeBlock(n.Else)
}

func (a *Analyzer) analyzeSwitch(n *ast.Switch) error {
	if err := a.analyzeExpression(n.Condition); err != nil {
		return err
	}
	condType := n.Condition.Type()

	for i, c := range n.Cases {
		isDefault := c.Value == nil
		if isDefault && i != len(n.Cases)-1 {
			return wenderr.Newf("the default case must be last")
		}
		if !isDefault {
			if err := a.analyzeExpression(c.Value); err != nil {
				return err
			}
			if !types.AssignableTo(c.Value.Type(), condType) {
				return wenderr.Newf("case value of type %s is not assignable to switch condition type %s", c.Value.Type(), condType)
			}
		}
		if err := a.analyzeBlock(c.Block); err != nil {
			return err
		}
	}
	if len(n.Cases) == 0 || n.Cases[len(n.Cases)-1].Value != nil {
		return wenderr.Newf("switch must end with a default case")
	}
	return nil
}

func (a *Analyzer) analyzeWhile(n *ast.While) error {
	if err := a.analyzeExpression(n.Condition); err != nil {
		return err
	}
	if n.Condition.Type() != types.Boolean {
		return wenderr.Newf("while condition must be Boolean, got %s", n.Condition.Type())
	}
	return a.analyzeBlock(n.Block)
}

func (a *Analyzer) analyzeReturn(n *ast.Return) error {
	if err := a.analyzeExpression(n.Value); err != nil {
		return err
	}
	if !types.AssignableTo(n.Value.Type(), a.returnType) {
		return wenderr.Newf("return value of type %s is not assignable to the function's return type %s", n.Value.Type(), a.returnType)
	}
	return nil
}

func (a *Analyzer) analyzeExpression(e ast.Expression) error {
	switch n := e.(type) {
	case *ast.Literal:
		return a.analyzeLiteral(n)
	case *ast.Group:
		return a.analyzeGroup(n)
	case *ast.Binary:
		return a.analyzeBinary(n)
	case *ast.Access:
		return a.analyzeAccess(n)
	case *ast.Call:
		return a.analyzeCall(n)
	case *ast.ListLiteral:
		return a.analyzeListLiteral(n)
	default:
		return wenderr.Newf("analyze: unknown expression node %T", n)
	}
}

func (a *Analyzer) analyzeLiteral(l *ast.Literal) error {
	switch l.Value.Kind {
	case value.NilKind:
		l.SetType(types.Nil)
	case value.BoolKind:
		l.SetType(types.Boolean)
	case value.IntKind:
		l.SetType(types.Integer)
	case value.DecimalKind:
		l.SetType(types.Decimal)
	case value.CharKind:
		l.SetType(types.Character)
	case value.StringKind:
		l.SetType(types.String)
	default:
		return wenderr.Newf("analyze: literal has unexpected runtime kind %d", l.Value.Kind)
	}
	return nil
}

func (a *Analyzer) analyzeGroup(g *ast.Group) error {
	if err := a.analyzeExpression(g.Inner); err != nil {
		return err
	}
	if _, ok := g.Inner.(*ast.Binary); !ok {
		return wenderr.Newf("a parenthesized group must contain a binary expression")
	}
	g.SetType(g.Inner.Type())
	return nil
}

func (a *Analyzer) analyzeBinary(b *ast.Binary) error {
	if err := a.analyzeExpression(b.Left); err != nil {
		return err
	}
	if err := a.analyzeExpression(b.Right); err != nil {
		return err
	}
	lt, rt := b.Left.Type(), b.Right.Type()

	switch b.Op {
	case "&&", "||":
		if lt != types.Boolean || rt != types.Boolean {
			return wenderr.Newf("operands of %q must be Boolean", b.Op)
		}
		b.SetType(types.Boolean)
	case "<", ">", "==", "!=":
		if !types.AssignableTo(lt, types.Comparable) || !types.AssignableTo(rt, types.Comparable) || lt != rt {
			return wenderr.Newf("operands of %q must be comparable and of the same type, got %s and %s", b.Op, lt, rt)
		}
		b.SetType(types.Boolean)
	case "+":
		switch {
		case lt == types.String || rt == types.String:
			b.SetType(types.String)
		case lt == types.Integer && rt == types.Integer:
			b.SetType(types.Integer)
		case lt == types.Decimal && rt == types.Decimal:
			b.SetType(types.Decimal)
		default:
			return wenderr.Newf("operands of '+' must both be Integer, both Decimal, or involve a String, got %s and %s", lt, rt)
		}
	case "-", "*", "/":
		switch {
		case lt == types.Integer && rt == types.Integer:
			b.SetType(types.Integer)
		case lt == types.Decimal && rt == types.Decimal:
			b.SetType(types.Decimal)
		default:
			return wenderr.Newf("operands of %q must both be Integer or both Decimal, got %s and %s", b.Op, lt, rt)
		}
	case "^":
		if lt != types.Integer || rt != types.Integer {
			return wenderr.Newf("operands of '^' must be Integer, got %s and %s", lt, rt)
		}
		b.SetType(types.Integer)
	default:
		return wenderr.Newf("analyze: unknown binary operator %q", b.Op)
	}
	return nil
}

func (a *Analyzer) analyzeAccess(ac *ast.Access) error {
	v, ok := a.scope.LookupVariable(ac.Name)
	if !ok {
		return wenderr.Newf("undefined variable %q", ac.Name)
	}
	if ac.Offset != nil {
		if err := a.analyzeExpression(ac.Offset); err != nil {
			return err
		}
		if ac.Offset.Type() != types.Integer {
			return wenderr.Newf("list offset must be Integer, got %s", ac.Offset.Type())
		}
	}
	ac.Variable = v
	ac.SetType(v.Type)
	return nil
}

func (a *Analyzer) analyzeCall(c *ast.Call) error {
	fn, ok := a.scope.LookupFunction(c.Name, len(c.Args))
	if !ok {
		return wenderr.Newf("undefined function %s/%d", c.Name, len(c.Args))
	}
	for _, arg := range c.Args {
		if err := a.analyzeExpression(arg); err != nil {
			return err
		}
	}
	for i, arg := range c.Args {
		if !types.AssignableTo(arg.Type(), fn.ParamTypes[i]) {
			return wenderr.Newf("argument %d to %s is %s, not assignable to %s", i+1, c.Name, arg.Type(), fn.ParamTypes[i])
		}
	}
	c.Function = fn
	c.SetType(fn.ReturnType)
	return nil
}

func (a *Analyzer) analyzeListLiteral(l *ast.ListLiteral) error {
	if len(l.Values) == 0 {
		return wenderr.Newf("a list literal must have at least one element")
	}
	if err := a.analyzeExpression(l.Values[0]); err != nil {
		return err
	}
	elemType := l.Values[0].Type()
	for _, v := range l.Values[1:] {
		if err := a.analyzeExpression(v); err != nil {
			return err
		}
		if !types.AssignableTo(v.Type(), elemType) {
			return wenderr.Newf("list elements must share a type: %s is not assignable to %s", v.Type(), elemType)
		}
	}
	l.SetType(elemType)
	return nil
}

// Package interp tree-walks an analyzed ast.Source against a runtime scope
// chain. It re-resolves every Access and Call by name against its own
// scope at evaluation time rather than trusting the *scope.Variable/
// *scope.Function pointers analyze left on the AST — those annotations are
// from a different scope tree (the analyzer's, built for typechecking
// only) and never carry a real Body or Value.
package interp

import (
	"io"
	"math/big"

	"github.com/wend-lang/wendc/ast"
	"github.com/wend-lang/wendc/scope"
	"github.com/wend-lang/wendc/value"
	"github.com/wend-lang/wendc/wenderr"
)

// Interpreter evaluates an analyzed Source. Stdout is where the print
// built-in writes.
type Interpreter struct {
	scope  *scope.Scope
	Stdout io.Writer
}

// New creates an Interpreter whose root scope is a child of root (pass nil
// for a fresh root) with the built-in functions installed.
func New(root *scope.Scope, stdout io.Writer) *Interpreter {
	it := &Interpreter{scope: scope.New(root), Stdout: stdout}
	it.installBuiltins()
	return it
}

func (it *Interpreter) installBuiltins() {
	it.scope.DefineFunction(newPrintFunction(it))
	it.scope.DefineFunction(newLogarithmFunction())
	it.scope.DefineFunction(newConverterFunction())
}

// returnSignal is the non-local control-flow signal for RETURN. It is
// returned as an error by execStatement/execBlock and is only ever
// intercepted at the function-invocation frame built by installFunction.
type returnSignal struct {
	value value.Value
}

func (returnSignal) Error() string { return "return" }

// Run evaluates every global, installs every function as a closure over
// the resulting scope, then invokes main/0 and returns its value.
func (it *Interpreter) Run(src *ast.Source) (value.Value, error) {
	for _, g := range src.Globals {
		v := value.Nil()
		if g.Value != nil {
			var err error
			v, err = it.evalExpression(g.Value)
			if err != nil {
				return value.Value{}, err
			}
		}
		it.scope.DefineVariable(&scope.Variable{Name: g.Name, Mutable: g.Mutable, Type: g.Variable.Type, Value: v})
	}

	captured := it.scope
	for _, fn := range src.Functions {
		it.installFunction(fn, captured)
	}

	main, ok := it.scope.LookupFunction("main", 0)
	if !ok {
		return value.Value{}, wenderr.Newf("no main/0 function installed")
	}
	return main.Body(nil)
}

// installFunction creates a callable that, on invocation, enters a child of
// captured (the scope active when the function was installed, not the
// scope at the call site) and binds parameters there.
func (it *Interpreter) installFunction(fn *ast.Function, captured *scope.Scope) {
	resolved := &scope.Function{
		Name:       fn.Function.Name,
		ParamTypes: fn.Function.ParamTypes,
		ReturnType: fn.Function.ReturnType,
	}
	resolved.Body = func(args []value.Value) (value.Value, error) {
		outer := it.scope
		it.scope = scope.New(captured)
		defer func() { it.scope = outer }()

		for i, name := range fn.Params {
			it.scope.DefineVariable(&scope.Variable{Name: name, Mutable: true, Type: resolved.ParamTypes[i], Value: args[i]})
		}
		for _, stmt := range fn.Body {
			if err := it.execStatement(stmt); err != nil {
				if ret, ok := err.(returnSignal); ok {
					return ret.value, nil
				}
				return value.Value{}, err
			}
		}
		return value.Nil(), nil
	}
	it.scope.DefineFunction(resolved)
}

func (it *Interpreter) execBlock(stmts []ast.Statement) error {
	outer := it.scope
	it.scope = scope.New(outer)
	defer func() { it.scope = outer }()
	for _, s := range stmts {
		if err := it.execStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) execStatement(s ast.Statement) error {
	switch n := s.(type) {
	case *ast.ExprStatement:
		_, err := it.evalExpression(n.Expr)
		return err
	case *ast.Declaration:
		v := value.Nil()
		if n.Value != nil {
			var err error
			v, err = it.evalExpression(n.Value)
			if err != nil {
				return err
			}
		}
		it.scope.DefineVariable(&scope.Variable{Name: n.Name, Mutable: true, Value: v})
		return nil
	case *ast.Assignment:
		return it.execAssignment(n)
	case *ast.If:
		return it.execIf(n)
	case *ast.Switch:
		return it.execSwitch(n)
	case *ast.While:
		return it.execWhile(n)
	case *ast.Return:
		v, err := it.evalExpression(n.Value)
		if err != nil {
			return err
		}
		return returnSignal{v}
	default:
		return wenderr.Newf("interp: unknown statement node %T", n)
	}
}

func (it *Interpreter) execAssignment(as *ast.Assignment) error {
	access := as.Receiver.(*ast.Access)
	v, ok := it.scope.LookupVariable(access.Name)
	if !ok {
		return wenderr.Newf("undefined variable %q", access.Name)
	}
	if !v.Mutable {
		return wenderr.Newf("cannot assign to immutable variable %q", access.Name)
	}
	val, err := it.evalExpression(as.Value)
	if err != nil {
		return err
	}
	if access.Offset == nil {
		v.Value = val
		return nil
	}
	idx, err := it.evalListIndex(v.Value, access.Offset)
	if err != nil {
		return err
	}
	v.Value.List[idx] = val
	return nil
}

func (it *Interpreter) execIf(n *ast.If) error {
	cond, err := it.evalExpression(n.Condition)
	if err != nil {
		return err
	}
	if cond.Bool {
		return it.execBlock(n.Then)
	}
	return it.execBlock(n.Else)
}

func (it *Interpreter) execSwitch(n *ast.Switch) error {
	cond, err := it.evalExpression(n.Condition)
	if err != nil {
		return err
	}
	for _, c := range n.Cases {
		if c.Value == nil {
			continue
		}
		cv, err := it.evalExpression(c.Value)
		if err != nil {
			return err
		}
		if cond.Equal(cv) {
			return it.execBlock(c.Block)
		}
	}
	return it.execBlock(n.Cases[len(n.Cases)-1].Block)
}

func (it *Interpreter) execWhile(n *ast.While) error {
	for {
		cond, err := it.evalExpression(n.Condition)
		if err != nil {
			return err
		}
		if !cond.Bool {
			return nil
		}
		if err := it.execBlock(n.Block); err != nil {
			return err
		}
	}
}

func (it *Interpreter) evalExpression(e ast.Expression) (value.Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Group:
		return it.evalExpression(n.Inner)
	case *ast.Binary:
		return it.evalBinary(n)
	case *ast.Access:
		return it.evalAccess(n)
	case *ast.Call:
		return it.evalCall(n)
	case *ast.ListLiteral:
		return it.evalListLiteral(n)
	default:
		return value.Value{}, wenderr.Newf("interp: unknown expression node %T", n)
	}
}

func (it *Interpreter) evalListIndex(list value.Value, offsetExpr ast.Expression) (int, error) {
	off, err := it.evalExpression(offsetExpr)
	if err != nil {
		return 0, err
	}
	if list.Kind != value.ListKind {
		return 0, wenderr.Newf("cannot index a non-list value")
	}
	idx := int(off.Int.Int64())
	if idx < 0 || idx >= len(list.List) {
		return 0, wenderr.Newf("list index %d out of range [0, %d)", idx, len(list.List))
	}
	return idx, nil
}

func (it *Interpreter) evalAccess(ac *ast.Access) (value.Value, error) {
	v, ok := it.scope.LookupVariable(ac.Name)
	if !ok {
		return value.Value{}, wenderr.Newf("undefined variable %q", ac.Name)
	}
	if ac.Offset == nil {
		return v.Value, nil
	}
	idx, err := it.evalListIndex(v.Value, ac.Offset)
	if err != nil {
		return value.Value{}, err
	}
	return v.Value.List[idx], nil
}

func (it *Interpreter) evalCall(c *ast.Call) (value.Value, error) {
	fn, ok := it.scope.LookupFunction(c.Name, len(c.Args))
	if !ok {
		return value.Value{}, wenderr.Newf("undefined function %s/%d", c.Name, len(c.Args))
	}
	args := make([]value.Value, len(c.Args))
	for i, argExpr := range c.Args {
		v, err := it.evalExpression(argExpr)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return fn.Body(args)
}

func (it *Interpreter) evalListLiteral(l *ast.ListLiteral) (value.Value, error) {
	vals := make([]value.Value, len(l.Values))
	for i, e := range l.Values {
		v, err := it.evalExpression(e)
		if err != nil {
			return value.Value{}, err
		}
		vals[i] = v
	}
	return value.List(vals), nil
}

func (it *Interpreter) evalBinary(b *ast.Binary) (value.Value, error) {
	switch b.Op {
	case "&&":
		left, err := it.evalExpression(b.Left)
		if err != nil {
			return value.Value{}, err
		}
		if !left.Bool {
			return value.Bool(false), nil
		}
		right, err := it.evalExpression(b.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(right.Bool), nil
	case "||":
		left, err := it.evalExpression(b.Left)
		if err != nil {
			return value.Value{}, err
		}
		if left.Bool {
			return value.Bool(true), nil
		}
		right, err := it.evalExpression(b.Right)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(right.Bool), nil
	}

	left, err := it.evalExpression(b.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := it.evalExpression(b.Right)
	if err != nil {
		return value.Value{}, err
	}

	switch b.Op {
	case "<":
		return value.Bool(left.Compare(right) < 0), nil
	case ">":
		return value.Bool(left.Compare(right) > 0), nil
	case "==":
		return value.Bool(left.Equal(right)), nil
	case "!=":
		return value.Bool(!left.Equal(right)), nil
	case "+":
		if left.Kind == value.StringKind || right.Kind == value.StringKind {
			return value.Str(left.String() + right.String()), nil
		}
		if left.Kind == value.IntKind {
			return value.Int(new(big.Int).Add(left.Int, right.Int)), nil
		}
		return value.Dec(left.Dec.Add(right.Dec)), nil
	case "-":
		if left.Kind == value.IntKind {
			return value.Int(new(big.Int).Sub(left.Int, right.Int)), nil
		}
		return value.Dec(left.Dec.Sub(right.Dec)), nil
	case "*":
		if left.Kind == value.IntKind {
			return value.Int(new(big.Int).Mul(left.Int, right.Int)), nil
		}
		return value.Dec(left.Dec.Mul(right.Dec)), nil
	case "/":
		return evalDivide(left, right)
	case "^":
		return evalPower(left, right)
	default:
		return value.Value{}, wenderr.Newf("interp: unknown binary operator %q", b.Op)
	}
}

// decimalScale is the fixed scale decimal division rounds to, half-to-even,
// per the language's arbitrary-precision decimal contract.
const decimalScale = 16

func evalDivide(left, right value.Value) (value.Value, error) {
	if left.Kind == value.IntKind {
		if right.Int.Sign() == 0 {
			return value.Value{}, wenderr.Newf("division by zero")
		}
		return value.Int(new(big.Int).Quo(left.Int, right.Int)), nil
	}
	if right.Dec.IsZero() {
		return value.Value{}, wenderr.Newf("division by zero")
	}
	// DivRound computes extra guard digits before RoundBank applies
	// half-to-even rounding at the final scale.
	result := left.Dec.DivRound(right.Dec, decimalScale+2).RoundBank(decimalScale)
	return value.Dec(result), nil
}

func evalPower(left, right value.Value) (value.Value, error) {
	if right.Int.Sign() < 0 {
		return value.Value{}, wenderr.Newf("exponent must be non-negative")
	}
	if !right.Int.IsInt64() {
		return value.Value{}, wenderr.Newf("exponent %s is too large", right.Int)
	}
	return value.Int(new(big.Int).Exp(left.Int, right.Int, nil)), nil
}

// Package llvmgen lowers an analyzed ast.Source to an LLVM IR module, using
// llir/llvm the way codegen.go uses it: a small name-stack ctx threaded
// through two toplevel passes (forward-declare every function, then emit
// bodies) so a function can call another declared later in the same
// source.
//
// This backend is restricted to machine words: Integer lowers to i64 and
// Decimal to double, both losing the arbitrary-precision guarantee the
// language's own data model promises (see package value). That guarantee
// only needs to hold for the tree-walking interpreter (package interp) and
// the Java emitter (package java, which lowers to java.math.BigInteger/
// BigDecimal); this backend exists to exercise LLVM IR generation at all,
// not to replace them, so the restriction is accepted rather than worked
// around. List values are unsupported here for the same reason: LLVM IR
// commits to a layout at lowering time that a runtime-sized list cannot
// give it.
package llvmgen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/wend-lang/wendc/ast"
	wendvalue "github.com/wend-lang/wendc/value"
)

type ctx struct {
	names                  []map[string]value.Value
	mutables               []map[string]value.Value // alloca'd slots, for Assignment
	forwardDeclarationPass bool
}

func (c *ctx) pushScope() {
	c.names = append(c.names, map[string]value.Value{})
	c.mutables = append(c.mutables, map[string]value.Value{})
}

func (c *ctx) popScope() {
	c.names = c.names[:len(c.names)-1]
	c.mutables = c.mutables[:len(c.mutables)-1]
}

func (c *ctx) lookup(name string) (value.Value, bool) {
	for i := len(c.names) - 1; i >= 0; i-- {
		if v, ok := c.names[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (c *ctx) lookupMutable(name string) (value.Value, bool) {
	for i := len(c.mutables) - 1; i >= 0; i-- {
		if v, ok := c.mutables[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (c *ctx) define(name string, v value.Value) {
	c.names[len(c.names)-1][name] = v
}

func (c *ctx) defineMutable(name string, v value.Value) {
	c.mutables[len(c.mutables)-1][name] = v
}

// Generate lowers src to an LLVM module defining every global as an i64/
// double/i1 initializer, every function as an LLVM function, and a
// `main` function of type i32() that calls the language's own main/0 and
// returns its result.
func Generate(src *ast.Source) (*ir.Module, error) {
	m := ir.NewModule()
	c := &ctx{}
	c.pushScope()

	for _, g := range src.Globals {
		v, err := constantOf(g.Value)
		if err != nil {
			return nil, fmt.Errorf("global %q: %w", g.Name, err)
		}
		def := m.NewGlobalDef(g.Name, v)
		c.define(g.Name, def)
		c.defineMutable(g.Name, def)
	}

	c.forwardDeclarationPass = true
	for _, fn := range src.Functions {
		if err := declareFunction(c, fn, m); err != nil {
			return nil, err
		}
	}
	c.forwardDeclarationPass = false
	for _, fn := range src.Functions {
		if err := emitFunction(c, fn, m); err != nil {
			return nil, err
		}
	}

	langMain, ok := c.lookup("main")
	if !ok {
		return nil, fmt.Errorf("llvmgen: no main/0 function")
	}
	entry := m.NewFunc("main", types.I32)
	b := entry.NewBlock("entry")
	call := b.NewCall(langMain)
	b.NewRet(b.NewTrunc(call, types.I32))

	return m, nil
}

func llvmType(name string) (types.Type, error) {
	switch name {
	case "", "Nil":
		return types.Void, nil
	case "Boolean":
		return types.I1, nil
	case "Integer":
		return types.I64, nil
	case "Decimal":
		return types.Double, nil
	case "Character":
		return types.I8, nil
	case "String":
		return types.NewPointer(types.I8), nil
	default:
		return nil, fmt.Errorf("llvmgen: type %q has no machine-word lowering", name)
	}
}

func declareFunction(c *ctx, fn *ast.Function, m *ir.Module) error {
	ret, err := llvmType(fn.ReturnTypeName)
	if err != nil {
		return err
	}
	var params []*ir.Param
	for i, name := range fn.Params {
		pt, err := llvmType(fn.ParamTypeNames[i])
		if err != nil {
			return err
		}
		params = append(params, ir.NewParam(name, pt))
	}
	// The language's own main/0 is renamed at the LLVM level so it doesn't
	// collide with the host entry point Generate synthesizes below.
	symbol := fn.Name
	if symbol == "main" {
		symbol = "wend_main"
	}
	irfn := m.NewFunc(symbol, ret, params...)
	c.define(fn.Name, irfn)
	return nil
}

func emitFunction(c *ctx, fn *ast.Function, m *ir.Module) error {
	irfn, ok := c.lookup(fn.Name)
	if !ok {
		return fmt.Errorf("llvmgen: %s was not forward-declared", fn.Name)
	}
	f := irfn.(*ir.Func)
	b := f.NewBlock("entry")

	c.pushScope()
	defer c.popScope()
	for i, name := range fn.Params {
		c.define(name, f.Params[i])
		c.defineMutable(name, f.Params[i])
	}

	g := &funcGen{ctx: c, fn: f, block: b}
	for _, stmt := range fn.Body {
		var err error
		b, err = g.statement(b, stmt)
		if err != nil {
			return fmt.Errorf("function %s: %w", fn.Name, err)
		}
	}
	if b.Term == nil {
		if types.IsVoid(f.Sig.RetType) {
			b.NewRet(nil)
		} else {
			b.NewRet(constant.NewInt(f.Sig.RetType.(*types.IntType), 0))
		}
	}
	return nil
}

// funcGen threads the current block through statement emission; If/While
// each end the current block with a branch and return a fresh merge block
// for subsequent statements to append to.
type funcGen struct {
	ctx   *ctx
	fn    *ir.Func
	block *ir.Block
}

func (g *funcGen) statement(b *ir.Block, s ast.Statement) (*ir.Block, error) {
	switch n := s.(type) {
	case *ast.ExprStatement:
		_, err := g.expression(b, n.Expr)
		return b, err
	case *ast.Declaration:
		var v value.Value = constant.NewInt(types.I64, 0)
		if n.Value != nil {
			var err error
			v, err = g.expression(b, n.Value)
			if err != nil {
				return b, err
			}
		}
		alloca := b.NewAlloca(v.Type())
		b.NewStore(v, alloca)
		g.ctx.define(n.Name, alloca)
		g.ctx.defineMutable(n.Name, alloca)
		return b, nil
	case *ast.Assignment:
		access := n.Receiver.(*ast.Access)
		slot, ok := g.ctx.lookupMutable(access.Name)
		if !ok {
			return b, fmt.Errorf("undefined variable %q", access.Name)
		}
		v, err := g.expression(b, n.Value)
		if err != nil {
			return b, err
		}
		b.NewStore(v, slot)
		return b, nil
	case *ast.Return:
		v, err := g.expression(b, n.Value)
		if err != nil {
			return b, err
		}
		b.NewRet(v)
		return g.fn.NewBlock(""), nil
	case *ast.If:
		return g.ifStatement(b, n)
	case *ast.While:
		return g.whileStatement(b, n)
	case *ast.Switch:
		return g.switchStatement(b, n)
	default:
		return b, fmt.Errorf("llvmgen: unsupported statement %T", n)
	}
}

func (g *funcGen) blockStatements(parent *ir.Block, stmts []ast.Statement) (*ir.Block, error) {
	cur := parent
	for _, s := range stmts {
		var err error
		cur, err = g.statement(cur, s)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func (g *funcGen) ifStatement(b *ir.Block, n *ast.If) (*ir.Block, error) {
	cond, err := g.expression(b, n.Condition)
	if err != nil {
		return nil, err
	}
	thenB := g.fn.NewBlock("")
	elseB := g.fn.NewBlock("")
	mergeB := g.fn.NewBlock("")
	b.NewCondBr(cond, thenB, elseB)

	thenEnd, err := g.blockStatements(thenB, n.Then)
	if err != nil {
		return nil, err
	}
	if thenEnd.Term == nil {
		thenEnd.NewBr(mergeB)
	}

	elseEnd, err := g.blockStatements(elseB, n.Else)
	if err != nil {
		return nil, err
	}
	if elseEnd.Term == nil {
		elseEnd.NewBr(mergeB)
	}
	return mergeB, nil
}

func (g *funcGen) whileStatement(b *ir.Block, n *ast.While) (*ir.Block, error) {
	condB := g.fn.NewBlock("")
	bodyB := g.fn.NewBlock("")
	afterB := g.fn.NewBlock("")
	b.NewBr(condB)

	cond, err := g.expression(condB, n.Condition)
	if err != nil {
		return nil, err
	}
	condB.NewCondBr(cond, bodyB, afterB)

	bodyEnd, err := g.blockStatements(bodyB, n.Block)
	if err != nil {
		return nil, err
	}
	if bodyEnd.Term == nil {
		bodyEnd.NewBr(condB)
	}
	return afterB, nil
}

func (g *funcGen) switchStatement(b *ir.Block, n *ast.Switch) (*ir.Block, error) {
	cond, err := g.expression(b, n.Condition)
	if err != nil {
		return nil, err
	}
	mergeB := g.fn.NewBlock("")
	cur := b
	for _, c := range n.Cases {
		if c.Value == nil {
			caseEnd, err := g.blockStatements(cur, c.Block)
			if err != nil {
				return nil, err
			}
			if caseEnd.Term == nil {
				caseEnd.NewBr(mergeB)
			}
			continue
		}
		cv, err := g.expression(cur, c.Value)
		if err != nil {
			return nil, err
		}
		matchB := g.fn.NewBlock("")
		nextB := g.fn.NewBlock("")
		eq := cur.NewICmp(enum.IPredEQ, cond, cv)
		cur.NewCondBr(eq, matchB, nextB)

		matchEnd, err := g.blockStatements(matchB, c.Block)
		if err != nil {
			return nil, err
		}
		if matchEnd.Term == nil {
			matchEnd.NewBr(mergeB)
		}
		cur = nextB
	}
	if cur.Term == nil {
		cur.NewBr(mergeB)
	}
	return mergeB, nil
}

func (g *funcGen) expression(b *ir.Block, e ast.Expression) (value.Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return constantOf(n)
	case *ast.Group:
		return g.expression(b, n.Inner)
	case *ast.Access:
		if n.Offset != nil {
			return nil, fmt.Errorf("llvmgen: list indexing is unsupported")
		}
		slot, ok := g.ctx.lookupMutable(n.Name)
		if ok {
			if ptr, isPtr := slot.Type().(*types.PointerType); isPtr {
				return b.NewLoad(ptr.ElemType, slot), nil
			}
		}
		v, ok := g.ctx.lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("undefined variable %q", n.Name)
		}
		return v, nil
	case *ast.Call:
		fnVal, ok := g.ctx.lookup(n.Name)
		if !ok {
			return nil, fmt.Errorf("undefined function %q", n.Name)
		}
		fn, ok := fnVal.(*ir.Func)
		if !ok {
			return nil, fmt.Errorf("llvmgen: %q is not a direct call target", n.Name)
		}
		var args []value.Value
		for _, argExpr := range n.Args {
			v, err := g.expression(b, argExpr)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return b.NewCall(fn, args...), nil
	case *ast.Binary:
		return g.binary(b, n)
	default:
		return nil, fmt.Errorf("llvmgen: unsupported expression %T", n)
	}
}

func (g *funcGen) binary(b *ir.Block, n *ast.Binary) (value.Value, error) {
	left, err := g.expression(b, n.Left)
	if err != nil {
		return nil, err
	}
	right, err := g.expression(b, n.Right)
	if err != nil {
		return nil, err
	}
	isFloat := left.Type().Equal(types.Double)

	switch n.Op {
	case "&&":
		return b.NewAnd(left, right), nil
	case "||":
		return b.NewOr(left, right), nil
	case "+":
		if isFloat {
			return b.NewFAdd(left, right), nil
		}
		return b.NewAdd(left, right), nil
	case "-":
		if isFloat {
			return b.NewFSub(left, right), nil
		}
		return b.NewSub(left, right), nil
	case "*":
		if isFloat {
			return b.NewFMul(left, right), nil
		}
		return b.NewMul(left, right), nil
	case "/":
		if isFloat {
			return b.NewFDiv(left, right), nil
		}
		return b.NewSDiv(left, right), nil
	case "^":
		return nil, fmt.Errorf("llvmgen: ^ is not lowered by this backend; use the interpreter or the Java emitter")
	case "<":
		if isFloat {
			return b.NewFCmp(enum.FPredOLT, left, right), nil
		}
		return b.NewICmp(enum.IPredSLT, left, right), nil
	case ">":
		if isFloat {
			return b.NewFCmp(enum.FPredOGT, left, right), nil
		}
		return b.NewICmp(enum.IPredSGT, left, right), nil
	case "==":
		if isFloat {
			return b.NewFCmp(enum.FPredOEQ, left, right), nil
		}
		return b.NewICmp(enum.IPredEQ, left, right), nil
	case "!=":
		if isFloat {
			return b.NewFCmp(enum.FPredONE, left, right), nil
		}
		return b.NewICmp(enum.IPredNE, left, right), nil
	default:
		return nil, fmt.Errorf("llvmgen: unknown operator %q", n.Op)
	}
}

// constantOf lowers a Literal to an LLVM constant, by truncating to the
// machine word this backend is restricted to. Any other expression form,
// including a missing global initializer, is rejected with an error.
func constantOf(e ast.Expression) (constant.Constant, error) {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return nil, fmt.Errorf("llvmgen: expected a literal, got %T", e)
	}
	v := lit.Value
	switch v.Kind {
	case wendvalue.NilKind:
		return constant.NewInt(types.I64, 0), nil
	case wendvalue.BoolKind:
		return constant.NewBool(v.Bool), nil
	case wendvalue.IntKind:
		return constant.NewInt(types.I64, v.Int.Int64()), nil
	case wendvalue.DecimalKind:
		f, _ := v.Dec.Float64()
		return constant.NewFloat(types.Double, f), nil
	case wendvalue.CharKind:
		return constant.NewInt(types.I8, int64(v.Char)), nil
	case wendvalue.StringKind:
		return nil, fmt.Errorf("llvmgen: string constants are unsupported by this backend")
	case wendvalue.ListKind:
		return nil, fmt.Errorf("llvmgen: list values are unsupported by this backend")
	default:
		return nil, fmt.Errorf("llvmgen: unknown literal kind %d", v.Kind)
	}
}

package interp

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/wend-lang/wendc/scope"
	"github.com/wend-lang/wendc/types"
	"github.com/wend-lang/wendc/value"
	"github.com/wend-lang/wendc/wenderr"
)

// newPrintFunction writes its argument's printable form followed by a
// newline to it.Stdout and returns nil. Standard output is the only shared
// resource in the language, and this is its sole writer.
func newPrintFunction(it *Interpreter) *scope.Function {
	return &scope.Function{
		Name:       "print",
		ParamTypes: []types.Type{types.Any},
		ReturnType: types.Nil,
		Body: func(args []value.Value) (value.Value, error) {
			fmt.Fprintln(it.Stdout, args[0].String())
			return value.Nil(), nil
		},
	}
}

// newLogarithmFunction computes the natural log of a Decimal. shopspring/
// decimal has no Ln method, and the scale math.Log wants here (natural log
// of an arbitrary-precision decimal) doesn't warrant the precision loss a
// direct math/big.Float Taylor expansion would still have to round away at
// the end anyway, so this rounds through float64.
func newLogarithmFunction() *scope.Function {
	return &scope.Function{
		Name:       "logarithm",
		ParamTypes: []types.Type{types.Decimal},
		ReturnType: types.Decimal,
		Body: func(args []value.Value) (value.Value, error) {
			d := args[0].Dec
			if d.Sign() <= 0 {
				return value.Value{}, wenderr.Newf("logarithm: argument must be positive, got %s", d)
			}
			f, _ := d.Float64()
			return value.Dec(decimal.NewFromFloat(math.Log(f)).RoundBank(decimalScale)), nil
		},
	}
}

// newConverterFunction renders an Integer in the given base (2-36, a
// subset of the bases big.Int.Text supports).
func newConverterFunction() *scope.Function {
	return &scope.Function{
		Name:       "converter",
		ParamTypes: []types.Type{types.Integer, types.Integer},
		ReturnType: types.String,
		Body: func(args []value.Value) (value.Value, error) {
			n, base := args[0].Int, args[1].Int
			if !base.IsInt64() {
				return value.Value{}, wenderr.Newf("converter: base %s is out of range", base)
			}
			b := base.Int64()
			if b < 2 || b > 36 {
				return value.Value{}, wenderr.Newf("converter: base must be between 2 and 36, got %d", b)
			}
			return value.Str(new(big.Int).Set(n).Text(int(b))), nil
		},
	}
}

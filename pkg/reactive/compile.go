package reactive

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/weft-ui/weft/pkg/errors"
)

// Vars binds expression variable names to operands.
type Vars map[string]any

// Compile parses src as an HCL expression over vars and returns an Expr.
// Cells in vars become dependencies; each evaluation converts the current
// operand values to cty values and evaluates the parsed expression.
//
// The language covers arithmetic, comparison, && || !, conditionals
// (c ? a : b) and string templates ("${name} has ${count} items").
// Referencing a name missing from vars fails here, not at evaluation.
func Compile(src string, vars Vars) (*Expr, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, &errors.WeftError{
			Op:   "reactive.Compile",
			Kind: errors.KindExpression,
			Err:  diags,
		}
	}
	for _, traversal := range parsed.Variables() {
		if _, ok := vars[traversal.RootName()]; !ok {
			return nil, &errors.WeftError{
				Op:   "reactive.Compile",
				Kind: errors.KindExpression,
				Err:  fmt.Errorf("unknown variable %q in %q", traversal.RootName(), src),
			}
		}
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	operands := make([]any, len(names))
	for i, name := range names {
		operands[i] = vars[name]
	}

	return newExpr(src, func(args []any) (any, error) {
		ctx := &hcl.EvalContext{Variables: make(map[string]cty.Value, len(names))}
		for i, name := range names {
			v, err := toCty(args[i])
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", name, err)
			}
			ctx.Variables[name] = v
		}
		val, diags := parsed.Value(ctx)
		if diags.HasErrors() {
			return nil, diags
		}
		return fromCty(val)
	}, operands), nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, vars Vars) *Expr {
	e, err := Compile(src, vars)
	if err != nil {
		panic(err)
	}
	return e
}

func toCty(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return x, nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(x))
		for i, item := range x {
			cv, err := toCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			elems[i] = cv
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, item := range x {
			cv, err := toCty(item)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[k] = cv
		}
		return cty.ObjectVal(attrs), nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty type for %T: %w", v, err)
	}
	return gocty.ToCtyValue(v, ty)
}

func fromCty(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return int(i), nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := fromCty(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := fromCty(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported result type %s", ty.FriendlyName())
}

package replay

import (
	"fmt"
	"math/big"

	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/irbuild"
)

func globalAttrs(a *args, from int) (ir.GlobalAttributes, error) {
	linkage, err := lookup(linkageCodes, "linkage", a.opt(from, 0))
	if err != nil {
		return ir.GlobalAttributes{}, err
	}
	visibility, err := lookup(visibilityCodes, "visibility", a.opt(from+2, 0))
	if err != nil {
		return ir.GlobalAttributes{}, err
	}
	return ir.GlobalAttributes{
		Linkage:    linkage,
		Visibility: visibility,
		Align:      a.u32(from + 1),
		Section:    a.text(0),
	}, nil
}

var moduleHandlers = map[string]handler{
	"triple": func(r *runner, _ *Op, a *args) error {
		r.mb.SetTargetTriple(a.text(0))
		return nil
	},
	"datalayout": func(r *runner, _ *Op, a *args) error {
		r.mb.SetDataLayout(a.text(0))
		return nil
	},
	"source_filename": func(r *runner, _ *Op, a *args) error {
		r.mb.SetSourceFilename(a.text(0))
		return nil
	},
	// global_var: type=value type, args=[initializer+1, linkage, align, visibility], text=[section]
	"global_var": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		attrs, err := globalAttrs(a, 1)
		if err != nil {
			return err
		}
		r.mb.CreateGlobalVariable(t, a.index(0), attrs)
		return nil
	},
	"global_const": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		attrs, err := globalAttrs(a, 1)
		if err != nil {
			return err
		}
		r.mb.CreateGlobalConstant(t, a.index(0), attrs)
		return nil
	},
	// alias: type=alias type, args=[aliasee, linkage, align, visibility]
	"alias": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		attrs, err := globalAttrs(a, 1)
		if err != nil {
			return err
		}
		r.mb.CreateGlobalAlias(t, a.index(0), attrs)
		return nil
	},
	// function: type=function type, args=[prototype, calling conv, linkage, visibility]
	"function": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		sig, ok := t.(*types.FuncType)
		if !ok {
			return fmt.Errorf("type %d is %s, not a function type", op.Type, t)
		}
		cc, err := lookup(callingConvCodes, "calling convention", a.opt(1, 0))
		if err != nil {
			return err
		}
		linkage, err := lookup(linkageCodes, "linkage", a.opt(2, 0))
		if err != nil {
			return err
		}
		visibility, err := lookup(visibilityCodes, "visibility", a.opt(3, 0))
		if err != nil {
			return err
		}
		r.mb.CreateFunction(irbuild.FunctionSpec{
			Type:      sig,
			Prototype: a.flag(0),
			Attributes: ir.FunctionAttributes{
				Linkage:     linkage,
				Visibility:  visibility,
				CallingConv: cc,
			},
		})
		return nil
	},
	// name: args=[index], text=[name]; names in the open function table if any.
	"name": func(r *runner, _ *Op, a *args) error {
		index := a.index(0)
		if a.err != nil {
			return a.err
		}
		return r.scope().NameEntry(index, a.text(0))
	},
}

var constantHandlers = map[string]handler{
	"integer": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		r.scope().CreateInteger(t, a.raw(0))
		return nil
	},
	// biginteger: text=[decimal value]
	"biginteger": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		v, ok := new(big.Int).SetString(a.text(0), 10)
		if !ok {
			return fmt.Errorf("invalid integer %q", a.text(0))
		}
		r.scope().CreateBigInteger(t, v)
		return nil
	},
	"float": func(r *runner, op *Op, _ *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		r.scope().CreateFloatingPoint(t, op.Float)
		return nil
	},
	// float_raw: type=x86_fp80 or fp128, args=[words...] least significant first
	"float_raw": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		words := a.u64s(0)
		if a.err != nil {
			return a.err
		}
		if len(words) == 0 {
			return fmt.Errorf("float_raw: %w", ErrMissingArgument)
		}
		r.scope().CreateFloatingPointRaw(t, words)
		return nil
	},
	"null": func(r *runner, op *Op, _ *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		r.scope().CreateNull(t)
		return nil
	},
	"undef": func(r *runner, op *Op, _ *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		r.scope().CreateUndefined(t)
		return nil
	},
	// string: text=[value], args=[cstring]
	"string": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		r.scope().CreateString(t, a.text(0), a.flag(0))
		return nil
	},
	// aggregate: args=element indices
	"aggregate": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		elems := a.ints(0)
		if a.err != nil {
			return a.err
		}
		_, err = r.scope().CreateAggregate(t, elems)
		return err
	},
	// binop_const: args=[opcode, lhs, rhs]
	"binop_const": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		bop, err := binaryOperator(a.raw(0), t)
		if err != nil {
			return err
		}
		lhs, rhs := a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		_, err = r.scope().CreateBinaryOperationConstant(t, bop, lhs, rhs)
		return err
	},
	// cast_const: args=[opcode, value]
	"cast_const": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		cop, err := lookup(castCodes, "cast", a.raw(0))
		if err != nil {
			return err
		}
		value := a.index(1)
		if a.err != nil {
			return a.err
		}
		_, err = r.scope().CreateCastConstant(t, cop, value)
		return err
	},
	// cmp_const: type=result type, args=[predicate, lhs, rhs]
	"cmp_const": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		pred, err := predicate(a.raw(0))
		if err != nil {
			return err
		}
		lhs, rhs := a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		_, err = r.scope().CreateCompareConstant(t, pred, lhs, rhs)
		return err
	},
	// gep_const: args=[inbounds, base, indices...]
	"gep_const": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		inBounds, base, indices := a.flag(0), a.index(1), a.ints(2)
		if a.err != nil {
			return a.err
		}
		_, err = r.scope().CreateGetElementPointerConstant(t, base, indices, inBounds)
		return err
	},
	// blockaddress: args=[function, block]
	"blockaddress": func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		fn, block := a.index(0), a.index(1)
		if a.err != nil {
			return a.err
		}
		_, err = r.scope().CreateBlockAddress(t, fn, block)
		return err
	},
	// md_const: args=[metadata index]
	"md_const": func(r *runner, _ *Op, a *args) error {
		md := a.index(0)
		if a.err != nil {
			return a.err
		}
		_, err := r.scope().CreateMetadataConstant(md)
		return err
	},
}

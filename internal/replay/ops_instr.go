package replay

import (
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/irbuild"
)

func atomic(a *args, ordering, singleThread int) (irbuild.Atomic, error) {
	o, err := lookup(orderingCodes, "ordering", a.opt(ordering, 0))
	if err != nil {
		return irbuild.Atomic{}, err
	}
	return irbuild.Atomic{Ordering: o, SingleThread: a.flag(singleThread)}, nil
}

// valueOp wraps handlers of instructions whose result type is op.Type.
func valueOp(h func(r *runner, t types.Type, a *args) error) handler {
	return func(r *runner, op *Op, a *args) error {
		t, err := r.typ(op.Type)
		if err != nil {
			return err
		}
		return h(r, t, a)
	}
}

var instructionHandlers = map[string]handler{
	// alloca: type=result pointer type, args=[element type, count, align]
	"alloca": valueOp(func(r *runner, t types.Type, a *args) error {
		elem, err := r.typ(a.index(0))
		if err != nil {
			return err
		}
		count, align := a.index(1), a.u32(2)
		if a.err != nil {
			return a.err
		}
		_, err = r.bb.CreateAllocate(t, elem, count, align)
		return err
	}),
	// load: args=[source, align, volatile, ordering, singlethread]
	"load": valueOp(func(r *runner, t types.Type, a *args) error {
		at, err := atomic(a, 3, 4)
		if err != nil {
			return err
		}
		at.Volatile = a.flag(2)
		source, align := a.index(0), a.u32(1)
		if a.err != nil {
			return a.err
		}
		_, err = r.bb.CreateAtomicLoad(t, source, align, at)
		return err
	}),
	// store: args=[destination, source, align, volatile, ordering, singlethread]
	"store": func(r *runner, _ *Op, a *args) error {
		at, err := atomic(a, 4, 5)
		if err != nil {
			return err
		}
		at.Volatile = a.flag(3)
		dst, src, align := a.index(0), a.index(1), a.u32(2)
		if a.err != nil {
			return a.err
		}
		return r.bb.CreateAtomicStore(dst, src, align, at)
	},
	// binop: args=[opcode, lhs, rhs, flags]
	"binop": valueOp(func(r *runner, t types.Type, a *args) error {
		bop, err := binaryOperator(a.raw(0), t)
		if err != nil {
			return err
		}
		lhs, rhs := a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		_, err = r.bb.CreateBinaryOperation(t, bop, operationFlags(bop, a.opt(3, 0)), lhs, rhs)
		return err
	}),
	// fneg: args=[operand]
	"fneg": valueOp(func(r *runner, t types.Type, a *args) error {
		operand := a.index(0)
		if a.err != nil {
			return a.err
		}
		_, err := r.bb.CreateUnaryOperation(t, ir.OpFNeg, operand)
		return err
	}),
	// cmp: type=result type, args=[predicate, lhs, rhs]
	"cmp": valueOp(func(r *runner, t types.Type, a *args) error {
		pred, err := predicate(a.raw(0))
		if err != nil {
			return err
		}
		lhs, rhs := a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		_, err = r.bb.CreateCompare(t, pred, lhs, rhs)
		return err
	}),
	// cast: args=[opcode, value]
	"cast": valueOp(func(r *runner, t types.Type, a *args) error {
		cop, err := lookup(castCodes, "cast", a.raw(0))
		if err != nil {
			return err
		}
		value := a.index(1)
		if a.err != nil {
			return a.err
		}
		_, err = r.bb.CreateCast(t, cop, value)
		return err
	}),
	// br: args=[target block]
	"br": func(r *runner, _ *Op, a *args) error {
		target := a.index(0)
		if a.err != nil {
			return a.err
		}
		return r.bb.CreateBranch(target)
	},
	// condbr: args=[condition, true block, false block]
	"condbr": func(r *runner, _ *Op, a *args) error {
		cond, t, f := a.index(0), a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		return r.bb.CreateConditionalBranch(cond, t, f)
	},
	// indirectbr: args=[address, destination blocks...]
	"indirectbr": func(r *runner, _ *Op, a *args) error {
		addr, dests := a.index(0), a.ints(1)
		if a.err != nil {
			return a.err
		}
		return r.bb.CreateIndirectBranch(addr, dests)
	},
	// switch: args=[condition, default, value, block, value, block...]
	"switch": func(r *runner, _ *Op, a *args) error {
		cond, def := a.index(0), a.index(1)
		values, blocks := a.pairs(2)
		if a.err != nil {
			return a.err
		}
		return r.bb.CreateSwitch(cond, def, values, blocks)
	},
	// switch_old: args=[condition, default, literal, block, literal, block...]
	"switch_old": func(r *runner, _ *Op, a *args) error {
		cond, def := a.index(0), a.index(1)
		literals, blocks := a.pairs(2)
		if a.err != nil {
			return a.err
		}
		values := make([]int64, len(literals))
		for i, v := range literals {
			values[i] = int64(v)
		}
		return r.bb.CreateSwitchOld(cond, def, values, blocks)
	},
	// call: type=return type, args=[callee, calling conv, arguments...]
	"call": valueOp(func(r *runner, t types.Type, a *args) error {
		cc, err := lookup(callingConvCodes, "calling convention", a.opt(1, 0))
		if err != nil {
			return err
		}
		callee, params := a.index(0), a.ints(2)
		if a.err != nil {
			return a.err
		}
		_, err = r.bb.CreateCall(t, callee, params, cc)
		return err
	}),
	"extractelement": valueOp(func(r *runner, t types.Type, a *args) error {
		vec, idx := a.index(0), a.index(1)
		if a.err != nil {
			return a.err
		}
		_, err := r.bb.CreateExtractElement(t, vec, idx)
		return err
	}),
	"insertelement": valueOp(func(r *runner, t types.Type, a *args) error {
		vec, val, idx := a.index(0), a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		_, err := r.bb.CreateInsertElement(t, vec, val, idx)
		return err
	}),
	// extractvalue: args=[aggregate, literal indices...]
	"extractvalue": valueOp(func(r *runner, t types.Type, a *args) error {
		agg, indices := a.index(0), a.u64s(1)
		if a.err != nil {
			return a.err
		}
		_, err := r.bb.CreateExtractValue(t, agg, indices)
		return err
	}),
	// insertvalue: args=[aggregate, value, literal indices...]
	"insertvalue": valueOp(func(r *runner, t types.Type, a *args) error {
		agg, val, indices := a.index(0), a.index(1), a.u64s(2)
		if a.err != nil {
			return a.err
		}
		_, err := r.bb.CreateInsertValue(t, agg, val, indices)
		return err
	}),
	// gep: args=[inbounds, base, indices...]
	"gep": valueOp(func(r *runner, t types.Type, a *args) error {
		inBounds, base, indices := a.flag(0), a.index(1), a.ints(2)
		if a.err != nil {
			return a.err
		}
		_, err := r.bb.CreateGetElementPointer(t, base, indices, inBounds)
		return err
	}),
	// phi: args=[value, block, value, block...]
	"phi": valueOp(func(r *runner, t types.Type, a *args) error {
		values, blocks := a.pairs(0)
		if a.err != nil {
			return a.err
		}
		_, err := r.bb.CreatePhi(t, values, blocks)
		return err
	}),
	"select": valueOp(func(r *runner, t types.Type, a *args) error {
		cond, x, y := a.index(0), a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		_, err := r.bb.CreateSelect(t, cond, x, y)
		return err
	}),
	"shufflevector": valueOp(func(r *runner, t types.Type, a *args) error {
		v1, v2, mask := a.index(0), a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		_, err := r.bb.CreateShuffleVector(t, v1, v2, mask)
		return err
	}),
	// ret: args=[] for ret void, [value] otherwise
	"ret": func(r *runner, op *Op, a *args) error {
		if len(op.Args) == 0 {
			r.bb.CreateReturn()
			return nil
		}
		value := a.index(0)
		if a.err != nil {
			return a.err
		}
		return r.bb.CreateReturnValue(value)
	},
	"unreachable": func(r *runner, _ *Op, _ *args) error {
		r.bb.CreateUnreachable()
		return nil
	},
	// fence: args=[ordering, singlethread]
	"fence": func(r *runner, _ *Op, a *args) error {
		at, err := atomic(a, 0, 1)
		if err != nil {
			return err
		}
		r.bb.CreateFence(at)
		return nil
	},
	// cmpxchg: args=[address, comparison, new value, success, failure, volatile, weak, singlethread]
	"cmpxchg": valueOp(func(r *runner, t types.Type, a *args) error {
		at, err := atomic(a, 3, 7)
		if err != nil {
			return err
		}
		if at.Failure, err = lookup(orderingCodes, "ordering", a.opt(4, 0)); err != nil {
			return err
		}
		at.Volatile, at.Weak = a.flag(5), a.flag(6)
		addr, cmp, next := a.index(0), a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		_, err = r.bb.CreateCompareExchange(t, addr, cmp, next, at)
		return err
	}),
	// atomicrmw: args=[operation, address, value, ordering, volatile, singlethread]
	"atomicrmw": valueOp(func(r *runner, t types.Type, a *args) error {
		rmw, err := lookup(rmwCodes, "atomicrmw operation", a.raw(0))
		if err != nil {
			return err
		}
		at, err := atomic(a, 3, 5)
		if err != nil {
			return err
		}
		at.Volatile = a.flag(4)
		addr, val := a.index(1), a.index(2)
		if a.err != nil {
			return a.err
		}
		_, err = r.bb.CreateReadModifyWrite(t, rmw, addr, val, at)
		return err
	}),
	// debug_loc: args=[metadata index of a location node]
	"debug_loc": func(r *runner, _ *Op, a *args) error {
		md := a.index(0)
		if a.err != nil {
			return a.err
		}
		return r.bb.AttachLocation(md)
	},
}

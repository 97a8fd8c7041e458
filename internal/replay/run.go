package replay

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/irbuild"
	"irmodel/internal/metadata"
)

var (
	// ErrUnknownOp is returned for op codes without a handler.
	ErrUnknownOp = errors.New("unknown op code")
	// ErrNoFunction is returned for function body ops outside function_begin/function_end.
	ErrNoFunction = errors.New("op requires an open function body")
	// ErrNoBlock is returned for instruction ops before the first block op.
	ErrNoBlock = errors.New("instruction outside a block")
)

// scope is the constant and naming surface shared by module and function builders.
type scope interface {
	CreateInteger(typ types.Type, value int64) int
	CreateBigInteger(typ types.Type, value *big.Int) int
	CreateFloatingPoint(typ types.Type, value float64) int
	CreateFloatingPointRaw(typ types.Type, raw []uint64) int
	CreateNull(typ types.Type) int
	CreateUndefined(typ types.Type) int
	CreateString(typ types.Type, value string, cstring bool) int
	CreateAggregate(typ types.Type, elems []int) (int, error)
	CreateBinaryOperationConstant(typ types.Type, op ir.BinaryOperator, lhs, rhs int) (int, error)
	CreateCastConstant(typ types.Type, op ir.CastOperator, value int) (int, error)
	CreateCompareConstant(typ types.Type, pred ir.Predicate, lhs, rhs int) (int, error)
	CreateGetElementPointerConstant(typ types.Type, base int, indices []int, inBounds bool) (int, error)
	CreateBlockAddress(typ types.Type, function, block int) (int, error)
	CreateMetadataConstant(md int) (int, error)
	CreateValueMetadata(index int) (int, error)
	NameEntry(index int, name string) error
	Metadata() *metadata.Block
}

type runner struct {
	mb *irbuild.ModuleBuilder
	fb *irbuild.FunctionBuilder
	bb *irbuild.BlockBuilder
}

func (r *runner) scope() scope {
	if r.fb != nil {
		return r.fb
	}
	return r.mb
}

func (r *runner) typ(index int) (types.Type, error) {
	return r.mb.Type(index)
}

type handler func(r *runner, op *Op, a *args) error

// Run replays s into a fresh module builder and returns the finished module.
func Run(ctx context.Context, s *Stream, opts irbuild.Options) (*ir.Module, error) {
	if opts.Name == "" {
		opts.Name = s.Name
	}
	tys, err := buildTypes(s.Types)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	r := &runner{mb: irbuild.NewModule(ctx, opts)}
	for _, t := range tys {
		r.mb.CreateType(t)
	}
	for i := range s.Ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		op := &s.Ops[i]
		h, ok := handlers[op.Code]
		if !ok {
			return nil, fmt.Errorf("%s: op %d: %w %q", s.Name, i, ErrUnknownOp, op.Code)
		}
		a := &args{op: op}
		err := h(r, op, a)
		if err == nil {
			err = a.err
		}
		if err != nil {
			return nil, fmt.Errorf("%s: op %d (%s): %w", s.Name, i, op.Code, err)
		}
	}
	m, err := r.mb.ExitModule()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	return m, nil
}

var handlers map[string]handler

func init() {
	handlers = make(map[string]handler)
	for code, h := range moduleHandlers {
		handlers[code] = h
	}
	for code, h := range constantHandlers {
		handlers[code] = h
	}
	for code, h := range metadataHandlers {
		handlers[code] = h
	}
	for code, h := range functionHandlers {
		handlers[code] = h
	}
	for code, h := range instructionHandlers {
		handlers[code] = inBlock(h)
	}
}

func inBlock(h handler) handler {
	return func(r *runner, op *Op, a *args) error {
		if r.bb == nil {
			return ErrNoBlock
		}
		return h(r, op, a)
	}
}

func inFunction(h handler) handler {
	return func(r *runner, op *Op, a *args) error {
		if r.fb == nil {
			return ErrNoFunction
		}
		return h(r, op, a)
	}
}

package irbuild_test

import (
	"testing"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/irbuild"
)

func dropIndex(_ int, err error) error { return err }

// Every operand of the instruction refers to the same forward index, which
// is defined by a constant right after the instruction.
func TestBlockBuilder_ForwardOperandsPatched(t *testing.T) {
	vec := types.NewVector(4, types.I32)
	pair := types.NewStruct(types.I32, types.I32)
	ptr := types.NewPointer(types.I8)

	tests := []struct {
		name  string
		value bool
		build func(b *irbuild.BlockBuilder, fwd int) error
	}{
		{"switch", false, func(b *irbuild.BlockBuilder, fwd int) error {
			return b.CreateSwitch(fwd, 1, []int{fwd, fwd}, []int{0, 1})
		}},
		{"switch_old", false, func(b *irbuild.BlockBuilder, fwd int) error {
			return b.CreateSwitchOld(fwd, 1, []int64{7}, []int{0})
		}},
		{"indirectbr", false, func(b *irbuild.BlockBuilder, fwd int) error {
			return b.CreateIndirectBranch(fwd, []int{0, 1})
		}},
		{"fneg", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateUnaryOperation(types.Float, ir.OpFNeg, fwd))
		}},
		{"sext", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateCast(types.I64, ir.CastSExt, fwd))
		}},
		{"extractelement", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateExtractElement(types.I32, fwd, fwd))
		}},
		{"insertelement", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateInsertElement(vec, fwd, fwd, fwd))
		}},
		{"extractvalue", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateExtractValue(types.I32, fwd, []uint64{1}))
		}},
		{"insertvalue", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateInsertValue(pair, fwd, fwd, []uint64{0}))
		}},
		{"getelementptr", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateGetElementPointer(ptr, fwd, []int{fwd, fwd}, true))
		}},
		{"select", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateSelect(types.I32, fwd, fwd, fwd))
		}},
		{"shufflevector", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateShuffleVector(vec, fwd, fwd, fwd))
		}},
		{"call", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateCall(types.I32, fwd, []int{fwd}, enum.CallingConvC))
		}},
		{"atomicrmw", true, func(b *irbuild.BlockBuilder, fwd int) error {
			return dropIndex(b.CreateReadModifyWrite(types.I32, enum.AtomicOpXChg, fwd, fwd,
				irbuild.Atomic{Ordering: enum.AtomicOrderingMonotonic}))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mb := newBuilder()
			mb.CreateFunction(irbuild.FunctionSpec{Type: types.NewFunc(types.Void)})
			fb, err := mb.GenerateFunction()
			if err != nil {
				t.Fatalf("GenerateFunction: %v", err)
			}
			if err := fb.AllocateBlocks(2); err != nil {
				t.Fatalf("AllocateBlocks: %v", err)
			}
			b, _ := fb.GenerateBlock()

			fwd := fb.Table().Defined()
			if tt.value {
				// The instruction itself takes the next index.
				fwd++
			}
			if err := tt.build(b, fwd); err != nil {
				t.Fatalf("build: %v", err)
			}
			if got := fb.CreateInteger(types.I32, 42); got != fwd {
				t.Fatalf("constant landed at %d, want %d", got, fwd)
			}
			exit, _ := fb.GenerateBlock()
			exit.CreateUnreachable()
			if err := fb.ExitFunction(); err != nil {
				t.Fatalf("ExitFunction: %v", err)
			}

			want, err := fb.Table().GetSymbol(fwd)
			if err != nil {
				t.Fatalf("GetSymbol(%d): %v", fwd, err)
			}
			inst := b.Block().Instructions[0]
			ops := inst.Operands()
			if len(ops) == 0 {
				t.Fatalf("%T has no operands", inst)
			}
			for i, op := range ops {
				if op != want {
					t.Errorf("operand %d of %T = %#v, want the constant at %d", i, inst, op, fwd)
				}
			}
			if _, ok := exit.Block().Instructions[0].(*ir.UnreachableInstruction); !ok {
				t.Fatalf("exit block holds %T", exit.Block().Instructions[0])
			}
		})
	}
}

func TestSwitchOld_KeepsLiteralCases(t *testing.T) {
	mb := newBuilder()
	mb.CreateFunction(irbuild.FunctionSpec{Type: types.NewFunc(types.Void, types.I32)})
	fb, _ := mb.GenerateFunction()
	_ = fb.AllocateBlocks(3)
	x := fb.CreateParameter(types.I32)
	b, _ := fb.GenerateBlock()
	if err := b.CreateSwitchOld(x, 2, []int64{-1, 9}, []int{1}); err == nil {
		t.Fatalf("expected an error for mismatched case lists")
	}
	if err := b.CreateSwitchOld(x, 2, []int64{-1, 9}, []int{1, 2}); err != nil {
		t.Fatalf("CreateSwitchOld: %v", err)
	}
	sw := b.Block().Instructions[0].(*ir.SwitchOldInstruction)
	if sw.Default.Index != 2 || len(sw.Cases) != 2 {
		t.Fatalf("default %d, %d cases", sw.Default.Index, len(sw.Cases))
	}
	if sw.Cases[0].Value != -1 || sw.Cases[0].Block.Index != 1 || sw.Cases[1].Value != 9 {
		t.Fatalf("unexpected cases %+v", sw.Cases)
	}
	if got := len(sw.Successors()); got != 3 {
		t.Fatalf("successors = %d, want 3", got)
	}
}

// Constant expressions created before their operands are patched when the
// operands arrive.
func TestConstantExpressions_ForwardOperandsPatched(t *testing.T) {
	ptr := types.NewPointer(types.I32)
	tests := []struct {
		name  string
		build func(mb *irbuild.ModuleBuilder, fwd int) (int, error)
	}{
		{"binop", func(mb *irbuild.ModuleBuilder, fwd int) (int, error) {
			return mb.CreateBinaryOperationConstant(types.I32, ir.OpMul, fwd, fwd)
		}},
		{"cmp", func(mb *irbuild.ModuleBuilder, fwd int) (int, error) {
			return mb.CreateCompareConstant(types.I1, ir.IntPredicate(enum.IPredSLT), fwd, fwd)
		}},
		{"cast", func(mb *irbuild.ModuleBuilder, fwd int) (int, error) {
			return mb.CreateCastConstant(types.I64, ir.CastZExt, fwd)
		}},
		{"getelementptr", func(mb *irbuild.ModuleBuilder, fwd int) (int, error) {
			return mb.CreateGetElementPointerConstant(ptr, fwd, []int{fwd}, true)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mb := newBuilder()
			fwd := mb.Table().Defined() + 1
			k, err := tt.build(mb, fwd)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if got := mb.CreateInteger(types.I32, 3); got != fwd {
				t.Fatalf("operand landed at %d, want %d", got, fwd)
			}
			want, _ := mb.Table().GetSymbol(fwd)
			sym, err := mb.Table().GetSymbol(k)
			if err != nil {
				t.Fatalf("GetSymbol(%d): %v", k, err)
			}

			var ops []ir.Symbol
			switch c := sym.(type) {
			case *ir.BinaryOperationConstant:
				ops = []ir.Symbol{c.LHS, c.RHS}
			case *ir.CompareConstant:
				ops = []ir.Symbol{c.LHS, c.RHS}
			case *ir.CastConstant:
				ops = []ir.Symbol{c.Value}
			case *ir.GetElementPointerConstant:
				ops = append([]ir.Symbol{c.Base}, c.Indices...)
			default:
				t.Fatalf("unexpected constant %T", sym)
			}
			for i, op := range ops {
				if op != want {
					t.Errorf("operand %d = %#v, want the integer at %d", i, op, fwd)
				}
			}
			if len(mb.Table().Unresolved()) != 0 {
				t.Fatalf("placeholders left: %v", mb.Table().Unresolved())
			}
		})
	}
}

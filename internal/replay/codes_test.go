package replay

import (
	"testing"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
)

func TestBinaryOperator(t *testing.T) {
	tests := []struct {
		code int64
		typ  types.Type
		want ir.BinaryOperator
	}{
		{0, types.I32, ir.OpAdd},
		{0, types.Float, ir.OpFAdd},
		{4, types.Double, ir.OpFDiv},
		{4, types.I64, ir.OpSDiv},
		{1, types.NewVector(4, types.Float), ir.OpFSub},
		{1, types.NewVector(4, types.I32), ir.OpSub},
	}
	for _, tt := range tests {
		got, err := binaryOperator(tt.code, tt.typ)
		if err != nil {
			t.Fatalf("binaryOperator(%d, %s): %v", tt.code, tt.typ, err)
		}
		if got != tt.want {
			t.Errorf("binaryOperator(%d, %s) = %v, want %v", tt.code, tt.typ, got, tt.want)
		}
	}
	if _, err := binaryOperator(3, types.Float); err == nil {
		t.Error("udiv on float should be rejected")
	}
}

func TestPredicate(t *testing.T) {
	if p, err := predicate(39); err != nil || p != ir.IntPredicate(enum.IPredSGE) {
		t.Fatalf("predicate(39) = %v, %v", p, err)
	}
	if p, err := predicate(1); err != nil || p != ir.FloatPredicate(enum.FPredOEQ) {
		t.Fatalf("predicate(1) = %v, %v", p, err)
	}
	if _, err := predicate(20); err == nil {
		t.Fatal("predicate(20) should fail")
	}
}

func TestOperationFlags(t *testing.T) {
	if f := operationFlags(ir.OpSDiv, 1); f != ir.FlagExact {
		t.Errorf("sdiv flags = %v", f)
	}
	if f := operationFlags(ir.OpAdd, 3); f != ir.FlagNoUnsignedWrap|ir.FlagNoSignedWrap {
		t.Errorf("add flags = %v", f)
	}
	if f := operationFlags(ir.OpLShr, 2); f != 0 {
		t.Errorf("lshr ignores nsw, got %v", f)
	}
}

func TestBuildTypes(t *testing.T) {
	tys, err := buildTypes([]TypeRecord{
		{Kind: "int", Width: 8},
		{Kind: "array", Len: 4, Elem: 0},
		{Kind: "struct", Name: "pair", Fields: []int{0, 1}},
		{Kind: "func", Ret: 0, Params: []int{2}, Variadic: true},
	})
	if err != nil {
		t.Fatalf("buildTypes: %v", err)
	}
	if st := tys[2].(*types.StructType); st.Name() != "pair" || len(st.Fields) != 2 {
		t.Fatalf("struct = %v", st)
	}
	if ft := tys[3].(*types.FuncType); !ft.Variadic || ft.Params[0] != tys[2] {
		t.Fatalf("func = %v", ft)
	}

	if _, err := buildTypes([]TypeRecord{{Kind: "pointer", Elem: 0}}); err == nil {
		t.Fatal("self reference should fail")
	}
	if _, err := buildTypes([]TypeRecord{{Kind: "opaque"}}); err == nil {
		t.Fatal("unknown kind should fail")
	}
}

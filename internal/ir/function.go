package ir

import (
	"fmt"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/metadata"
)

// FunctionAttributes are the properties shared by declarations and definitions.
type FunctionAttributes struct {
	Linkage     enum.Linkage
	Visibility  enum.Visibility
	CallingConv enum.CallingConv
}

// FunctionDeclaration is a function prototype without a body.
type FunctionDeclaration struct {
	valueName
	leaf
	FunctionAttributes
	Sig *types.FuncType
	Typ *types.PointerType
}

// NewFunctionDeclaration creates a declaration of signature sig.
func NewFunctionDeclaration(sig *types.FuncType, attrs FunctionAttributes) *FunctionDeclaration {
	return &FunctionDeclaration{Sig: sig, Typ: types.NewPointer(sig), FunctionAttributes: attrs}
}

func (f *FunctionDeclaration) Type() types.Type { return f.Typ }

// FunctionDefinition is a function with a body.
//
// Blocks has a fixed length once allocated; blocks are never added or
// removed afterwards.
type FunctionDefinition struct {
	valueName
	leaf
	FunctionAttributes
	Sig      *types.FuncType
	Typ      *types.PointerType
	Params   []*FunctionParameter
	Blocks   []*InstructionBlock
	Metadata *metadata.Block
}

// NewFunctionDefinition creates a definition of signature sig with no body yet.
func NewFunctionDefinition(sig *types.FuncType, attrs FunctionAttributes) *FunctionDefinition {
	return &FunctionDefinition{Sig: sig, Typ: types.NewPointer(sig), FunctionAttributes: attrs}
}

func (f *FunctionDefinition) Type() types.Type { return f.Typ }

// ReturnType is the result type of the signature.
func (f *FunctionDefinition) ReturnType() types.Type { return f.Sig.RetType }

// ParamTypes are the parameter types of the signature.
func (f *FunctionDefinition) ParamTypes() []types.Type { return f.Sig.Params }

// Variadic reports whether the function accepts extra arguments.
func (f *FunctionDefinition) Variadic() bool { return f.Sig.Variadic }

// Block returns the block at index.
func (f *FunctionDefinition) Block(index int) (*InstructionBlock, error) {
	if index < 0 || index >= len(f.Blocks) {
		return nil, fmt.Errorf("function @%s: block %d out of range [0,%d)", f.Name(), index, len(f.Blocks))
	}
	return f.Blocks[index], nil
}

// FunctionParameter is a formal parameter of a definition.
type FunctionParameter struct {
	valueName
	leaf
	Typ   types.Type
	Index int
}

func (p *FunctionParameter) Type() types.Type { return p.Typ }

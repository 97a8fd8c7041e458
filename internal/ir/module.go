package ir

import (
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/metadata"
)

// Module is a fully linked program graph.
type Module struct {
	SourceFilename string
	TargetTriple   string
	DataLayout     string

	Types        []types.Type
	Globals      []GlobalValueSymbol
	Definitions  []*FunctionDefinition
	Declarations []*FunctionDeclaration
	Metadata     *metadata.Block
}

// NewModule creates an empty module with its metadata block.
func NewModule() *Module {
	return &Module{Metadata: metadata.NewBlock(0, nil)}
}

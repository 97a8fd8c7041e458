package metadata

import "github.com/llir/llvm/ir/types"

// Kind enumerates metadata node kinds.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindTuple
	KindValue
	KindFile
	KindCompileUnit
	KindBasicType
	KindSubprogram
	KindLocalVariable
	KindLocation
)

var kindNames = [...]string{
	KindString:        "string",
	KindTuple:         "tuple",
	KindValue:         "value",
	KindFile:          "file",
	KindCompileUnit:   "compile_unit",
	KindBasicType:     "basic_type",
	KindSubprogram:    "subprogram",
	KindLocalVariable: "local_variable",
	KindLocation:      "location",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Node is a metadata node. The set of node kinds is closed.
type Node interface {
	Kind() Kind
	isNode()
}

// Typed is the view of an IR value that a ValueNode keeps.
type Typed interface {
	Type() types.Type
}

// StringNode is !"text".
type StringNode struct {
	Value string
}

// TupleNode is a generic !{...} node.
type TupleNode struct {
	Distinct bool
	Operands []Reference
}

// ValueNode wraps an IR value.
type ValueNode struct {
	Value Typed
}

// FileNode is DIFile.
type FileNode struct {
	Filename  string
	Directory string
}

// CompileUnitNode is DICompileUnit.
type CompileUnitNode struct {
	Language  uint32
	File      Reference
	Producer  string
	Optimized bool
}

// BasicTypeNode is DIBasicType.
type BasicTypeNode struct {
	Name     string
	Size     uint64
	Align    uint64
	Encoding uint32
}

// SubprogramNode is DISubprogram.
type SubprogramNode struct {
	Scope       Reference
	Name        string
	LinkageName string
	File        Reference
	Line        uint32
	Type        Reference
	Definition  bool
}

// LocalVariableNode is DILocalVariable.
type LocalVariableNode struct {
	Scope Reference
	Name  string
	File  Reference
	Line  uint32
	Type  Reference
	Arg   uint32
}

// LocationNode is DILocation.
type LocationNode struct {
	Line      uint32
	Column    uint32
	Scope     Reference
	InlinedAt Reference
}

// NamedNode is a module-level named node. Named nodes live outside the
// index space.
type NamedNode struct {
	Name     string
	Operands []Reference
}

func (*StringNode) Kind() Kind        { return KindString }
func (*TupleNode) Kind() Kind         { return KindTuple }
func (*ValueNode) Kind() Kind         { return KindValue }
func (*FileNode) Kind() Kind          { return KindFile }
func (*CompileUnitNode) Kind() Kind   { return KindCompileUnit }
func (*BasicTypeNode) Kind() Kind     { return KindBasicType }
func (*SubprogramNode) Kind() Kind    { return KindSubprogram }
func (*LocalVariableNode) Kind() Kind { return KindLocalVariable }
func (*LocationNode) Kind() Kind      { return KindLocation }

func (*StringNode) isNode()        {}
func (*TupleNode) isNode()         {}
func (*ValueNode) isNode()         {}
func (*FileNode) isNode()          {}
func (*CompileUnitNode) isNode()   {}
func (*BasicTypeNode) isNode()     {}
func (*SubprogramNode) isNode()    {}
func (*LocalVariableNode) isNode() {}
func (*LocationNode) isNode()      {}

package irbuild

import (
	"context"
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/metadata"
	"irmodel/internal/symtab"
	"irmodel/internal/trace"
)

// Options configure a module build.
type Options struct {
	// SymbolCapacity is the initial size of the symbol tables; 0 picks a default.
	SymbolCapacity uint32
	// MetadataStart is the first index of the module metadata block.
	MetadataStart int
	// Name labels the module in trace output.
	Name string
	// Tracer receives builder events. nil uses the tracer carried by the context.
	Tracer trace.Tracer
}

// FunctionSpec describes a function symbol.
type FunctionSpec struct {
	Type       *types.FuncType
	Prototype  bool // declaration without body
	Attributes ir.FunctionAttributes
}

// ModuleBuilder builds one module. It is not safe for concurrent use; build
// separate modules on separate builders.
type ModuleBuilder struct {
	constants
	module *ir.Module
	opts   Options

	// pending lists definitions in creation order; bodies arrive in the same order.
	pending   []*ir.FunctionDefinition
	generated int
	current   *FunctionBuilder
	finished  bool

	tracer trace.Tracer
	span   *trace.Span
}

// NewModule starts a module build.
func NewModule(ctx context.Context, opts Options) *ModuleBuilder {
	tr := opts.Tracer
	if tr == nil {
		tr = trace.FromContext(ctx)
	}
	name := opts.Name
	if name == "" {
		name = "module"
	}
	span := trace.Begin(tr, trace.ScopeModule, "module:"+name, trace.CurrentSpan(ctx))

	m := ir.NewModule()
	m.Metadata = metadata.NewBlock(opts.MetadataStart, nil)
	table := symtab.NewTable(opts.SymbolCapacity)
	table.SetTracer(tr, span.ID())
	return &ModuleBuilder{
		constants: constants{table: table, md: m.Metadata},
		module:    m,
		opts:      opts,
		tracer:    tr,
		span:      span,
	}
}

// SetTargetTriple records the target triple.
func (b *ModuleBuilder) SetTargetTriple(triple string) { b.module.TargetTriple = triple }

// SetDataLayout records the data layout string.
func (b *ModuleBuilder) SetDataLayout(layout string) { b.module.DataLayout = layout }

// SetSourceFilename records the source file name.
func (b *ModuleBuilder) SetSourceFilename(name string) { b.module.SourceFilename = name }

// CreateType records a top-level type and returns its type index.
func (b *ModuleBuilder) CreateType(t types.Type) int {
	b.module.Types = append(b.module.Types, t)
	return len(b.module.Types) - 1
}

// Type returns the type recorded at index.
func (b *ModuleBuilder) Type(index int) (types.Type, error) {
	if index < 0 || index >= len(b.module.Types) {
		return nil, fmt.Errorf("type %d out of range [0,%d)", index, len(b.module.Types))
	}
	return b.module.Types[index], nil
}

// CreateGlobalVariable adds a global variable of valueType. initialiser is
// the symbol index of the initializer plus one, or 0 for none; it is
// resolved at ExitModule.
func (b *ModuleBuilder) CreateGlobalVariable(valueType types.Type, initialiser int, attrs ir.GlobalAttributes) int {
	g := ir.NewGlobalVariable(types.NewPointer(valueType), valueType, initialiser, attrs)
	b.module.Globals = append(b.module.Globals, g)
	return b.add(g)
}

// CreateGlobalConstant is CreateGlobalVariable for immutable globals.
func (b *ModuleBuilder) CreateGlobalConstant(valueType types.Type, initialiser int, attrs ir.GlobalAttributes) int {
	g := ir.NewGlobalConstant(types.NewPointer(valueType), valueType, initialiser, attrs)
	b.module.Globals = append(b.module.Globals, g)
	return b.add(g)
}

// CreateGlobalAlias adds an alias of type typ for the symbol at aliasee,
// resolved at ExitModule.
func (b *ModuleBuilder) CreateGlobalAlias(typ types.Type, aliasee int, attrs ir.GlobalAttributes) int {
	a := ir.NewGlobalAlias(typ, aliasee, attrs)
	b.module.Globals = append(b.module.Globals, a)
	return b.add(a)
}

// CreateFunction adds a declaration for prototypes and a definition
// awaiting its body otherwise.
func (b *ModuleBuilder) CreateFunction(spec FunctionSpec) int {
	if spec.Prototype {
		decl := ir.NewFunctionDeclaration(spec.Type, spec.Attributes)
		b.module.Declarations = append(b.module.Declarations, decl)
		return b.add(decl)
	}
	def := ir.NewFunctionDefinition(spec.Type, spec.Attributes)
	b.module.Definitions = append(b.module.Definitions, def)
	b.pending = append(b.pending, def)
	return b.add(def)
}

// NameEntry names a module-level symbol.
func (b *ModuleBuilder) NameEntry(index int, name string) error {
	if b.finished {
		return ErrModuleFinished
	}
	return b.constants.NameEntry(index, name)
}

// GenerateFunction starts the body of the next definition without one.
func (b *ModuleBuilder) GenerateFunction() (*FunctionBuilder, error) {
	if b.finished {
		return nil, ErrModuleFinished
	}
	if b.current != nil && !b.current.exited {
		return nil, ErrFunctionOpen
	}
	if b.generated >= len(b.pending) {
		return nil, ErrUndefinedMethodGeneration
	}
	def := b.pending[b.generated]
	b.generated++

	table := symtab.NewTable(b.opts.SymbolCapacity)
	if err := table.AddSymbols(b.table); err != nil {
		return nil, fmt.Errorf("function @%s: %w", def.Name(), err)
	}
	def.Metadata = metadata.NewBlock(b.module.Metadata.End(), b.module.Metadata)

	span := trace.Begin(b.tracer, trace.ScopeFunction, "function:@"+def.Name(), b.span.ID())
	table.SetTracer(b.tracer, span.ID())
	fb := &FunctionBuilder{
		constants: constants{table: table, md: def.Metadata, fn: def},
		module:    b,
		span:      span,
	}
	b.current = fb
	return fb, nil
}

// ExitModule resolves global initializers and aliasees and returns the
// finished module. It fails while placeholders remain or definitions lack
// a body.
func (b *ModuleBuilder) ExitModule() (*ir.Module, error) {
	if b.finished {
		return nil, ErrModuleFinished
	}
	if b.current != nil && !b.current.exited {
		return nil, ErrFunctionOpen
	}
	if missing := len(b.pending) - b.generated; missing > 0 {
		return nil, fmt.Errorf("%d definitions: %w", missing, ErrMissingFunctionBody)
	}
	if unresolved := b.table.Unresolved(); len(unresolved) > 0 {
		return nil, &symtab.UnresolvedIndexError{Index: unresolved[0], Size: b.table.Size()}
	}
	for _, g := range b.module.Globals {
		if err := g.Initialise(b.table.GetSymbol); err != nil {
			return nil, err
		}
	}
	b.finished = true
	b.span.
		WithExtra("globals", strconv.Itoa(len(b.module.Globals))).
		WithExtra("definitions", strconv.Itoa(len(b.module.Definitions))).
		WithExtra("declarations", strconv.Itoa(len(b.module.Declarations))).
		End(fmt.Sprintf("%d symbols", b.table.Defined()))
	return b.module, nil
}

// Module returns the module under construction.
func (b *ModuleBuilder) Module() *ir.Module { return b.module }

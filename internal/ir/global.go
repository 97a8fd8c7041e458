package ir

import (
	"fmt"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// GlobalValueSymbol is a module-level variable, constant or alias.
type GlobalValueSymbol interface {
	ValueSymbol
	// Initialise resolves the deferred initializer once the whole module
	// is visible.
	Initialise(lookup SymbolLookup) error
	isGlobal()
}

// GlobalAttributes are the properties shared by global values.
type GlobalAttributes struct {
	Linkage    enum.Linkage
	Visibility enum.Visibility
	Align      uint32
	Section    string
}

// global is the storage shared by global variables and constants.
//
// initialiser is the table index of the initializer plus one; 0 means the
// global is a declaration without initializer.
type global struct {
	valueName
	leaf
	GlobalAttributes
	Typ         types.Type
	ValueType   types.Type
	Initializer Symbol

	initialiser int
}

func (g *global) Type() types.Type { return g.Typ }

func (g *global) initialise(lookup SymbolLookup) error {
	if g.initialiser <= 0 || g.Initializer != nil {
		return nil
	}
	sym, err := lookup(g.initialiser - 1)
	if err != nil {
		return fmt.Errorf("initializer of @%s: %w", g.Name(), err)
	}
	g.Initializer = sym
	return nil
}

// HasInitializer reports whether the global carries (or will carry) an initializer.
func (g *global) HasInitializer() bool { return g.initialiser > 0 }

// GlobalVariable is a mutable module-level variable.
type GlobalVariable struct {
	global
}

// GlobalConstant is an immutable module-level variable.
type GlobalConstant struct {
	global
}

// NewGlobalVariable creates a global variable whose initializer, if any, is
// the symbol at index initialiser-1.
func NewGlobalVariable(typ, valueType types.Type, initialiser int, attrs GlobalAttributes) *GlobalVariable {
	return &GlobalVariable{global{Typ: typ, ValueType: valueType, GlobalAttributes: attrs, initialiser: initialiser}}
}

// NewGlobalConstant creates a global constant, see NewGlobalVariable.
func NewGlobalConstant(typ, valueType types.Type, initialiser int, attrs GlobalAttributes) *GlobalConstant {
	return &GlobalConstant{global{Typ: typ, ValueType: valueType, GlobalAttributes: attrs, initialiser: initialiser}}
}

func (g *GlobalVariable) Initialise(lookup SymbolLookup) error { return g.initialise(lookup) }
func (g *GlobalConstant) Initialise(lookup SymbolLookup) error { return g.initialise(lookup) }

func (*GlobalVariable) isGlobal() {}
func (*GlobalConstant) isGlobal() {}

// GlobalAlias names another global value.
type GlobalAlias struct {
	valueName
	leaf
	GlobalAttributes
	Typ     types.Type
	Aliasee Symbol

	aliasee int
}

// NewGlobalAlias creates an alias of the symbol at index aliasee.
func NewGlobalAlias(typ types.Type, aliasee int, attrs GlobalAttributes) *GlobalAlias {
	return &GlobalAlias{Typ: typ, GlobalAttributes: attrs, aliasee: aliasee}
}

func (a *GlobalAlias) Type() types.Type { return a.Typ }

func (a *GlobalAlias) Initialise(lookup SymbolLookup) error {
	if a.Aliasee != nil {
		return nil
	}
	sym, err := lookup(a.aliasee)
	if err != nil {
		return fmt.Errorf("aliasee of @%s: %w", a.Name(), err)
	}
	a.Aliasee = sym
	return nil
}

func (*GlobalAlias) isGlobal() {}

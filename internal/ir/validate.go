package ir

import (
	"errors"
	"fmt"
)

// Validate checks structural invariants of a finished module: every block
// exists and is terminated, no operand is a placeholder or missing, and
// every successor belongs to the same function.
func Validate(m *Module) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, g := range m.Globals {
		if err := validateGlobal(g); err != nil {
			errs = append(errs, err)
		}
	}
	for _, f := range m.Definitions {
		if f == nil {
			continue
		}
		if err := validateFunction(f); err != nil {
			errs = append(errs, fmt.Errorf("function @%s: %w", f.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func validateGlobal(g GlobalValueSymbol) error {
	switch g := g.(type) {
	case *GlobalVariable:
		if g.HasInitializer() && g.Initializer == nil {
			return fmt.Errorf("global @%s: initializer not resolved", g.Name())
		}
	case *GlobalConstant:
		if g.HasInitializer() && g.Initializer == nil {
			return fmt.Errorf("global @%s: initializer not resolved", g.Name())
		}
	case *GlobalAlias:
		if g.Aliasee == nil {
			return fmt.Errorf("alias @%s: aliasee not resolved", g.Name())
		}
	}
	return nil
}

func validateFunction(f *FunctionDefinition) error {
	var errs []error
	owned := make(map[*InstructionBlock]struct{}, len(f.Blocks))
	for _, b := range f.Blocks {
		if b != nil {
			owned[b] = struct{}{}
		}
	}
	for i, b := range f.Blocks {
		if b == nil {
			errs = append(errs, fmt.Errorf("block %d: never generated", i))
			continue
		}
		if !b.Terminated() {
			errs = append(errs, fmt.Errorf("block %d: unterminated block", i))
		}
		for j, inst := range b.Instructions {
			for k, op := range inst.Operands() {
				switch {
				case op == nil:
					errs = append(errs, fmt.Errorf("block %d, instruction %d: operand %d missing", i, j, k))
				case IsPlaceholder(op):
					errs = append(errs, fmt.Errorf("block %d, instruction %d: operand %d unresolved", i, j, k))
				}
			}
			if t, ok := inst.(Terminator); ok {
				for _, s := range t.Successors() {
					if _, ok := owned[s]; !ok {
						errs = append(errs, fmt.Errorf("block %d: successor outside function", i))
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}

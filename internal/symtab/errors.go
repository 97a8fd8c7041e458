package symtab

import (
	"errors"
	"fmt"

	"github.com/llir/llvm/ir/types"
)

var (
	// ErrUnresolvedIndex is matched by every *UnresolvedIndexError.
	ErrUnresolvedIndex = errors.New("forward reference without a dependent")
	// ErrUnsupportedTypeKind is matched by every *UnsupportedTypeKindError.
	ErrUnsupportedTypeKind = errors.New("unsupported aggregate type kind")
	// ErrNilDependent is returned when a forward-safe lookup has no holder to patch.
	ErrNilDependent = errors.New("forward-safe lookup without dependent")
)

// UnresolvedIndexError reports an index that holds no defined symbol.
type UnresolvedIndexError struct {
	Index int
	Size  int
}

func (e *UnresolvedIndexError) Error() string {
	return fmt.Sprintf("symbol %d (table size %d): %v", e.Index, e.Size, ErrUnresolvedIndex)
}

func (e *UnresolvedIndexError) Unwrap() error { return ErrUnresolvedIndex }

// UnsupportedTypeKindError reports an aggregate request for a type that is
// not an array, struct or vector.
type UnsupportedTypeKindError struct {
	Type types.Type
}

func (e *UnsupportedTypeKindError) Error() string {
	name := "<nil>"
	if e.Type != nil {
		name = e.Type.String()
	}
	return fmt.Sprintf("%v: %s", ErrUnsupportedTypeKind, name)
}

func (e *UnsupportedTypeKindError) Unwrap() error { return ErrUnsupportedTypeKind }

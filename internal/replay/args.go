package replay

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// ErrMissingArgument is returned when an op has fewer arguments than its code needs.
var ErrMissingArgument = errors.New("missing argument")

// ErrOddPairs is returned when a value/block list has an unpaired entry.
var ErrOddPairs = errors.New("odd number of pair arguments")

// args reads op arguments with a sticky error, so a handler can read all
// of its operands and check once.
type args struct {
	op  *Op
	err error
}

func (a *args) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *args) raw(i int) int64 {
	if a.err != nil {
		return 0
	}
	if i >= len(a.op.Args) {
		a.fail(fmt.Errorf("%w %d of %q", ErrMissingArgument, i, a.op.Code))
		return 0
	}
	return a.op.Args[i]
}

// opt returns argument i, or def when the op is shorter.
func (a *args) opt(i int, def int64) int64 {
	if i >= len(a.op.Args) {
		return def
	}
	return a.op.Args[i]
}

func (a *args) index(i int) int {
	v, err := safecast.Conv[int](a.raw(i))
	if err != nil {
		a.fail(fmt.Errorf("argument %d of %q: %w", i, a.op.Code, err))
	}
	return v
}

func (a *args) u32(i int) uint32 {
	v, err := safecast.Conv[uint32](a.opt(i, 0))
	if err != nil {
		a.fail(fmt.Errorf("argument %d of %q: %w", i, a.op.Code, err))
	}
	return v
}

func (a *args) flag(i int) bool { return a.opt(i, 0) != 0 }

// ints converts arguments from index from to the end.
func (a *args) ints(from int) []int {
	if from >= len(a.op.Args) {
		return nil
	}
	out := make([]int, 0, len(a.op.Args)-from)
	for i := from; i < len(a.op.Args); i++ {
		out = append(out, a.index(i))
	}
	return out
}

func (a *args) u64s(from int) []uint64 {
	if from >= len(a.op.Args) {
		return nil
	}
	out := make([]uint64, 0, len(a.op.Args)-from)
	for i := from; i < len(a.op.Args); i++ {
		v, err := safecast.Conv[uint64](a.op.Args[i])
		if err != nil {
			a.fail(fmt.Errorf("argument %d of %q: %w", i, a.op.Code, err))
		}
		out = append(out, v)
	}
	return out
}

// pairs splits the arguments from index from into alternating value and
// block lists.
func (a *args) pairs(from int) (values, blocks []int) {
	rest := a.ints(from)
	if len(rest)%2 != 0 {
		a.fail(errOddPairs(a.op.Code))
		return nil, nil
	}
	for i := 0; i < len(rest); i += 2 {
		values = append(values, rest[i])
		blocks = append(blocks, rest[i+1])
	}
	return values, blocks
}

func (a *args) text(i int) string {
	if i >= len(a.op.Text) {
		return ""
	}
	return a.op.Text[i]
}

func errOddPairs(code string) error {
	return fmt.Errorf("%q: %w", code, ErrOddPairs)
}

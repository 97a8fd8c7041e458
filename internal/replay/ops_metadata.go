package replay

import (
	"fmt"

	"fortio.org/safecast"

	"irmodel/internal/metadata"
)

func (a *args) ref(md *metadata.Block, i int) metadata.Reference {
	id, err := safecast.Conv[uint64](a.opt(i, 0))
	if err != nil {
		a.fail(fmt.Errorf("metadata argument %d of %q: %w", i, a.op.Code, err))
		return metadata.Void
	}
	ref, err := md.ReferenceID(id)
	if err != nil {
		a.fail(err)
		return metadata.Void
	}
	return ref
}

func (a *args) refs(md *metadata.Block, from int) []metadata.Reference {
	out := make([]metadata.Reference, 0, max(len(a.op.Args)-from, 0))
	for i := from; i < len(a.op.Args); i++ {
		out = append(out, a.ref(md, i))
	}
	return out
}

func addNode(r *runner, a *args, build func(md *metadata.Block) metadata.Node) error {
	md := r.scope().Metadata()
	n := build(md)
	if a.err != nil {
		return a.err
	}
	md.Add(n)
	return nil
}

var metadataHandlers = map[string]handler{
	"md_string": func(r *runner, _ *Op, a *args) error {
		return addNode(r, a, func(*metadata.Block) metadata.Node {
			return &metadata.StringNode{Value: a.text(0)}
		})
	},
	// md_tuple: args=operand references; md_distinct_tuple likewise.
	"md_tuple": func(r *runner, _ *Op, a *args) error {
		return addNode(r, a, func(md *metadata.Block) metadata.Node {
			return &metadata.TupleNode{Operands: a.refs(md, 0)}
		})
	},
	"md_distinct_tuple": func(r *runner, _ *Op, a *args) error {
		return addNode(r, a, func(md *metadata.Block) metadata.Node {
			return &metadata.TupleNode{Distinct: true, Operands: a.refs(md, 0)}
		})
	},
	// md_value: args=[symbol index]
	"md_value": func(r *runner, _ *Op, a *args) error {
		index := a.index(0)
		if a.err != nil {
			return a.err
		}
		_, err := r.scope().CreateValueMetadata(index)
		return err
	},
	// md_file: text=[filename, directory]
	"md_file": func(r *runner, _ *Op, a *args) error {
		return addNode(r, a, func(*metadata.Block) metadata.Node {
			return &metadata.FileNode{Filename: a.text(0), Directory: a.text(1)}
		})
	},
	// md_compile_unit: args=[language, file, optimized], text=[producer]
	"md_compile_unit": func(r *runner, _ *Op, a *args) error {
		return addNode(r, a, func(md *metadata.Block) metadata.Node {
			return &metadata.CompileUnitNode{
				Language:  a.u32(0),
				File:      a.ref(md, 1),
				Producer:  a.text(0),
				Optimized: a.flag(2),
			}
		})
	},
	// md_basic_type: args=[size, align, encoding], text=[name]
	"md_basic_type": func(r *runner, _ *Op, a *args) error {
		return addNode(r, a, func(*metadata.Block) metadata.Node {
			return &metadata.BasicTypeNode{
				Name:     a.text(0),
				Size:     uint64(a.u32(0)),
				Align:    uint64(a.u32(1)),
				Encoding: a.u32(2),
			}
		})
	},
	// md_subprogram: args=[scope, file, line, type, definition], text=[name, linkage name]
	"md_subprogram": func(r *runner, _ *Op, a *args) error {
		return addNode(r, a, func(md *metadata.Block) metadata.Node {
			return &metadata.SubprogramNode{
				Scope:       a.ref(md, 0),
				Name:        a.text(0),
				LinkageName: a.text(1),
				File:        a.ref(md, 1),
				Line:        a.u32(2),
				Type:        a.ref(md, 3),
				Definition:  a.flag(4),
			}
		})
	},
	// md_local_var: args=[scope, file, line, type, arg], text=[name]
	"md_local_var": func(r *runner, _ *Op, a *args) error {
		return addNode(r, a, func(md *metadata.Block) metadata.Node {
			return &metadata.LocalVariableNode{
				Scope: a.ref(md, 0),
				Name:  a.text(0),
				File:  a.ref(md, 1),
				Line:  a.u32(2),
				Type:  a.ref(md, 3),
				Arg:   a.u32(4),
			}
		})
	},
	// md_location: args=[line, column, scope, inlined at]
	"md_location": func(r *runner, _ *Op, a *args) error {
		return addNode(r, a, func(md *metadata.Block) metadata.Node {
			return &metadata.LocationNode{
				Line:      a.u32(0),
				Column:    a.u32(1),
				Scope:     a.ref(md, 2),
				InlinedAt: a.ref(md, 3),
			}
		})
	},
	// md_named: text=[name], args=operand references
	"md_named": func(r *runner, _ *Op, a *args) error {
		md := r.scope().Metadata()
		refs := a.refs(md, 0)
		if a.err != nil {
			return a.err
		}
		md.AddNamed(a.text(0), refs...)
		return nil
	},
}

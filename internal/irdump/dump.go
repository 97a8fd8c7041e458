// Package irdump renders a finished ir.Module as LLVM-flavoured text.
package irdump

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/metadata"
)

// DumpOptions configures module dumping.
type DumpOptions struct {
	// Metadata appends the metadata blocks after the functions.
	Metadata bool
	// Locations suffixes instructions with their debug location index.
	Locations bool
}

// DumpModule writes a human-readable representation of m.
func DumpModule(w io.Writer, m *ir.Module, opts DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}
	d := &dumper{w: w, opts: opts}
	if m.SourceFilename != "" {
		d.printf("source_filename = %q\n", m.SourceFilename)
	}
	if m.DataLayout != "" {
		d.printf("target datalayout = %q\n", m.DataLayout)
	}
	if m.TargetTriple != "" {
		d.printf("target triple = %q\n", m.TargetTriple)
	}
	ir.Walk(m, d)
	if opts.Metadata {
		d.dumpMetadata(m.Metadata)
	}
	return d.err
}

type dumper struct {
	w    io.Writer
	opts DumpOptions
	err  error
	fn   *ir.FunctionDefinition
}

func (d *dumper) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *dumper) VisitType(t types.Type) {
	if t.Name() != "" {
		d.printf("%s = type %s\n", t, t.LLString())
		return
	}
	d.printf("; type %s\n", t.LLString())
}

func (d *dumper) VisitGlobal(g ir.GlobalValueSymbol) {
	switch g := g.(type) {
	case *ir.GlobalVariable:
		d.printf("@%s =%s global %s%s\n", g.Name(), globalAttrs(g.GlobalAttributes), g.ValueType, initializer(g.Initializer, g.GlobalAttributes))
	case *ir.GlobalConstant:
		d.printf("@%s =%s constant %s%s\n", g.Name(), globalAttrs(g.GlobalAttributes), g.ValueType, initializer(g.Initializer, g.GlobalAttributes))
	case *ir.GlobalAlias:
		d.printf("@%s =%s alias %s, %s\n", g.Name(), globalAttrs(g.GlobalAttributes), g.Typ, typed(g.Aliasee))
	}
}

func globalAttrs(a ir.GlobalAttributes) string {
	var sb strings.Builder
	if a.Linkage != enum.LinkageNone {
		sb.WriteString(" " + a.Linkage.String())
	}
	if a.Visibility != enum.VisibilityNone && a.Visibility != enum.VisibilityDefault {
		sb.WriteString(" " + a.Visibility.String())
	}
	return sb.String()
}

func initializer(init ir.Symbol, a ir.GlobalAttributes) string {
	s := ""
	if init != nil {
		s = " " + value(init)
	}
	if a.Section != "" {
		s += fmt.Sprintf(", section %q", a.Section)
	}
	if a.Align != 0 {
		s += fmt.Sprintf(", align %d", a.Align)
	}
	return s
}

func functionAttrs(a ir.FunctionAttributes) string {
	s := globalAttrs(ir.GlobalAttributes{Linkage: a.Linkage, Visibility: a.Visibility})
	if a.CallingConv != enum.CallingConvNone && a.CallingConv != enum.CallingConvC {
		s += " " + a.CallingConv.String()
	}
	return s
}

func signature(name string, sig *types.FuncType, params []*ir.FunctionParameter) string {
	parts := make([]string, 0, len(sig.Params)+1)
	for i, t := range sig.Params {
		if i < len(params) {
			parts = append(parts, t.String()+" "+param(params[i]))
		} else {
			parts = append(parts, t.String())
		}
	}
	if sig.Variadic {
		parts = append(parts, "...")
	}
	return fmt.Sprintf("%s @%s(%s)", sig.RetType, name, strings.Join(parts, ", "))
}

func (d *dumper) VisitFunctionDefinition(f *ir.FunctionDefinition) {
	d.printf("\ndefine%s %s {\n", functionAttrs(f.FunctionAttributes), signature(f.Name(), f.Sig, f.Params))
	d.fn = f
	ir.WalkFunction(f, d)
	d.fn = nil
	d.printf("}\n")
	if d.opts.Metadata && f.Metadata != nil && len(f.Metadata.Nodes()) > 0 {
		d.printf("; function @%s metadata\n", f.Name())
		d.dumpNodes(f.Metadata)
	}
}

func (d *dumper) VisitFunctionDeclaration(f *ir.FunctionDeclaration) {
	d.printf("\ndeclare%s %s\n", functionAttrs(f.FunctionAttributes), signature(f.Name(), f.Sig, nil))
}

func (d *dumper) VisitBlock(b *ir.InstructionBlock) {
	if b == nil {
		return
	}
	if b.Index > 0 {
		d.printf("\n")
	}
	d.printf("%s:\n", blockLabel(b))
	ir.WalkBlock(b, d)
}

func (d *dumper) dumpMetadata(root *metadata.Block) {
	if root == nil {
		return
	}
	d.printf("\n")
	for _, n := range root.Named() {
		refs := make([]string, len(n.Operands))
		for i, r := range n.Operands {
			refs[i] = mdRef(r)
		}
		d.printf("!%s = !{%s}\n", n.Name, strings.Join(refs, ", "))
	}
	d.dumpNodes(root)
}

func (d *dumper) dumpNodes(b *metadata.Block) {
	first := b.Start()
	if b.Parent() == nil && first == 0 {
		first = 1
	}
	for i, n := range b.Nodes() {
		d.printf("!%d = %s\n", first+i, node(n))
	}
}

func blockLabel(b *ir.InstructionBlock) string {
	if b.Name() == "" {
		return "bb" + strconv.Itoa(b.Index)
	}
	return b.Name()
}

func param(p *ir.FunctionParameter) string {
	if !p.HasName() {
		return "%arg" + strconv.Itoa(p.Index)
	}
	return "%" + p.Name()
}

func local(v ir.ValueSymbol) string {
	if !v.HasName() {
		return "%?"
	}
	return "%" + v.Name()
}

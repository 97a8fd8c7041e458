package irdump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/metadata"
)

// typed renders "T v".
func typed(s ir.Symbol) string {
	if s == nil {
		return "<nil>"
	}
	if t := s.Type(); t != nil {
		return t.String() + " " + value(s)
	}
	return value(s)
}

func typedList(syms []ir.Symbol) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = typed(s)
	}
	return strings.Join(parts, ", ")
}

// value renders the reference to s without its type.
func value(s ir.Symbol) string {
	switch s := s.(type) {
	case nil:
		return "<nil>"
	case *ir.IntegerConstant:
		if t, ok := s.Typ.(*types.IntType); ok && t.BitSize == 1 {
			return strconv.FormatBool(s.Value != 0)
		}
		return strconv.FormatInt(s.Value, 10)
	case *ir.BigIntegerConstant:
		return s.Value.String()
	case *ir.FloatingPointConstant:
		if len(s.Raw) > 0 {
			words := make([]string, len(s.Raw))
			for i, w := range s.Raw {
				words[i] = fmt.Sprintf("%016X", w)
			}
			return "0xK" + strings.Join(words, "")
		}
		return strconv.FormatFloat(s.Value, 'g', -1, 64)
	case *ir.NullConstant:
		if _, ok := s.Typ.(*types.PointerType); ok {
			return "null"
		}
		return "zeroinitializer"
	case *ir.UndefinedConstant:
		return "undef"
	case *ir.StringConstant:
		str := s.Value
		if s.CString {
			str += "\x00"
		}
		return "c" + quote(str)
	case *ir.ArrayConstant:
		return "[" + elements(s) + "]"
	case *ir.StructureConstant:
		if s.Packed() {
			return "<{" + elements(s) + "}>"
		}
		return "{" + elements(s) + "}"
	case *ir.VectorConstant:
		return "<" + elements(s) + ">"
	case *ir.BinaryOperationConstant:
		return fmt.Sprintf("%s (%s, %s)", s.Operator, typed(s.LHS), typed(s.RHS))
	case *ir.CastConstant:
		return fmt.Sprintf("%s (%s to %s)", s.Operator, typed(s.Value), s.Typ)
	case *ir.CompareConstant:
		return fmt.Sprintf("%s %s (%s, %s)", s.Predicate.Opcode(), s.Predicate, typed(s.LHS), typed(s.RHS))
	case *ir.GetElementPointerConstant:
		kw := "getelementptr"
		if s.InBounds {
			kw += " inbounds"
		}
		ops := append([]ir.Symbol{s.Base}, s.Indices...)
		return fmt.Sprintf("%s (%s)", kw, typedList(ops))
	case *ir.BlockAddressConstant:
		return fmt.Sprintf("blockaddress(%s, %%%s)", value(s.Function), blockLabel(s.Block))
	case *ir.MetadataConstant:
		return mdRef(s.Ref)
	case *ir.GlobalVariable, *ir.GlobalConstant, *ir.GlobalAlias,
		*ir.FunctionDefinition, *ir.FunctionDeclaration:
		return "@" + s.(ir.ValueSymbol).Name()
	case *ir.FunctionParameter:
		return param(s)
	case ir.ValueSymbol:
		return local(s)
	}
	if ir.IsPlaceholder(s) {
		return "<forward>"
	}
	return fmt.Sprintf("<%T>", s)
}

func elements(a ir.Aggregate) string {
	parts := make([]string, a.Len())
	for i := range parts {
		parts[i] = typed(a.Element(i))
	}
	return strings.Join(parts, ", ")
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "\\%02X", c)
	}
	sb.WriteByte('"')
	return sb.String()
}

func mdRef(r metadata.Reference) string {
	if metadata.IsVoid(r) {
		return "null"
	}
	return "!" + strconv.Itoa(r.Index())
}

func mdRefs(rs []metadata.Reference) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = mdRef(r)
	}
	return strings.Join(parts, ", ")
}

func node(n metadata.Node) string {
	switch n := n.(type) {
	case *metadata.StringNode:
		return "!" + quote(n.Value)
	case *metadata.TupleNode:
		if n.Distinct {
			return "distinct !{" + mdRefs(n.Operands) + "}"
		}
		return "!{" + mdRefs(n.Operands) + "}"
	case *metadata.ValueNode:
		if s, ok := n.Value.(ir.Symbol); ok {
			return typed(s)
		}
		return fmt.Sprintf("%v", n.Value)
	case *metadata.FileNode:
		return fmt.Sprintf("!DIFile(filename: %q, directory: %q)", n.Filename, n.Directory)
	case *metadata.CompileUnitNode:
		return fmt.Sprintf("distinct !DICompileUnit(language: %d, file: %s, producer: %q, isOptimized: %t)",
			n.Language, mdRef(n.File), n.Producer, n.Optimized)
	case *metadata.BasicTypeNode:
		return fmt.Sprintf("!DIBasicType(name: %q, size: %d, align: %d, encoding: %d)", n.Name, n.Size, n.Align, n.Encoding)
	case *metadata.SubprogramNode:
		return fmt.Sprintf("!DISubprogram(name: %q, linkageName: %q, scope: %s, file: %s, line: %d, type: %s, isDefinition: %t)",
			n.Name, n.LinkageName, mdRef(n.Scope), mdRef(n.File), n.Line, mdRef(n.Type), n.Definition)
	case *metadata.LocalVariableNode:
		return fmt.Sprintf("!DILocalVariable(name: %q, arg: %d, scope: %s, file: %s, line: %d, type: %s)",
			n.Name, n.Arg, mdRef(n.Scope), mdRef(n.File), n.Line, mdRef(n.Type))
	case *metadata.LocationNode:
		s := fmt.Sprintf("!DILocation(line: %d, column: %d, scope: %s", n.Line, n.Column, mdRef(n.Scope))
		if !metadata.IsVoid(n.InlinedAt) {
			s += ", inlinedAt: " + mdRef(n.InlinedAt)
		}
		return s + ")"
	}
	return fmt.Sprintf("<%T>", n)
}

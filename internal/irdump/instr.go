package irdump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llir/llvm/ir/enum"

	"irmodel/internal/ir"
)

func (d *dumper) emit(inst ir.Instruction, text string) {
	if v, ok := inst.(ir.ValueInstruction); ok {
		text = local(v) + " = " + text
	}
	if d.opts.Locations {
		if loc := inst.Location(); loc.IsPresent() {
			text += ", !dbg " + mdRef(loc)
		}
	}
	d.printf("  %s\n", text)
}

func label(b *ir.InstructionBlock) string {
	if b == nil {
		return "label <nil>"
	}
	return "label %" + blockLabel(b)
}

func align(a uint32) string {
	if a == 0 {
		return ""
	}
	return ", align " + strconv.FormatUint(uint64(a), 10)
}

func atomic(ordering enum.AtomicOrdering, singleThread bool) string {
	if ordering == enum.AtomicOrderingNone {
		return ""
	}
	s := ""
	if singleThread {
		s = ` syncscope("singlethread")`
	}
	return s + " " + ordering.String()
}

func volatile(v bool, atomicOrdering enum.AtomicOrdering) string {
	s := ""
	if atomicOrdering != enum.AtomicOrderingNone {
		s += " atomic"
	}
	if v {
		s += " volatile"
	}
	return s
}

func (d *dumper) VisitAllocate(i *ir.AllocateInstruction) {
	s := "alloca " + i.ElemType.String()
	if i.Count != nil {
		s += ", " + typed(i.Count)
	}
	d.emit(i, s+align(i.Align))
}

func (d *dumper) VisitLoad(i *ir.LoadInstruction) {
	d.emit(i, fmt.Sprintf("load%s %s, %s%s%s", volatile(i.Volatile, i.Ordering), i.Typ, typed(i.Source),
		atomic(i.Ordering, i.SingleThread), align(i.Align)))
}

func (d *dumper) VisitStore(i *ir.StoreInstruction) {
	d.emit(i, fmt.Sprintf("store%s %s, %s%s%s", volatile(i.Volatile, i.Ordering), typed(i.Source), typed(i.Destination),
		atomic(i.Ordering, i.SingleThread), align(i.Align)))
}

func (d *dumper) VisitBinaryOperation(i *ir.BinaryOperationInstruction) {
	d.emit(i, fmt.Sprintf("%s%s %s, %s", i.Operator, i.Flags, typed(i.LHS), value(i.RHS)))
}

func (d *dumper) VisitUnaryOperation(i *ir.UnaryOperationInstruction) {
	d.emit(i, fmt.Sprintf("%s %s", i.Operator, typed(i.Operand)))
}

func (d *dumper) VisitCompare(i *ir.CompareInstruction) {
	d.emit(i, fmt.Sprintf("%s %s %s, %s", i.Predicate.Opcode(), i.Predicate, typed(i.LHS), value(i.RHS)))
}

func (d *dumper) VisitCast(i *ir.CastInstruction) {
	d.emit(i, fmt.Sprintf("%s %s to %s", i.Operator, typed(i.Value), i.Typ))
}

func (d *dumper) VisitBranch(i *ir.BranchInstruction) {
	d.emit(i, "br "+label(i.Successor))
}

func (d *dumper) VisitConditionalBranch(i *ir.ConditionalBranchInstruction) {
	d.emit(i, fmt.Sprintf("br %s, %s, %s", typed(i.Condition), label(i.TrueSuccessor), label(i.FalseSuccessor)))
}

func (d *dumper) VisitIndirectBranch(i *ir.IndirectBranchInstruction) {
	dests := make([]string, len(i.Destinations))
	for j, b := range i.Destinations {
		dests[j] = label(b)
	}
	d.emit(i, fmt.Sprintf("indirectbr %s, [%s]", typed(i.Address), strings.Join(dests, ", ")))
}

func (d *dumper) VisitSwitch(i *ir.SwitchInstruction) {
	cases := make([]string, len(i.Cases))
	for j, c := range i.Cases {
		cases[j] = typed(c.Value) + ", " + label(c.Block)
	}
	d.emit(i, fmt.Sprintf("switch %s, %s [%s]", typed(i.Condition), label(i.Default), strings.Join(cases, " ")))
}

func (d *dumper) VisitSwitchOld(i *ir.SwitchOldInstruction) {
	t := "<nil>"
	if i.Condition != nil && i.Condition.Type() != nil {
		t = i.Condition.Type().String()
	}
	cases := make([]string, len(i.Cases))
	for j, c := range i.Cases {
		cases[j] = fmt.Sprintf("%s %d, %s", t, c.Value, label(c.Block))
	}
	d.emit(i, fmt.Sprintf("switch %s, %s [%s]", typed(i.Condition), label(i.Default), strings.Join(cases, " ")))
}

func callingConv(cc enum.CallingConv) string {
	if cc == enum.CallingConvNone || cc == enum.CallingConvC {
		return ""
	}
	return " " + cc.String()
}

func (d *dumper) VisitCall(i *ir.CallInstruction) {
	d.emit(i, fmt.Sprintf("call%s %s %s(%s)", callingConv(i.CallingConv), i.Typ, value(i.Callee), typedList(i.Arguments)))
}

func (d *dumper) VisitVoidCall(i *ir.VoidCallInstruction) {
	d.emit(i, fmt.Sprintf("call%s void %s(%s)", callingConv(i.CallingConv), value(i.Callee), typedList(i.Arguments)))
}

func (d *dumper) VisitExtractElement(i *ir.ExtractElementInstruction) {
	d.emit(i, fmt.Sprintf("extractelement %s, %s", typed(i.Vector), typed(i.Index)))
}

func (d *dumper) VisitInsertElement(i *ir.InsertElementInstruction) {
	d.emit(i, fmt.Sprintf("insertelement %s, %s, %s", typed(i.Vector), typed(i.Value), typed(i.Index)))
}

func indexList(indices []uint64) string {
	var sb strings.Builder
	for _, idx := range indices {
		sb.WriteString(", ")
		sb.WriteString(strconv.FormatUint(idx, 10))
	}
	return sb.String()
}

func (d *dumper) VisitExtractValue(i *ir.ExtractValueInstruction) {
	d.emit(i, fmt.Sprintf("extractvalue %s%s", typed(i.Aggregate), indexList(i.Indices)))
}

func (d *dumper) VisitInsertValue(i *ir.InsertValueInstruction) {
	d.emit(i, fmt.Sprintf("insertvalue %s, %s%s", typed(i.Aggregate), typed(i.Value), indexList(i.Indices)))
}

func (d *dumper) VisitGetElementPointer(i *ir.GetElementPointerInstruction) {
	kw := "getelementptr"
	if i.InBounds {
		kw += " inbounds"
	}
	ops := append([]ir.Symbol{i.Base}, i.Indices...)
	d.emit(i, kw+" "+typedList(ops))
}

func (d *dumper) VisitPhi(i *ir.PhiInstruction) {
	in := make([]string, len(i.Incoming))
	for j, e := range i.Incoming {
		in[j] = fmt.Sprintf("[ %s, %%%s ]", value(e.Value), blockLabel(e.Block))
	}
	d.emit(i, fmt.Sprintf("phi %s %s", i.Typ, strings.Join(in, ", ")))
}

func (d *dumper) VisitSelect(i *ir.SelectInstruction) {
	d.emit(i, fmt.Sprintf("select %s, %s, %s", typed(i.Condition), typed(i.TrueValue), typed(i.FalseValue)))
}

func (d *dumper) VisitShuffleVector(i *ir.ShuffleVectorInstruction) {
	d.emit(i, fmt.Sprintf("shufflevector %s, %s, %s", typed(i.Vector1), typed(i.Vector2), typed(i.Mask)))
}

func (d *dumper) VisitReturn(i *ir.ReturnInstruction) {
	if i.Value == nil {
		d.emit(i, "ret void")
		return
	}
	d.emit(i, "ret "+typed(i.Value))
}

func (d *dumper) VisitUnreachable(i *ir.UnreachableInstruction) {
	d.emit(i, "unreachable")
}

func (d *dumper) VisitFence(i *ir.FenceInstruction) {
	d.emit(i, "fence"+atomic(i.Ordering, i.SingleThread))
}

func (d *dumper) VisitCompareExchange(i *ir.CompareExchangeInstruction) {
	kw := "cmpxchg"
	if i.Weak {
		kw += " weak"
	}
	if i.Volatile {
		kw += " volatile"
	}
	d.emit(i, fmt.Sprintf("%s %s, %s, %s%s %s", kw, typed(i.Address), typed(i.Comparison), typed(i.NewValue),
		atomic(i.SuccessOrdering, i.SingleThread), i.FailureOrdering))
}

func (d *dumper) VisitReadModifyWrite(i *ir.ReadModifyWriteInstruction) {
	kw := "atomicrmw"
	if i.Volatile {
		kw += " volatile"
	}
	d.emit(i, fmt.Sprintf("%s %s %s, %s%s", kw, i.Operation, typed(i.Address), typed(i.Value),
		atomic(i.Ordering, i.SingleThread)))
}

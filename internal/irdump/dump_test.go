package irdump_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"irmodel/internal/ir"
	"irmodel/internal/irbuild"
	"irmodel/internal/irdump"
	"irmodel/internal/metadata"
)

func buildModule(t *testing.T) *ir.Module {
	t.Helper()
	mb := irbuild.NewModule(context.Background(), irbuild.Options{})
	mb.SetTargetTriple("x86_64-unknown-linux-gnu")
	mb.SetSourceFilename("add.c")
	file := mb.Metadata().Add(&metadata.FileNode{Filename: "add.c", Directory: "/src"})
	mb.Metadata().AddNamed("llvm.ident", mb.Metadata().Reference(file))

	g := mb.CreateGlobalConstant(types.I32, 3+1, ir.GlobalAttributes{Linkage: enum.LinkagePrivate, Align: 4})
	decl := mb.CreateFunction(irbuild.FunctionSpec{Type: types.NewFunc(types.Void), Prototype: true})
	fn := mb.CreateFunction(irbuild.FunctionSpec{Type: types.NewFunc(types.I32, types.I32)})
	seven := mb.CreateInteger(types.I32, 7)
	_ = mb.NameEntry(g, "seven")
	_ = mb.NameEntry(decl, "tick")
	_ = mb.NameEntry(fn, "add7")

	fb, err := mb.GenerateFunction()
	if err != nil {
		t.Fatalf("GenerateFunction: %v", err)
	}
	_ = fb.AllocateBlocks(1)
	x := fb.CreateParameter(types.I32)
	b, _ := fb.GenerateBlock()
	if _, err := b.CreateCall(types.Void, decl, nil, enum.CallingConvC); err != nil {
		t.Fatalf("CreateCall: %v", err)
	}
	loaded, err := b.CreateLoad(types.I32, g, 4, false)
	if err != nil {
		t.Fatalf("CreateLoad: %v", err)
	}
	sum, err := b.CreateBinaryOperation(types.I32, ir.OpAdd, ir.FlagNoSignedWrap, x, loaded)
	if err != nil {
		t.Fatalf("CreateBinaryOperation: %v", err)
	}
	if err := b.CreateReturnValue(sum); err != nil {
		t.Fatalf("CreateReturnValue: %v", err)
	}
	loc := fb.Metadata().Add(&metadata.LocationNode{Line: 2, Column: 10, Scope: fb.Metadata().Reference(file)})
	if err := b.AttachLocation(loc); err != nil {
		t.Fatalf("AttachLocation: %v", err)
	}
	if err := fb.ExitFunction(); err != nil {
		t.Fatalf("ExitFunction: %v", err)
	}
	_ = seven
	m, err := mb.ExitModule()
	if err != nil {
		t.Fatalf("ExitModule: %v", err)
	}
	return m
}

func TestDumpModule(t *testing.T) {
	m := buildModule(t)
	var buf bytes.Buffer
	if err := irdump.DumpModule(&buf, m, irdump.DumpOptions{Metadata: true, Locations: true}); err != nil {
		t.Fatalf("DumpModule: %v", err)
	}
	out := buf.String()
	wants := []string{
		`source_filename = "add.c"`,
		`target triple = "x86_64-unknown-linux-gnu"`,
		"@seven = private constant i32 7, align 4",
		"define i32 @add7(i32 %arg0) {",
		"bb0:",
		"  call void @tick()",
		"  %1 = load i32, ",
		"@seven, align 4",
		"  %2 = add nsw i32 %arg0, %1",
		"  ret i32 %2, !dbg !2",
		"declare void @tick()",
		"!llvm.ident = !{!1}",
		`!1 = !DIFile(filename: "add.c", directory: "/src")`,
		"!2 = !DILocation(line: 2, column: 10, scope: !1)",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q\n%s", want, out)
		}
	}
	if strings.Index(out, "define") > strings.Index(out, "declare") {
		t.Errorf("definitions must precede declarations\n%s", out)
	}
}

func TestDumpModule_NilSafe(t *testing.T) {
	if err := irdump.DumpModule(nil, nil, irdump.DumpOptions{}); err != nil {
		t.Fatalf("nil dump: %v", err)
	}
}

// Package irbuild holds the generator interfaces a stream decoder drives to
// build an ir.Module.
//
// A ModuleBuilder owns the module symbol table. Each function body gets a
// FunctionBuilder whose table starts as a copy of the module table, and a
// BlockBuilder per generated block. Builders keep all construction state
// (tables, cursors, pending bodies); the ir values they produce carry none
// of it and are read-only once ExitModule returns.
package irbuild

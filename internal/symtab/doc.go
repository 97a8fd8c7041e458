// Package symtab implements the index-addressed symbol table used while a
// module is being built.
//
// Entries arrive in stream order and may be referenced before they are
// defined. Such uses receive a ForwardReference placeholder that records who
// holds it; when the real symbol is added at that index every holder is
// patched in place and the placeholder is dropped.
package symtab

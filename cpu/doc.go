// Package cpu implements a translating PDP-10 processor and its assembler.
//
// Every word of the 18-bit address space owns three cached micro-operations
// (uops): operand read, operate, and write back. A word is decoded into its
// uops the first time it is executed, and the cached triple is dispatched
// directly after that. Writes through the CPU's memory façade demote the
// written word back to its decode filler, so self-modifying code is always
// retranslated before it runs again.
//
// Pages are classified by the host before execution:
//   - pure pages are decoded a whole page at a time on first touch,
//   - unpure pages are decoded one word at a time,
//   - unmapped pages fault on any access.
//
// The sixteen fast registers (accumulators) are aliased to addresses 0-15
// and never reach the backing store.
//
// The assembler accepts a small MACRO-10 flavoured syntax, with macros,
// labels, equates, and compile-time expression evaluation.
package cpu

// Package cpu implements the MOS 6502 microprocessor core and assembler.
//
// The processor consists of an 8-bit accumulator, two 8-bit index registers
// (X and Y), a status flag register, a 16-bit program counter, and a flat
// 64KB memory space. Execution is a synchronous fetch, decode, dispatch loop
// over an immutable 256-entry opcode table, halting on BRK.
//
// The assembler provides a small 6502 assembly dialect supporting labels,
// equates, and compile-time expression evaluation.
package cpu

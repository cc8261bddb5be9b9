package cpu

import (
	"fmt"
)

// AddressingMode selects how an instruction's effective operand address
// is computed from the bytes following the opcode.
type AddressingMode int

//go:generate go tool stringer -linecomment -type=AddressingMode
const (
	IMPLIED     = AddressingMode(iota) // implied
	IMMEDIATE                          // immediate
	ZERO_PAGE                          // zeropage
	ZERO_PAGE_X                        // zeropage,x
	ZERO_PAGE_Y                        // zeropage,y
	ABSOLUTE                           // absolute
	ABSOLUTE_X                         // absolute,x
	ABSOLUTE_Y                         // absolute,y
	INDIRECT_X                         // (indirect,x)
	INDIRECT_Y                         // (indirect),y
)

// Opcode describes a single instruction encoding.
type Opcode struct {
	Hex      uint8          // Encoded opcode value.
	Mnemonic string         // Instruction mnemonic.
	Bytes    uint8          // Total instruction length, opcode byte included.
	Cycles   uint8          // Base cycle count, ignoring page-cross penalties.
	Mode     AddressingMode // Operand addressing mode.
}

func (op *Opcode) String() string {
	return fmt.Sprintf("%v %v", op.Mnemonic, op.Mode)
}

var opcodes = []Opcode{
	// ADC
	{0x69, "ADC", 2, 2, IMMEDIATE},
	{0x65, "ADC", 2, 3, ZERO_PAGE},
	{0x75, "ADC", 2, 4, ZERO_PAGE_X},
	{0x6d, "ADC", 3, 4, ABSOLUTE},
	{0x7d, "ADC", 3, 4, ABSOLUTE_X},
	{0x79, "ADC", 3, 4, ABSOLUTE_Y},
	{0x61, "ADC", 2, 6, INDIRECT_X},
	{0x71, "ADC", 2, 5, INDIRECT_Y},
	// AND
	{0x29, "AND", 2, 2, IMMEDIATE},
	{0x25, "AND", 2, 3, ZERO_PAGE},
	{0x35, "AND", 2, 4, ZERO_PAGE_X},
	{0x2d, "AND", 3, 4, ABSOLUTE},
	{0x3d, "AND", 3, 4, ABSOLUTE_X},
	{0x39, "AND", 3, 4, ABSOLUTE_Y},
	{0x21, "AND", 2, 6, INDIRECT_X},
	{0x31, "AND", 2, 5, INDIRECT_Y},
	// LDA
	{0xa9, "LDA", 2, 2, IMMEDIATE},
	{0xa5, "LDA", 2, 3, ZERO_PAGE},
	{0xb5, "LDA", 2, 4, ZERO_PAGE_X},
	{0xad, "LDA", 3, 4, ABSOLUTE},
	{0xbd, "LDA", 3, 4, ABSOLUTE_X},
	{0xb9, "LDA", 3, 4, ABSOLUTE_Y},
	{0xa1, "LDA", 2, 6, INDIRECT_X},
	{0xb1, "LDA", 2, 5, INDIRECT_Y},
	// STA
	{0x85, "STA", 2, 3, ZERO_PAGE},
	{0x95, "STA", 2, 4, ZERO_PAGE_X},
	{0x8d, "STA", 3, 4, ABSOLUTE},
	{0x9d, "STA", 3, 5, ABSOLUTE_X},
	{0x99, "STA", 3, 5, ABSOLUTE_Y},
	{0x81, "STA", 2, 6, INDIRECT_X},
	{0x91, "STA", 2, 6, INDIRECT_Y},
	// TAX
	{0xaa, "TAX", 1, 2, IMPLIED},
	// INX
	{0xe8, "INX", 1, 2, IMPLIED},
	// BRK
	{0x00, "BRK", 1, 7, IMPLIED},
}

// opcodeTable indexes the descriptors by opcode value for O(1) lookup
// in the execution loop.
var opcodeTable [256]*Opcode

func init() {
	for n := range opcodes {
		op := &opcodes[n]
		if opcodeTable[op.Hex] != nil {
			panic(fmt.Sprintf("cpu: duplicate opcode 0x%02x", op.Hex))
		}
		opcodeTable[op.Hex] = op
	}
}

// Lookup finds the descriptor for an opcode value.
func Lookup(val uint8) (op *Opcode, err error) {
	op = opcodeTable[val]
	if op == nil {
		err = ErrUnknownOpcode(val)
	}
	return
}

// findOpcode finds the table entry encoding a mnemonic with an addressing
// mode. A zero page operand falls back to the absolute encoding when the
// instruction has no zero page form.
func findOpcode(mnemonic string, mode AddressingMode) (op *Opcode, err error) {
	widen := map[AddressingMode]AddressingMode{
		ZERO_PAGE:   ABSOLUTE,
		ZERO_PAGE_X: ABSOLUTE_X,
		ZERO_PAGE_Y: ABSOLUTE_Y,
	}

	var fallback *Opcode
	known := false
	for n := range opcodes {
		o := &opcodes[n]
		if o.Mnemonic != mnemonic {
			continue
		}
		known = true
		if o.Mode == mode {
			return o, nil
		}
		if wide, ok := widen[mode]; ok && o.Mode == wide {
			fallback = o
		}
	}

	if fallback != nil {
		return fallback, nil
	}
	if !known {
		err = ErrMnemonicUnknown
		return
	}
	err = ErrNoEncoding{Mnemonic: mnemonic, Mode: mode}
	return
}

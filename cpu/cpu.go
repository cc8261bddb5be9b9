package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	LOAD_BASE    = uint16(0x8000) // Program images load here.
	RESET_VECTOR = uint16(0xfffc) // Little-endian boot address location.
)

// Status flag bits.
const (
	FLAG_CARRY    = uint8(1 << 0)
	FLAG_ZERO     = uint8(1 << 1)
	FLAG_OVERFLOW = uint8(1 << 6)
	FLAG_NEGATIVE = uint8(1 << 7)
)

var _cpu_defines = map[string]string{
	"LOAD_BASE":     fmt.Sprintf("%#x", LOAD_BASE),
	"RESET_VECTOR":  fmt.Sprintf("%#x", RESET_VECTOR),
	"FLAG_CARRY":    fmt.Sprintf("%#x", FLAG_CARRY),
	"FLAG_ZERO":     fmt.Sprintf("%#x", FLAG_ZERO),
	"FLAG_OVERFLOW": fmt.Sprintf("%#x", FLAG_OVERFLOW),
	"FLAG_NEGATIVE": fmt.Sprintf("%#x", FLAG_NEGATIVE),
}

// Cpu is the simulation context for a single 6502 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A      uint8  // Accumulator.
	X      uint8  // X index register.
	Y      uint8  // Y index register.
	Status uint8  // Status flags (FLAG_* bits).
	Pc     uint16 // Program counter.

	Memory Memory // Flat 64KB address space, owned by this instance.

	Ticks  int // Instructions executed counter.
	Cycles int // Base cycle counter.
}

// NewCpu creates a new CPU with zeroed registers and memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"a", "x", "y", "status", "pc"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "a":
			strval = fmt.Sprintf("%02X", cpu.A)
		case "x":
			strval = fmt.Sprintf("%02X", cpu.X)
		case "y":
			strval = fmt.Sprintf("%02X", cpu.Y)
		case "status":
			bits := []byte("nv----zc")
			for n, mask := range []uint8{FLAG_NEGATIVE, FLAG_OVERFLOW, 0, 0, 0, 0, FLAG_ZERO, FLAG_CARRY} {
				if mask != 0 && cpu.Status&mask != 0 {
					bits[n] = bits[n] - 'a' + 'A'
				}
			}
			strval = string(bits)
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.Pc)
		}
		text += fmt.Sprintf("% 7s: %v\n", reg, strval)
	}

	return
}

// Load copies a program image into memory at LOAD_BASE, and writes
// LOAD_BASE into the reset vector.
func (cpu *Cpu) Load(program []uint8) (err error) {
	err = cpu.Memory.CopyAt(LOAD_BASE, program)
	if err != nil {
		return
	}
	cpu.Memory.WriteWord(RESET_VECTOR, LOAD_BASE)

	return
}

// Reset the CPU state.
// - Clears the accumulator, both index registers, and the status flags.
// - Zeros statistics counters.
// - Loads the program counter from the reset vector.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.A = 0
	cpu.X = 0
	cpu.Y = 0
	cpu.Status = 0
	cpu.Ticks = 0
	cpu.Cycles = 0

	cpu.Pc = cpu.Memory.ReadWord(RESET_VECTOR)
}

// addressedOps operate on a resolved effective address.
var addressedOps = map[string]func(*Cpu, uint16){
	"ADC": (*Cpu).adc,
	"AND": (*Cpu).and,
	"LDA": (*Cpu).lda,
	"STA": (*Cpu).sta,
}

// impliedOps carry no operand and never reach the address resolver.
var impliedOps = map[string]func(*Cpu){
	"TAX": (*Cpu).tax,
	"INX": (*Cpu).inx,
}

// Tick executes a single instruction cycle. done is true once a BRK has
// been executed.
func (cpu *Cpu) Tick() (done bool, err error) {
	op, err := Lookup(cpu.Memory.ReadByte(cpu.Pc))
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.Pc, op)
	}

	// Pc now rests on the first operand byte; handlers must not move it.
	cpu.Pc++

	if op.Mnemonic == "BRK" {
		done = true
	} else if implied, ok := impliedOps[op.Mnemonic]; ok {
		implied(cpu)
	} else if addressed, ok := addressedOps[op.Mnemonic]; ok {
		var addr uint16
		addr, err = cpu.operandAddress(op.Mode)
		if err != nil {
			return
		}
		addressed(cpu, addr)
	} else {
		err = ErrMnemonicUnknown
		return
	}

	// Skip any operand bytes.
	cpu.Pc += uint16(op.Bytes) - 1
	cpu.Ticks += 1
	cpu.Cycles += int(op.Cycles)

	return
}

// Run executes instructions until a BRK, or a fatal error.
func (cpu *Cpu) Run() (err error) {
	done := false
	for !done {
		done, err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// LoadAndRun loads a program image, resets the CPU, and runs it to
// completion. This is the standard external entry point.
func (cpu *Cpu) LoadAndRun(program []uint8) (err error) {
	err = cpu.Load(program)
	if err != nil {
		return
	}
	cpu.Reset()

	return cpu.Run()
}

// operandAddress computes the effective address for an addressing mode,
// reading operand bytes at Pc without advancing it.
func (cpu *Cpu) operandAddress(mode AddressingMode) (addr uint16, err error) {
	switch mode {
	case IMMEDIATE:
		addr = cpu.Pc
	case ZERO_PAGE:
		addr = uint16(cpu.Memory.ReadByte(cpu.Pc))
	case ZERO_PAGE_X:
		// Indexing wraps within page 0.
		addr = uint16(cpu.Memory.ReadByte(cpu.Pc) + cpu.X)
	case ZERO_PAGE_Y:
		addr = uint16(cpu.Memory.ReadByte(cpu.Pc) + cpu.Y)
	case ABSOLUTE:
		addr = cpu.Memory.ReadWord(cpu.Pc)
	case ABSOLUTE_X:
		addr = cpu.Memory.ReadWord(cpu.Pc) + uint16(cpu.X)
	case ABSOLUTE_Y:
		addr = cpu.Memory.ReadWord(cpu.Pc) + uint16(cpu.Y)
	case INDIRECT_X:
		// The pointer wraps within page 0 before the dereference.
		ptr := cpu.Memory.ReadByte(cpu.Pc) + cpu.X
		addr = cpu.zeroPageWord(ptr)
	case INDIRECT_Y:
		// The dereference happens before the Y offset is added.
		ptr := cpu.Memory.ReadByte(cpu.Pc)
		addr = cpu.zeroPageWord(ptr) + uint16(cpu.Y)
	default:
		err = ErrAddressingMode(mode)
	}

	return
}

// zeroPageWord reads a little-endian 16-bit value whose both bytes live
// in page 0; a pointer stored at 0xff has its high byte at 0x00.
func (cpu *Cpu) zeroPageWord(ptr uint8) uint16 {
	lo := uint16(cpu.Memory.ReadByte(uint16(ptr)))
	hi := uint16(cpu.Memory.ReadByte(uint16(ptr + 1)))
	return hi<<8 | lo
}

func (cpu *Cpu) setFlag(mask uint8, on bool) {
	if on {
		cpu.Status |= mask
	} else {
		cpu.Status &^= mask
	}
}

// Flag reports whether a status flag is set.
func (cpu *Cpu) Flag(mask uint8) bool {
	return cpu.Status&mask != 0
}

// updateZeroNegative sets the zero and negative flags from a result
// byte. No other flags are touched.
func (cpu *Cpu) updateZeroNegative(result uint8) {
	cpu.setFlag(FLAG_ZERO, result == 0)
	cpu.setFlag(FLAG_NEGATIVE, result&0x80 != 0)
}

func (cpu *Cpu) lda(addr uint16) {
	cpu.A = cpu.Memory.ReadByte(addr)
	cpu.updateZeroNegative(cpu.A)
}

func (cpu *Cpu) sta(addr uint16) {
	cpu.Memory.WriteByte(addr, cpu.A)
}

func (cpu *Cpu) and(addr uint16) {
	cpu.A &= cpu.Memory.ReadByte(addr)
	cpu.updateZeroNegative(cpu.A)
}

// adc adds memory and the carry bit to the accumulator. The overflow
// flag records signed overflow: both inputs share a sign the result
// does not.
func (cpu *Cpu) adc(addr uint16) {
	operand := cpu.Memory.ReadByte(addr)
	wide := uint16(cpu.A) + uint16(operand) + uint16(cpu.Status&FLAG_CARRY)
	result := uint8(wide)

	cpu.setFlag(FLAG_CARRY, wide > 0xff)
	cpu.setFlag(FLAG_OVERFLOW, (cpu.A^result)&(operand^result)&0x80 != 0)
	cpu.A = result
	cpu.updateZeroNegative(cpu.A)
}

func (cpu *Cpu) tax() {
	cpu.X = cpu.A
	cpu.updateZeroNegative(cpu.X)
}

// inx wraps at 0xff without touching the carry flag; register
// increments differ from additions in this regard.
func (cpu *Cpu) inx() {
	cpu.X += 1
	cpu.updateZeroNegative(cpu.X)
}

// Copyright 2025, Jordan Reyes <jordan@reyes.dev>

// Package emulator wraps the 6502 core with a program listing and
// source-level tracing.
package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/jreyes/mos6502/cpu"
	"github.com/jreyes/mos6502/internal"
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%#x", cpu.MEMORY_SIZE),
}

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		maps.All(_emulator_defines),
	)
}

// Assembler creates an assembler preloaded with the machine defines.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: emu.Verbose}
	for key, val := range emu.Defines() {
		asm.Predefine(key, val)
	}

	return
}

// Reset loads the program listing into memory and resets the CPU.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Load(emu.Program.Binary())
	if err != nil {
		return
	}
	emu.Cpu.Reset()

	return
}

// LineNo reports the source line of the current program counter, or 0
// when the program counter is outside the listing.
func (emu *Emulator) LineNo() (line int) {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Statement != nil {
		line = dbg.LineNo
	}

	return
}

// Tick executes one instruction, tracing the source statement when
// verbose. Errors carry the faulting address.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Verbose {
		dbg := emu.Program.Debug(emu.Cpu.Pc)
		if dbg.Statement != nil {
			log.Printf("%04x: %v", emu.Cpu.Pc, dbg.Source)
		}
	}

	pc := emu.Cpu.Pc
	done, err = emu.Cpu.Tick()
	if err != nil {
		err = &ErrRuntime{Addr: pc, Err: err}
	}

	return
}

// Run executes the loaded program until a BRK.
func (emu *Emulator) Run() (err error) {
	done := false
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// RunImage loads a raw binary image, discarding any program listing,
// and runs it to completion.
func (emu *Emulator) RunImage(image []uint8) (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Program = &cpu.Program{}

	err = emu.Cpu.Load(image)
	if err != nil {
		return
	}
	emu.Cpu.Reset()

	return emu.Run()
}

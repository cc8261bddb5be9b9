package emulator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jreyes/mos6502/cpu"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for key, val := range emu.Defines() {
		defines[key] = val
	}

	assert.Equal("0x8000", defines["LOAD_BASE"])
	assert.Equal("0xfffc", defines["RESET_VECTOR"])
	assert.Equal("0x10000", defines["MEMORY_SIZE"])
}

func TestEmulator_Assembler(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	asm := emu.Assembler()
	prog, err := asm.Parse(strings.NewReader("LDA #FLAG_NEGATIVE"))
	assert.NoError(err)
	assert.Equal([]uint8{0xa9, 0x80}, prog.Binary())
}

func doRunListing(emu *Emulator, program []string, t *testing.T) {
	assert := assert.New(t)

	asm := emu.Assembler()
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	emu.Program = prog

	err = emu.Reset()
	assert.NoError(err)

	for _, st := range prog.Statements {
		here := program[st.LineNo-1]
		assert.Equal(st.Addr, emu.Cpu.Pc, here)
		assert.Equal(st.LineNo, emu.LineNo(), here)

		done, err := emu.Tick()
		assert.NoError(err, here)
		if st.Bytes[0] == 0x00 {
			assert.True(done, here)
		} else {
			assert.False(done, here)
		}
	}
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRunListing(emu, []string{
		"LDA #$C0",
		"TAX",
		"INX",
		"BRK",
	}, t)

	assert.Equal(uint8(0xc0), emu.Cpu.A)
	assert.Equal(uint8(0xc1), emu.Cpu.X)
	assert.True(emu.Cpu.Flag(cpu.FLAG_NEGATIVE))
}

func TestEmulator_RunImage(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.RunImage([]uint8{0xa9, 0x55, 0x85, 0x10, 0x00})
	assert.NoError(err)
	assert.Equal(uint8(0x55), emu.Cpu.Memory.ReadByte(0x0010))
	assert.Equal(0, emu.LineNo())
}

func TestEmulator_RuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.RunImage([]uint8{0xa9, 0x01, 0x02})
	assert.ErrorIs(err, cpu.ErrUnknownOpcode(0x02))

	var rt *ErrRuntime
	assert.ErrorAs(err, &rt)
	assert.Equal(uint16(0x8002), rt.Addr)
}

package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t, []string{
		"LDA #$C0",
		"STA $0200",
		"BRK",
	})
	assert.NoError(err)

	dbg := prog.Debug(LOAD_BASE + 3)
	assert.NotNil(dbg.Statement)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(1, dbg.Index)
	assert.Equal("STA $0200", dbg.Source)

	dbg = prog.Debug(0x0000)
	assert.Nil(dbg.Statement)
}

func TestProgram_Binary_Empty(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{}
	assert.Nil(prog.Binary())
	assert.Nil(prog.Debug(0x8000).Statement)
}

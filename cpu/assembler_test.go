package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func doParse(t *testing.T, lines []string) (prog *Program, err error) {
	t.Helper()

	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t, []string{
		"LDA #$C0 ; load the accumulator",
		"TAX",
		"INX",
		"BRK",
	})
	assert.NoError(err)
	assert.Equal([]uint8{0xa9, 0xc0, 0xaa, 0xe8, 0x00}, prog.Binary())

	assert.Equal(4, len(prog.Statements))
	assert.Equal(LOAD_BASE, prog.Statements[0].Addr)
	assert.Equal(LOAD_BASE+2, prog.Statements[1].Addr)
	assert.Equal(2, prog.Statements[1].LineNo)
}

func TestAssembler_Modes(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		line string
		want []uint8
	}){
		{"immediate", "LDA #$44", []uint8{0xa9, 0x44}},
		{"immediate_decimal", "LDA #16", []uint8{0xa9, 0x10}},
		{"zeropage", "LDA $44", []uint8{0xa5, 0x44}},
		{"zeropage_x", "LDA $44,X", []uint8{0xb5, 0x44}},
		{"absolute", "LDA $4400", []uint8{0xad, 0x00, 0x44}},
		{"absolute_x", "LDA $4400,X", []uint8{0xbd, 0x00, 0x44}},
		{"absolute_y", "LDA $4400,Y", []uint8{0xb9, 0x00, 0x44}},
		{"indirect_x", "LDA ($44,X)", []uint8{0xa1, 0x44}},
		{"indirect_y", "LDA ($44),Y", []uint8{0xb1, 0x44}},
		{"zeropage_y_widens", "LDA $44,Y", []uint8{0xb9, 0x44, 0x00}},
		{"sta_absolute", "STA $0200", []uint8{0x8d, 0x00, 0x02}},
		{"adc", "ADC #$01", []uint8{0x69, 0x01}},
		{"and", "AND ($20),Y", []uint8{0x31, 0x20}},
		{"lowercase", "lda #$01", []uint8{0xa9, 0x01}},
		{"implied", "INX", []uint8{0xe8}},
		{"byte_data", ".byte $01 $02 255", []uint8{0x01, 0x02, 0xff}},
	}

	for _, entry := range table {
		prog, err := doParse(t, []string{entry.line})
		assert.NoError(err, entry.name)
		if err != nil {
			continue
		}
		assert.Equal(entry.want, prog.Binary(), entry.name)
	}
}

func TestAssembler_Equates(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t, []string{
		".equ SCREEN $0200",
		".equ MASK $80",
		"LDA #MASK",
		"STA SCREEN",
		"BRK",
	})
	assert.NoError(err)
	assert.Equal([]uint8{0xa9, 0x80, 0x8d, 0x00, 0x02, 0x00}, prog.Binary())

	_, err = doParse(t, []string{
		".equ TWICE $01",
		".equ TWICE $02",
	})
	assert.ErrorIs(err, ErrEquateDuplicate)
}

func TestAssembler_Expressions(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t, []string{
		".equ BASE $40",
		"LDA #$(BASE+2)",
	})
	assert.NoError(err)
	assert.Equal([]uint8{0xa9, 0x42}, prog.Binary())

	_, err = doParse(t, []string{"LDA #$(nonsense+)"})
	assert.Error(err)
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	prog, err := doParse(t, []string{
		"start: LDA #$01",
		"STA target",
		"BRK",
		"target: .byte $00",
	})
	assert.NoError(err)
	assert.Equal([]uint8{0xa9, 0x01, 0x8d, 0x06, 0x80, 0x00, 0x00}, prog.Binary())

	_, err = doParse(t, []string{"STA nowhere"})
	assert.ErrorIs(err, ErrLabelMissing("nowhere"))

	_, err = doParse(t, []string{
		"here: INX",
		"here: INX",
	})
	assert.ErrorIs(err, ErrLabelDuplicate)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("SCREEN", "0x0200")

	prog, err := asm.Parse(strings.NewReader("STA SCREEN"))
	assert.NoError(err)
	assert.Equal([]uint8{0x8d, 0x00, 0x02}, prog.Binary())
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		line string
		want error
	}){
		{"unknown_mnemonic", "FOO #$01", ErrMnemonicUnknown},
		{"immediate_range", "LDA #$123", ErrOperandRange},
		{"byte_range", ".byte $123", ErrOperandRange},
		{"byte_empty", ".byte", ErrByteSyntax},
		{"equ_syntax", ".equ ONLY", ErrEquateSyntax},
		{"extra_args", "LDA #$01 #$02", ErrExtraArgs},
	}

	for _, entry := range table {
		_, err := doParse(t, []string{entry.line})
		assert.ErrorIs(err, entry.want, entry.name)

		var syn ErrSyntax
		assert.ErrorAs(err, &syn, entry.name)
		assert.Equal(1, syn.LineNo, entry.name)
	}

	_, err := doParse(t, []string{"STA #$10"})
	var en ErrNoEncoding
	assert.ErrorAs(err, &en)
	assert.Equal("STA", en.Mnemonic)
	assert.Equal(IMMEDIATE, en.Mode)
}

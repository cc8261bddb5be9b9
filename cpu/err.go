package cpu

import (
	"errors"

	"github.com/jreyes/mos6502/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrMnemonicUnknown = errors.New(f("mnemonic unknown"))
	ErrProgramTooLarge = errors.New(f("program exceeds address space"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrByteSyntax      = errors.New(f(".byte syntax"))
	ErrOperandRange    = errors.New(f("operand out of range"))
	ErrExtraArgs       = errors.New(f("excessive arguments"))
)

type ErrUnknownOpcode uint8

func (eo ErrUnknownOpcode) Error() string {
	return f("unknown opcode 0x%02x", uint8(eo))
}

func (eo ErrUnknownOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownOpcode)
	return
}

type ErrAddressingMode AddressingMode

func (em ErrAddressingMode) Error() string {
	return f("mode %v has no operand address", AddressingMode(em))
}

func (em ErrAddressingMode) Is(err error) (ok bool) {
	_, ok = err.(ErrAddressingMode)
	return
}

type ErrNoEncoding struct {
	Mnemonic string
	Mode     AddressingMode
}

func (en ErrNoEncoding) Error() string {
	return f("%v has no %v encoding", en.Mnemonic, en.Mode)
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

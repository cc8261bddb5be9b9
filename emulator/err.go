package emulator

import (
	"github.com/jreyes/mos6502/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Addr uint16
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("at 0x%04x %v", err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

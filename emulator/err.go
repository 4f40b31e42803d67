package emulator

import (
	"errors"

	"github.com/ezrec/simplez/cpu"
	"github.com/ezrec/simplez/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the location where a run stopped.
type ErrRuntime struct {
	LineNo int
	Pc     cpu.Address
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d pc %03o %v", err.LineNo, uint16(err.Pc), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

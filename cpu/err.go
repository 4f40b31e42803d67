package cpu

import (
	"errors"

	"github.com/ezrec/simplez/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrParse            = errors.New(f("malformed token"))
	ErrSyntax           = errors.New(f("unexpected trailing input"))
	ErrInvalidLabelName = errors.New(f("invalid label name"))
	ErrMissingParameter = errors.New(f("parameter missing"))
	ErrInvalidNumber    = errors.New(f("invalid number"))
)

// ParameterKind is the kind of operand a command expects.
type ParameterKind int

const (
	PARAMETER_NUMBER  = ParameterKind(0) // A literal number or address.
	PARAMETER_ADDRESS = ParameterKind(1) // A literal address or a label.
)

func (kind ParameterKind) String() string {
	if kind == PARAMETER_NUMBER {
		return f("number")
	}
	return f("address")
}

// ErrInvalidParameter is an operand of the wrong kind.
type ErrInvalidParameter struct {
	Expected ParameterKind
}

func (err ErrInvalidParameter) Error() string {
	return f("invalid parameter, expected %v", err.Expected.String())
}

// ErrInvalidInstruction is an unknown mnemonic.
type ErrInvalidInstruction string

func (ei ErrInvalidInstruction) Error() string {
	return f("instruction %v invalid", string(ei))
}

// ErrRedefinedLabel is a label defined twice.
type ErrRedefinedLabel string

func (el ErrRedefinedLabel) Error() string {
	return f("label %v redefined", string(el))
}

// ErrUndefinedLabel is a label referenced but never defined.
type ErrUndefinedLabel string

func (el ErrUndefinedLabel) Error() string {
	return f("label %v undefined", string(el))
}

// ErrInvalidExpression is a $() expression that is not a word value.
type ErrInvalidExpression string

func (err ErrInvalidExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrLine locates an assembly error in the source.
type ErrLine struct {
	LineNo    int    // 1-based source line.
	Line      string // Source line text.
	Remaining string // Unconsumed input of the line when the error was found.
	Err       error
}

func (err *ErrLine) Error() string {
	if len(err.Remaining) != 0 {
		return f("line %d '%v' at '%v' %v", err.LineNo, err.Line, err.Remaining, err.Err)
	}
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrLine) Unwrap() error {
	return err.Err
}

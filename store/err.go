package store

import (
	"errors"

	"github.com/ezrec/simplez/cpu"
	"github.com/ezrec/simplez/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageSize   = errors.New(f("image size invalid"))
	ErrImageFormat = errors.New(f("image format unknown"))
)

// ErrImageWord is a stored value that is not a 12-bit word.
type ErrImageWord struct {
	Address cpu.Address
	Value   int
	Text    string // Text that failed to parse, if any.
}

func (err ErrImageWord) Error() string {
	if len(err.Text) != 0 {
		return f("image word %03o text '%v' invalid", uint16(err.Address), err.Text)
	}
	return f("image word %03o value %o invalid", uint16(err.Address), err.Value)
}

// ErrSessionMissing is a session not present in a workspace.
type ErrSessionMissing string

func (err ErrSessionMissing) Error() string {
	return f("session %v missing", string(err))
}

// ErrSessionName is a session name that can not be stored.
type ErrSessionName string

func (err ErrSessionName) Error() string {
	return f("session name '%v' invalid", string(err))
}

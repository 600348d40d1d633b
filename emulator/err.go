package emulator

import (
	"errors"

	"github.com/ezrec/tenjit/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
	ErrNoStart   = errors.New(f("no start address"))
)

// ErrRuntime indicates the source line of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

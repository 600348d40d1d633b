package memory

import (
	"errors"

	"github.com/ezrec/tenjit/translate"
)

var f = translate.From

var (
	ErrAddressRange = errors.New(f("address out of range"))
	ErrCorrupt      = errors.New(f("corrupt word"))
	ErrClosed       = errors.New(f("store closed"))
)

// ErrAddress reports the address a store operation failed on.
type ErrAddress struct {
	Address uint32
	Err     error
}

func (err *ErrAddress) Error() string {
	return f("address %06o %v", err.Address, err.Err)
}

func (err *ErrAddress) Unwrap() error {
	return err.Err
}

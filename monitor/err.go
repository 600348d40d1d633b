package monitor

import (
	"errors"

	"github.com/ezrec/tenjit/translate"
)

var f = translate.From

var (
	ErrUnsupported   = errors.New(f("monitor call unsupported"))
	ErrChannelClosed = errors.New(f("channel not open"))
)

// ErrCall wraps an error raised by a monitor call.
type ErrCall struct {
	Name    string // Monitor call name.
	Channel int    // Accumulator field of the call.
	Err     error
}

func (err *ErrCall) Error() string {
	return f("%v %o, %v", err.Name, err.Channel, err.Err)
}

func (err *ErrCall) Unwrap() error {
	return err.Err
}

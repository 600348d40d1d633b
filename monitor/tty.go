package monitor

import (
	"io"
)

// Tty is the job's console: a byte stream in each direction.
// A nil Input reads as end of file; a nil Output discards.
type Tty struct {
	Input  io.Reader
	Output io.Writer
}

// ReadByte returns the next input byte.
func (tty *Tty) ReadByte() (value byte, err error) {
	if tty.Input == nil {
		err = io.EOF
		return
	}

	var one [1]byte
	_, err = io.ReadFull(tty.Input, one[:])
	if err != nil {
		return
	}

	value = one[0]
	return
}

// WriteByte sends a byte to the output.
func (tty *Tty) WriteByte(value byte) (err error) {
	if tty.Output == nil {
		return
	}

	_, err = tty.Output.Write([]byte{value})
	return
}

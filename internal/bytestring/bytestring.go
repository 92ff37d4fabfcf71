// Package bytestring builds byte strings with the hex formatting rules used
// throughout the project: lowercase nibbles, leading zeros suppressed unless
// a field width asks for them.
package bytestring

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidArgument is returned when a value does not fit the requested field.
var ErrInvalidArgument = errors.New("invalid argument")

const hexDigits = "0123456789abcdef"

// ToHex converts a nibble (0-15) to its lowercase hex character. It panics on
// values out of range.
func ToHex(nibble int) byte {
	return hexDigits[nibble]
}

// Builder accumulates bytes. The zero value is ready to use.
type Builder struct {
	buf bytes.Buffer
}

// AppendByte appends a single raw byte; b must be 0x00-0xff.
func (b *Builder) AppendByte(v int) error {
	if v&^0xff != 0 {
		return fmt.Errorf("%w: byte values must be 0x0-0xff: %d", ErrInvalidArgument, v)
	}
	b.buf.WriteByte(byte(v))
	return nil
}

// AppendRaw appends bytes verbatim.
func (b *Builder) AppendRaw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// AppendHexPair appends v as exactly two nibbles.
func (b *Builder) AppendHexPair(v int) error {
	if v&^0xff != 0 {
		return fmt.Errorf("%w: hex-pair values must be 0x0-0xff: %d", ErrInvalidArgument, v)
	}
	b.buf.WriteByte(ToHex(v >> 4))
	b.buf.WriteByte(ToHex(v & 0xf))
	return nil
}

// AppendNumeric appends v as up to four nibbles with all leading zeros
// suppressed, so zero appends nothing.
func (b *Builder) AppendNumeric(v int) error {
	if v == 0 {
		return nil
	}
	return b.AppendNumericKeepZero(v)
}

// AppendNumericKeepZero is AppendNumeric except that zero appends "0".
func (b *Builder) AppendNumericKeepZero(v int) error {
	if v&^0xffff != 0 {
		return fmt.Errorf("%w: numeric fields must be 0x0-0xffff: %d", ErrInvalidArgument, v)
	}
	if v >= 0x1000 {
		b.buf.WriteByte(ToHex(v >> 12))
	}
	if v >= 0x100 {
		b.buf.WriteByte(ToHex((v >> 8) & 0xf))
	}
	if v >= 0x10 {
		b.buf.WriteByte(ToHex((v >> 4) & 0xf))
	}
	b.buf.WriteByte(ToHex(v & 0xf))
	return nil
}

// AppendHex appends v in hex using at least minDigits nibbles. Leading zero
// nibbles beyond minDigits are suppressed; v == 0 with minDigits == 0
// appends nothing.
func (b *Builder) AppendHex(v uint32, minDigits int) *Builder {
	for i := 7; i >= 0; i-- {
		if minDigits > i || uint64(v) >= uint64(1)<<(4*i) {
			b.buf.WriteByte(ToHex(int(v>>(4*i)) & 0xf))
		}
	}
	return b
}

// Len returns the number of bytes accumulated.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// Bytes returns a copy of the content.
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// String returns the content as a string.
func (b *Builder) String() string {
	return b.buf.String()
}

// WriteTo writes the content to w without consuming it.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// Reset empties the builder.
func (b *Builder) Reset() {
	b.buf.Reset()
}

// Package marker encodes the key material offset chosen for one transform as a fixed-width, screened decimal tag.
package marker

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/saylorsolutions/lockstitch/pkg/keymat"
	"github.com/saylorsolutions/lockstitch/pkg/xor"
)

var prefix = []byte("@muirp}x")

// Prefix returns a copy of the constant pattern used to screen markers and fixed-size metadata fields.
// It's never empty.
func Prefix() []byte {
	return bytes.Clone(prefix)
}

var (
	ErrMalformed = errors.New("malformed position marker")
)

// Codec encodes and decodes markers for key material of a particular length.
type Codec struct {
	keyLen int
	width  int
}

// NewCodec creates a Codec for key material that is keyLen bytes long.
func NewCodec(keyLen int) Codec {
	return Codec{
		keyLen: keyLen,
		width:  len(strconv.Itoa(keyLen)),
	}
}

// For creates a Codec matching m.
func For(m *keymat.Material) Codec {
	return NewCodec(m.Len())
}

// Width is the exact size of an encoded marker.
func (c Codec) Width() int {
	return c.width
}

// Encode renders offset as zero-padded decimal and screens it with the Prefix pattern.
func (c Codec) Encode(offset int) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", ErrMalformed, offset)
	}
	digits := strconv.Itoa(offset)
	if len(digits) > c.width {
		return nil, fmt.Errorf("%w: offset %d needs more than %d digits", ErrMalformed, offset, c.width)
	}
	out := make([]byte, c.width)
	for i := range out {
		out[i] = '0'
	}
	copy(out[c.width-len(digits):], digits)
	if err := xor.Apply(out, prefix); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode reverses Encode and checks that the offset leaves room for a full key window.
func (c Codec) Decode(b []byte) (int, error) {
	if len(b) != c.width {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformed, c.width, len(b))
	}
	digits, err := xor.Screened(b, prefix)
	if err != nil {
		return 0, err
	}
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, fmt.Errorf("%w: not a decimal number", ErrMalformed)
		}
	}
	offset, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if offset <= 0 || offset+keymat.MinWindow > c.keyLen {
		return 0, fmt.Errorf("%w: marker offset %d with %d bytes of key material", keymat.ErrOutOfRange, offset, c.keyLen)
	}
	return offset, nil
}

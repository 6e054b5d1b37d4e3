package nat

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrZeroKey       = errors.New("key has no non-zero bytes")
	ErrInvalidHex    = errors.New("transformed text is not valid hex")
	ErrInvalidLength = errors.New("transformed text has an invalid length")
	ErrNotMultiple   = errors.New("transformed text is not an exact multiple of the key")
)

// Multiply returns data*key as big-endian bytes, exactly len(data)+len(key) bytes wide.
func Multiply(data, key []byte) ([]byte, error) {
	k := FromBytes(key)
	if k.IsZero() {
		return nil, ErrZeroKey
	}
	// The product of an n-byte and an m-byte number always fits in n+m bytes.
	return Mul(FromBytes(data), k).FillBytes(len(data) + len(key))
}

// Encode multiplies data by key and renders the product as lowercase hex text.
// The result is always 2*(len(data)+len(key)) bytes long.
func Encode(data, key []byte) ([]byte, error) {
	product, err := Multiply(data, key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, hex.EncodedLen(len(product)))
	hex.Encode(out, product)
	return out, nil
}

// Decode reverses Encode, dividing the value in text by key.
// The recovered data is exactly len(text)/2 - len(key) bytes wide.
func Decode(text, key []byte) ([]byte, error) {
	k := FromBytes(key)
	if k.IsZero() {
		return nil, ErrZeroKey
	}
	if len(text)%2 != 0 || len(text)/2 < len(key) {
		return nil, fmt.Errorf("%w: %d hex characters for a %d byte key", ErrInvalidLength, len(text), len(key))
	}
	product := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(product, text); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	q, r, err := DivMod(FromBytes(product), k)
	if err != nil {
		return nil, err
	}
	if !r.IsZero() {
		return nil, ErrNotMultiple
	}
	data, err := q.FillBytes(len(product) - len(key))
	if err != nil {
		return nil, fmt.Errorf("%w: quotient is wider than the original data", ErrNotMultiple)
	}
	return data, nil
}

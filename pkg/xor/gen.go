package xor

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// GenKey will generate an XOR key with the given length.
func GenKey(length int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.New("asked to generate a 0-length key")
	}
	buf := make([]byte, length)
	n, err := io.ReadFull(rand.Reader, buf)
	if n < length {
		return nil, fmt.Errorf("failed to read requested bytes: %v", err)
	}
	return buf, nil
}

// GenHexKey generates a key of exactly length ASCII hex characters.
// This is the shape of the key material shipped with lockstitch, which keeps key material files printable.
func GenHexKey(length int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.New("asked to generate a 0-length key")
	}
	raw, err := GenKey((length + 1) / 2)
	if err != nil {
		return nil, err
	}
	out := make([]byte, hex.EncodedLen(len(raw)))
	hex.Encode(out, raw)
	return out[:length], nil
}

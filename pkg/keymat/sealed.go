package keymat

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/saylorsolutions/lockstitch/pkg/passlock"
)

var (
	sealMagic = []byte("LSKM")

	ErrNotSealed = errors.New("data is not sealed key material")
	ErrUnseal    = errors.New("unable to unseal key material")

	ErrPassphraseRequired = errors.New("key material is sealed, but no passphrase is available")
)

// IsSealed reports whether data starts with the sealed key material marker.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, sealMagic)
}

// Seal encrypts the material with a key derived from pass.
// A nil gen uses the passlock defaults.
// The result holds the generator settings, so Open only needs the passphrase.
func Seal(m *Material, pass []byte, gen *passlock.KeyGenerator) ([]byte, error) {
	if gen == nil {
		var err error
		gen, err = passlock.NewKeyGenerator()
		if err != nil {
			return nil, err
		}
	}
	sealed, err := gen.Seal(pass, m.blob)
	if err != nil {
		return nil, err
	}
	return append(bytes.Clone(sealMagic), sealed...), nil
}

// Open reverses Seal.
func Open(data, pass []byte) (*Material, error) {
	if !IsSealed(data) {
		return nil, ErrNotSealed
	}
	plain, err := passlock.Open(pass, data[len(sealMagic):])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnseal, err)
	}
	return New(plain)
}

// LoadSealed reads and opens a sealed key material file.
func LoadSealed(path string, pass []byte) (*Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key material file: %w", err)
	}
	return Open(data, pass)
}

// Bytes returns a copy of the raw key material.
func (m *Material) Bytes() []byte {
	out := make([]byte, len(m.blob))
	copy(out, m.blob)
	return out
}

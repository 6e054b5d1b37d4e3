package keymat

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
)

const (
	// MinWindow is the smallest key window a position marker may select.
	MinWindow = 10
)

var (
	ErrTooShort   = errors.New("key material must be longer than 10 bytes")
	ErrOutOfRange = errors.New("offset out of range for key material")
)

var (
	//go:embed default.key
	defaultBlob []byte
	defaultMat  = mustNew(defaultBlob)
)

// Material is an immutable blob of key bytes.
type Material struct {
	blob []byte
}

func mustNew(blob []byte) *Material {
	m, err := New(blob)
	if err != nil {
		panic(err)
	}
	return m
}

// New creates Material from a copy of blob.
func New(blob []byte) (*Material, error) {
	if len(blob) <= MinWindow {
		return nil, fmt.Errorf("%w: got %d bytes", ErrTooShort, len(blob))
	}
	m := &Material{
		blob: make([]byte, len(blob)),
	}
	copy(m.blob, blob)
	return m, nil
}

// Default returns the key material embedded in the binary.
func Default() *Material {
	return defaultMat
}

// Load returns material read from the first usable path, or Default if no path could be used.
// The returned bool is true when the default was used.
// A sealed file is opened with the passphrase returned by pass, and is never skipped:
// failing to open it is an error, and a nil pass returns ErrPassphraseRequired.
func Load(pass func() ([]byte, error), paths ...string) (*Material, bool, error) {
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil || len(data) == 0 {
			continue
		}
		if IsSealed(data) {
			if pass == nil {
				return nil, false, fmt.Errorf("%w: '%s'", ErrPassphraseRequired, path)
			}
			secret, err := pass()
			if err != nil {
				return nil, false, err
			}
			m, err := Open(data, secret)
			if err != nil {
				return nil, false, fmt.Errorf("%w: '%s'", err, path)
			}
			return m, false, nil
		}
		m, err := New(data)
		if err != nil {
			continue
		}
		return m, false, nil
	}
	return Default(), true, nil
}

// Len returns the size of the blob.
func (m *Material) Len() int {
	return len(m.blob)
}

// Width returns the number of decimal digits in Len, which is the width of an encoded position marker.
func (m *Material) Width() int {
	return len(strconv.Itoa(len(m.blob)))
}

// Window returns a copy of up to maxLen bytes of the blob, starting at offset.
// The window is shorter than maxLen when offset is close to the end of the blob.
func (m *Material) Window(offset, maxLen int) ([]byte, error) {
	if offset <= 0 || offset >= len(m.blob) {
		return nil, fmt.Errorf("%w: offset %d with %d bytes of material", ErrOutOfRange, offset, len(m.blob))
	}
	if maxLen <= 0 {
		return nil, fmt.Errorf("window length must be positive, got %d", maxLen)
	}
	end := min(offset+maxLen, len(m.blob))
	out := make([]byte, end-offset)
	copy(out, m.blob[offset:end])
	return out, nil
}

// ValidOffset reports whether offset leaves room for at least a MinWindow byte key window.
func (m *Material) ValidOffset(offset int) bool {
	return offset > 0 && offset+MinWindow <= len(m.blob)
}

// RandomOffset picks an offset in [1, Len()-MinWindow-1] using intn, which must return a value in [0, n).
// A nil intn uses math/rand/v2.
func (m *Material) RandomOffset(intn func(n int) int) int {
	if intn == nil {
		intn = rand.IntN
	}
	span := len(m.blob) - MinWindow - 1
	if span <= 1 {
		// Only offset 1 leaves room for a full window.
		return 1
	}
	return 1 + intn(span)
}

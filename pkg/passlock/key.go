package passlock

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	bin "github.com/saylorsolutions/binmap"
	"golang.org/x/crypto/scrypt"
)

const (
	// LongDelayIterations needs about 1GiB of memory with the default block size.
	LongDelayIterations  uint64 = 1 << 20
	ShortDelayIterations uint64 = 1 << 15
	DefaultRelBlockSize  uint8  = 8
	DefaultCpuCost       uint8  = 1

	KeySize  = 256 / 8
	SaltSize = 32

	// ParamsSize is the size of the header written by WriteParams.
	ParamsSize = 8 + 1 + 1
)

var (
	ErrEmptyPassPhrase = errors.New("cannot use an empty passphrase")
	ErrInvalidData     = errors.New("unable to use input data")
	ErrInvalidParams   = errors.New("invalid key generator parameters")
)

// Key is an AES-256 key derived from a Passphrase.
type Key []byte

// Salt is a slice of secure random bytes that is used with scrypt to generate a Key from a Passphrase.
type Salt []byte

// Passphrase is a human-readable string used to generate a Key.
type Passphrase []byte

// KeyGenerator holds the scrypt settings used to turn a Passphrase into a Key.
type KeyGenerator struct {
	iterations        uint64
	relativeBlockSize uint8
	cpuCost           uint8
}

func (g *KeyGenerator) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&g.iterations),
		bin.Byte(&g.relativeBlockSize),
		bin.Byte(&g.cpuCost),
	)
}

// WriteParams writes the generator settings, so the same KeyGenerator can be recreated with ReadKeyGenerator.
func (g *KeyGenerator) WriteParams(w io.Writer) error {
	return g.mapper().Write(w, binary.BigEndian)
}

// ReadKeyGenerator recreates a KeyGenerator from settings written with WriteParams.
func ReadKeyGenerator(r io.Reader) (*KeyGenerator, error) {
	gen := new(KeyGenerator)
	if err := gen.mapper().Read(r, binary.BigEndian); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := gen.validate(); err != nil {
		return nil, err
	}
	return gen, nil
}

func (g *KeyGenerator) validate() error {
	switch {
	case g.iterations <= 1 || g.iterations&(g.iterations-1) != 0:
		return fmt.Errorf("%w: iterations %d is not a power of 2 greater than 1", ErrInvalidParams, g.iterations)
	case g.iterations > LongDelayIterations:
		return fmt.Errorf("%w: iterations %d is more than %d", ErrInvalidParams, g.iterations, LongDelayIterations)
	case g.relativeBlockSize < DefaultRelBlockSize:
		return fmt.Errorf("%w: relative block size %d", ErrInvalidParams, g.relativeBlockSize)
	case g.cpuCost < DefaultCpuCost:
		return fmt.Errorf("%w: cpu cost %d", ErrInvalidParams, g.cpuCost)
	}
	return nil
}

type GeneratorOpt = func(*KeyGenerator) error

// SetLongDelayIterations uses LongDelayIterations, which is much more resistant to password cracking.
func SetLongDelayIterations() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.iterations = LongDelayIterations
		return nil
	}
}

// SetShortDelayIterations uses ShortDelayIterations, and is the default.
// It's recommended to use longer passphrases with this option.
func SetShortDelayIterations() GeneratorOpt {
	return func(gen *KeyGenerator) error {
		gen.iterations = ShortDelayIterations
		return nil
	}
}

// SetIterations allows the caller to customize the iteration count.
// Only use this option if you know what you're doing.
func SetIterations(iterations uint64) GeneratorOpt {
	return func(gen *KeyGenerator) error {
		if iterations <= 1 {
			return errors.New("iterations cannot be <= 1")
		}
		if iterations&(iterations-1) != 0 {
			return errors.New("iterations must be a power of 2")
		}
		if iterations > LongDelayIterations {
			return fmt.Errorf("iterations cannot be more than %d", LongDelayIterations)
		}
		gen.iterations = iterations
		return nil
	}
}

// SetCPUCost sets the parallelism factor for key generation from the default of 1.
// Only use this option if you know what you're doing.
func SetCPUCost(cost uint8) GeneratorOpt {
	return func(gen *KeyGenerator) error {
		if cost < DefaultCpuCost {
			return errors.New("cpu cost must be at least 1")
		}
		gen.cpuCost = cost
		return nil
	}
}

// SetRelativeBlockSize sets the relative block size.
// Only use this option if you know what you're doing.
func SetRelativeBlockSize(size uint8) GeneratorOpt {
	return func(gen *KeyGenerator) error {
		if size < DefaultRelBlockSize {
			return errors.New("relative block size must be at least 8")
		}
		gen.relativeBlockSize = size
		return nil
	}
}

// NewKeyGenerator creates a new KeyGenerator using the options provided as zero or more GeneratorOpt.
// By default, the generator uses ShortDelayIterations.
func NewKeyGenerator(opts ...GeneratorOpt) (*KeyGenerator, error) {
	gen := &KeyGenerator{
		iterations:        ShortDelayIterations,
		relativeBlockSize: DefaultRelBlockSize,
		cpuCost:           DefaultCpuCost,
	}

	for _, opt := range opts {
		if err := opt(gen); err != nil {
			return nil, err
		}
	}
	return gen, nil
}

// GenerateKey will generate a Key from pass and a new random Salt.
func (g *KeyGenerator) GenerateKey(pass Passphrase) (Key, Salt, error) {
	salt := make(Salt, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, nil, err
	}
	key, err := g.DeriveKey(pass, salt)
	if err != nil {
		return nil, nil, err
	}
	return key, salt, nil
}

// DeriveKey recovers the Key generated from pass and salt.
// This doesn't ensure that pass is the *correct* passphrase.
func (g *KeyGenerator) DeriveKey(pass Passphrase, salt Salt) (Key, error) {
	if len(pass) == 0 {
		return nil, ErrEmptyPassPhrase
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrInvalidData, SaltSize, len(salt))
	}
	return scrypt.Key(pass, salt, int(g.iterations), int(g.relativeBlockSize), int(g.cpuCost), KeySize)
}

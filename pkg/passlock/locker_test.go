package passlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator(t *testing.T) *KeyGenerator {
	t.Helper()
	gen, err := NewKeyGenerator(SetIterations(1 << 10))
	require.NoError(t, err)
	return gen
}

func TestSealOpen(t *testing.T) {
	const password = "password"
	const data = "1bd4acef81b676f1bb87379ecad3e03ab937e8cca7fd6479"

	sealed, err := testGenerator(t).Seal([]byte(password), []byte(data))
	assert.NoError(t, err)
	assert.NotContains(t, string(sealed), data)

	opened, err := Open([]byte(password), sealed)
	assert.NoError(t, err)
	assert.Equal(t, data, string(opened))
}

func TestSeal_Unique(t *testing.T) {
	gen := testGenerator(t)
	a, err := gen.Seal([]byte("password"), []byte("same data"))
	require.NoError(t, err)
	b, err := gen.Seal([]byte("password"), []byte("same data"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpen_Neg(t *testing.T) {
	sealed, err := testGenerator(t).Seal([]byte("password"), []byte("some key material"))
	require.NoError(t, err)

	_, err = Open([]byte("not the password"), sealed)
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = Open(nil, sealed)
	assert.ErrorIs(t, err, ErrEmptyPassPhrase)

	_, err = Open([]byte("password"), sealed[:ParamsSize+SaltSize+4])
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = Open([]byte("password"), sealed[:4])
	assert.ErrorIs(t, err, ErrInvalidParams)

	tampered := append([]byte{}, sealed...)
	tampered[ParamsSize] ^= 0x01
	_, err = Open([]byte("password"), tampered)
	assert.ErrorIs(t, err, ErrInvalidData)

	tampered = append([]byte{}, sealed...)
	tampered[len(tampered)-1] ^= 0x01
	_, err = Open([]byte("password"), tampered)
	assert.ErrorIs(t, err, ErrInvalidData)
}

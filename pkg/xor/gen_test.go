package xor

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenKey(t *testing.T) {
	key, err := GenKey(32)
	assert.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestGenHexKey(t *testing.T) {
	for _, length := range []int{1, 11, 2048} {
		key, err := GenHexKey(length)
		assert.NoError(t, err)
		assert.Len(t, key, length)
		padded := key
		if len(padded)%2 != 0 {
			padded = append(padded, '0')
		}
		_, err = hex.DecodeString(string(padded))
		assert.NoError(t, err, "Key should only contain hex characters")
	}
}

func TestGenKey_Neg(t *testing.T) {
	_, err := GenKey(0)
	assert.Error(t, err)
	_, err = GenHexKey(-1)
	assert.Error(t, err)

	orig := rand.Reader
	defer func() {
		rand.Reader = orig
	}()
	rand.Reader = bytes.NewBuffer(nil)

	_, err = GenKey(10)
	assert.Error(t, err)
}

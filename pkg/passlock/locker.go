package passlock

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

func newGCM(key Key) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts data with a Key generated from pass.
// The result starts with the generator settings and the salt, so Open only needs the passphrase.
//
//	params (ParamsSize) | salt (SaltSize) | nonce | ciphertext
func (g *KeyGenerator) Seal(pass Passphrase, data []byte) ([]byte, error) {
	key, salt, err := g.GenerateKey(pass)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := g.WriteParams(&buf); err != nil {
		return nil, err
	}
	header := make([]byte, 0, ParamsSize+SaltSize)
	header = append(header, buf.Bytes()...)
	header = append(header, salt...)

	// The header is authenticated, so tampered settings fail to open.
	out := make([]byte, 0, len(header)+len(nonce)+len(data)+gcm.Overhead())
	out = append(out, header...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, data, header), nil
}

// Open reverses Seal.
// A wrong passphrase and tampered data both return an error wrapping ErrInvalidData.
func Open(pass Passphrase, sealed []byte) ([]byte, error) {
	if len(pass) == 0 {
		return nil, ErrEmptyPassPhrase
	}
	r := bytes.NewReader(sealed)
	gen, err := ReadKeyGenerator(r)
	if err != nil {
		return nil, err
	}
	if len(sealed) < ParamsSize+SaltSize {
		return nil, fmt.Errorf("%w: sealed data is too short to hold a salt", ErrInvalidData)
	}
	header, rest := sealed[:ParamsSize+SaltSize], sealed[ParamsSize+SaltSize:]
	key, err := gen.DeriveKey(pass, Salt(header[ParamsSize:]))
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(rest) < gcm.NonceSize()+gcm.Overhead() {
		return nil, fmt.Errorf("%w: sealed data is too short", ErrInvalidData)
	}
	nonce, cipherText := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, cipherText, header)
	if err != nil {
		return nil, fmt.Errorf("%w: wrong passphrase or corrupted data", ErrInvalidData)
	}
	return plain, nil
}

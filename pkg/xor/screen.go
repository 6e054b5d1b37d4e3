package xor

import (
	"errors"
)

var (
	ErrEmptyKey = errors.New("cannot use empty key")
)

type xorScreen struct {
	key []byte
	cur int
}

func newXorScreen(key []byte) (*xorScreen, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}
	return &xorScreen{key: key}, nil
}

func (s *xorScreen) screen(b byte) byte {
	b ^= s.key[s.cur]
	s.cur++
	if s.cur == len(s.key) {
		s.cur = 0
	}
	return b
}

// screenAll screens buf in place, continuing from the current key position.
func (s *xorScreen) screenAll(buf []byte) {
	for i := range buf {
		buf[i] = s.screen(buf[i])
	}
}

// Apply XORs every byte of buf in place with key[i % len(key)].
// Calling Apply twice with the same key restores the original content.
func Apply(buf []byte, key []byte) error {
	scr, err := newXorScreen(key)
	if err != nil {
		return err
	}
	scr.screenAll(buf)
	return nil
}

// Screened returns a screened copy of buf, leaving buf untouched.
func Screened(buf []byte, key []byte) ([]byte, error) {
	out := make([]byte, len(buf))
	copy(out, buf)
	if err := Apply(out, key); err != nil {
		return nil, err
	}
	return out, nil
}

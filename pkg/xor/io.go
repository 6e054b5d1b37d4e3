package xor

import (
	"io"
)

// Reader unscreens everything read from an underlying io.Reader.
// The key position carries over between reads.
type Reader struct {
	source io.Reader
	scr    *xorScreen
	count  int64
}

// NewReader constructs a new Reader that will perform XOR operations on all bytes read, using the provided key.
func NewReader(source io.Reader, key []byte) (*Reader, error) {
	scr, err := newXorScreen(key)
	if err != nil {
		return nil, err
	}
	return &Reader{source: source, scr: scr}, nil
}

func (r *Reader) Read(out []byte) (n int, err error) {
	n, err = r.source.Read(out)
	r.scr.screenAll(out[:n])
	r.count += int64(n)
	return n, err
}

// Count returns the number of bytes screened so far.
func (r *Reader) Count() int64 {
	return r.count
}

// Writer screens every byte before passing it to an underlying io.Writer.
// The key position carries over between writes.
type Writer struct {
	target io.Writer
	scr    *xorScreen
	count  int64
}

// NewWriter constructs a new Writer that screens every byte before passing it to target, using the provided key.
func NewWriter(target io.Writer, key []byte) (*Writer, error) {
	scr, err := newXorScreen(key)
	if err != nil {
		return nil, err
	}
	return &Writer{target: target, scr: scr}, nil
}

// Write never modifies in.
func (w *Writer) Write(in []byte) (n int, err error) {
	buf := make([]byte, len(in))
	copy(buf, in)
	w.scr.screenAll(buf)
	n, err = w.target.Write(buf)
	w.count += int64(n)
	return n, err
}

// Count returns the number of bytes screened so far.
func (w *Writer) Count() int64 {
	return w.count
}

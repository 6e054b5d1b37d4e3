package container

import (
	"bytes"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/saylorsolutions/lockstitch/pkg/keymat"
	"github.com/saylorsolutions/lockstitch/pkg/marker"
	"github.com/saylorsolutions/lockstitch/pkg/nat"
	"github.com/saylorsolutions/lockstitch/pkg/xor"
)

const (
	// ChunkSize is the largest leading part of a payload that goes through the multiply transform.
	ChunkSize = 40000
	// KeyWindowSize is the largest key window used for payloads.
	KeyWindowSize = 1000
	ExtensionSize = 16
	PasswordSize  = 32
	MaxHeadSize   = math.MaxUint16

	chunkLenSize = 4
	headLenSize  = 2
)

var (
	ErrAuthentication = errors.New("password incorrect")
	ErrMalformed      = errors.New("malformed container")
	ErrInconsistent   = errors.New("inconsistent container")
)

// DefaultMediaExtensions are screened whole instead of going through the multiply transform.
var DefaultMediaExtensions = []string{"mp4", "mov"}

// Meta is the metadata carried next to a payload.
type Meta struct {
	Extension string
	Password  string
	HeadSize  int
}

// Codec packs and unpacks containers for one set of key material.
// A Codec is immutable once created and safe for concurrent use.
type Codec struct {
	material *keymat.Material
	markers  marker.Codec
	media    map[string]bool
}

// CodecOpt configures a Codec in NewCodec.
type CodecOpt = func(*Codec)

// MediaExtensions replaces DefaultMediaExtensions.
// Both sides of a round trip must use the same set.
func MediaExtensions(exts ...string) CodecOpt {
	return func(c *Codec) {
		c.media = make(map[string]bool, len(exts))
		for _, ext := range exts {
			c.media[normalizeExt(ext)] = true
		}
	}
}

// NewCodec creates a Codec using key windows cut from m.
func NewCodec(m *keymat.Material, opts ...CodecOpt) *Codec {
	c := &Codec{
		material: m,
		markers:  marker.For(m),
	}
	MediaExtensions(DefaultMediaExtensions...)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// IsMedia reports whether payloads with this extension skip the multiply transform.
func (c *Codec) IsMedia(ext string) bool {
	return c.media[normalizeExt(fieldValue(ext, ExtensionSize))]
}

// Overhead is the number of bytes a container adds besides the header and body.
func (c *Codec) Overhead(media bool) int {
	n := headLenSize + c.markers.Width() + ExtensionSize + PasswordSize
	if !media {
		n += chunkLenSize
	}
	return n
}

// Pack builds a container from payload using the key window at offset.
func (c *Codec) Pack(payload []byte, offset int, meta Meta) ([]byte, error) {
	if meta.HeadSize < 0 || meta.HeadSize > MaxHeadSize || meta.HeadSize > len(payload)/2 {
		return nil, fmt.Errorf("%w: header size %d for a %d byte payload", ErrInconsistent, meta.HeadSize, len(payload))
	}
	if !c.material.ValidOffset(offset) {
		return nil, fmt.Errorf("%w: offset %d", keymat.ErrOutOfRange, offset)
	}
	key, err := c.material.Window(offset, KeyWindowSize)
	if err != nil {
		return nil, err
	}
	mark, err := c.markers.Encode(offset)
	if err != nil {
		return nil, err
	}
	media := c.IsMedia(meta.Extension)

	var buf bytes.Buffer
	buf.Grow(meta.HeadSize + 2*len(payload) + 2*len(key) + c.Overhead(media))
	buf.Write(payload[:meta.HeadSize])

	screen, err := xor.NewWriter(&buf, key)
	if err != nil {
		return nil, err
	}
	if media {
		if _, err := screen.Write(payload); err != nil {
			return nil, err
		}
	} else {
		n := min(len(payload), ChunkSize)
		body, err := nat.Encode(payload[:n], key)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
		if _, err := screen.Write(payload[n:]); err != nil {
			return nil, err
		}
		buf.Write(binary.BigEndian.AppendUint32(nil, uint32(len(body))))
	}
	buf.Write(binary.BigEndian.AppendUint16(nil, uint16(meta.HeadSize)))
	buf.Write(mark)
	for _, f := range []struct {
		value string
		size  int
	}{
		{meta.Extension, ExtensionSize},
		{meta.Password, PasswordSize},
	} {
		field, err := writeField(f.value, f.size)
		if err != nil {
			return nil, err
		}
		buf.Write(field)
	}
	return buf.Bytes(), nil
}

// tail holds everything parsed from the end of a container, except the password.
type tail struct {
	meta   Meta
	offset int
	header []byte
	body   []byte
}

func (c *Codec) minSize() int {
	return headLenSize + c.markers.Width() + ExtensionSize + PasswordSize
}

// Unpack verifies the password and recovers the payload and metadata from a container.
func (c *Codec) Unpack(data []byte, password string) ([]byte, Meta, error) {
	if len(data) < c.minSize() {
		return nil, Meta{}, fmt.Errorf("%w: %d bytes is too short to be a container", ErrMalformed, len(data))
	}
	stored, err := readField(data[len(data)-PasswordSize:])
	if err != nil {
		return nil, Meta{}, err
	}
	if !passwordsMatch(stored, password) {
		return nil, Meta{}, ErrAuthentication
	}
	t, err := c.readTail(data[:len(data)-PasswordSize])
	if err != nil {
		return nil, Meta{}, err
	}
	t.meta.Password = stored

	payload, err := c.unpackBody(t)
	if err != nil {
		return nil, Meta{}, err
	}
	return payload, t.meta, nil
}

// Inspect reads the container metadata without checking the password or decoding the body.
// The returned Meta never includes the password.
func (c *Codec) Inspect(data []byte) (Meta, int, error) {
	if len(data) < c.minSize() {
		return Meta{}, 0, fmt.Errorf("%w: %d bytes is too short to be a container", ErrMalformed, len(data))
	}
	t, err := c.readTail(data[:len(data)-PasswordSize])
	if err != nil {
		return Meta{}, 0, err
	}
	return t.meta, t.offset, nil
}

func (c *Codec) readTail(data []byte) (tail, error) {
	var t tail
	ext, err := readField(data[len(data)-ExtensionSize:])
	if err != nil {
		return t, err
	}
	t.meta.Extension = ext
	data = data[:len(data)-ExtensionSize]

	width := c.markers.Width()
	offset, err := c.markers.Decode(data[len(data)-width:])
	if err != nil {
		return t, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	t.offset = offset
	data = data[:len(data)-width]

	headSize := int(binary.BigEndian.Uint16(data[len(data)-headLenSize:]))
	data = data[:len(data)-headLenSize]
	if headSize > len(data)/2 {
		return t, fmt.Errorf("%w: header size %d exceeds half of the remaining %d bytes", ErrInconsistent, headSize, len(data))
	}
	t.meta.HeadSize = headSize
	t.header = data[:headSize]
	t.body = data[headSize:]
	return t, nil
}

func (c *Codec) unpackBody(t tail) ([]byte, error) {
	key, err := c.material.Window(t.offset, KeyWindowSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	body := t.body
	var chunk []byte
	if !c.IsMedia(t.meta.Extension) {
		if len(body) < chunkLenSize {
			return nil, fmt.Errorf("%w: missing body chunk length", ErrMalformed)
		}
		chunkLen := binary.BigEndian.Uint32(body[len(body)-chunkLenSize:])
		body = body[:len(body)-chunkLenSize]
		if uint64(chunkLen) > uint64(len(body)) {
			return nil, fmt.Errorf("%w: body chunk length %d exceeds the remaining %d bytes", ErrInconsistent, chunkLen, len(body))
		}
		// A full chunk is ChunkSize bytes multiplied by the key, rendered as hex.
		fullChunkLen := 2 * (ChunkSize + len(key))
		if uint64(chunkLen) > uint64(fullChunkLen) {
			return nil, fmt.Errorf("%w: body chunk length %d exceeds the limit of %d", ErrInconsistent, chunkLen, fullChunkLen)
		}
		if int(chunkLen) < len(body) && int(chunkLen) != fullChunkLen {
			return nil, fmt.Errorf("%w: screened bytes follow a partial body chunk of length %d", ErrInconsistent, chunkLen)
		}
		chunk, err = nat.Decode(body[:chunkLen], key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		body = body[chunkLen:]
	}

	screen, err := xor.NewReader(bytes.NewReader(body), key)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, len(chunk), len(chunk)+len(body))
	copy(payload, chunk)
	payload = payload[:len(chunk)+len(body)]
	if _, err := io.ReadFull(screen, payload[len(chunk):]); err != nil {
		return nil, err
	}

	if len(payload) < len(t.header) || !bytes.Equal(payload[:len(t.header)], t.header) {
		return nil, fmt.Errorf("%w: header doesn't match the decoded payload", ErrInconsistent)
	}
	return payload, nil
}

func fieldBytes(s string, size int) []byte {
	field := bytes.Repeat([]byte{' '}, size)
	copy(field, s)
	return field
}

// fieldValue is the value s will have once it's been written to and read back from a field.
func fieldValue(s string, size int) string {
	return strings.TrimRight(string(fieldBytes(s, size)), " ")
}

func writeField(s string, size int) ([]byte, error) {
	field := fieldBytes(s, size)
	if err := xor.Apply(field, marker.Prefix()); err != nil {
		return nil, err
	}
	return field, nil
}

func readField(b []byte) (string, error) {
	field, err := xor.Screened(b, marker.Prefix())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(field), " "), nil
}

func passwordsMatch(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(fieldValue(supplied, PasswordSize))) == 1
}

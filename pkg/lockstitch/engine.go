package lockstitch

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/saylorsolutions/lockstitch/pkg/container"
	"github.com/saylorsolutions/lockstitch/pkg/keymat"
	"github.com/saylorsolutions/lockstitch/pkg/marker"
	"github.com/saylorsolutions/lockstitch/pkg/nat"
)

const (
	// TextWindowSize is the key window size used for text.
	TextWindowSize = keymat.MinWindow
)

// Engine encodes and decodes text and payloads with one set of key material.
// It holds no mutable state, so a single Engine may be used from many goroutines.
type Engine struct {
	material  *keymat.Material
	markers   marker.Codec
	codec     *container.Codec
	codecOpts []container.CodecOpt
	intn      func(n int) int
	log       zerolog.Logger
}

// EngineOpt configures an Engine in New.
type EngineOpt = func(*Engine) error

// WithLogger sets the logger used for debug output. The default logger discards everything.
func WithLogger(log zerolog.Logger) EngineOpt {
	return func(e *Engine) error {
		e.log = log
		return nil
	}
}

// WithOffsetSource replaces the random source used to pick key offsets.
// intn must return a value in [0, n).
func WithOffsetSource(intn func(n int) int) EngineOpt {
	return func(e *Engine) error {
		if intn == nil {
			return errors.New("nil offset source")
		}
		e.intn = intn
		return nil
	}
}

// WithMediaExtensions replaces the set of extensions that are screened whole instead of multiplied.
func WithMediaExtensions(exts ...string) EngineOpt {
	return func(e *Engine) error {
		e.codecOpts = append(e.codecOpts, container.MediaExtensions(exts...))
		return nil
	}
}

// New creates an Engine using m for every key window.
func New(m *keymat.Material, opts ...EngineOpt) (*Engine, error) {
	if m == nil {
		return nil, errors.New("nil key material")
	}
	e := &Engine{
		material: m,
		markers:  marker.For(m),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.codec = container.NewCodec(m, e.codecOpts...)
	return e, nil
}

// Material returns the key material used by e.
func (e *Engine) Material() *keymat.Material {
	return e.material
}

func (e *Engine) pickOffset() int {
	return e.material.RandomOffset(e.intn)
}

// EncryptText returns the position marker followed by the hex encoded product of s and the key window.
func (e *Engine) EncryptText(s string) (string, error) {
	offset := e.pickOffset()
	key, err := e.material.Window(offset, TextWindowSize)
	if err != nil {
		return "", err
	}
	mark, err := e.markers.Encode(offset)
	if err != nil {
		return "", err
	}
	body, err := nat.Encode([]byte(s), key)
	if err != nil {
		return "", err
	}
	e.log.Debug().Int("len", len(s)).Int("encoded_len", len(mark)+len(body)).Msg("Encoded text")
	return string(mark) + string(body), nil
}

// DecryptText reverses EncryptText.
func (e *Engine) DecryptText(s string) (string, error) {
	width := e.markers.Width()
	if len(s) <= width {
		return "", ErrTooShort
	}
	offset, err := e.markers.Decode([]byte(s[:width]))
	if err != nil {
		return "", fmt.Errorf("%w: the content is not valid encoded text: %w", ErrMalformedInput, err)
	}
	key, err := e.material.Window(offset, TextWindowSize)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	data, err := nat.Decode([]byte(s[width:]), key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	e.log.Debug().Int("encoded_len", len(s)).Int("len", len(data)).Msg("Decoded text")
	return string(data), nil
}

// EncryptPayload packs payload into a container.
// The first headSize bytes are also copied to the front of the container untouched, and headSize may be at most half the payload size.
func (e *Engine) EncryptPayload(payload []byte, ext, password string, headSize int) ([]byte, error) {
	packed, err := e.codec.Pack(payload, e.pickOffset(), container.Meta{
		Extension: ext,
		Password:  password,
		HeadSize:  headSize,
	})
	if err != nil {
		return nil, err
	}
	e.log.Debug().
		Int("len", len(payload)).
		Int("container_len", len(packed)).
		Str("ext", ext).
		Bool("media", e.codec.IsMedia(ext)).
		Int("head_size", headSize).
		Msg("Packed payload")
	return packed, nil
}

// DecryptPayload verifies the password and returns the payload and extension stored in a container.
func (e *Engine) DecryptPayload(data []byte, password string) ([]byte, string, error) {
	payload, meta, err := e.codec.Unpack(data, password)
	if err != nil {
		e.log.Debug().Err(err).Str("kind", KindOf(err).String()).Msg("Failed to unpack payload")
		return nil, "", err
	}
	e.log.Debug().
		Int("container_len", len(data)).
		Int("len", len(payload)).
		Str("ext", meta.Extension).
		Int("head_size", meta.HeadSize).
		Msg("Unpacked payload")
	return payload, meta.Extension, nil
}

// Inspect returns the metadata of a container, without the password.
func (e *Engine) Inspect(data []byte) (container.Meta, error) {
	meta, _, err := e.codec.Inspect(data)
	return meta, err
}

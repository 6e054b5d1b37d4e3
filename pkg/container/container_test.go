package container

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saylorsolutions/lockstitch/pkg/keymat"
	"github.com/saylorsolutions/lockstitch/pkg/marker"
	"github.com/saylorsolutions/lockstitch/pkg/nat"
	"github.com/saylorsolutions/lockstitch/pkg/xor"
)

func randPayload(seed int64, n int) []byte {
	buf := make([]byte, n)
	_, _ = rand.New(rand.NewSource(seed)).Read(buf)
	return buf
}

func TestPackUnpack(t *testing.T) {
	codec := NewCodec(keymat.Default())
	tests := map[string]struct {
		payload []byte
		meta    Meta
		offset  int
	}{
		"small text":         {payload: []byte("hello"), meta: Meta{Extension: "txt", Password: "pw"}, offset: 17},
		"empty payload":      {payload: []byte{}, meta: Meta{Extension: "bin", Password: "pw"}, offset: 1},
		"no password":        {payload: []byte("content"), meta: Meta{Extension: "md"}, offset: 2000},
		"with header":        {payload: []byte("\x89PNG\r\n\x1a\n rest of the image"), meta: Meta{Extension: "png", Password: "pw", HeadSize: 8}, offset: 512},
		"media":              {payload: randPayload(1, 4096), meta: Meta{Extension: "MP4", Password: "secret"}, offset: 1024},
		"media with header":  {payload: randPayload(2, 100), meta: Meta{Extension: "mov", Password: "secret", HeadSize: 50}, offset: 7},
		"leading zero bytes": {payload: []byte{0, 0, 0, 1, 2, 3}, meta: Meta{Extension: "dat", Password: "pw", HeadSize: 3}, offset: 300},
		"no extension":       {payload: []byte("data"), meta: Meta{Password: "pw"}, offset: 99},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			packed, err := codec.Pack(tc.payload, tc.offset, tc.meta)
			require.NoError(t, err)

			payload, meta, err := codec.Unpack(packed, tc.meta.Password)
			require.NoError(t, err)
			assert.Equal(t, tc.payload, payload)
			assert.Equal(t, tc.meta, meta)

			assert.Equal(t, tc.payload[:tc.meta.HeadSize], packed[:tc.meta.HeadSize], "Header should be copied as-is")
		})
	}
}

func TestPack_Size(t *testing.T) {
	m := keymat.Default()
	codec := NewCodec(m)
	const offset = 100
	key, err := m.Window(offset, KeyWindowSize)
	require.NoError(t, err)

	packed, err := codec.Pack([]byte("12345"), offset, Meta{Extension: "txt", Password: "pw"})
	require.NoError(t, err)
	assert.Len(t, packed, 2*(5+len(key))+4+2+m.Width()+ExtensionSize+PasswordSize)
	assert.Equal(t, codec.Overhead(false), 4+2+m.Width()+ExtensionSize+PasswordSize)

	media, err := codec.Pack([]byte("12345"), offset, Meta{Extension: "mov", Password: "pw"})
	require.NoError(t, err)
	assert.Len(t, media, 5+codec.Overhead(true))
}

func TestPack_ChunkCap(t *testing.T) {
	m := keymat.Default()
	codec := NewCodec(m)
	const offset = 42
	key, err := m.Window(offset, KeyWindowSize)
	require.NoError(t, err)
	payload := randPayload(3, ChunkSize+1234)

	packed, err := codec.Pack(payload, offset, Meta{Extension: "bin", Password: "pw"})
	require.NoError(t, err)

	tailLen := headLenSize + m.Width() + ExtensionSize + PasswordSize
	chunkLen := binary.BigEndian.Uint32(packed[len(packed)-tailLen-chunkLenSize:])
	assert.Equal(t, uint32(2*(ChunkSize+len(key))), chunkLen)

	chunk, err := nat.Decode(packed[:chunkLen], key)
	require.NoError(t, err)
	assert.Equal(t, payload[:ChunkSize], chunk)
	assert.Len(t, packed, int(chunkLen)+1234+chunkLenSize+tailLen)

	back, meta, err := codec.Unpack(packed, "pw")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, back))
	assert.Equal(t, "bin", meta.Extension)
}

func TestPack_Fields(t *testing.T) {
	codec := NewCodec(keymat.Default())
	packed, err := codec.Pack([]byte("data"), 5, Meta{
		Extension: "a-very-long-extension-name",
		Password:  "a password that is longer than thirty two bytes",
	})
	require.NoError(t, err)
	assert.NotContains(t, string(packed), "a password")

	_, meta, err := codec.Unpack(packed, "a password that is longer than thirty two bytes")
	require.NoError(t, err)
	assert.Equal(t, "a-very-long-exte", meta.Extension)
	assert.Equal(t, "a password that is longer than t", meta.Password)

	_, _, err = codec.Unpack(packed, "a password that is longer than t")
	assert.NoError(t, err, "Only the first 32 bytes of a password are kept")

	packed, err = codec.Pack([]byte("data"), 5, Meta{Extension: "txt", Password: "pw  "})
	require.NoError(t, err)
	_, _, err = codec.Unpack(packed, "pw")
	assert.NoError(t, err, "Trailing spaces are padding")
}

func TestPack_Neg(t *testing.T) {
	codec := NewCodec(keymat.Default())
	_, err := codec.Pack([]byte("data"), 5, Meta{HeadSize: 3})
	assert.ErrorIs(t, err, ErrInconsistent)
	_, err = codec.Pack([]byte("data"), 5, Meta{HeadSize: -1})
	assert.ErrorIs(t, err, ErrInconsistent)
	_, err = codec.Pack(make([]byte, 2*MaxHeadSize+4), 5, Meta{HeadSize: MaxHeadSize + 1})
	assert.ErrorIs(t, err, ErrInconsistent)
	_, err = codec.Pack([]byte("data"), 0, Meta{})
	assert.ErrorIs(t, err, keymat.ErrOutOfRange)
	_, err = codec.Pack([]byte("data"), 2039, Meta{})
	assert.ErrorIs(t, err, keymat.ErrOutOfRange)
}

func TestUnpack_Authentication(t *testing.T) {
	codec := NewCodec(keymat.Default())
	packed, err := codec.Pack([]byte("12345"), 10, Meta{Extension: "txt", Password: "pw"})
	require.NoError(t, err)

	for _, wrong := range []string{"wrong", "", "pw2", "PW", " pw"} {
		_, _, err = codec.Unpack(packed, wrong)
		assert.ErrorIs(t, err, ErrAuthentication, "Password %q should be rejected", wrong)
	}
}

func TestUnpack_Neg(t *testing.T) {
	m := keymat.Default()
	codec := NewCodec(m)
	packed, err := codec.Pack([]byte("some payload"), 10, Meta{Extension: "txt", Password: "pw", HeadSize: 4})
	require.NoError(t, err)
	tailLen := headLenSize + m.Width() + ExtensionSize + PasswordSize

	t.Run("too short", func(t *testing.T) {
		_, _, err := codec.Unpack(packed[len(packed)-tailLen+1:], "pw")
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("bad marker", func(t *testing.T) {
		bad := bytes.Clone(packed)
		bad[len(bad)-PasswordSize-ExtensionSize-1] ^= 0xff
		_, _, err := codec.Unpack(bad, "pw")
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("header size too large", func(t *testing.T) {
		bad := bytes.Clone(packed)
		binary.BigEndian.PutUint16(bad[len(bad)-tailLen:], 0xffff)
		_, _, err := codec.Unpack(bad, "pw")
		assert.ErrorIs(t, err, ErrInconsistent)
	})

	t.Run("chunk length too large", func(t *testing.T) {
		bad := bytes.Clone(packed)
		binary.BigEndian.PutUint32(bad[len(bad)-tailLen-chunkLenSize:], 1<<30)
		_, _, err := codec.Unpack(bad, "pw")
		assert.ErrorIs(t, err, ErrInconsistent)
	})

	t.Run("chunk beyond the cap", func(t *testing.T) {
		key, err := m.Window(10, KeyWindowSize)
		require.NoError(t, err)
		body, err := nat.Encode(randPayload(5, ChunkSize+100), key)
		require.NoError(t, err)
		bad := buildContainer(t, m, 10, body, len(body))
		_, _, err = codec.Unpack(bad, "pw")
		assert.ErrorIs(t, err, ErrInconsistent)
	})

	t.Run("remainder after a partial chunk", func(t *testing.T) {
		key, err := m.Window(10, KeyWindowSize)
		require.NoError(t, err)
		payload := randPayload(6, 300)
		body, err := nat.Encode(payload[:100], key)
		require.NoError(t, err)
		chunkLen := len(body)
		rest, err := xor.Screened(payload[100:], key)
		require.NoError(t, err)
		bad := buildContainer(t, m, 10, append(body, rest...), chunkLen)
		_, _, err = codec.Unpack(bad, "pw")
		assert.ErrorIs(t, err, ErrInconsistent)
	})

	t.Run("hand built container", func(t *testing.T) {
		key, err := m.Window(10, KeyWindowSize)
		require.NoError(t, err)
		payload := randPayload(7, 100)
		body, err := nat.Encode(payload, key)
		require.NoError(t, err)
		good := buildContainer(t, m, 10, body, len(body))
		back, _, err := codec.Unpack(good, "pw")
		require.NoError(t, err)
		assert.Equal(t, payload, back)
	})

	t.Run("tampered body", func(t *testing.T) {
		bad := bytes.Clone(packed)
		bad[4] = 'z'
		_, _, err := codec.Unpack(bad, "pw")
		assert.ErrorIs(t, err, ErrMalformed)
		assert.ErrorIs(t, err, nat.ErrInvalidHex)
	})

	t.Run("tampered header", func(t *testing.T) {
		bad := bytes.Clone(packed)
		bad[0] ^= 0x01
		_, _, err := codec.Unpack(bad, "pw")
		assert.ErrorIs(t, err, ErrInconsistent)
	})

	t.Run("different material", func(t *testing.T) {
		other, err := keymat.New(bytes.Repeat([]byte("0123456789abcdef"), 128))
		require.NoError(t, err)
		_, _, err = NewCodec(other).Unpack(packed, "pw")
		assert.ErrorIs(t, err, ErrMalformed)
	})
}

// buildContainer assembles a non-media container with extension "txt", password "pw" and no header around body.
func buildContainer(t *testing.T, m *keymat.Material, offset int, body []byte, chunkLen int) []byte {
	t.Helper()
	mark, err := marker.For(m).Encode(offset)
	require.NoError(t, err)
	ext, err := writeField("txt", ExtensionSize)
	require.NoError(t, err)
	pw, err := writeField("pw", PasswordSize)
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.Write(body)
	buf.Write(binary.BigEndian.AppendUint32(nil, uint32(chunkLen)))
	buf.Write(binary.BigEndian.AppendUint16(nil, 0))
	buf.Write(mark)
	buf.Write(ext)
	buf.Write(pw)
	return buf.Bytes()
}

func TestMediaExtensions(t *testing.T) {
	codec := NewCodec(keymat.Default())
	assert.True(t, codec.IsMedia("MP4"))
	assert.True(t, codec.IsMedia(".mov"))
	assert.False(t, codec.IsMedia("mp3"))
	assert.False(t, codec.IsMedia(""))

	custom := NewCodec(keymat.Default(), MediaExtensions("mp3", "WAV"))
	assert.True(t, custom.IsMedia("mp3"))
	assert.True(t, custom.IsMedia("wav"))
	assert.False(t, custom.IsMedia("mp4"))

	payload := randPayload(4, 512)
	packed, err := custom.Pack(payload, 33, Meta{Extension: "wav", Password: "pw"})
	require.NoError(t, err)
	assert.Len(t, packed, len(payload)+custom.Overhead(true))
	back, _, err := custom.Unpack(packed, "pw")
	require.NoError(t, err)
	assert.Equal(t, payload, back)
}

func TestInspect(t *testing.T) {
	codec := NewCodec(keymat.Default())
	packed, err := codec.Pack([]byte("some payload"), 321, Meta{Extension: "txt", Password: "pw", HeadSize: 2})
	require.NoError(t, err)

	meta, offset, err := codec.Inspect(packed)
	require.NoError(t, err)
	assert.Equal(t, Meta{Extension: "txt", HeadSize: 2}, meta)
	assert.Equal(t, 321, offset)

	_, _, err = codec.Inspect([]byte("short"))
	assert.ErrorIs(t, err, ErrMalformed)
}

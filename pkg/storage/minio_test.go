package storage

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestDetectKeepsEveryByte(t *testing.T) {
	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 5000)...)

	mt, body, err := Detect(bytes.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, "image/png", mt.String())
	rest, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, payload, rest)
}

func TestDetectShortInput(t *testing.T) {
	mt, body, err := Detect(strings.NewReader("hello"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(mt.String(), "text/plain"))
	rest, _ := io.ReadAll(body)
	assert.Equal(t, "hello", string(rest))
}

func TestKind(t *testing.T) {
	cases := map[string][]byte{
		"image":    pngHeader,
		"audio":    []byte("ID3\x03\x00\x00\x00\x00\x00\x00"),
		"document": []byte("%PDF-1.7\n"),
	}
	for want, data := range cases {
		mt, _, err := Detect(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, want, Kind(mt), mt.String())
	}
}

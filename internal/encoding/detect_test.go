package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamessshhh/Expense-Odyssey/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.ToUTF8(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestToUTF8_Passthrough(t *testing.T) {
	input := "Date,Amount,Category,Note\n2024-01-01,12.50,Food,café\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestToUTF8_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Amount\n")...)
	assert.Equal(t, "Date,Amount\n", decode(t, input))
}

func TestToUTF8_Windows1252(t *testing.T) {
	// "café" with 0xE9 for é, as Excel writes it.
	input := []byte{'c', 'a', 'f', 0xE9, ',', '9', ',', '9', '9', '\n'}
	assert.Equal(t, "café,9,99\n", decode(t, input))
}

func TestToUTF8_UTF16LE(t *testing.T) {
	// BOM FF FE followed by "ab" in little-endian UTF-16.
	input := []byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00}
	assert.Equal(t, "ab", decode(t, input))
}

func TestToUTF8_UTF16BE(t *testing.T) {
	input := []byte{0xFE, 0xFF, 0x00, 'a', 0x00, 'b'}
	assert.Equal(t, "ab", decode(t, input))
}

package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/spendwise/internal/encoding"
)

const sample = "date;description;amount;category\n2025-10-03;Café Central;-12.50;Food\n"

func TestDetect(t *testing.T) {
	type testCase struct {
		name  string
		input []byte
		want  encoding.Charset
	}

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(sample))
	require.NoError(t, err)

	tests := []testCase{
		{name: "PlainUTF8", input: []byte(sample), want: encoding.UTF8},
		{name: "ASCII", input: []byte("date;amount\n"), want: encoding.UTF8},
		{name: "Empty", input: nil, want: encoding.UTF8},
		{name: "UTF8BOM", input: append([]byte{0xEF, 0xBB, 0xBF}, sample...), want: encoding.UTF8BOM},
		{name: "UTF16LE", input: utf16le, want: encoding.UTF16LE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encoding.Detect(tt.input))
		})
	}
}

func TestNewUTF8Reader(t *testing.T) {
	type testCase struct {
		name  string
		input func(t *testing.T) []byte
	}

	tests := []testCase{
		{
			name:  "UTF8Passthrough",
			input: func(t *testing.T) []byte { return []byte(sample) },
		},
		{
			name:  "StripsBOM",
			input: func(t *testing.T) []byte { return append([]byte{0xEF, 0xBB, 0xBF}, sample...) },
		},
		{
			name: "Windows1252",
			input: func(t *testing.T) []byte {
				b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(sample))
				require.NoError(t, err)

				return b
			},
		},
		{
			name: "UTF16BE",
			input: func(t *testing.T) []byte {
				b, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(sample))
				require.NoError(t, err)

				return b
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input(t)))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, sample, string(got))
		})
	}
}

func TestNewUTF8Reader_LargeInput(t *testing.T) {
	input := bytes.Repeat([]byte(sample), 500)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, got)
}

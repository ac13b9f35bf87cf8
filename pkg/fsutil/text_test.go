package fsutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxgen/pkg/fsutil"
)

func TestDecodeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []byte
		want    string
		wantEnc fsutil.Encoding
	}{
		{"plain", []byte("<%@ Page %>"), "<%@ Page %>", fsutil.EncodingUTF8},
		{"utf-8 bom", []byte("\xEF\xBB\xBF<p>"), "<p>", fsutil.EncodingUTF8BOM},
		{"utf-16le", []byte{0xFF, 0xFE, '<', 0, 'p', 0, '>', 0}, "<p>", fsutil.EncodingUTF16LE},
		{"utf-16be", []byte{0xFE, 0xFF, 0, '<', 0, 'p', 0, '>'}, "<p>", fsutil.EncodingUTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fsutil.DecodeText(tt.content)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.wantEnc, got.Encoding)
		})
	}
}

func TestEncodeText_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, enc := range []fsutil.Encoding{
		fsutil.EncodingUTF8,
		fsutil.EncodingUTF8BOM,
		fsutil.EncodingUTF16LE,
		fsutil.EncodingUTF16BE,
	} {
		t.Run(enc.String(), func(t *testing.T) {
			t.Parallel()

			data, err := fsutil.EncodeText(`<%@ Page Title="é" %>`, enc)
			require.NoError(t, err)

			got := fsutil.DecodeText(data)
			assert.Equal(t, `<%@ Page Title="é" %>`, got.Text)
			assert.Equal(t, enc, got.Encoding)
		})
	}
}

package fsutil

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies how a markup file was stored on disk.
type Encoding int

// Encodings recognized by their byte order mark. Files without a BOM are UTF-8.
const (
	EncodingUTF8 Encoding = iota
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8BOM:
		return "utf-8-bom"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	default:
		return "utf-8"
	}
}

// BOMLen returns the length of the byte order mark of e.
func (e Encoding) BOMLen() int {
	switch e {
	case EncodingUTF8BOM:
		return len(bomUTF8)
	case EncodingUTF16LE, EncodingUTF16BE:
		return len(bomUTF16LE)
	default:
		return 0
	}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Text is decoded file content together with its on-disk encoding.
type Text struct {
	Text     string
	Encoding Encoding
}

// DecodeText strips a byte order mark and decodes UTF-16 content.
// Content that fails to decode is returned as-is.
func DecodeText(content []byte) Text {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return Text{Text: string(content[len(bomUTF8):]), Encoding: EncodingUTF8BOM}
	case bytes.HasPrefix(content, bomUTF16LE):
		return decodeUTF16(content, unicode.LittleEndian, EncodingUTF16LE)
	case bytes.HasPrefix(content, bomUTF16BE):
		return decodeUTF16(content, unicode.BigEndian, EncodingUTF16BE)
	default:
		return Text{Text: string(content), Encoding: EncodingUTF8}
	}
}

func decodeUTF16(content []byte, order unicode.Endianness, enc Encoding) Text {
	decoded, err := unicode.UTF16(order, unicode.ExpectBOM).NewDecoder().Bytes(content)
	if err != nil {
		return Text{Text: string(content), Encoding: EncodingUTF8}
	}
	return Text{Text: string(decoded), Encoding: enc}
}

// EncodeText converts text back to bytes in the given encoding, restoring
// the byte order mark.
func EncodeText(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingUTF8BOM:
		return append(append([]byte{}, bomUTF8...), text...), nil
	case EncodingUTF16LE:
		return encodeUTF16(text, unicode.LittleEndian)
	case EncodingUTF16BE:
		return encodeUTF16(text, unicode.BigEndian)
	default:
		return []byte(text), nil
	}
}

func encodeUTF16(text string, order unicode.Endianness) ([]byte, error) {
	out, err := unicode.UTF16(order, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encode utf-16: %w", err)
	}
	return out, nil
}

// Package textenc wraps the golang.org/x/text/encoding/unicode
// machinery behind a small surface. It exists because the reading
// engine on the default build consumes UTF-8 only; UTF-16 input has
// to be recognized and transcoded before the engine sees it, and
// it's easier if the unicode package (whose name clashes with the
// stdlib) stays hidden in here.
package textenc

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies what the head of a byte stream looks like.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF16LE
	UTF16BE
)

func (e Encoding) String() string {
	switch e {
	case UTF16LE:
		return "utf16le"
	case UTF16BE:
		return "utf16be"
	default:
		return "utf8"
	}
}

var (
	patUTF8      = []byte{0xEF, 0xBB, 0xBF}
	patUTF16LE2B = []byte{0xFF, 0xFE}
	patUTF16BE2B = []byte{0xFE, 0xFF}
	patUTF16LE4B = []byte{0x3C, 0x00, 0x3F, 0x00}
	patUTF16BE4B = []byte{0x00, 0x3C, 0x00, 0x3F}
)

// Detect classifies the first bytes of a document and reports the
// length of the byte order mark to strip, if any. Longer patterns
// are tried first. Like the XML recommendation's appendix, a
// document opening directly with "<?" in 16-bit units is recognized
// as UTF-16 without a BOM. Anything unrecognized is UTF-8: that is
// what undeclared XML is.
func Detect(b []byte) (Encoding, int) {
	if len(b) >= 4 {
		head := b[:4]
		if bytes.Equal(head, patUTF16LE4B) {
			return UTF16LE, 0
		}
		if bytes.Equal(head, patUTF16BE4B) {
			return UTF16BE, 0
		}
	}
	if len(b) >= 3 && bytes.Equal(b[:3], patUTF8) {
		return UTF8, 3
	}
	if len(b) >= 2 {
		head := b[:2]
		if bytes.Equal(head, patUTF16LE2B) {
			return UTF16LE, 2
		}
		if bytes.Equal(head, patUTF16BE2B) {
			return UTF16BE, 2
		}
	}
	return UTF8, 0
}

// AutoUTF8 returns a reader that delivers r's content as UTF-8,
// sniffing the head of the stream: UTF-16 input (either endianness,
// with or without a BOM) is transcoded, a UTF-8 BOM is stripped, and
// everything else passes through untouched.
func AutoUTF8(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}

	enc, bomLen := Detect(head)
	if bomLen > 0 {
		if _, err := br.Discard(bomLen); err != nil {
			return nil, err
		}
	}

	switch enc {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Reader(br), nil
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Reader(br), nil
	default:
		return br, nil
	}
}

// ForceUTF8 returns a reader that treats r's content as UTF-8 no
// matter what it contains, stripping a UTF-8 BOM if present. This is
// the stream-input discipline: the caller promised UTF-8, and no
// sniffing is done beyond the BOM.
func ForceUTF8(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(head) >= 3 && bytes.Equal(head, patUTF8) {
		if _, err := br.Discard(3); err != nil {
			return nil, err
		}
	}
	return br, nil
}

// EncodeUTF16 converts UTF-8 text to UTF-16 bytes in the given byte
// order, optionally prefixed with a byte order mark.
func EncodeUTF16(s string, enc Encoding, withBOM bool) ([]byte, error) {
	order := unicode.LittleEndian
	if enc == UTF16BE {
		order = unicode.BigEndian
	}
	policy := unicode.IgnoreBOM
	if withBOM {
		policy = unicode.ExpectBOM
	}
	return unicode.UTF16(order, policy).NewEncoder().Bytes([]byte(s))
}

// Package extract turns uploaded file bytes into document text.
package extract

import (
	"bytes"
	"errors"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupportedFormat is returned for content that is not plain text.
var ErrUnsupportedFormat = errors.New("unsupported document format")

var pdfMagic = []byte("%PDF-")

// Text decodes plain text. A UTF-8 or UTF-16 byte order mark selects the
// encoding, otherwise UTF-8 is assumed; invalid sequences become U+FFFD and
// line endings are normalized to "\n". Empty input yields empty text.
func Text(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	if bytes.HasPrefix(data, pdfMagic) {
		return "", ErrUnsupportedFormat
	}

	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	if bytes.IndexByte(out, 0) >= 0 {
		return "", ErrUnsupportedFormat
	}

	text := strings.ToValidUTF8(string(out), "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}

// Package encoding turns CSV files of unknown charset into UTF-8 readers.
// Spreadsheet and banking exports commonly arrive as Windows-1252 or as
// UTF-16 with a BOM, so the importer runs everything through here first.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize is how many leading bytes detection looks at.
const peekSize = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// charsets maps chardet results to decoders. Charsets that decode as
// ASCII-compatible UTF-8 anyway are intentionally absent.
var charsets = map[string]textenc.Encoding{
	"ISO-8859-1":   charmap.Windows1252, // practical superset of ISO-8859-1
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// ToUTF8 wraps r in a reader that yields UTF-8.
//
// A UTF-8 BOM is stripped; a UTF-16 BOM selects the matching UTF-16
// decoder. BOM-less content that already validates as UTF-8 passes through
// untouched. Anything else goes through chardet, falling back to
// Windows-1252 when detection is inconclusive.
func ToUTF8(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking input: %w", err)
	}

	if bytes.HasPrefix(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		return br, nil
	}

	// UTF-16 BOM, either endianness; UseBOM picks it up and consumes it.
	if len(head) >= 2 && (head[0] == 0xFF && head[1] == 0xFE || head[0] == 0xFE && head[1] == 0xFF) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(br, dec), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if result.Charset == "UTF-8" {
			return br, nil
		}

		if enc, ok := charsets[result.Charset]; ok {
			return transform.NewReader(br, enc.NewDecoder()), nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), nil
}

package formatb

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// decode reads the full body and returns it as valid UTF-8, trying a fixed
// sequence of encodings: utf-8, then windows-1252, then iso-8859-1. This is
// the original extractor's set of encodings (original_source/app/services/
// usc_parser.py's `for encoding in ['utf-8', 'latin-1', 'cp1252']` loop),
// reordered to try cp1252 before the looser latin-1 since every byte is
// valid latin-1 and would otherwise always "succeed" first.
func decode(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("formatb: read: %w", err)
	}

	if isValidUTF8(raw) {
		return string(raw), nil
	}

	if s, ok := tryDecode(raw, charmap.Windows1252); ok {
		return s, nil
	}
	if s, ok := tryDecode(raw, charmap.ISO8859_1); ok {
		return s, nil
	}

	return "", fmt.Errorf("formatb: could not decode document with utf-8, windows-1252, or iso-8859-1")
}

func isValidUTF8(b []byte) bool {
	return utf8.Valid(b)
}

func tryDecode(raw []byte, cm *charmap.Charmap) (string, bool) {
	decoded, _, err := transform.Bytes(cm.NewDecoder(), raw)
	if err != nil {
		return "", false
	}
	return string(bytes.TrimPrefix(decoded, []byte{0xEF, 0xBB, 0xBF})), true
}

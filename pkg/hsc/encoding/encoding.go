// Package encoding decodes HSC source bytes into UTF-8 text. Legacy
// scenario scripts are Windows-1252; scripts written today are usually
// plain UTF-8.
package encoding

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding selects the byte encoding of source files.
type Encoding int

// Encodings
const (
	// UTF8 passes bytes through unchanged.
	UTF8 Encoding = iota

	// Windows1252 is the encoding of the original toolset's script files.
	Windows1252
)

// encodingNames maps Encoding to its command-line key.
var encodingNames = map[Encoding]string{
	UTF8:        "utf-8",
	Windows1252: "windows-1252",
}

// String returns the encoding's key.
func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return "unknown"
}

// FromString parses an encoding key as written on the command line.
func FromString(name string) (Encoding, error) {
	for e, n := range encodingNames {
		if n == name {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown encoding %q (valid encodings: utf-8, windows-1252)", name)
}

// Decode converts raw source bytes to a UTF-8 string.
func Decode(raw []byte, e Encoding) (string, error) {
	switch e {
	case UTF8:
		return string(raw), nil
	case Windows1252:
		decoder := charmap.Windows1252.NewDecoder()
		decoded, _, err := transform.Bytes(decoder, raw)
		if err != nil {
			return "", fmt.Errorf("decode windows-1252: %w", err)
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("unknown encoding %d", e)
	}
}

// Encode converts UTF-8 text back to raw bytes in the given encoding.
// Characters outside Windows-1252 are replaced with the encoder's
// substitute byte.
func Encode(text string, e Encoding) ([]byte, error) {
	switch e {
	case UTF8:
		return []byte(text), nil
	case Windows1252:
		encoder := charmap.Windows1252.NewEncoder()
		encoded, _, err := transform.Bytes(encoder, []byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode windows-1252: %w", err)
		}
		return encoded, nil
	default:
		return nil, fmt.Errorf("unknown encoding %d", e)
	}
}

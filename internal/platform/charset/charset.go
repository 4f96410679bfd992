// Package charset detects the byte encoding of text files and decodes them to
// UTF-8.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	UTF8  = "UTF-8"
	ASCII = "ascii"
)

var ErrUnsupported = errors.New("unsupported text encoding")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// chardet reports a few names that neither index knows verbatim.
var aliases = map[string]string{
	"gb-18030":     "gb18030",
	"iso-8859-8-i": "iso-8859-8",
}

// Detect guesses the encoding of raw. Empty input and input starting with a
// UTF-8 byte order mark are reported as UTF-8, 7-bit input as ascii.
func Detect(raw []byte) (string, error) {
	if len(raw) == 0 || bytes.HasPrefix(raw, utf8BOM) {
		return UTF8, nil
	}
	if isASCII(raw) {
		return ASCII, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil {
		return "", fmt.Errorf("detect encoding: %w", err)
	}
	if result == nil || strings.TrimSpace(result.Charset) == "" {
		return "", fmt.Errorf("detect encoding: %w: no candidate", ErrUnsupported)
	}

	return result.Charset, nil
}

func isASCII(raw []byte) bool {
	for _, b := range raw {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// DetectFile reads the whole file at path and detects its encoding.
func DetectFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Detect(raw)
}

// Lookup resolves an encoding name as reported by Detect. UTF-8 resolves to a
// decoder that drops a leading byte order mark.
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}

	switch key {
	case "":
		return nil, fmt.Errorf("%w: empty name", ErrUnsupported)
	case "utf-8", "utf8", "ascii", "us-ascii":
		return unicode.UTF8BOM, nil
	}

	if enc, err := htmlindex.Get(key); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return enc, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
}

// NewReader decodes r from the named encoding into UTF-8.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

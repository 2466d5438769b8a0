package fileutil

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding name is given.
const DefaultEncoding = "utf-8"

// aliases covers names in common use that are not WHATWG labels.
var aliases = map[string]encoding.Encoding{
	"sjis":  japanese.ShiftJIS,
	"cp932": japanese.ShiftJIS,
	"eucjp": japanese.EUCJP,
	"jis":   japanese.ISO2022JP,
}

// LookupEncoding resolves an encoding name. An empty name or any UTF-8 label
// yields a nil encoding, meaning bytes pass through unchanged.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	if enc, ok := aliases[key]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(key)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

// Decode converts data in the named encoding to a UTF-8 string.
func Decode(data []byte, name string) (string, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(data), nil
	}

	reader := transform.NewReader(bytes.NewReader(data), enc.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return string(decoded), nil
}

// Encode converts a UTF-8 string to the named encoding.
func Encode(text, name string) ([]byte, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}

	encoded, _, err := transform.Bytes(enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode as %s: %w", name, err)
	}
	return encoded, nil
}

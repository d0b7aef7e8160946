package crypto

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// Encoding selects how a plaintext string is interpreted as raw bytes before
// encryption, and how recovered bytes are rendered after decryption. This lets
// a caller hand over "deadbeef" as two raw bytes instead of eight ASCII
// characters.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf8"
	EncodingHex    Encoding = "hex"
	EncodingBase64 Encoding = "base64"
	EncodingLatin1 Encoding = "latin1"
)

func (e Encoding) valid() bool {
	switch e {
	case EncodingUTF8, EncodingHex, EncodingBase64, EncodingLatin1:
		return true
	}
	return false
}

// decode interprets the caller's plaintext string as raw bytes.
func (e Encoding) decode(s string) ([]byte, error) {
	switch e {
	case EncodingUTF8:
		return []byte(s), nil
	case EncodingHex:
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("crypto: plaintext is not valid hex: %w", err)
		}
		return raw, nil
	case EncodingBase64:
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("crypto: plaintext is not valid base64: %w", err)
		}
		return raw, nil
	case EncodingLatin1:
		raw := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0xFF {
				return nil, fmt.Errorf("crypto: plaintext contains a code point outside latin-1: %U", r)
			}
			raw = append(raw, byte(r))
		}
		return raw, nil
	}
	return nil, fmt.Errorf("crypto: unsupported plaintext encoding %q", string(e))
}

// encode renders recovered plaintext bytes back into the caller's string form.
func (e Encoding) encode(raw []byte) string {
	switch e {
	case EncodingHex:
		return hex.EncodeToString(raw)
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(raw)
	case EncodingLatin1:
		var b strings.Builder
		b.Grow(len(raw))
		for _, c := range raw {
			b.WriteRune(rune(c))
		}
		return b.String()
	}
	return string(raw)
}

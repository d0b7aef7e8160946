package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"regexp"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// IVSize is the GCM standard nonce length in bytes.
	IVSize = 12
	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16
)

// base64Charset screens string candidates before decoding. Anything outside
// the standard alphabet is an encoding error, not a length error.
var base64Charset = regexp.MustCompile(`^[A-Za-z0-9+/=]*$`)

// KeyProvider supplies a Base64-encoded default key when the caller gives no
// explicit key. The provider is consulted lazily at resolution time, never
// cached by this package.
type KeyProvider func() (string, bool)

// EnvKeyProvider returns a KeyProvider backed by the named environment
// variable. An unset or empty variable counts as no key.
func EnvKeyProvider(name string) KeyProvider {
	return func() (string, bool) {
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			return "", false
		}
		return value, true
	}
}

// ParseKey validates and decodes a Base64 key candidate. The alphabet is
// checked before decoding so a malformed string surfaces as
// ErrInvalidKeyEncoding rather than a confusing length failure.
func ParseKey(encoded string) ([]byte, error) {
	if !base64Charset.MatchString(encoded) {
		return nil, ErrInvalidKeyEncoding
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidKeyEncoding
	}
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	return key, nil
}

// ParseIV validates and decodes a Base64 IV candidate.
func ParseIV(encoded string) ([]byte, error) {
	if !base64Charset.MatchString(encoded) {
		return nil, ErrInvalidIVEncoding
	}
	iv, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidIVEncoding
	}
	if len(iv) != IVSize {
		return nil, ErrInvalidIVLength
	}
	return iv, nil
}

// resolveKey applies the fixed candidate precedence: explicit raw bytes,
// explicit Base64 string, configured provider. Absence of all three is a hard
// error, never a silent default. The returned slice is a private copy.
func resolveKey(opts Options) ([]byte, error) {
	switch {
	case opts.Key != nil:
		if len(opts.Key) != KeySize {
			return nil, ErrInvalidKeyLength
		}
		key := make([]byte, KeySize)
		copy(key, opts.Key)
		return key, nil

	case opts.KeyBase64 != "":
		return ParseKey(opts.KeyBase64)

	case opts.KeyProvider != nil:
		encoded, ok := opts.KeyProvider()
		if !ok {
			return nil, ErrMissingKey
		}
		return ParseKey(encoded)
	}
	return nil, ErrMissingKey
}

// generateIV draws a fresh 96-bit nonce from the platform CSPRNG.
func generateIV() ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("crypto: iv generation failure: %w", err)
	}
	return iv, nil
}

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Options is the single configuration struct for a Cipher. Key candidates are
// tried in order: Key, KeyBase64, KeyProvider. Binary selects the
// concatenated wire form over the dot-delimited Base64 default. Encoding
// defaults to UTF-8.
type Options struct {
	Key         []byte
	KeyBase64   string
	KeyProvider KeyProvider
	Binary      bool
	Encoding    Encoding
}

// Cipher is the AES-256-GCM facade. All state is immutable after
// construction, so one instance may be shared freely across goroutines.
type Cipher struct {
	// Pre-calculate the AEAD interface once; per-call key schedules are wasted
	// work for a long-lived instance.
	aead     cipher.AEAD
	binary   bool
	encoding Encoding
}

// New resolves and validates the key, builds the AEAD, and pins the mode
// configuration for the lifetime of the instance.
func New(opts Options) (*Cipher, error) {
	key, err := resolveKey(opts)
	if err != nil {
		return nil, err
	}

	encoding := opts.Encoding
	if encoding == "" {
		encoding = EncodingUTF8
	}
	if !encoding.valid() {
		return nil, fmt.Errorf("crypto: unsupported plaintext encoding %q", string(opts.Encoding))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: block cipher failure: %w", err)
	}

	// Zeroize the resolved key copy; the expanded schedule inside the block
	// cipher is all the instance needs from here on.
	for i := range key {
		key[i] = 0
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: GCM failure: %w", err)
	}

	return &Cipher{aead: aead, binary: opts.Binary, encoding: encoding}, nil
}

// Encrypt seals plaintext under a fresh random IV and returns the wire-form
// envelope for the instance's mode. Passing the same inputs twice yields
// different envelopes. A nil aad is simply no associated data.
func (c *Cipher) Encrypt(plaintext string, aad []byte) ([]byte, error) {
	iv, err := generateIV()
	if err != nil {
		return nil, err
	}
	return c.seal(plaintext, aad, iv)
}

// EncryptWithIV seals plaintext under a caller-supplied IV, which makes the
// output deterministic. Never reusing an IV under the same key is the
// caller's responsibility; only the length is enforced here. String IV
// candidates go through ParseIV first.
func (c *Cipher) EncryptWithIV(plaintext string, aad, iv []byte) ([]byte, error) {
	if len(iv) != IVSize {
		return nil, ErrInvalidIVLength
	}
	return c.seal(plaintext, aad, iv)
}

func (c *Cipher) seal(plaintext string, aad, iv []byte) ([]byte, error) {
	raw, err := c.encoding.decode(plaintext)
	if err != nil {
		return nil, err
	}

	sealed := c.aead.Seal(nil, iv, raw, aad)

	// Seal appends the 16-byte tag after the ciphertext; the envelope carries
	// the two separately.
	split := len(sealed) - TagSize
	env := Envelope{IV: iv, Tag: sealed[split:], Ciphertext: sealed[:split]}
	return EncodeEnvelope(env, c.binary), nil
}

// Decrypt parses the envelope, verifies the tag with the same associated data
// the caller supplies, and renders the recovered plaintext via the instance's
// encoding. Wrong key, wrong or missing associated data, and corrupted
// envelope bytes are all reported as the single ErrAuthentication; the
// primitive does not distinguish which, and neither do we.
func (c *Cipher) Decrypt(envelope []byte, aad []byte) (string, error) {
	env, err := DecodeEnvelope(envelope, c.binary)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(env.Ciphertext)+TagSize)
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)

	raw, err := c.aead.Open(nil, env.IV, sealed, aad)
	if err != nil {
		return "", ErrAuthentication
	}

	return c.encoding.encode(raw), nil
}

package crypto

import "errors"

// Sentinel errors for the encryption layer. Every failure is terminal for the
// call; there is no retry path. Error text never carries key bytes, IVs, or
// plaintext.
var (
	// ErrMissingKey means no explicit key was supplied and no configured
	// default key is available.
	ErrMissingKey = errors.New("crypto: no key supplied and no configured default key")

	// ErrInvalidKeyEncoding means a string key candidate is not valid Base64.
	ErrInvalidKeyEncoding = errors.New("crypto: key is not valid base64")

	// ErrInvalidKeyLength means the decoded or raw key is not exactly 32 bytes.
	ErrInvalidKeyLength = errors.New("crypto: key must be exactly 32 bytes")

	// ErrInvalidIVEncoding means a string IV candidate is not valid Base64.
	ErrInvalidIVEncoding = errors.New("crypto: iv is not valid base64")

	// ErrInvalidIVLength means the decoded or raw IV is not exactly 12 bytes.
	ErrInvalidIVLength = errors.New("crypto: iv must be exactly 12 bytes")

	// ErrMalformedEnvelope means the wire input does not have the shape of a
	// ciphertext envelope: wrong field count in text mode, a field that is not
	// Base64, a wrong-sized IV or tag slot, or a binary input shorter than the
	// 28-byte fixed prefix.
	ErrMalformedEnvelope = errors.New("crypto: malformed ciphertext envelope")

	// ErrAuthentication means GCM tag verification failed. Wrong key, wrong or
	// missing associated data, and corrupted envelope bytes all collapse into
	// this one error so a tampering caller learns nothing about the cause.
	ErrAuthentication = errors.New("crypto: message authentication failed")
)

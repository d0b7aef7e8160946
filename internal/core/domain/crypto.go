package domain

// SecretCipher defines the hardened contract for value encryption.
// It enforces AEAD (Authenticated Encryption with Associated Data).
type SecretCipher interface {
	// Encrypt transforms plaintext into an authenticated ciphertext envelope.
	// 'aad' binds the value to a specific context (e.g. the secret's ID).
	Encrypt(plaintext string, aad []byte) ([]byte, error)

	// Decrypt verifies authenticity and returns the original plaintext.
	// If the AAD does not match what was used during encryption, it fails.
	Decrypt(envelope []byte, aad []byte) (string, error)
}

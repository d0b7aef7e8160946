package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the salt length for passphrase key derivation.
	SaltSize = 32
	// pbkdf2Iterations follows the OWASP recommended minimum.
	pbkdf2Iterations = 600000
)

// DeriveKey stretches an operator passphrase into a 32-byte AES key using
// PBKDF2-SHA256. The salt must be stored alongside whatever the key protects.
func DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("crypto: salt must be %d bytes", SaltSize)
	}
	return pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, KeySize, sha256.New), nil
}

// GenerateSalt draws a fresh random salt for DeriveKey.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("crypto: salt generation failure: %w", err)
	}
	return salt, nil
}

// GenerateKey draws a fresh random 32-byte key, for provisioning.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("crypto: key generation failure: %w", err)
	}
	return key, nil
}

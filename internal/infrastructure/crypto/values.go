package crypto

// DefaultKeyEnv is the environment variable consulted by the stateless value
// helpers when no explicit key is given. It must hold a Base64-encoded
// 32-byte key.
const DefaultKeyEnv = "SEALBOX_MASTER_KEY"

// EncryptValue encrypts a single value with the environment-sourced default
// key, text mode, UTF-8. A transient Cipher is built per call; use a Cipher
// directly when encrypting in a loop.
func EncryptValue(plaintext string, aad []byte) (string, error) {
	return encryptValue(plaintext, aad, Options{KeyProvider: EnvKeyProvider(DefaultKeyEnv)})
}

// EncryptValueWithKey is EncryptValue with an explicit raw key.
func EncryptValueWithKey(plaintext string, aad, key []byte) (string, error) {
	return encryptValue(plaintext, aad, Options{Key: key})
}

// DecryptValue reverses EncryptValue with the environment-sourced default key.
func DecryptValue(envelope string, aad []byte) (string, error) {
	return decryptValue(envelope, aad, Options{KeyProvider: EnvKeyProvider(DefaultKeyEnv)})
}

// DecryptValueWithKey is DecryptValue with an explicit raw key.
func DecryptValueWithKey(envelope string, aad, key []byte) (string, error) {
	return decryptValue(envelope, aad, Options{Key: key})
}

func encryptValue(plaintext string, aad []byte, opts Options) (string, error) {
	c, err := New(opts)
	if err != nil {
		return "", err
	}
	out, err := c.Encrypt(plaintext, aad)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decryptValue(envelope string, aad []byte, opts Options) (string, error) {
	c, err := New(opts)
	if err != nil {
		return "", err
	}
	return c.Decrypt([]byte(envelope), aad)
}

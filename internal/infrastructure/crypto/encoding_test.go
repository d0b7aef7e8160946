package crypto_test

import (
	"testing"

	"github.com/sealboxhq/sealbox/internal/infrastructure/crypto"
)

// The encoding decides what bytes reach the cipher: "deadbeef" under hex is
// four raw bytes, under utf8 it is eight ASCII characters. The two must not
// produce interchangeable envelopes.
func TestEncoding_Hex_Encrypts_Raw_Bytes(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	iv := make([]byte, crypto.IVSize)

	hexCipher, err := crypto.New(crypto.Options{Key: key, Encoding: crypto.EncodingHex})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	utf8Cipher, err := crypto.New(crypto.Options{Key: key})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	asHex, err := hexCipher.EncryptWithIV("deadbeef", nil, iv)
	if err != nil {
		t.Fatalf("hex EncryptWithIV failed: %v", err)
	}
	asText, err := utf8Cipher.EncryptWithIV("deadbeef", nil, iv)
	if err != nil {
		t.Fatalf("utf8 EncryptWithIV failed: %v", err)
	}

	hexEnv, _ := crypto.DecodeEnvelope(asHex, false)
	textEnv, _ := crypto.DecodeEnvelope(asText, false)
	if len(hexEnv.Ciphertext) != 4 {
		t.Errorf("hex plaintext should produce 4 ciphertext bytes, got %d", len(hexEnv.Ciphertext))
	}
	if len(textEnv.Ciphertext) != 8 {
		t.Errorf("utf8 plaintext should produce 8 ciphertext bytes, got %d", len(textEnv.Ciphertext))
	}
}

func TestEncoding_Invalid_Plaintext_Rejected(t *testing.T) {
	key := make([]byte, 32)

	hexCipher, err := crypto.New(crypto.Options{Key: key, Encoding: crypto.EncodingHex})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := hexCipher.Encrypt("not hex at all", nil); err == nil {
		t.Error("hex cipher accepted non-hex plaintext")
	}

	b64Cipher, err := crypto.New(crypto.Options{Key: key, Encoding: crypto.EncodingBase64})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := b64Cipher.Encrypt("!!!", nil); err == nil {
		t.Error("base64 cipher accepted non-base64 plaintext")
	}

	latin1Cipher, err := crypto.New(crypto.Options{Key: key, Encoding: crypto.EncodingLatin1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := latin1Cipher.Encrypt("emoji 🙂 is not latin-1", nil); err == nil {
		t.Error("latin-1 cipher accepted a code point above 0xFF")
	}
}

func TestEncoding_Latin1_Preserves_High_Bytes(t *testing.T) {
	key := make([]byte, 32)
	c, err := crypto.New(crypto.Options{Key: key, Encoding: crypto.EncodingLatin1})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Every latin-1 code point from 0x00 to 0xFF must survive the trip.
	plaintext := make([]rune, 256)
	for i := range plaintext {
		plaintext[i] = rune(i)
	}

	envelope, err := c.Encrypt(string(plaintext), nil)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	decrypted, err := c.Decrypt(envelope, nil)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if decrypted != string(plaintext) {
		t.Error("latin-1 round-trip corrupted high code points")
	}

	env, _ := crypto.DecodeEnvelope(envelope, false)
	if len(env.Ciphertext) != 256 {
		t.Errorf("latin-1 plaintext must map one code point to one byte, got %d bytes", len(env.Ciphertext))
	}
}

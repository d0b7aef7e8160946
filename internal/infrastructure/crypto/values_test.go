package crypto_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"testing"

	"github.com/sealboxhq/sealbox/internal/infrastructure/crypto"
)

func TestValueHelpers_EnvKey_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{'v'}, 32)
	t.Setenv(crypto.DefaultKeyEnv, base64.StdEncoding.EncodeToString(key))

	envelope, err := crypto.EncryptValue("db-password-123", []byte("ctx"))
	if err != nil {
		t.Fatalf("EncryptValue failed: %v", err)
	}

	// Default mode is the transport-safe text form.
	if bytes.Count([]byte(envelope), []byte(".")) != 2 {
		t.Errorf("EncryptValue did not produce a three-field text envelope: %q", envelope)
	}

	plaintext, err := crypto.DecryptValue(envelope, []byte("ctx"))
	if err != nil {
		t.Fatalf("DecryptValue failed: %v", err)
	}
	if plaintext != "db-password-123" {
		t.Errorf("round-trip failed: got %q", plaintext)
	}

	// The explicit-key variants must interoperate with the env-sourced ones.
	plaintext, err = crypto.DecryptValueWithKey(envelope, []byte("ctx"), key)
	if err != nil || plaintext != "db-password-123" {
		t.Fatalf("DecryptValueWithKey failed: %q, %v", plaintext, err)
	}
}

func TestValueHelpers_Missing_Env_Key(t *testing.T) {
	t.Setenv(crypto.DefaultKeyEnv, "")
	os.Unsetenv(crypto.DefaultKeyEnv)

	if _, err := crypto.EncryptValue("p", nil); !errors.Is(err, crypto.ErrMissingKey) {
		t.Fatalf("EncryptValue without a key returned %v, want ErrMissingKey", err)
	}
	if _, err := crypto.DecryptValue("a.b.c", nil); !errors.Is(err, crypto.ErrMissingKey) {
		t.Fatalf("DecryptValue without a key returned %v, want ErrMissingKey", err)
	}
}

func TestValueHelpers_ExplicitKey(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, 32)

	envelope, err := crypto.EncryptValueWithKey("tenant-secret", nil, key)
	if err != nil {
		t.Fatalf("EncryptValueWithKey failed: %v", err)
	}
	plaintext, err := crypto.DecryptValueWithKey(envelope, nil, key)
	if err != nil {
		t.Fatalf("DecryptValueWithKey failed: %v", err)
	}
	if plaintext != "tenant-secret" {
		t.Errorf("round-trip failed: got %q", plaintext)
	}
}

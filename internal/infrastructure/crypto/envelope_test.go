package crypto_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sealboxhq/sealbox/internal/infrastructure/crypto"
)

func sampleEnvelope() crypto.Envelope {
	return crypto.Envelope{
		IV:         bytes.Repeat([]byte{0x01}, crypto.IVSize),
		Tag:        bytes.Repeat([]byte{0x02}, crypto.TagSize),
		Ciphertext: []byte{0xde, 0xad, 0xbe, 0xef},
	}
}

func TestEnvelope_Text_Shape(t *testing.T) {
	wire := crypto.EncodeEnvelope(sampleEnvelope(), false)

	if n := strings.Count(string(wire), "."); n != 2 {
		t.Fatalf("text envelope has %d delimiters, want 2", n)
	}
	for _, c := range string(wire) {
		if c > 0x7F {
			t.Fatalf("text envelope contains non-ASCII byte %q", c)
		}
	}

	env, err := crypto.DecodeEnvelope(wire, false)
	if err != nil {
		t.Fatalf("DecodeEnvelope failed: %v", err)
	}
	if !bytes.Equal(env.Ciphertext, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Errorf("ciphertext corrupted through codec: %x", env.Ciphertext)
	}
}

func TestEnvelope_Text_Rejects_Malformed(t *testing.T) {
	cases := []struct {
		name string
		wire string
	}{
		{"no delimiters", "AAAA"},
		{"one delimiter", "AAAA.BBBB"},
		{"three delimiters", "AAAA.BBBB.CCCC.DDDD"},
		{"field is not base64", "!!!!.BBBB.CCCC"},
		{"iv wrong size", "AAAA.AAAAAAAAAAAAAAAAAAAAAA==.CCCC"},
		{"tag wrong size", "AQEBAQEBAQEBAQEB.AAAA.CCCC"},
		{"empty input", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := crypto.DecodeEnvelope([]byte(tc.wire), false); !errors.Is(err, crypto.ErrMalformedEnvelope) {
				t.Errorf("DecodeEnvelope(%q) = %v, want ErrMalformedEnvelope", tc.wire, err)
			}
		})
	}
}

func TestEnvelope_Text_Empty_Ciphertext_Field(t *testing.T) {
	env := sampleEnvelope()
	env.Ciphertext = nil

	wire := crypto.EncodeEnvelope(env, false)
	decoded, err := crypto.DecodeEnvelope(wire, false)
	if err != nil {
		t.Fatalf("empty ciphertext field must decode: %v", err)
	}
	if len(decoded.Ciphertext) != 0 {
		t.Errorf("expected empty ciphertext, got %x", decoded.Ciphertext)
	}
}

func TestEnvelope_Binary_Layout(t *testing.T) {
	env := sampleEnvelope()
	wire := crypto.EncodeEnvelope(env, true)

	if len(wire) != crypto.IVSize+crypto.TagSize+4 {
		t.Fatalf("binary envelope is %d bytes, want %d", len(wire), crypto.IVSize+crypto.TagSize+4)
	}
	if !bytes.Equal(wire[:crypto.IVSize], env.IV) {
		t.Error("bytes [0:12] must be the IV")
	}
	if !bytes.Equal(wire[crypto.IVSize:crypto.IVSize+crypto.TagSize], env.Tag) {
		t.Error("bytes [12:28] must be the tag")
	}

	decoded, err := crypto.DecodeEnvelope(wire, true)
	if err != nil {
		t.Fatalf("DecodeEnvelope failed: %v", err)
	}
	if !bytes.Equal(decoded.Ciphertext, env.Ciphertext) {
		t.Errorf("ciphertext corrupted through codec: %x", decoded.Ciphertext)
	}
}

func TestEnvelope_Binary_Rejects_Short_Input(t *testing.T) {
	for _, n := range []int{0, 1, 12, 27} {
		if _, err := crypto.DecodeEnvelope(make([]byte, n), true); !errors.Is(err, crypto.ErrMalformedEnvelope) {
			t.Errorf("%d-byte binary input: got %v, want ErrMalformedEnvelope", n, err)
		}
	}

	// Exactly 28 bytes is a valid envelope with an empty ciphertext.
	env, err := crypto.DecodeEnvelope(make([]byte, 28), true)
	if err != nil {
		t.Fatalf("28-byte input must decode: %v", err)
	}
	if len(env.Ciphertext) != 0 {
		t.Errorf("expected empty ciphertext, got %d bytes", len(env.Ciphertext))
	}
}

package crypto

import (
	"bytes"
	"encoding/base64"
)

// Envelope is the in-memory (iv, tag, ciphertext) triple shared between the
// encode and decode paths. All three fields are opaque byte sequences here;
// only the wire format imposes an order.
type Envelope struct {
	IV         []byte
	Tag        []byte
	Ciphertext []byte
}

const (
	envelopeDelimiter = '.'

	// minBinaryLen is the fixed 28-byte prefix of the binary wire form:
	// iv(12) then tag(16), ciphertext may be empty.
	minBinaryLen = IVSize + TagSize
)

// EncodeEnvelope serializes the triple into one of the two wire forms.
//
// Text mode (binary=false) produces base64(iv) "." base64(tag) "."
// base64(ciphertext), ASCII-only and safe for transports that cannot carry
// raw bytes. Binary mode concatenates iv, tag, and ciphertext with no
// delimiters or length fields; the consumer must know a priori that IV=12
// and tag=16 were used, so any future size change is a silent compatibility
// break. The codec never auto-detects which mode produced an input.
func EncodeEnvelope(env Envelope, binary bool) []byte {
	if binary {
		out := make([]byte, 0, len(env.IV)+len(env.Tag)+len(env.Ciphertext))
		out = append(out, env.IV...)
		out = append(out, env.Tag...)
		out = append(out, env.Ciphertext...)
		return out
	}

	enc := base64.StdEncoding
	var buf bytes.Buffer
	buf.Grow(enc.EncodedLen(len(env.IV)) + enc.EncodedLen(len(env.Tag)) + enc.EncodedLen(len(env.Ciphertext)) + 2)
	buf.WriteString(enc.EncodeToString(env.IV))
	buf.WriteByte(envelopeDelimiter)
	buf.WriteString(enc.EncodeToString(env.Tag))
	buf.WriteByte(envelopeDelimiter)
	buf.WriteString(enc.EncodeToString(env.Ciphertext))
	return buf.Bytes()
}

// DecodeEnvelope parses wire data back into the triple. The IV and tag slots
// are size-checked here so a malformed envelope is rejected before the AEAD
// primitive is ever invoked.
func DecodeEnvelope(data []byte, binary bool) (Envelope, error) {
	if binary {
		if len(data) < minBinaryLen {
			return Envelope{}, ErrMalformedEnvelope
		}
		return Envelope{
			IV:         data[:IVSize],
			Tag:        data[IVSize:minBinaryLen],
			Ciphertext: data[minBinaryLen:],
		}, nil
	}

	fields := bytes.Split(data, []byte{envelopeDelimiter})
	if len(fields) != 3 {
		return Envelope{}, ErrMalformedEnvelope
	}

	enc := base64.StdEncoding
	iv, err := enc.DecodeString(string(fields[0]))
	if err != nil {
		return Envelope{}, ErrMalformedEnvelope
	}
	tag, err := enc.DecodeString(string(fields[1]))
	if err != nil {
		return Envelope{}, ErrMalformedEnvelope
	}
	ciphertext, err := enc.DecodeString(string(fields[2]))
	if err != nil {
		return Envelope{}, ErrMalformedEnvelope
	}

	if len(iv) != IVSize || len(tag) != TagSize {
		return Envelope{}, ErrMalformedEnvelope
	}

	return Envelope{IV: iv, Tag: tag, Ciphertext: ciphertext}, nil
}

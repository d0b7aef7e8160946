package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sealboxhq/sealbox/internal/infrastructure/crypto"
)

// Use a single instance of Validate, it caches struct info
var validate = validator.New()

// ==============================================================================
// 1. Request Payloads (Input Validation)
// ==============================================================================

type EncryptRequest struct {
	// Plaintext may be empty; GCM handles a zero-length message.
	Plaintext string `json:"plaintext" validate:"max=1000000"`
	// Context is optional associated data bound into the authentication tag.
	Context string `json:"context" validate:"max=1024"`
	// IV pins an explicit Base64 nonce. Leave empty for a fresh random one;
	// reuse under the service key is the caller's problem, not checked here.
	IV string `json:"iv" validate:"max=64"`
}

type DecryptRequest struct {
	Ciphertext string `json:"ciphertext" validate:"required,max=1400000"`
	Context    string `json:"context" validate:"max=1024"`
}

// ==============================================================================
// 2. The Handler Struct (Dependency Injection)
// ==============================================================================

// CryptoHandler exposes stateless encrypt/decrypt for callers who manage
// their own ciphertext storage. Nothing is persisted here.
type CryptoHandler struct {
	cipher *crypto.Cipher
}

func NewCryptoHandler(cipher *crypto.Cipher) *CryptoHandler {
	return &CryptoHandler{cipher: cipher}
}

// ==============================================================================
// 3. HTTP Methods
// ==============================================================================

// Encrypt handles POST /api/v1/crypto/encrypt
func (h *CryptoHandler) Encrypt(w http.ResponseWriter, r *http.Request) {
	var req EncryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		HandleError(w, r, err)
		return
	}

	var aad []byte
	if req.Context != "" {
		aad = []byte(req.Context)
	}

	var envelope []byte
	var err error
	if req.IV != "" {
		iv, ivErr := crypto.ParseIV(req.IV)
		if ivErr != nil {
			HandleError(w, r, ivErr)
			return
		}
		envelope, err = h.cipher.EncryptWithIV(req.Plaintext, aad, iv)
	} else {
		envelope, err = h.cipher.Encrypt(req.Plaintext, aad)
	}
	if err != nil {
		HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"ciphertext": string(envelope)})
}

// Decrypt handles POST /api/v1/crypto/decrypt
func (h *CryptoHandler) Decrypt(w http.ResponseWriter, r *http.Request) {
	var req DecryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		HandleError(w, r, err)
		return
	}

	var aad []byte
	if req.Context != "" {
		aad = []byte(req.Context)
	}

	plaintext, err := h.cipher.Decrypt([]byte(req.Ciphertext), aad)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"plaintext": plaintext})
}
